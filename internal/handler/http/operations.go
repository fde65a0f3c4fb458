package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/keycapdesign/gradgo-app-sub000/internal/logger"
	"github.com/keycapdesign/gradgo-app-sub000/internal/utils"
	"github.com/keycapdesign/gradgo-app-sub000/models"
)

type operationsResponse struct {
	Operations []models.QueueItem `json:"operations"`
	Length     int                `json:"length"`
}

func (h *Handler) getBookingOperations(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	bookingID, err := utils.ParseID(chi.URLParam(r, "bookingID"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	operations, err := h.services.Mutations.PendingOperations(r.Context(), bookingID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getBookingOperations").Int64("booking_id", bookingID).Msg("error listing operations")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	response := operationsResponse{
		Operations: operations,
		Length:     len(operations),
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) clearBookingOperations(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	bookingID, err := utils.ParseID(chi.URLParam(r, "bookingID"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.services.Mutations.ClearErrored(r.Context(), bookingID); err != nil {
		log.Err(err).Str("func", "*Handler.clearBookingOperations").Int64("booking_id", bookingID).Msg("error clearing operations")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
