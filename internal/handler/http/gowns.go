package http

import (
	"encoding/json"
	"net/http"

	"github.com/keycapdesign/gradgo-app-sub000/internal/logger"
	"github.com/keycapdesign/gradgo-app-sub000/internal/service"
	"github.com/keycapdesign/gradgo-app-sub000/internal/utils"
	"github.com/keycapdesign/gradgo-app-sub000/models"
)

func (h *Handler) checkOutGown(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.CheckOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.checkOutGown").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if req.BookingID == 0 || req.RFID == "" {
		http.Error(w, "booking_id and rfid are required", http.StatusBadRequest)
		return
	}

	result, err := h.services.Mutations.CheckOutGown(r.Context(), req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.checkOutGown").Int64("booking_id", req.BookingID).Msg("check-out failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) checkInGown(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.checkInGown").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if req.BookingID == 0 || req.RFID == "" {
		http.Error(w, "booking_id and rfid are required", http.StatusBadRequest)
		return
	}

	result, err := h.services.Mutations.CheckInGown(r.Context(), req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.checkInGown").Int64("booking_id", req.BookingID).Msg("check-in failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

type undoRequest struct {
	BookingID int64 `json:"booking_id"`
	EventID   int64 `json:"event_id"`
}

func (h *Handler) undoCheckout(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req undoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.undoCheckout").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if req.BookingID == 0 {
		http.Error(w, "booking_id is required", http.StatusBadRequest)
		return
	}

	result, err := h.services.Mutations.UndoCheckout(r.Context(), req.BookingID, req.EventID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.undoCheckout").Int64("booking_id", req.BookingID).Msg("undo check-out failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) undoCheckin(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req undoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.undoCheckin").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if req.BookingID == 0 {
		http.Error(w, "booking_id is required", http.StatusBadRequest)
		return
	}

	result, err := h.services.Mutations.UndoCheckin(r.Context(), req.BookingID, req.EventID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.undoCheckin").Int64("booking_id", req.BookingID).Msg("undo check-in failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) changeGown(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req service.ChangeGownRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.changeGown").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if req.BookingID == 0 || req.OldRFID == "" || req.NewRFID == "" {
		http.Error(w, "booking_id, old_rfid and new_rfid are required", http.StatusBadRequest)
		return
	}

	result, err := h.services.Mutations.ChangeGown(r.Context(), req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.changeGown").Int64("booking_id", req.BookingID).Msg("gown change failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}
