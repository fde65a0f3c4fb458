package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/keycapdesign/gradgo-app-sub000/internal/logger"
	"github.com/keycapdesign/gradgo-app-sub000/internal/utils"
	"github.com/keycapdesign/gradgo-app-sub000/models"
)

func (h *Handler) getEvent(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	eventID, err := utils.ParseID(chi.URLParam(r, "eventID"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	event, err := h.services.OfflineCache.GetEvent(r.Context(), eventID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getEvent").Int64("event_id", eventID).Msg("error getting event")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}
	if event == nil {
		http.Error(w, "event not found", http.StatusNotFound)
		return
	}

	utils.WriteJSON(w, event, http.StatusOK)
}

func (h *Handler) getEventBookings(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	eventID, err := utils.ParseID(chi.URLParam(r, "eventID"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	req := models.BookingListRequest{
		EventID:       eventID,
		SortBy:        r.URL.Query().Get("sort_by"),
		SortDirection: r.URL.Query().Get("sort_direction"),
	}

	bookings, err := h.services.OfflineCache.GetEventBookings(r.Context(), req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getEventBookings").Int64("event_id", eventID).Msg("error getting bookings")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, bookings, http.StatusOK)
}

func (h *Handler) getBookingStats(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	eventID, err := utils.ParseID(chi.URLParam(r, "eventID"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	stats, err := h.services.OfflineCache.GetBookingStats(r.Context(), eventID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getBookingStats").Int64("event_id", eventID).Msg("error getting stats")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, stats, http.StatusOK)
}

func (h *Handler) getDetailedGownStats(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	eventID, err := utils.ParseID(chi.URLParam(r, "eventID"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	stats, err := h.services.OfflineCache.GetDetailedGownStats(r.Context(), eventID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getDetailedGownStats").Int64("event_id", eventID).Msg("error getting gown stats")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, stats, http.StatusOK)
}

func (h *Handler) getEventCeremonies(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	eventID, err := utils.ParseID(chi.URLParam(r, "eventID"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ceremonies, err := h.services.OfflineCache.GetEventCeremonies(r.Context(), eventID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getEventCeremonies").Int64("event_id", eventID).Msg("error getting ceremonies")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, ceremonies, http.StatusOK)
}

func (h *Handler) getBooking(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	bookingID, err := utils.ParseID(chi.URLParam(r, "bookingID"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	booking, err := h.services.OfflineCache.GetBooking(r.Context(), bookingID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getBooking").Int64("booking_id", bookingID).Msg("error reading booking")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}
	if booking == nil {
		http.Error(w, "booking not cached", http.StatusNotFound)
		return
	}

	utils.WriteJSON(w, booking, http.StatusOK)
}

func (h *Handler) findBookingByRFID(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	rfid := chi.URLParam(r, "rfid")
	if rfid == "" {
		http.Error(w, "rfid is required", http.StatusBadRequest)
		return
	}

	booking, err := h.services.OfflineCache.FindBookingByRFID(r.Context(), rfid)
	if err != nil {
		log.Err(err).Str("func", "*Handler.findBookingByRFID").Str("rfid", rfid).Msg("error resolving rfid")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}
	if booking == nil {
		http.Error(w, "no booking holds this gown", http.StatusNotFound)
		return
	}

	utils.WriteJSON(w, booking, http.StatusOK)
}
