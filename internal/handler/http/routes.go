package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Route("/api", func(r chi.Router) {
		r.Get("/status", h.getStatus)
		r.Post("/sync", h.triggerSync)
		r.Post("/prefetch/{eventID}", h.triggerPrefetch)
		r.Delete("/cache", h.clearCache)

		r.Route("/gowns", func(r chi.Router) {
			r.Post("/checkout", h.checkOutGown)
			r.Post("/checkin", h.checkInGown)
			r.Post("/undo-checkout", h.undoCheckout)
			r.Post("/undo-checkin", h.undoCheckin)
			r.Post("/change", h.changeGown)
		})

		r.Route("/events/{eventID}", func(r chi.Router) {
			r.Get("/", h.getEvent)
			r.Get("/bookings", h.getEventBookings)
			r.Get("/stats", h.getBookingStats)
			r.Get("/gown-stats", h.getDetailedGownStats)
			r.Get("/ceremonies", h.getEventCeremonies)
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Get("/rfid/{rfid}", h.findBookingByRFID)
			r.Get("/{bookingID}", h.getBooking)
			r.Get("/{bookingID}/operations", h.getBookingOperations)
			r.Delete("/{bookingID}/operations", h.clearBookingOperations)
		})
	})

	return router
}
