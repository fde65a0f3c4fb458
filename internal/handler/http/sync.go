package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/keycapdesign/gradgo-app-sub000/internal/logger"
	"github.com/keycapdesign/gradgo-app-sub000/internal/utils"
)

func (h *Handler) getStatus(w http.ResponseWriter, r *http.Request) {
	flags := h.services.AutoSync.Flags(r.Context())

	utils.WriteJSON(w, flags, http.StatusOK)
}

func (h *Handler) triggerSync(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	summary, err := h.services.AutoSync.Sync(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.triggerSync").Msg("manual sync failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, summary, http.StatusOK)
}

func (h *Handler) triggerPrefetch(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	eventID, err := utils.ParseID(chi.URLParam(r, "eventID"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.services.AutoSync.Prefetch(r.Context(), eventID); err != nil {
		log.Err(err).Str("func", "*Handler.triggerPrefetch").Int64("event_id", eventID).Msg("manual prefetch failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) clearCache(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if err := h.services.OfflineCache.ClearAllData(r.Context()); err != nil {
		log.Err(err).Str("func", "*Handler.clearCache").Msg("error clearing cached data")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
