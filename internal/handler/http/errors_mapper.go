package http

import (
	"errors"
	"net/http"

	"github.com/keycapdesign/gradgo-app-sub000/internal/adapter"
	"github.com/keycapdesign/gradgo-app-sub000/internal/service"
	"github.com/keycapdesign/gradgo-app-sub000/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrOffline:            http.StatusServiceUnavailable,
	service.ErrEventDataNotCached: http.StatusNotFound,
	service.ErrSyncInProgress:     http.StatusConflict,
	service.ErrPrefetchInProgress: http.StatusConflict,

	adapter.ErrBadRequest:          http.StatusBadRequest,
	adapter.ErrUnauthorized:        http.StatusUnauthorized,
	adapter.ErrForbidden:           http.StatusForbidden,
	adapter.ErrNotFound:            http.StatusNotFound,
	adapter.ErrConflict:            http.StatusConflict,
	adapter.ErrInternalServerError: http.StatusBadGateway,
	adapter.ErrBackendUnavailable:  http.StatusServiceUnavailable,

	store.ErrQueueItemNotFound:    http.StatusNotFound,
	store.ErrUnsupportedSortField: http.StatusBadRequest,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
