package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/keycapdesign/gradgo-app-sub000/internal/app"
	"github.com/keycapdesign/gradgo-app-sub000/internal/cache"
	"github.com/keycapdesign/gradgo-app-sub000/internal/config"
	"github.com/keycapdesign/gradgo-app-sub000/internal/logger"
	"github.com/keycapdesign/gradgo-app-sub000/internal/mock"
	"github.com/keycapdesign/gradgo-app-sub000/internal/service"
	"github.com/keycapdesign/gradgo-app-sub000/internal/store"
	"github.com/keycapdesign/gradgo-app-sub000/models"
)

// ---- Stub: connectivity signal ----

type stubSignal struct {
	mu     sync.Mutex
	online bool
}

func (s *stubSignal) IsOnline() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.online
}

func (s *stubSignal) SetOnline(online bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.online = online
}

func (s *stubSignal) Subscribe() <-chan bool { return make(chan bool) }

// ---- Helper ----

// newTestRouter wires a real service graph over an in-memory SQLite database
// so route tests exercise the same code paths the agent runs. The gomock
// server adapter has no expectations: tests running offline must never reach
// the backend.
func newTestRouter(t *testing.T, online bool) (http.Handler, *mock.MockServerAdapter) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockAdapter := mock.NewMockServerAdapter(ctrl)

	storages, err := store.NewStorages(config.AgentStorage{
		DB: config.AgentDB{DSN: ":memory:"},
	}, logger.Nop())
	require.NoError(t, err)

	svcs := service.NewServices(
		mockAdapter,
		storages,
		cache.NewMemoryCache(),
		&stubSignal{online: online},
		config.AgentWorkers{EventID: 5},
		logger.Nop(),
	)

	return NewHandler(svcs, logger.Nop()).Init(), mockAdapter
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// ---- Route registration ----

func TestInit_RoutesRegistered(t *testing.T) {
	router, _ := newTestRouter(t, false)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/status"},
		{http.MethodPost, "/api/sync"},
		{http.MethodPost, "/api/prefetch/5"},
		{http.MethodDelete, "/api/cache"},
		{http.MethodPost, "/api/gowns/checkout"},
		{http.MethodPost, "/api/gowns/checkin"},
		{http.MethodPost, "/api/gowns/undo-checkout"},
		{http.MethodPost, "/api/gowns/undo-checkin"},
		{http.MethodPost, "/api/gowns/change"},
		{http.MethodGet, "/api/events/5/"},
		{http.MethodGet, "/api/events/5/bookings"},
		{http.MethodGet, "/api/events/5/stats"},
		{http.MethodGet, "/api/events/5/gown-stats"},
		{http.MethodGet, "/api/events/5/ceremonies"},
		{http.MethodGet, "/api/bookings/rfid/RF-1"},
		{http.MethodGet, "/api/bookings/1"},
		{http.MethodGet, "/api/bookings/1/operations"},
		{http.MethodDelete, "/api/bookings/1/operations"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rr := doJSON(t, router, tt.method, tt.path, "")
			assert.NotEqual(t, http.StatusNotFound, rr.Code,
				"route should be registered: %s %s", tt.method, tt.path)
		})
	}
}

// ---- Gown mutations ----

func TestCheckOutGown_OfflineQueuesOperation(t *testing.T) {
	router, _ := newTestRouter(t, false)

	rr := doJSON(t, router, http.MethodPost, "/api/gowns/checkout",
		`{"booking_id":11,"rfid":"RF-1","ean":"500123","event_id":5}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var result models.Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, app.MsgQueuedForProcessing, result.Message)
}

func TestCheckOutGown_InvalidJSON(t *testing.T) {
	router, _ := newTestRouter(t, false)

	rr := doJSON(t, router, http.MethodPost, "/api/gowns/checkout", `{"booking_id":`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCheckOutGown_MissingRFID(t *testing.T) {
	router, _ := newTestRouter(t, false)

	rr := doJSON(t, router, http.MethodPost, "/api/gowns/checkout", `{"booking_id":11}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestChangeGown_MissingNewRFID(t *testing.T) {
	router, _ := newTestRouter(t, false)

	rr := doJSON(t, router, http.MethodPost, "/api/gowns/change",
		`{"booking_id":11,"old_rfid":"RF-1"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUndoCheckout_MissingBookingID(t *testing.T) {
	router, _ := newTestRouter(t, false)

	rr := doJSON(t, router, http.MethodPost, "/api/gowns/undo-checkout", `{"event_id":5}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// ---- Booking operations ----

func TestBookingOperations_ListAfterOfflineCheckout(t *testing.T) {
	router, _ := newTestRouter(t, false)

	rr := doJSON(t, router, http.MethodPost, "/api/gowns/checkout",
		`{"booking_id":11,"rfid":"RF-1","event_id":5}`)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, router, http.MethodGet, "/api/bookings/11/operations", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Operations []models.QueueItem `json:"operations"`
		Length     int                `json:"length"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Length)
	assert.Equal(t, models.OpCheckOutGown, resp.Operations[0].Type)
	assert.Equal(t, "RF-1", resp.Operations[0].Data.RFID)
}

func TestBookingOperations_InvalidID(t *testing.T) {
	router, _ := newTestRouter(t, false)

	rr := doJSON(t, router, http.MethodGet, "/api/bookings/not-a-number/operations", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestBookingOperations_ClearReturnsNoContent(t *testing.T) {
	router, _ := newTestRouter(t, false)

	rr := doJSON(t, router, http.MethodDelete, "/api/bookings/11/operations", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

// ---- Event data reads ----

func TestGetEvent_ColdCacheOffline(t *testing.T) {
	router, _ := newTestRouter(t, false)

	rr := doJSON(t, router, http.MethodGet, "/api/events/5/", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetBooking_NotCached(t *testing.T) {
	router, _ := newTestRouter(t, false)

	rr := doJSON(t, router, http.MethodGet, "/api/bookings/77", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestFindBookingByRFID_UnknownTag(t *testing.T) {
	router, _ := newTestRouter(t, false)

	rr := doJSON(t, router, http.MethodGet, "/api/bookings/rfid/RF-404", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

// ---- Sync and status ----

func TestGetStatus_ReportsOfflineFlags(t *testing.T) {
	router, _ := newTestRouter(t, false)

	rr := doJSON(t, router, http.MethodGet, "/api/status", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var flags models.ControllerFlags
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &flags))
	assert.False(t, flags.IsOnline)
	assert.False(t, flags.HasPendingOps)
}

func TestGetStatus_SeesPendingOps(t *testing.T) {
	router, _ := newTestRouter(t, false)

	rr := doJSON(t, router, http.MethodPost, "/api/gowns/checkout",
		`{"booking_id":11,"rfid":"RF-1","event_id":5}`)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, router, http.MethodGet, "/api/status", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var flags models.ControllerFlags
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &flags))
	assert.True(t, flags.HasPendingOps)
}

func TestTriggerSync_OfflineIsServiceUnavailable(t *testing.T) {
	router, _ := newTestRouter(t, false)

	rr := doJSON(t, router, http.MethodPost, "/api/sync", "")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestTriggerPrefetch_InvalidEventID(t *testing.T) {
	router, _ := newTestRouter(t, false)

	rr := doJSON(t, router, http.MethodPost, "/api/prefetch/zero", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestClearCache_ReturnsNoContent(t *testing.T) {
	router, _ := newTestRouter(t, false)

	rr := doJSON(t, router, http.MethodDelete, "/api/cache", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

// ---- Trace ID middleware ----

func TestTraceID_GeneratedWhenAbsent(t *testing.T) {
	router, _ := newTestRouter(t, false)

	rr := doJSON(t, router, http.MethodGet, "/api/status", "")
	assert.NotEmpty(t, rr.Header().Get("X-Trace-ID"))
}

func TestTraceID_Passthrough(t *testing.T) {
	router, _ := newTestRouter(t, false)

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	req.Header.Set("X-Trace-ID", "trace-123")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, "trace-123", rr.Header().Get("X-Trace-ID"))
}
