package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keycapdesign/gradgo-app-sub000/models"
)

func newTestAdapter(t *testing.T, handler http.Handler) ServerAdapter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewHTTPServerAdapter(HTTPClientConfig{
		BaseURL: srv.URL,
		HashKey: "test-hash-key",
		Timeout: 2 * time.Second,
	})
}

// ── CheckOutGown ─────────────────────────────────────────────────────────────

func TestHTTPServerAdapter_CheckOutGown_Success(t *testing.T) {
	var gotReq models.CheckOutRequest
	a := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/gowns/checkout", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("HashSHA256"), "integrity hash header must be set")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_ = json.NewEncoder(w).Encode(models.Result{Success: true, Message: "checked out"})
	}))

	res, err := a.CheckOutGown(context.Background(), models.CheckOutRequest{
		BookingID: 7, RFID: "RF-001", EAN: "500123", EventID: 42,
	})

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, int64(7), gotReq.BookingID)
	assert.Equal(t, "RF-001", gotReq.RFID)
}

func TestHTTPServerAdapter_CheckOutGown_Conflict(t *testing.T) {
	a := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gown already checked out", http.StatusConflict)
	}))

	_, err := a.CheckOutGown(context.Background(), models.CheckOutRequest{BookingID: 7, RFID: "RF-001"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "gown already checked out")
}

// ── CheckInGown ──────────────────────────────────────────────────────────────

func TestHTTPServerAdapter_CheckInGown_SkipRFIDCheckForwarded(t *testing.T) {
	var gotReq models.CheckInRequest
	a := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/gowns/checkin", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_ = json.NewEncoder(w).Encode(models.Result{Success: true})
	}))

	_, err := a.CheckInGown(context.Background(), models.CheckInRequest{
		BookingID: 7, RFID: "RF-001", SkipRFIDCheck: true,
	})

	require.NoError(t, err)
	assert.True(t, gotReq.SkipRFIDCheck)
}

// ── FetchGownByRFID ──────────────────────────────────────────────────────────

func TestHTTPServerAdapter_FetchGownByRFID_NotFoundIsNil(t *testing.T) {
	a := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no gown found with this RFID", http.StatusNotFound)
	}))

	gown, err := a.FetchGownByRFID(context.Background(), "RF-MISSING")

	require.NoError(t, err)
	assert.Nil(t, gown)
}

func TestHTTPServerAdapter_FetchGownByRFID_Found(t *testing.T) {
	a := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/gowns/rfid/RF-001", r.URL.Path)
		_ = json.NewEncoder(w).Encode(models.Gown{RFID: "RF-001", EAN: "500123", InStock: true})
	}))

	gown, err := a.FetchGownByRFID(context.Background(), "RF-001")

	require.NoError(t, err)
	require.NotNil(t, gown)
	assert.Equal(t, "500123", gown.EAN)
}

// ── FetchAllEventBookings ────────────────────────────────────────────────────

func TestHTTPServerAdapter_FetchAllEventBookings_SortForwarded(t *testing.T) {
	a := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/events/42/bookings", r.URL.Path)
		assert.Equal(t, "student_name", r.URL.Query().Get("sort_by"))
		assert.Equal(t, "asc", r.URL.Query().Get("sort_direction"))
		_ = json.NewEncoder(w).Encode([]models.Booking{{ID: 1, EventID: 42}})
	}))

	bookings, err := a.FetchAllEventBookings(context.Background(), models.BookingListRequest{
		EventID: 42, SortBy: "student_name", SortDirection: "asc",
	})

	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, int64(1), bookings[0].ID)
}

// ── Ping / availability ──────────────────────────────────────────────────────

func TestHTTPServerAdapter_Ping_OK(t *testing.T) {
	a := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))

	assert.NoError(t, a.Ping(context.Background()))
}

func TestHTTPServerAdapter_Unreachable_MapsToBackendUnavailable(t *testing.T) {
	a := NewHTTPServerAdapter(HTTPClientConfig{
		BaseURL: "http://127.0.0.1:1", // nothing listens here
		Timeout: 200 * time.Millisecond,
	})

	_, err := a.CheckOutGown(context.Background(), models.CheckOutRequest{BookingID: 1})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBackendUnavailable)
}

// ── token handling ───────────────────────────────────────────────────────────

func TestHTTPServerAdapter_SetToken_AttachedToRequests(t *testing.T) {
	var gotAuth string
	a := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(models.Result{Success: true})
	}))

	a.SetToken("some-token")
	_, err := a.UndoCheckout(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, "Bearer some-token", gotAuth)
}

func TestHTTPServerAdapter_StaffID_ZeroWithoutToken(t *testing.T) {
	a := NewHTTPServerAdapter(HTTPClientConfig{BaseURL: "http://localhost:8080"})
	assert.Zero(t, a.StaffID())
}
