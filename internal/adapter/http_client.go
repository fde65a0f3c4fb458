package adapter

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sony/gobreaker/v2"

	"github.com/keycapdesign/gradgo-app-sub000/models"
)

type HTTPClientConfig struct {
	BaseURL string
	HashKey string
	Timeout time.Duration
	Token   string
}

type httpServerAdapter struct {
	client  *resty.Client
	breaker *gobreaker.CircuitBreaker[*resty.Response]
	hashKey string

	mu      sync.RWMutex
	token   string
	staffID int64
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. Every remote call passes through a circuit breaker so
// that, when the venue uplink flaps, repeated attempts fail immediately with
// [ErrBackendUnavailable] instead of each waiting out the full timeout.
func NewHTTPServerAdapter(cfg HTTPClientConfig) ServerAdapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	breaker := gobreaker.NewCircuitBreaker[*resty.Response](gobreaker.Settings{
		Name:    "gradgo-backend",
		Timeout: 10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	h := &httpServerAdapter{client: cli, breaker: breaker, hashKey: cfg.HashKey}
	if cfg.Token != "" {
		h.SetToken(cfg.Token)
	}
	return h
}

func (h *httpServerAdapter) SetToken(token string) {
	token = strings.TrimSpace(token)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = token
	h.staffID = 0
	if token != "" {
		if id, err := parseStaffIDFromJWT(token); err == nil {
			h.staffID = id
		}
	}
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) StaffID() int64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.staffID
}

func (h *httpServerAdapter) Ping(ctx context.Context) error {
	// the probe bypasses the breaker: it is what tells us the link recovered
	resp, err := h.client.R().SetContext(ctx).Get("/api/health")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) CheckOutGown(ctx context.Context, req models.CheckOutRequest) (models.Result, error) {
	return h.postResult(ctx, "/api/gowns/checkout", req)
}

func (h *httpServerAdapter) CheckInGown(ctx context.Context, req models.CheckInRequest) (models.Result, error) {
	return h.postResult(ctx, "/api/gowns/checkin", req)
}

func (h *httpServerAdapter) UndoCheckout(ctx context.Context, bookingID int64) (models.Result, error) {
	return h.postResult(ctx, "/api/gowns/undo-checkout", map[string]int64{"booking_id": bookingID})
}

func (h *httpServerAdapter) UndoCheckin(ctx context.Context, bookingID int64) (models.Result, error) {
	return h.postResult(ctx, "/api/gowns/undo-checkin", map[string]int64{"booking_id": bookingID})
}

func (h *httpServerAdapter) FetchGownByRFID(ctx context.Context, rfid string) (*models.Gown, error) {
	resp, err := h.get(ctx, "/api/gowns/rfid/"+rfid)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var gown models.Gown
	if err = json.Unmarshal(resp.Body(), &gown); err != nil {
		return nil, fmt.Errorf("decode gown response: %w", err)
	}
	return &gown, nil
}

func (h *httpServerAdapter) FetchEventByID(ctx context.Context, eventID int64) (models.Event, error) {
	resp, err := h.get(ctx, fmt.Sprintf("/api/events/%d", eventID))
	if err != nil {
		return models.Event{}, err
	}

	var event models.Event
	if err = json.Unmarshal(resp.Body(), &event); err != nil {
		return models.Event{}, fmt.Errorf("decode event response: %w", err)
	}
	return event, nil
}

func (h *httpServerAdapter) FetchBookingStats(ctx context.Context, eventID int64) (models.BookingStats, error) {
	resp, err := h.get(ctx, fmt.Sprintf("/api/events/%d/stats", eventID))
	if err != nil {
		return models.BookingStats{}, err
	}

	var stats models.BookingStats
	if err = json.Unmarshal(resp.Body(), &stats); err != nil {
		return models.BookingStats{}, fmt.Errorf("decode booking stats response: %w", err)
	}
	return stats, nil
}

func (h *httpServerAdapter) FetchDetailedGownStats(ctx context.Context, eventID int64) (models.DetailedGownStats, error) {
	resp, err := h.get(ctx, fmt.Sprintf("/api/events/%d/gown-stats", eventID))
	if err != nil {
		return models.DetailedGownStats{}, err
	}

	var stats models.DetailedGownStats
	if err = json.Unmarshal(resp.Body(), &stats); err != nil {
		return models.DetailedGownStats{}, fmt.Errorf("decode gown stats response: %w", err)
	}
	return stats, nil
}

func (h *httpServerAdapter) FetchAllEventBookings(ctx context.Context, req models.BookingListRequest) ([]models.Booking, error) {
	resp, err := h.execute(func() (*resty.Response, error) {
		return h.authedRequest(ctx).
			SetQueryParam("sort_by", req.SortBy).
			SetQueryParam("sort_direction", req.SortDirection).
			Get(fmt.Sprintf("/api/events/%d/bookings", req.EventID))
	})
	if err != nil {
		return nil, err
	}

	var bookings []models.Booking
	if err = json.Unmarshal(resp.Body(), &bookings); err != nil {
		return nil, fmt.Errorf("decode bookings response: %w", err)
	}
	return bookings, nil
}

func (h *httpServerAdapter) FetchEventCeremonies(ctx context.Context, eventID int64) ([]models.Ceremony, error) {
	resp, err := h.get(ctx, fmt.Sprintf("/api/events/%d/ceremonies", eventID))
	if err != nil {
		return nil, err
	}

	var ceremonies []models.Ceremony
	if err = json.Unmarshal(resp.Body(), &ceremonies); err != nil {
		return nil, fmt.Errorf("decode ceremonies response: %w", err)
	}
	return ceremonies, nil
}

func (h *httpServerAdapter) FetchGownsByEvent(ctx context.Context, eventID int64) ([]models.Gown, error) {
	resp, err := h.get(ctx, fmt.Sprintf("/api/events/%d/gowns", eventID))
	if err != nil {
		return nil, err
	}

	var gowns []models.Gown
	if err = json.Unmarshal(resp.Body(), &gowns); err != nil {
		return nil, fmt.Errorf("decode gowns response: %w", err)
	}
	return gowns, nil
}

func (h *httpServerAdapter) postResult(ctx context.Context, path string, body any) (models.Result, error) {
	resp, err := h.execute(func() (*resty.Response, error) {
		req := h.authedRequest(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(body)
		if h.hashKey != "" {
			req.SetHeader("HashSHA256", computeTransportHash(body, h.hashKey))
		}
		return req.Post(path)
	})
	if err != nil {
		return models.Result{}, err
	}

	var result models.Result
	if err = json.Unmarshal(resp.Body(), &result); err != nil {
		return models.Result{}, fmt.Errorf("decode result response: %w", err)
	}
	return result, nil
}

func (h *httpServerAdapter) get(ctx context.Context, path string) (*resty.Response, error) {
	return h.execute(func() (*resty.Response, error) {
		return h.authedRequest(ctx).Get(path)
	})
}

// execute runs one remote call through the circuit breaker and maps its
// outcome: transport failures and an open breaker surface as
// ErrBackendUnavailable, HTTP error statuses as their sentinels.
func (h *httpServerAdapter) execute(call func() (*resty.Response, error)) (*resty.Response, error) {
	resp, err := h.breaker.Execute(call)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: circuit breaker open", ErrBackendUnavailable)
		}
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func computeTransportHash(v any, key string) string {
	payload, err := json.Marshal(v)
	if err != nil {
		return ""
	}

	mac := hmac.New(sha256.New, []byte(key))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func parseStaffIDFromJWT(tokenString string) (int64, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return 0, err
	}

	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, err
	}
	return id, nil
}
