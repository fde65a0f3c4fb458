package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/keycapdesign/gradgo-app-sub000/internal/store"
	"github.com/keycapdesign/gradgo-app-sub000/models"
)

// ── connectivity double ──────────────────────────────────────────────────────

type signalStub struct {
	mu     sync.Mutex
	online bool
	subs   []chan bool
}

func newSignalStub(online bool) *signalStub { return &signalStub{online: online} }

func (s *signalStub) IsOnline() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.online
}

func (s *signalStub) SetOnline(online bool) {
	s.mu.Lock()
	changed := s.online != online
	s.online = online
	subs := append([]chan bool(nil), s.subs...)
	s.mu.Unlock()

	if !changed {
		return
	}
	for _, ch := range subs {
		select {
		case ch <- online:
		default:
		}
	}
}

func (s *signalStub) Subscribe() <-chan bool {
	ch := make(chan bool, 4)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

// ── server adapter spy ───────────────────────────────────────────────────────

// adapterSpy records every remote call in order and lets a test script
// per-call outcomes.
type adapterSpy struct {
	mu    sync.Mutex
	calls []string

	// block, when set, is invoked at the start of every mutation call so a
	// test can hold the call open
	block func()

	checkOutErr map[string]error // keyed by RFID
	checkInErr  map[string]error // keyed by RFID
	undoErr     error
	failAll     error

	checkOutResult models.Result

	gownByRFID map[string]*models.Gown
	event      models.Event
	stats      models.BookingStats
	gownStats  models.DetailedGownStats
	bookings   []models.Booking
	ceremonies []models.Ceremony
	gowns      []models.Gown

	fetchBookingsErr error
	fetchStatsErr    error
	fetchEventErr    error
	ceremoniesErr    error
}

func newAdapterSpy() *adapterSpy {
	return &adapterSpy{
		checkOutErr: make(map[string]error),
		checkInErr:  make(map[string]error),
		gownByRFID:  make(map[string]*models.Gown),
	}
}

func (a *adapterSpy) record(call string) {
	a.mu.Lock()
	a.calls = append(a.calls, call)
	a.mu.Unlock()
}

func (a *adapterSpy) recorded() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.calls...)
}

func (a *adapterSpy) SetToken(string) {}
func (a *adapterSpy) Token() string   { return "" }
func (a *adapterSpy) StaffID() int64  { return 0 }

func (a *adapterSpy) Ping(context.Context) error { return a.failAll }

func (a *adapterSpy) CheckOutGown(_ context.Context, req models.CheckOutRequest) (models.Result, error) {
	a.record("checkout:" + req.RFID)
	if a.block != nil {
		a.block()
	}
	if a.failAll != nil {
		return models.Result{}, a.failAll
	}
	if err := a.checkOutErr[req.RFID]; err != nil {
		return models.Result{}, err
	}
	return a.checkOutResult, nil
}

func (a *adapterSpy) CheckInGown(_ context.Context, req models.CheckInRequest) (models.Result, error) {
	a.record("checkin:" + req.RFID)
	if a.failAll != nil {
		return models.Result{}, a.failAll
	}
	if err := a.checkInErr[req.RFID]; err != nil {
		return models.Result{}, err
	}
	return models.Result{Success: true}, nil
}

func (a *adapterSpy) UndoCheckout(_ context.Context, bookingID int64) (models.Result, error) {
	a.record("undo-checkout")
	if a.failAll != nil {
		return models.Result{}, a.failAll
	}
	if a.undoErr != nil {
		return models.Result{}, a.undoErr
	}
	return models.Result{Success: true}, nil
}

func (a *adapterSpy) UndoCheckin(_ context.Context, bookingID int64) (models.Result, error) {
	a.record("undo-checkin")
	if a.failAll != nil {
		return models.Result{}, a.failAll
	}
	if a.undoErr != nil {
		return models.Result{}, a.undoErr
	}
	return models.Result{Success: true}, nil
}

func (a *adapterSpy) FetchGownByRFID(_ context.Context, rfid string) (*models.Gown, error) {
	return a.gownByRFID[rfid], nil
}

func (a *adapterSpy) FetchEventByID(context.Context, int64) (models.Event, error) {
	if a.fetchEventErr != nil {
		return models.Event{}, a.fetchEventErr
	}
	return a.event, nil
}

func (a *adapterSpy) FetchBookingStats(context.Context, int64) (models.BookingStats, error) {
	if a.fetchStatsErr != nil {
		return models.BookingStats{}, a.fetchStatsErr
	}
	return a.stats, nil
}

func (a *adapterSpy) FetchDetailedGownStats(context.Context, int64) (models.DetailedGownStats, error) {
	return a.gownStats, nil
}

func (a *adapterSpy) FetchAllEventBookings(context.Context, models.BookingListRequest) ([]models.Booking, error) {
	if a.fetchBookingsErr != nil {
		return nil, a.fetchBookingsErr
	}
	return a.bookings, nil
}

func (a *adapterSpy) FetchEventCeremonies(context.Context, int64) ([]models.Ceremony, error) {
	if a.ceremoniesErr != nil {
		return nil, a.ceremoniesErr
	}
	return a.ceremonies, nil
}

func (a *adapterSpy) FetchGownsByEvent(context.Context, int64) ([]models.Gown, error) {
	return a.gowns, nil
}

// ── in-memory storage layer ──────────────────────────────────────────────────

type memBookings struct {
	mu   sync.Mutex
	rows map[int64]models.Booking
}

func (m *memBookings) Save(_ context.Context, bookings ...models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range bookings {
		m.rows[b.ID] = b
	}
	return nil
}

func (m *memBookings) Get(_ context.Context, id int64) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.rows[id]; ok {
		return &b, nil
	}
	return nil, nil
}

func (m *memBookings) GetAllByEvent(_ context.Context, eventID int64, _, _ string) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, b := range m.rows {
		if b.EventID == eventID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memBookings) GetByRFID(_ context.Context, rfid string) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.rows {
		if b.Gown != nil && b.Gown.RFID == rfid {
			found := b
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memBookings) CountByEvent(_ context.Context, eventID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, b := range m.rows {
		if b.EventID == eventID {
			n++
		}
	}
	return n, nil
}

func (m *memBookings) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, id)
	return nil
}

func (m *memBookings) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = make(map[int64]models.Booking)
	return nil
}

type memBookingStats struct {
	mu   sync.Mutex
	rows map[int64]models.BookingStats
}

func (m *memBookingStats) Save(_ context.Context, stats models.BookingStats) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[stats.EventID] = stats
	return nil
}

func (m *memBookingStats) Get(_ context.Context, eventID int64) (*models.BookingStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.rows[eventID]; ok {
		return &s, nil
	}
	return nil, nil
}

func (m *memBookingStats) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = make(map[int64]models.BookingStats)
	return nil
}

type memGownStats struct {
	mu   sync.Mutex
	rows map[int64]models.DetailedGownStats
}

func (m *memGownStats) Save(_ context.Context, stats models.DetailedGownStats) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[stats.EventID] = stats
	return nil
}

func (m *memGownStats) Get(_ context.Context, eventID int64) (*models.DetailedGownStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.rows[eventID]; ok {
		return &s, nil
	}
	return nil, nil
}

func (m *memGownStats) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = make(map[int64]models.DetailedGownStats)
	return nil
}

type memCeremonies struct {
	mu   sync.Mutex
	rows map[int64]models.Ceremony
}

func (m *memCeremonies) Save(_ context.Context, ceremonies ...models.Ceremony) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range ceremonies {
		m.rows[c.ID] = c
	}
	return nil
}

func (m *memCeremonies) GetAllByEvent(_ context.Context, eventID int64) ([]models.Ceremony, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Ceremony
	for _, c := range m.rows {
		if c.EventID == eventID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memCeremonies) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = make(map[int64]models.Ceremony)
	return nil
}

type memEvents struct {
	mu   sync.Mutex
	rows map[int64]models.Event
}

func (m *memEvents) Save(_ context.Context, event models.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[event.ID] = event
	return nil
}

func (m *memEvents) Get(_ context.Context, id int64) (*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.rows[id]; ok {
		return &e, nil
	}
	return nil, nil
}

func (m *memEvents) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = make(map[int64]models.Event)
	return nil
}

type memQueue struct {
	mu     sync.Mutex
	nextID int64
	rows   []models.QueueItem
}

func (m *memQueue) Insert(_ context.Context, item models.QueueItem) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	item.ID = m.nextID
	m.rows = append(m.rows, item)
	return item.ID, nil
}

func (m *memQueue) Get(_ context.Context, id int64) (*models.QueueItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.rows {
		if item.ID == id {
			found := item
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memQueue) GetByStatus(_ context.Context, statuses ...models.QueueStatus) ([]models.QueueItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.QueueItem
	for _, item := range m.rows {
		for _, st := range statuses {
			if item.Status == st {
				out = append(out, item)
				break
			}
		}
	}
	return out, nil
}

func (m *memQueue) GetAll(context.Context) ([]models.QueueItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.QueueItem(nil), m.rows...), nil
}

func (m *memQueue) UpdateStatus(_ context.Context, id int64, status models.QueueStatus, errMsg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows[i].Status = status
			m.rows[i].Error = errMsg
			return nil
		}
	}
	return store.ErrQueueItemNotFound
}

func (m *memQueue) IncrementRetry(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows[i].RetryCount++
		}
	}
	return nil
}

func (m *memQueue) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *memQueue) DeleteDoneWithoutError(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []models.QueueItem
	for _, item := range m.rows {
		if item.Status == models.QueueStatusDone && item.Error == "" {
			continue
		}
		kept = append(kept, item)
	}
	m.rows = kept
	return nil
}

func (m *memQueue) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = nil
	return nil
}

func newMemStorages() *store.Storages {
	return &store.Storages{
		Bookings:     &memBookings{rows: make(map[int64]models.Booking)},
		BookingStats: &memBookingStats{rows: make(map[int64]models.BookingStats)},
		GownStats:    &memGownStats{rows: make(map[int64]models.DetailedGownStats)},
		Ceremonies:   &memCeremonies{rows: make(map[int64]models.Ceremony)},
		Events:       &memEvents{rows: make(map[int64]models.Event)},
		Queue:        &memQueue{},
	}
}

// errBoom is a reusable transport-shaped failure for scripting spies.
var errBoom = errors.New("boom")
