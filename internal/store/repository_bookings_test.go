package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/keycapdesign/gradgo-app-sub000/internal/logger"
	"github.com/keycapdesign/gradgo-app-sub000/models"
)

func newTestBookingRepo(t *testing.T) (*bookingRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &bookingRepository{
		DB:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func bookingColumns() []string {
	return []string{
		"id", "event_id", "ceremony_id", "student_name", "order_type", "status",
		"checked_out_at", "checked_in_at", "gown_rfid", "gown_ean", "gown_in_stock",
		"created_at", "updated_at",
	}
}

func TestBookingSave_UpsertsInOneTransaction(t *testing.T) {
	repo, mock, db := newTestBookingRepo(t)
	defer db.Close()

	now := time.Now()
	out := now.Add(-time.Hour)
	bookings := []models.Booking{
		{
			ID:           1,
			EventID:      5,
			CeremonyID:   2,
			StudentName:  "Sam Reyes",
			OrderType:    "hire",
			Status:       models.BookingStatusCollected,
			CheckedOutAt: &out,
			Gown:         &models.Gown{RFID: "RF-1", EAN: "500123", InStock: false},
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:          2,
			EventID:     5,
			StudentName: "Alex Moy",
			OrderType:   "purchase",
			Status:      models.BookingStatusAwaitingPickup,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(
			int64(1), int64(5), int64(2), "Sam Reyes", "hire", "collected",
			&out, nil, "RF-1", "500123", false, now, now,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(
			int64(2), int64(5), nil, "Alex Moy", "purchase", "awaiting_pickup",
			nil, nil, nil, nil, nil, now, now,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.Save(context.Background(), bookings...); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestBookingSave_ExecErrorRollsBack(t *testing.T) {
	repo, mock, db := newTestBookingRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnError(errors.New("database is locked"))
	mock.ExpectRollback()

	err := repo.Save(context.Background(), models.Booking{ID: 1})
	if err == nil || !strings.Contains(err.Error(), "failed to save booking") {
		t.Fatalf("expected wrapped save error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestBookingSave_NoBookingsIsNoop(t *testing.T) {
	repo, _, db := newTestBookingRepo(t)
	defer db.Close()

	// no transaction expected
	if err := repo.Save(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBookingGet_ReassemblesGown(t *testing.T) {
	repo, mock, db := newTestBookingRepo(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(bookingColumns()).
		AddRow(1, 5, 2, "Sam Reyes", "hire", "collected", now, nil, "RF-1", "500123", false, now, now)

	mock.ExpectQuery("SELECT").
		WithArgs(int64(1)).
		WillReturnRows(rows)

	b, err := repo.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b == nil {
		t.Fatal("expected booking, got nil")
	}
	if b.Gown == nil || b.Gown.RFID != "RF-1" || b.Gown.EAN != "500123" {
		t.Errorf("gown not reassembled: %+v", b.Gown)
	}
	if b.CheckedOutAt == nil {
		t.Error("expected checked_out_at to be set")
	}
	if b.CheckedInAt != nil {
		t.Error("expected checked_in_at to stay nil")
	}
	if b.CeremonyID != 2 {
		t.Errorf("expected ceremony id 2, got %d", b.CeremonyID)
	}
}

func TestBookingGet_NotFound(t *testing.T) {
	repo, mock, db := newTestBookingRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT").
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	b, err := repo.Get(context.Background(), 404)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b != nil {
		t.Fatalf("expected nil for missing booking, got %+v", b)
	}
}

func TestBookingGetByRFID_NoGownColumnsMeansNoGown(t *testing.T) {
	repo, mock, db := newTestBookingRepo(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(bookingColumns()).
		AddRow(3, 5, nil, "Alex Moy", "hire", "awaiting_pickup", nil, nil, nil, nil, nil, now, now)

	mock.ExpectQuery("SELECT").
		WithArgs("RF-9").
		WillReturnRows(rows)

	b, err := repo.GetByRFID(context.Background(), "RF-9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b == nil {
		t.Fatal("expected booking, got nil")
	}
	if b.Gown != nil {
		t.Errorf("expected nil gown, got %+v", b.Gown)
	}
}

func TestBookingGetAllByEvent_RejectsUnknownSortColumn(t *testing.T) {
	repo, _, db := newTestBookingRepo(t)
	defer db.Close()

	_, err := repo.GetAllByEvent(context.Background(), 5, "password", "asc")
	if !errors.Is(err, ErrUnsupportedSortField) {
		t.Fatalf("expected ErrUnsupportedSortField, got %v", err)
	}
}

func TestBookingGetAllByEvent_Success(t *testing.T) {
	repo, mock, db := newTestBookingRepo(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(bookingColumns()).
		AddRow(1, 5, nil, "Sam Reyes", "hire", "collected", now, nil, "RF-1", "500123", false, now, now).
		AddRow(2, 5, nil, "Alex Moy", "hire", "awaiting_pickup", nil, nil, nil, nil, nil, now, now)

	mock.ExpectQuery("SELECT id, event_id").
		WithArgs(int64(5)).
		WillReturnRows(rows)

	bookings, err := repo.GetAllByEvent(context.Background(), 5, "student_name", "asc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bookings) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(bookings))
	}
	if bookings[0].Status != models.BookingStatusCollected {
		t.Errorf("expected collected, got %s", bookings[0].Status)
	}
}

func TestBookingCountByEvent(t *testing.T) {
	repo, mock, db := newTestBookingRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	count, err := repo.CountByEvent(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 42 {
		t.Errorf("expected 42, got %d", count)
	}
}
