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

func newTestQueueRepo(t *testing.T) (*queueRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &queueRepository{
		DB:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func TestQueueInsert_Success(t *testing.T) {
	repo, mock, db := newTestQueueRepo(t)
	defer db.Close()

	ts := time.Date(2026, 5, 14, 10, 30, 0, 0, time.UTC)
	item := models.QueueItem{
		Type:      models.OpCheckOutGown,
		Data:      models.OperationPayload{BookingID: 11, EventID: 3, RFID: "RF-1"},
		Timestamp: ts,
		Status:    models.QueueStatusPending,
	}

	mock.ExpectExec("INSERT INTO offline_queue").
		WithArgs(
			string(models.OpCheckOutGown),
			`{"booking_id":11,"event_id":3,"rfid":"RF-1"}`,
			ts,
			string(models.QueueStatusPending),
			"",
			0,
		).
		WillReturnResult(sqlmock.NewResult(7, 1))

	id, err := repo.Insert(context.Background(), item)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 7 {
		t.Errorf("expected assigned id 7, got %d", id)
	}
}

func TestQueueInsert_DBError(t *testing.T) {
	repo, mock, db := newTestQueueRepo(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO offline_queue").
		WillReturnError(errors.New("disk I/O error"))

	_, err := repo.Insert(context.Background(), models.QueueItem{Type: models.OpCheckInGown})
	if err == nil || !strings.Contains(err.Error(), "failed to insert queue item") {
		t.Fatalf("expected wrapped insert error, got %v", err)
	}
}

func TestQueueGet_Success(t *testing.T) {
	repo, mock, db := newTestQueueRepo(t)
	defer db.Close()

	ts := time.Date(2026, 5, 14, 10, 30, 0, 0, time.UTC)
	rows := sqlmock.
		NewRows([]string{"id", "type", "data", "ts", "status", "error", "retry_count"}).
		AddRow(4, "CHECK_OUT_GOWN", `{"booking_id":11,"rfid":"RF-1"}`, ts, "pending", "", 2)

	mock.ExpectQuery("SELECT id, type, data").
		WithArgs(int64(4)).
		WillReturnRows(rows)

	item, err := repo.Get(context.Background(), 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item == nil {
		t.Fatal("expected item, got nil")
	}
	if item.Type != models.OpCheckOutGown {
		t.Errorf("expected checkout type, got %s", item.Type)
	}
	if item.Data.BookingID != 11 || item.Data.RFID != "RF-1" {
		t.Errorf("payload not decoded: %+v", item.Data)
	}
	if item.RetryCount != 2 {
		t.Errorf("expected retry count 2, got %d", item.RetryCount)
	}
}

func TestQueueGet_NotFound(t *testing.T) {
	repo, mock, db := newTestQueueRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT id, type, data").
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	item, err := repo.Get(context.Background(), 404)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item != nil {
		t.Fatalf("expected nil for missing item, got %+v", item)
	}
}

func TestQueueGet_CorruptPayload(t *testing.T) {
	repo, mock, db := newTestQueueRepo(t)
	defer db.Close()

	rows := sqlmock.
		NewRows([]string{"id", "type", "data", "ts", "status", "error", "retry_count"}).
		AddRow(4, "CHECK_OUT_GOWN", `not-json`, time.Now(), "pending", "", 0)

	mock.ExpectQuery("SELECT id, type, data").
		WillReturnRows(rows)

	_, err := repo.Get(context.Background(), 4)
	if err == nil || !strings.Contains(err.Error(), "failed to decode queue payload") {
		t.Fatalf("expected payload decode error, got %v", err)
	}
}

func TestQueueGetByStatus_DecodesInOrder(t *testing.T) {
	repo, mock, db := newTestQueueRepo(t)
	defer db.Close()

	base := time.Date(2026, 5, 14, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.
		NewRows([]string{"id", "type", "data", "ts", "status", "error", "retry_count"}).
		AddRow(1, "CHECK_OUT_GOWN", `{"booking_id":1,"rfid":"RF-1"}`, base, "pending", "", 0).
		AddRow(2, "CHECK_IN_GOWN", `{"booking_id":1,"rfid":"RF-1"}`, base.Add(time.Minute), "in_flight", "", 1)

	mock.ExpectQuery("SELECT id, type, data").
		WithArgs("pending", "in_flight").
		WillReturnRows(rows)

	items, err := repo.GetByStatus(context.Background(), models.QueueStatusPending, models.QueueStatusInFlight)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != 1 || items[1].ID != 2 {
		t.Errorf("row order not preserved: %d, %d", items[0].ID, items[1].ID)
	}
	if items[1].Status != models.QueueStatusInFlight {
		t.Errorf("expected in_flight, got %s", items[1].Status)
	}
}

func TestQueueGetByStatus_NoStatusesIsNoop(t *testing.T) {
	repo, _, db := newTestQueueRepo(t)
	defer db.Close()

	items, err := repo.GetByStatus(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items != nil {
		t.Fatalf("expected nil, got %+v", items)
	}
}

func TestQueueUpdateStatus_Success(t *testing.T) {
	repo, mock, db := newTestQueueRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE offline_queue SET status").
		WithArgs("done", "", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateStatus(context.Background(), 5, models.QueueStatusDone, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQueueUpdateStatus_MissingItem(t *testing.T) {
	repo, mock, db := newTestQueueRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE offline_queue SET status").
		WithArgs("done", "", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), 5, models.QueueStatusDone, "")
	if !errors.Is(err, ErrQueueItemNotFound) {
		t.Fatalf("expected ErrQueueItemNotFound, got %v", err)
	}
}

func TestQueueIncrementRetry_MissingItemIsNoop(t *testing.T) {
	repo, mock, db := newTestQueueRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE offline_queue SET retry_count").
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.IncrementRetry(context.Background(), 99); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQueueDeleteDoneWithoutError(t *testing.T) {
	repo, mock, db := newTestQueueRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM offline_queue WHERE status").
		WithArgs("done").
		WillReturnResult(sqlmock.NewResult(0, 3))

	if err := repo.DeleteDoneWithoutError(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
