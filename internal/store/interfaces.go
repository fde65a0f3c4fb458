package store

import (
	"context"

	"github.com/keycapdesign/gradgo-app-sub000/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// BookingRepository is the local bookings collection, keyed by booking id.
type BookingRepository interface {
	// Save upserts the given bookings inside a single transaction. On failure
	// partway through, the transaction aborts and no booking is written.
	Save(ctx context.Context, bookings ...models.Booking) error

	// Get returns the booking with the given id, or nil (without error) when
	// the key is absent.
	Get(ctx context.Context, id int64) (*models.Booking, error)

	// GetAllByEvent returns the event's bookings ordered by the given column
	// and direction. Empty sortBy defaults to created_at descending.
	GetAllByEvent(ctx context.Context, eventID int64, sortBy, sortDirection string) ([]models.Booking, error)

	// GetByRFID returns the booking whose embedded gown carries the given
	// RFID tag, or nil when no cached booking holds that gown.
	GetByRFID(ctx context.Context, rfid string) (*models.Booking, error)

	// CountByEvent returns the number of cached bookings for the event.
	CountByEvent(ctx context.Context, eventID int64) (int64, error)

	Delete(ctx context.Context, id int64) error
	Clear(ctx context.Context) error
}

// BookingStatsRepository is the per-event booking statistics collection,
// keyed by event id.
type BookingStatsRepository interface {
	Save(ctx context.Context, stats models.BookingStats) error
	Get(ctx context.Context, eventID int64) (*models.BookingStats, error)
	Clear(ctx context.Context) error
}

// GownStatsRepository is the per-event detailed gown statistics collection,
// keyed by event id. The record also carries the event's gown inventory so
// RFID lookups can be answered while disconnected.
type GownStatsRepository interface {
	Save(ctx context.Context, stats models.DetailedGownStats) error
	Get(ctx context.Context, eventID int64) (*models.DetailedGownStats, error)
	Clear(ctx context.Context) error
}

// CeremonyRepository is the ceremonies collection, keyed by ceremony id.
type CeremonyRepository interface {
	Save(ctx context.Context, ceremonies ...models.Ceremony) error
	GetAllByEvent(ctx context.Context, eventID int64) ([]models.Ceremony, error)
	Clear(ctx context.Context) error
}

// EventRepository is the cached event snapshot collection, keyed by event id.
type EventRepository interface {
	Save(ctx context.Context, event models.Event) error
	Get(ctx context.Context, id int64) (*models.Event, error)
	Clear(ctx context.Context) error
}

// QueueRepository is the operation queue collection: auto-increment primary
// key, secondary indices on timestamp and status. It exposes raw row
// primitives; queue semantics (dedup, lifecycle transitions) live in the
// queue package.
type QueueRepository interface {
	// Insert stores a new item and returns its assigned auto-increment id.
	Insert(ctx context.Context, item models.QueueItem) (int64, error)

	// Get returns the item with the given id, or nil when absent.
	Get(ctx context.Context, id int64) (*models.QueueItem, error)

	// GetByStatus returns items in any of the given statuses, ordered by
	// timestamp ascending (the status index backs the scan).
	GetByStatus(ctx context.Context, statuses ...models.QueueStatus) ([]models.QueueItem, error)

	// GetAll returns every item ordered by timestamp ascending.
	GetAll(ctx context.Context) ([]models.QueueItem, error)

	// UpdateStatus sets the item's status and error message. Returns
	// ErrQueueItemNotFound when no row matched.
	UpdateStatus(ctx context.Context, id int64, status models.QueueStatus, errMsg string) error

	// IncrementRetry bumps the item's retry counter in place. A missing id is
	// a no-op.
	IncrementRetry(ctx context.Context, id int64) error

	Delete(ctx context.Context, id int64) error

	// DeleteDoneWithoutError garbage-collects every terminal item that holds
	// no error message. Errored items stay visible for the operator.
	DeleteDoneWithoutError(ctx context.Context) error

	Clear(ctx context.Context) error
}
