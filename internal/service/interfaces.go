package service

import (
	"context"

	"github.com/keycapdesign/gradgo-app-sub000/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// ConnectivitySignal is the view of backend reachability the services
// consume. Satisfied by netmon.Monitor.
type ConnectivitySignal interface {
	// IsOnline returns the current reachability verdict.
	IsOnline() bool

	// SetOnline force-sets the verdict, used when a real call settles the
	// question between probes.
	SetOnline(online bool)

	// Subscribe returns a channel receiving the new state on transitions.
	Subscribe() <-chan bool
}

// GownMutator accepts gown lifecycle operations regardless of
// connectivity. Every method returns either the backend's outcome or,
// while offline, a success-shaped placeholder with its message set to
// app.MsgQueuedForProcessing.
type GownMutator interface {
	CheckOutGown(ctx context.Context, req models.CheckOutRequest) (models.Result, error)
	CheckInGown(ctx context.Context, req models.CheckInRequest) (models.Result, error)
	UndoCheckout(ctx context.Context, bookingID, eventID int64) (models.Result, error)
	UndoCheckin(ctx context.Context, bookingID, eventID int64) (models.Result, error)
	ChangeGown(ctx context.Context, req ChangeGownRequest) (models.Result, error)

	// PendingOperations returns the queued and failed operations for a
	// booking, newest first.
	PendingOperations(ctx context.Context, bookingID int64) ([]models.QueueItem, error)

	// ClearErrored dismisses the recorded failures for a booking.
	ClearErrored(ctx context.Context, bookingID int64) error
}

// EventDataReader answers the reads the UI needs to run a collection
// desk, local cache first.
type EventDataReader interface {
	GetEvent(ctx context.Context, eventID int64) (*models.Event, error)
	GetEventBookings(ctx context.Context, req models.BookingListRequest) ([]models.Booking, error)
	GetBookingStats(ctx context.Context, eventID int64) (*models.BookingStats, error)
	GetDetailedGownStats(ctx context.Context, eventID int64) (*models.DetailedGownStats, error)
	GetEventCeremonies(ctx context.Context, eventID int64) ([]models.Ceremony, error)

	// GetBooking returns one locally cached booking, or nil when the
	// booking has not been prefetched.
	GetBooking(ctx context.Context, bookingID int64) (*models.Booking, error)

	// FindBookingByRFID resolves a scanned tag to the booking currently
	// holding that gown, or nil when no cached booking does.
	FindBookingByRFID(ctx context.Context, rfid string) (*models.Booking, error)

	// IsEventDataCached reports whether a usable offline working set for
	// the event exists locally.
	IsEventDataCached(ctx context.Context, eventID int64) bool
}

// Prefetcher pulls an event's working set from the backend into the
// local store.
type Prefetcher interface {
	PrefetchEventData(ctx context.Context, eventID int64) error
}

// QueueDrainer replays the durable queue against the backend.
type QueueDrainer interface {
	// Drain replays all pending operations in timestamp order. A second
	// call while a drain is running returns an empty summary immediately.
	Drain(ctx context.Context) (models.SyncSummary, error)
}

// OperationSettler is notified exactly once when a queued operation
// reaches its terminal state during a drain. A nil opErr means the
// backend accepted the operation; a non-nil opErr means it was
// permanently rejected and local optimistic state must be rolled back.
type OperationSettler interface {
	OnOperationSettled(ctx context.Context, item models.QueueItem, opErr error)
}
