// Package queue implements the durable mutation queue on top of the
// local SQLite store. Every gown mutation staged while the backend is
// unreachable becomes a queue item; the sync service later drains items
// in timestamp order.
package queue

import (
	"context"
	"errors"
	"time"

	"github.com/keycapdesign/gradgo-app-sub000/internal/logger"
	"github.com/keycapdesign/gradgo-app-sub000/internal/store"
	"github.com/keycapdesign/gradgo-app-sub000/models"
)

// DuplicateOperationID is returned by Enqueue when an equivalent
// operation is already queued and no new item was created.
const DuplicateOperationID int64 = -1

// OperationQueue wraps the queue repository with the staging rules:
// deduplication on enqueue, status transitions during a drain and
// recovery of items orphaned by a crash mid-sync.
type OperationQueue struct {
	repo store.QueueRepository
	log  *logger.Logger
}

func NewOperationQueue(repo store.QueueRepository, log *logger.Logger) *OperationQueue {
	return &OperationQueue{
		repo: repo,
		log:  &logger.Logger{Logger: log.With().Str("component", "operation-queue").Logger()},
	}
}

// Enqueue stores a new pending item unless an unfinished item of the
// same type already targets the same entity. In that case no row is
// written and DuplicateOperationID is returned.
func (q *OperationQueue) Enqueue(ctx context.Context, opType models.OperationType, payload models.OperationPayload) (int64, error) {
	key := opType.CorrelationKey(payload)

	unfinished, err := q.repo.GetByStatus(ctx, models.QueueStatusPending, models.QueueStatusInFlight)
	if err != nil {
		return 0, err
	}
	for _, item := range unfinished {
		if item.Type == opType && item.Type.CorrelationKey(item.Data) == key {
			q.log.Debug().
				Str("func", "OperationQueue.Enqueue").
				Str("type", string(opType)).
				Str("key", key).
				Int64("existing_id", item.ID).
				Msg("duplicate operation, skipping enqueue")
			return DuplicateOperationID, nil
		}
	}

	item := models.QueueItem{
		Type:      opType,
		Data:      payload,
		Timestamp: time.Now().UTC(),
		Status:    models.QueueStatusPending,
	}
	id, err := q.repo.Insert(ctx, item)
	if err != nil {
		return 0, err
	}

	q.log.Info().
		Str("func", "OperationQueue.Enqueue").
		Str("type", string(opType)).
		Int64("id", id).
		Int64("booking_id", payload.BookingID).
		Msg("operation queued")
	return id, nil
}

// ListPending returns all pending items ordered by timestamp ascending.
func (q *OperationQueue) ListPending(ctx context.Context) ([]models.QueueItem, error) {
	return q.repo.GetByStatus(ctx, models.QueueStatusPending)
}

// HasPending reports whether at least one item still awaits replay.
func (q *OperationQueue) HasPending(ctx context.Context) (bool, error) {
	items, err := q.repo.GetByStatus(ctx, models.QueueStatusPending, models.QueueStatusInFlight)
	if err != nil {
		return false, err
	}
	return len(items) > 0, nil
}

// MarkInFlight transitions an item to in_flight before its remote call
// is issued, so a concurrent or restarted drain will not replay it.
func (q *OperationQueue) MarkInFlight(ctx context.Context, id int64) error {
	return q.repo.UpdateStatus(ctx, id, models.QueueStatusInFlight, "")
}

// MarkDone finalizes an item. An empty errMsg records success, a
// non-empty one records a permanent failure kept for the operator to
// review. Marking an already done item again is a no-op.
func (q *OperationQueue) MarkDone(ctx context.Context, id int64, errMsg string) error {
	err := q.repo.UpdateStatus(ctx, id, models.QueueStatusDone, errMsg)
	if err != nil && !errors.Is(err, store.ErrQueueItemNotFound) {
		return err
	}
	return nil
}

// ReturnToPending puts an in_flight item back into the pending pool
// after a transient failure and bumps its retry counter.
func (q *OperationQueue) ReturnToPending(ctx context.Context, id int64) error {
	if err := q.repo.UpdateStatus(ctx, id, models.QueueStatusPending, ""); err != nil {
		return err
	}
	return q.repo.IncrementRetry(ctx, id)
}

// RecoverOrphans re-activates items stuck in_flight from an interrupted
// drain. Each recovered item costs one retry, since its remote call may
// or may not have landed.
func (q *OperationQueue) RecoverOrphans(ctx context.Context) (int, error) {
	orphans, err := q.repo.GetByStatus(ctx, models.QueueStatusInFlight)
	if err != nil {
		return 0, err
	}
	for _, item := range orphans {
		if err := q.ReturnToPending(ctx, item.ID); err != nil {
			return 0, err
		}
		q.log.Warn().
			Str("func", "OperationQueue.RecoverOrphans").
			Int64("id", item.ID).
			Str("type", string(item.Type)).
			Msg("recovered orphaned in-flight operation")
	}
	return len(orphans), nil
}

// PendingForBooking returns the unfinished and failed items touching a
// booking, newest first, for display next to the booking row.
func (q *OperationQueue) PendingForBooking(ctx context.Context, bookingID int64) ([]models.QueueItem, error) {
	items, err := q.repo.GetByStatus(ctx, models.QueueStatusPending, models.QueueStatusInFlight, models.QueueStatusDone)
	if err != nil {
		return nil, err
	}

	var out []models.QueueItem
	for _, item := range items {
		if item.Data.BookingID != bookingID {
			continue
		}
		if item.Status == models.QueueStatusDone && item.Error == "" {
			continue
		}
		out = append(out, item)
	}
	// repository order is oldest first; the booking view wants newest first
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// ErroredForBooking returns only the permanently failed items for a
// booking, newest first.
func (q *OperationQueue) ErroredForBooking(ctx context.Context, bookingID int64) ([]models.QueueItem, error) {
	items, err := q.PendingForBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	var out []models.QueueItem
	for _, item := range items {
		if item.Status == models.QueueStatusDone && item.Error != "" {
			out = append(out, item)
		}
	}
	return out, nil
}

// ClearErroredForBooking dismisses the recorded failures for a booking
// once the operator has acknowledged them.
func (q *OperationQueue) ClearErroredForBooking(ctx context.Context, bookingID int64) error {
	errored, err := q.ErroredForBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	for _, item := range errored {
		if err := q.repo.Delete(ctx, item.ID); err != nil {
			return err
		}
	}
	return nil
}

// ClearDone removes successfully replayed items, keeping failed ones
// until they are explicitly dismissed.
func (q *OperationQueue) ClearDone(ctx context.Context) error {
	return q.repo.DeleteDoneWithoutError(ctx)
}
