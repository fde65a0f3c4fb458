package models

import "time"

// QueueStatus is the lifecycle state of a queued operation.
//
// An item is born pending, is moved to in_flight durably right before its RPC
// is invoked (the re-entrancy guard against concurrent drains), and ends done.
// A transient failure moves it back to pending with an incremented retry
// count; a success or permanent failure moves it to done. Items found
// in_flight at the start of a drain are crash leftovers and are returned to
// pending.
type QueueStatus string

const (
	QueueStatusPending  QueueStatus = "pending"
	QueueStatusInFlight QueueStatus = "in_flight"
	QueueStatusDone     QueueStatus = "done"
)

// QueueItem is one durable queued operation.
type QueueItem struct {
	ID         int64            `json:"id"`
	Type       OperationType    `json:"type"`
	Data       OperationPayload `json:"data"`
	Timestamp  time.Time        `json:"timestamp"`
	Status     QueueStatus      `json:"status"`
	Error      string           `json:"error,omitempty"`
	RetryCount int              `json:"retry_count"`
}

// Processed reports whether the item has reached its terminal state.
func (i QueueItem) Processed() bool { return i.Status == QueueStatusDone }

// Failed reports whether the item terminated with an error. Failed items are
// retained for operator visibility until explicitly cleared per booking.
func (i QueueItem) Failed() bool { return i.Status == QueueStatusDone && i.Error != "" }
