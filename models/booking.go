package models

import "time"

// BookingStatus is the lifecycle state of a gown booking as mirrored from the
// remote system of record.
type BookingStatus string

const (
	BookingStatusAwaitingPickup BookingStatus = "awaiting_pickup"
	BookingStatusCollected      BookingStatus = "collected"
	BookingStatusReturned       BookingStatus = "returned"
	BookingStatusLate           BookingStatus = "late"
)

// Booking is a locally cached mirror of a remote gown booking.
//
// The Pending* flags are UI-only transient state owned by the mutation
// service and the sync service. They mark a booking as having a queued or
// in-flight local mutation and are never sent to, or received from, the
// remote side.
type Booking struct {
	ID         int64 `json:"id"`
	EventID    int64 `json:"event_id"`
	CeremonyID int64 `json:"ceremony_id,omitempty"`

	StudentName string        `json:"student_name"`
	OrderType   string        `json:"order_type"`
	Status      BookingStatus `json:"status"`

	CheckedOutAt *time.Time `json:"checked_out_at,omitempty"`
	CheckedInAt  *time.Time `json:"checked_in_at,omitempty"`

	Gown *Gown `json:"gown,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	PendingCheckout     bool `json:"pending_checkout,omitempty"`
	PendingCheckin      bool `json:"pending_checkin,omitempty"`
	PendingUndoCheckout bool `json:"pending_undo_checkout,omitempty"`
	PendingUndoCheckin  bool `json:"pending_undo_checkin,omitempty"`
	PendingGownChange   bool `json:"pending_gown_change,omitempty"`
}

// HasPendingOperation reports whether any transient pending flag is set.
func (b Booking) HasPendingOperation() bool {
	return b.PendingCheckout || b.PendingCheckin ||
		b.PendingUndoCheckout || b.PendingUndoCheckin || b.PendingGownChange
}

// ClearPendingFlags returns a copy of the booking with every transient
// pending flag reset.
func (b Booking) ClearPendingFlags() Booking {
	b.PendingCheckout = false
	b.PendingCheckin = false
	b.PendingUndoCheckout = false
	b.PendingUndoCheckin = false
	b.PendingGownChange = false
	return b
}
