package models

import "fmt"

// OperationType identifies one of the queueable gown lifecycle operations.
type OperationType string

const (
	OpCheckOutGown OperationType = "CHECK_OUT_GOWN"
	OpCheckInGown  OperationType = "CHECK_IN_GOWN"
	OpUndoCheckout OperationType = "UNDO_CHECK_OUT"
	OpUndoCheckin  OperationType = "UNDO_CHECK_IN"
	OpChangeGown   OperationType = "CHANGE_GOWN"
)

// OperationPayload carries the arguments of a queued operation. Which fields
// are meaningful depends on the operation type: RFID/EAN are used by
// check-out, check-in and change-gown; OldRFID only by change-gown.
type OperationPayload struct {
	BookingID int64  `json:"booking_id"`
	EventID   int64  `json:"event_id,omitempty"`
	RFID      string `json:"rfid,omitempty"`
	OldRFID   string `json:"old_rfid,omitempty"`
	EAN       string `json:"ean,omitempty"`
}

// CorrelationKey computes the identity used for duplicate suppression at
// enqueue time. Two operations with the same type and the same correlation
// key express the same intent; only one of them may be queued at a time.
//
// Adding a new operation type means adding one case here, nothing else.
func (t OperationType) CorrelationKey(p OperationPayload) string {
	switch t {
	case OpCheckOutGown, OpCheckInGown:
		return fmt.Sprintf("%s|%d|%s", t, p.BookingID, p.RFID)
	case OpUndoCheckout, OpUndoCheckin:
		return fmt.Sprintf("%s|%d", t, p.BookingID)
	case OpChangeGown:
		// correlate on the new tag: changing to a different gown is a new intent
		return fmt.Sprintf("%s|%d|%s", t, p.BookingID, p.RFID)
	default:
		return fmt.Sprintf("%s|%d", t, p.BookingID)
	}
}

// Description returns the operator-facing wording for the operation, used in
// pending markers and the control API.
func (t OperationType) Description() string {
	switch t {
	case OpCheckOutGown:
		return "gown check-out"
	case OpCheckInGown:
		return "gown check-in"
	case OpUndoCheckout:
		return "undo gown check-out"
	case OpUndoCheckin:
		return "undo gown check-in"
	case OpChangeGown:
		return "gown change"
	default:
		return string(t)
	}
}
