package service

import (
	"time"

	"github.com/keycapdesign/gradgo-app-sub000/models"
)

// applyOptimisticUpdate returns the booking as it will look once the
// backend accepts the operation, with the matching transient pending
// flag raised. The pre-image is snapshotted by the caller so the update
// can be rolled back if the backend later rejects the operation.
func applyOptimisticUpdate(b models.Booking, opType models.OperationType, p models.OperationPayload, now time.Time) models.Booking {
	switch opType {
	case models.OpCheckOutGown:
		b.Status = models.BookingStatusCollected
		b.CheckedOutAt = &now
		b.Gown = &models.Gown{RFID: p.RFID, EAN: p.EAN, InStock: false}
		b.PendingCheckout = true

	case models.OpCheckInGown:
		b.Status = models.BookingStatusReturned
		b.CheckedInAt = &now
		if b.Gown != nil {
			b.Gown.InStock = true
		}
		b.PendingCheckin = true

	case models.OpUndoCheckout:
		// only the status and timestamp revert; the gown assignment stays
		// until the backend confirms the undo
		b.Status = models.BookingStatusAwaitingPickup
		b.CheckedOutAt = nil
		b.PendingUndoCheckout = true

	case models.OpUndoCheckin:
		b.Status = models.BookingStatusCollected
		b.CheckedInAt = nil
		if b.Gown != nil {
			b.Gown.InStock = false
		}
		b.PendingUndoCheckin = true

	case models.OpChangeGown:
		b.Gown = &models.Gown{RFID: p.RFID, EAN: p.EAN, InStock: false}
		b.PendingGownChange = true
	}

	b.UpdatedAt = now
	return b
}

// applyStatsDelta adjusts the event counters by the operation's expected
// effect. A gown change leaves the counters untouched since the booking
// stays collected throughout.
func applyStatsDelta(stats models.BookingStats, opType models.OperationType) models.BookingStats {
	switch opType {
	case models.OpCheckOutGown:
		stats.CollectedCount++
	case models.OpCheckInGown:
		stats.CollectedCount--
		stats.ReturnedCount++
	case models.OpUndoCheckout:
		stats.CollectedCount--
	case models.OpUndoCheckin:
		stats.ReturnedCount--
		stats.CollectedCount++
	}
	return stats
}

// clearPendingFlag lowers the transient flag the operation raised,
// applied to a copy.
func clearPendingFlag(b models.Booking, opType models.OperationType) models.Booking {
	switch opType {
	case models.OpCheckOutGown:
		b.PendingCheckout = false
	case models.OpCheckInGown:
		b.PendingCheckin = false
	case models.OpUndoCheckout:
		b.PendingUndoCheckout = false
	case models.OpUndoCheckin:
		b.PendingUndoCheckin = false
	case models.OpChangeGown:
		b.PendingGownChange = false
	}
	return b
}
