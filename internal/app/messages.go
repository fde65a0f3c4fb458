// SPDX-License-Identifier: Apache-2.0

// Package app contains shared application-layer constants used across the
// gradgo sync agent's services and control API handlers.
//
// All Msg* constants are human-readable message strings that are written into
// queued-operation records, HTTP response bodies, or log entries to describe
// the outcome of an operation. Keeping them in one place ensures consistent
// wording throughout the agent, which matters doubly here: the sync service
// classifies remote failures as permanent or retryable by matching on these
// exact phrases.
package app

const (
	// MsgQueuedForProcessing is the message attached to the success-shaped
	// placeholder result returned by every offline mutation.
	MsgQueuedForProcessing = "operation queued for processing"

	// MsgGownAlreadyCheckedOut is returned by the remote side when a gown's
	// RFID is already associated with a collected booking.
	MsgGownAlreadyCheckedOut = "gown already checked out"

	// MsgGownNotFound is returned by the remote side when no gown with the
	// presented RFID exists.
	MsgGownNotFound = "no gown found with this RFID"

	// MsgInvalidRFID is returned by the remote side when the presented tag
	// value fails format validation.
	MsgInvalidRFID = "invalid RFID format"

	// MsgBookingNotFound is returned by the remote side when the booking id
	// does not exist.
	MsgBookingNotFound = "booking does not exist"

	// MsgMaxRetriesExceeded marks a queued operation abandoned after hitting
	// the retry ceiling.
	MsgMaxRetriesExceeded = "Exceeded maximum retry attempts"

	// MsgGownAlreadyProcessed marks a queued check-out skipped because an
	// earlier operation in the same drain already checked out the same gown.
	MsgGownAlreadyProcessed = "Gown already processed in previous operation"
)
