// SPDX-License-Identifier: Apache-2.0

// Package adapter provides transport-layer abstractions for communicating
// with the hosted gradgo backend.
//
// The primary abstraction is [ServerAdapter], which decouples the service
// layer from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]) built on resty with a circuit
// breaker wrapped around every remote call, so a flapping venue uplink trips
// fast instead of stalling queue drains.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrConflict] for 409, [ErrNotFound] for 404).
package adapter

import (
	"context"

	"github.com/keycapdesign/gradgo-app-sub000/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the gradgo
// backend. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel
// values defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// StaffID returns the staff member id parsed from the bearer token's
	// subject claim, or zero if no token is set.
	StaffID() int64

	// Ping probes backend reachability. It is the connectivity monitor's
	// probe; a nil return means the backend answered its health endpoint.
	Ping(ctx context.Context) error

	// CheckOutGown records a gown collection against a booking. Domain
	// rejections (gown already checked out, unknown RFID, invalid format)
	// are returned as mapped sentinel errors carrying the backend's message.
	CheckOutGown(ctx context.Context, req models.CheckOutRequest) (models.Result, error)

	// CheckInGown records a gown return against a booking.
	CheckInGown(ctx context.Context, req models.CheckInRequest) (models.Result, error)

	// UndoCheckout reverts a booking's collection, returning it to
	// awaiting_pickup.
	UndoCheckout(ctx context.Context, bookingID int64) (models.Result, error)

	// UndoCheckin reverts a booking's return, returning it to collected.
	UndoCheckin(ctx context.Context, bookingID int64) (models.Result, error)

	// FetchGownByRFID resolves an RFID tag to a gown record, or nil when no
	// gown carries that tag.
	FetchGownByRFID(ctx context.Context, rfid string) (*models.Gown, error)

	// FetchEventByID returns the event's metadata.
	FetchEventByID(ctx context.Context, eventID int64) (models.Event, error)

	// FetchBookingStats returns the event's aggregate booking counters.
	FetchBookingStats(ctx context.Context, eventID int64) (models.BookingStats, error)

	// FetchDetailedGownStats returns the event's per-product gown breakdown.
	FetchDetailedGownStats(ctx context.Context, eventID int64) (models.DetailedGownStats, error)

	// FetchAllEventBookings returns the event's bookings sorted as requested.
	FetchAllEventBookings(ctx context.Context, req models.BookingListRequest) ([]models.Booking, error)

	// FetchEventCeremonies returns the event's ceremony slots.
	FetchEventCeremonies(ctx context.Context, eventID int64) ([]models.Ceremony, error)

	// FetchGownsByEvent returns the gown inventory allocated to the event.
	FetchGownsByEvent(ctx context.Context, eventID int64) ([]models.Gown, error)
}
