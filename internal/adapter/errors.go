package adapter

import "errors"

var (
	// ErrBadRequest maps HTTP 400 responses (validation rejections such as an
	// invalid RFID format).
	ErrBadRequest = errors.New("bad request")
	// ErrUnauthorized maps HTTP 401 responses.
	ErrUnauthorized = errors.New("client unauthorized")
	// ErrForbidden maps HTTP 403 responses.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound maps HTTP 404 responses (unknown booking or gown).
	ErrNotFound = errors.New("not found")
	// ErrConflict maps HTTP 409 responses (gown already checked out).
	ErrConflict = errors.New("conflict")
	// ErrInternalServerError maps HTTP 500 responses.
	ErrInternalServerError = errors.New("internal server error")
	// ErrBackendUnavailable marks transport-level failures: the request never
	// produced an HTTP response (network down, timeout, circuit breaker
	// open). These are always retryable.
	ErrBackendUnavailable = errors.New("backend unavailable")
)
