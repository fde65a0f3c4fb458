package store

import "errors"

var (
	// ErrQueueItemNotFound is returned by queue repository updates that
	// matched no row.
	ErrQueueItemNotFound = errors.New("queue item not found")

	// ErrUnsupportedSortField is returned when a booking list request names a
	// column that is not sortable.
	ErrUnsupportedSortField = errors.New("unsupported sort field")
)
