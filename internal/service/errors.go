package service

import "errors"

var (
	// ErrOffline is returned by operations that have no offline path, such
	// as a prefetch or a manual drain, when the backend is unreachable.
	ErrOffline = errors.New("backend is unreachable")

	// ErrEventDataNotCached is returned by reads when the event has never
	// been prefetched and the backend cannot be reached to fill the gap.
	ErrEventDataNotCached = errors.New("event data is not cached locally")

	// ErrSyncInProgress is returned by a manual drain request while another
	// drain is already running.
	ErrSyncInProgress = errors.New("sync already in progress")

	// ErrPrefetchInProgress is returned by a manual prefetch request while
	// another prefetch is already running.
	ErrPrefetchInProgress = errors.New("prefetch already in progress")
)
