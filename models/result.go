package models

import "time"

// Result is the outcome shape shared by every gown mutation, both the direct
// remote call and the queued offline placeholder.
type Result struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Booking *Booking `json:"booking,omitempty"`
}

// PendingMarker is a lightweight per-booking note that an operation is queued
// or in flight. It exists purely for UI feedback so a row indicator can be
// rendered without scanning the whole queue.
type PendingMarker struct {
	BookingID   int64         `json:"booking_id"`
	Type        OperationType `json:"type"`
	Description string        `json:"description"`
	Timestamp   time.Time     `json:"timestamp"`
}

// SyncSummary reports the outcome of one queue drain.
type SyncSummary struct {
	Processed int      `json:"processed"`
	Failed    int      `json:"failed"`
	Total     int      `json:"total"`
	Errors    []string `json:"errors,omitempty"`

	// TouchedBookingIDs lists every booking whose remote state was mutated
	// during the drain, for batched cache invalidation.
	TouchedBookingIDs []int64 `json:"touched_booking_ids,omitempty"`
}

// ControllerFlags is the point-in-time state of the auto-sync controller,
// exposed through the control API for the UI shell.
type ControllerFlags struct {
	IsOnline      bool `json:"is_online"`
	WasOffline    bool `json:"was_offline"`
	IsPrefetching bool `json:"is_prefetching"`
	IsSyncing     bool `json:"is_syncing"`
	HasPendingOps bool `json:"has_pending_ops"`
	IsDataCached  bool `json:"is_data_cached"`
}
