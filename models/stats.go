package models

// BookingStats holds per-event aggregate booking counters. The remote side is
// authoritative; the local copy is adjusted optimistically while offline and
// replaced wholesale on the next prefetch.
type BookingStats struct {
	EventID        int64 `json:"event_id"`
	TotalCount     int64 `json:"total_count"`
	CollectedCount int64 `json:"collected_count"`
	ReturnedCount  int64 `json:"returned_count"`
	LateCount      int64 `json:"late_count"`
	PurchaseCount  int64 `json:"purchase_count"`
}

// GownSizeCount is one row of the per-product breakdown in
// [DetailedGownStats].
type GownSizeCount struct {
	EAN        string `json:"ean"`
	Total      int64  `json:"total"`
	CheckedOut int64  `json:"checked_out"`
}

// DetailedGownStats is the per-event gown breakdown snapshot, including the
// gown inventory known for the event so RFID lookups can be answered offline.
type DetailedGownStats struct {
	EventID int64           `json:"event_id"`
	Sizes   []GownSizeCount `json:"sizes,omitempty"`
	Gowns   []Gown          `json:"gowns,omitempty"`
}
