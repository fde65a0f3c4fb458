package models

import "time"

// Event is a locally cached snapshot of a graduation event.
type Event struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Venue    string    `json:"venue,omitempty"`
	StartsAt time.Time `json:"starts_at"`

	// CachedAt records when this snapshot was taken from the remote side.
	CachedAt time.Time `json:"cached_at"`
}

// Ceremony is one ceremony slot of an event.
type Ceremony struct {
	ID       int64     `json:"id"`
	EventID  int64     `json:"event_id"`
	Name     string    `json:"name"`
	StartsAt time.Time `json:"starts_at"`
}
