// Package store implements the agent's durable local store: a versioned,
// schema-migrating SQLite database holding the six named collections the
// offline engine relies on (bookings, booking statistics, gown statistics,
// ceremonies, cached events, and the operation queue).
//
// Every collection is exposed through a typed repository with upsert/get/
// getAll/delete/clear primitives. Bulk upserts run inside a transaction and
// never partially apply. Storage failures propagate as errors; callers must
// not assume persistence succeeded without awaiting the call.
//
// Schema migrations are additive only (see the migrations package) so a
// version bump can never silently discard queued offline work.
package store
