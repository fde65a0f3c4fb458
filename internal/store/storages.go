package store

import (
	"context"
	"fmt"

	"github.com/keycapdesign/gradgo-app-sub000/internal/config"
	"github.com/keycapdesign/gradgo-app-sub000/internal/logger"
)

// Storages groups all local collection repositories into a single value that
// can be passed around the service layer.
type Storages struct {
	// Bookings is the cached bookings collection, keyed by booking id.
	Bookings BookingRepository
	// BookingStats is the per-event aggregate counters collection.
	BookingStats BookingStatsRepository
	// GownStats is the per-event detailed gown statistics collection.
	GownStats GownStatsRepository
	// Ceremonies is the ceremonies collection.
	Ceremonies CeremonyRepository
	// Events is the cached event snapshot collection.
	Events EventRepository
	// Queue is the durable offline operation queue collection.
	Queue QueueRepository
}

// NewStorages initialises the local storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path specified in cfg.DB.DSN,
//     creating the database file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Constructs and returns a [Storages] value wired to fresh repositories
//     for every collection.
//
// Returns an error if the database connection cannot be established or if
// migration fails.
func NewStorages(cfg config.AgentStorage, log *logger.Logger) (*Storages, error) {
	log.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(context.Background(), cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		Bookings:     NewBookingRepository(db, log),
		BookingStats: NewBookingStatsRepository(db, log),
		GownStats:    NewGownStatsRepository(db, log),
		Ceremonies:   NewCeremonyRepository(db, log),
		Events:       NewEventRepository(db, log),
		Queue:        NewQueueRepository(db, log),
	}, nil
}
