package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/keycapdesign/gradgo-app-sub000/internal/logger"
	"github.com/keycapdesign/gradgo-app-sub000/models"
)

type bookingStatsRepository struct {
	*DB
	logger *logger.Logger
}

func NewBookingStatsRepository(db *DB, logger *logger.Logger) BookingStatsRepository {
	return &bookingStatsRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *bookingStatsRepository) Save(ctx context.Context, stats models.BookingStats) error {
	_, err := r.DB.ExecContext(ctx, upsertBookingStats,
		stats.EventID,
		stats.TotalCount,
		stats.CollectedCount,
		stats.ReturnedCount,
		stats.LateCount,
		stats.PurchaseCount,
	)
	if err != nil {
		r.logger.Err(err).
			Str("func", "bookingStatsRepository.Save").
			Int64("event_id", stats.EventID).
			Msg("failed to execute upsert for booking stats")
		return fmt.Errorf("failed to save booking stats (event_id=%d): %w", stats.EventID, err)
	}
	return nil
}

func (r *bookingStatsRepository) Get(ctx context.Context, eventID int64) (*models.BookingStats, error) {
	var stats models.BookingStats
	err := r.DB.QueryRowContext(ctx, getBookingStats, eventID).Scan(
		&stats.EventID,
		&stats.TotalCount,
		&stats.CollectedCount,
		&stats.ReturnedCount,
		&stats.LateCount,
		&stats.PurchaseCount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Err(err).
			Str("func", "bookingStatsRepository.Get").
			Int64("event_id", eventID).
			Msg("failed to scan booking stats row")
		return nil, fmt.Errorf("failed to scan booking stats row: %w", err)
	}
	return &stats, nil
}

func (r *bookingStatsRepository) Clear(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, clearBookingStats); err != nil {
		return fmt.Errorf("failed to clear booking stats: %w", err)
	}
	return nil
}

type gownStatsRepository struct {
	*DB
	logger *logger.Logger
}

func NewGownStatsRepository(db *DB, logger *logger.Logger) GownStatsRepository {
	return &gownStatsRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *gownStatsRepository) Save(ctx context.Context, stats models.DetailedGownStats) error {
	payload, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to encode gown stats (event_id=%d): %w", stats.EventID, err)
	}

	if _, err = r.DB.ExecContext(ctx, upsertGownStats, stats.EventID, string(payload)); err != nil {
		r.logger.Err(err).
			Str("func", "gownStatsRepository.Save").
			Int64("event_id", stats.EventID).
			Msg("failed to execute upsert for gown stats")
		return fmt.Errorf("failed to save gown stats (event_id=%d): %w", stats.EventID, err)
	}
	return nil
}

func (r *gownStatsRepository) Get(ctx context.Context, eventID int64) (*models.DetailedGownStats, error) {
	var (
		id      int64
		payload string
	)
	err := r.DB.QueryRowContext(ctx, getGownStats, eventID).Scan(&id, &payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan gown stats row: %w", err)
	}

	var stats models.DetailedGownStats
	if err = json.Unmarshal([]byte(payload), &stats); err != nil {
		return nil, fmt.Errorf("failed to decode gown stats payload: %w", err)
	}
	stats.EventID = id

	return &stats, nil
}

func (r *gownStatsRepository) Clear(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, clearGownStats); err != nil {
		return fmt.Errorf("failed to clear gown stats: %w", err)
	}
	return nil
}
