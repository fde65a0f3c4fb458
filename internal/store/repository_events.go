package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/keycapdesign/gradgo-app-sub000/internal/logger"
	"github.com/keycapdesign/gradgo-app-sub000/models"
)

type eventRepository struct {
	*DB
	logger *logger.Logger
}

func NewEventRepository(db *DB, logger *logger.Logger) EventRepository {
	return &eventRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *eventRepository) Save(ctx context.Context, event models.Event) error {
	_, err := r.DB.ExecContext(ctx, upsertEvent,
		event.ID,
		event.Name,
		event.Venue,
		event.StartsAt,
		event.CachedAt,
	)
	if err != nil {
		r.logger.Err(err).
			Str("func", "eventRepository.Save").
			Int64("event_id", event.ID).
			Msg("failed to execute upsert for event snapshot")
		return fmt.Errorf("failed to save event snapshot (id=%d): %w", event.ID, err)
	}
	return nil
}

func (r *eventRepository) Get(ctx context.Context, id int64) (*models.Event, error) {
	var event models.Event
	err := r.DB.QueryRowContext(ctx, getSingleEvent, id).Scan(
		&event.ID,
		&event.Name,
		&event.Venue,
		&event.StartsAt,
		&event.CachedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan event row: %w", err)
	}
	return &event, nil
}

func (r *eventRepository) Clear(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, clearEvents); err != nil {
		return fmt.Errorf("failed to clear events: %w", err)
	}
	return nil
}

type ceremonyRepository struct {
	*DB
	logger *logger.Logger
}

func NewCeremonyRepository(db *DB, logger *logger.Logger) CeremonyRepository {
	return &ceremonyRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *ceremonyRepository) Save(ctx context.Context, ceremonies ...models.Ceremony) error {
	if len(ceremonies) == 0 {
		return nil
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin ceremonies transaction: %w", err)
	}
	defer tx.Rollback()

	for _, c := range ceremonies {
		if _, err = tx.ExecContext(ctx, upsertCeremony, c.ID, c.EventID, c.Name, c.StartsAt); err != nil {
			r.logger.Err(err).
				Str("func", "ceremonyRepository.Save").
				Int64("ceremony_id", c.ID).
				Msg("failed to execute upsert for ceremony")
			return fmt.Errorf("failed to save ceremony (id=%d): %w", c.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit ceremonies transaction: %w", err)
	}
	return nil
}

func (r *ceremonyRepository) GetAllByEvent(ctx context.Context, eventID int64) ([]models.Ceremony, error) {
	rows, err := r.DB.QueryContext(ctx, getCeremoniesByEvent, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query event ceremonies: %w", err)
	}
	defer rows.Close()

	var ceremonies []models.Ceremony
	for rows.Next() {
		var c models.Ceremony
		if err = rows.Scan(&c.ID, &c.EventID, &c.Name, &c.StartsAt); err != nil {
			return nil, fmt.Errorf("failed to scan ceremony row: %w", err)
		}
		ceremonies = append(ceremonies, c)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("error iterating ceremony rows: %w", rowsErr)
	}

	return ceremonies, nil
}

func (r *ceremonyRepository) Clear(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, clearCeremonies); err != nil {
		return fmt.Errorf("failed to clear ceremonies: %w", err)
	}
	return nil
}
