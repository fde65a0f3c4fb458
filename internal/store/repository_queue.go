package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/keycapdesign/gradgo-app-sub000/internal/logger"
	"github.com/keycapdesign/gradgo-app-sub000/models"
)

type queueRepository struct {
	*DB
	logger *logger.Logger
}

func NewQueueRepository(db *DB, logger *logger.Logger) QueueRepository {
	return &queueRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *queueRepository) Insert(ctx context.Context, item models.QueueItem) (int64, error) {
	payload, err := json.Marshal(item.Data)
	if err != nil {
		return 0, fmt.Errorf("failed to encode queue payload: %w", err)
	}

	res, err := r.DB.ExecContext(ctx, insertQueueItem,
		string(item.Type),
		string(payload),
		item.Timestamp,
		string(item.Status),
		item.Error,
		item.RetryCount,
	)
	if err != nil {
		r.logger.Err(err).
			Str("func", "queueRepository.Insert").
			Str("type", string(item.Type)).
			Int64("booking_id", item.Data.BookingID).
			Msg("failed to insert queue item")
		return 0, fmt.Errorf("failed to insert queue item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read assigned queue id: %w", err)
	}

	return id, nil
}

func (r *queueRepository) Get(ctx context.Context, id int64) (*models.QueueItem, error) {
	row := r.DB.QueryRowContext(ctx, getSingleQueueItem, id)

	item, err := scanQueueItemRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan queue item row: %w", err)
	}
	return &item, nil
}

func (r *queueRepository) GetByStatus(ctx context.Context, statuses ...models.QueueStatus) ([]models.QueueItem, error) {
	if len(statuses) == 0 {
		return nil, nil
	}

	values := make([]string, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, string(s))
	}

	query, args, err := sq.Select("id", "type", "data", "ts", "status", "error", "retry_count").
		From("offline_queue").
		Where(sq.Eq{"status": values}).
		OrderBy("ts ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build queue status query: %w", err)
	}

	return r.queryItems(ctx, query, args...)
}

func (r *queueRepository) GetAll(ctx context.Context) ([]models.QueueItem, error) {
	return r.queryItems(ctx, getAllQueueItems)
}

func (r *queueRepository) UpdateStatus(ctx context.Context, id int64, status models.QueueStatus, errMsg string) error {
	res, err := r.DB.ExecContext(ctx, updateQueueItemStatus, string(status), errMsg, id)
	if err != nil {
		r.logger.Err(err).
			Str("func", "queueRepository.UpdateStatus").
			Int64("id", id).
			Str("status", string(status)).
			Msg("failed to update queue item status")
		return fmt.Errorf("failed to update queue item status (id=%d): %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows (id=%d): %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id=%d", ErrQueueItemNotFound, id)
	}

	return nil
}

func (r *queueRepository) IncrementRetry(ctx context.Context, id int64) error {
	// missing id is a no-op
	if _, err := r.DB.ExecContext(ctx, incrementQueueItemRetry, id); err != nil {
		return fmt.Errorf("failed to increment queue item retry (id=%d): %w", id, err)
	}
	return nil
}

func (r *queueRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.DB.ExecContext(ctx, deleteQueueItem, id); err != nil {
		return fmt.Errorf("failed to delete queue item (id=%d): %w", id, err)
	}
	return nil
}

func (r *queueRepository) DeleteDoneWithoutError(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, deleteDoneQueueItems, string(models.QueueStatusDone)); err != nil {
		return fmt.Errorf("failed to garbage-collect queue: %w", err)
	}
	return nil
}

func (r *queueRepository) Clear(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, clearQueue); err != nil {
		return fmt.Errorf("failed to clear queue: %w", err)
	}
	return nil
}

func (r *queueRepository) queryItems(ctx context.Context, query string, args ...any) ([]models.QueueItem, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Err(err).
			Str("func", "queueRepository.queryItems").
			Msg("failed to execute queue query")
		return nil, fmt.Errorf("failed to query queue items: %w", err)
	}
	defer rows.Close()

	var items []models.QueueItem
	for rows.Next() {
		item, scanErr := scanQueueItemRow(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan queue item row: %w", scanErr)
		}
		items = append(items, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("error iterating queue rows: %w", rowsErr)
	}

	return items, nil
}

func scanQueueItemRow(row rowScanner) (models.QueueItem, error) {
	var (
		item    models.QueueItem
		opType  string
		payload string
		status  string
	)

	if err := row.Scan(
		&item.ID,
		&opType,
		&payload,
		&item.Timestamp,
		&status,
		&item.Error,
		&item.RetryCount,
	); err != nil {
		return models.QueueItem{}, err
	}

	item.Type = models.OperationType(opType)
	item.Status = models.QueueStatus(status)
	if err := json.Unmarshal([]byte(payload), &item.Data); err != nil {
		return models.QueueItem{}, fmt.Errorf("failed to decode queue payload: %w", err)
	}

	return item, nil
}
