package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/keycapdesign/gradgo-app-sub000/internal/logger"
	"github.com/keycapdesign/gradgo-app-sub000/models"
)

// bookingSortColumns whitelists the columns a booking list may be ordered by.
var bookingSortColumns = map[string]string{
	"created_at":     "created_at",
	"updated_at":     "updated_at",
	"student_name":   "student_name",
	"status":         "status",
	"order_type":     "order_type",
	"checked_out_at": "checked_out_at",
	"checked_in_at":  "checked_in_at",
}

type bookingRepository struct {
	*DB
	logger *logger.Logger
}

func NewBookingRepository(db *DB, logger *logger.Logger) BookingRepository {
	return &bookingRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *bookingRepository) Save(ctx context.Context, bookings ...models.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		r.logger.Err(err).
			Str("func", "bookingRepository.Save").
			Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin bookings transaction: %w", err)
	}
	defer tx.Rollback()

	for _, b := range bookings {
		if _, err = tx.ExecContext(ctx, upsertBooking,
			b.ID,
			b.EventID,
			nullableID(b.CeremonyID),
			b.StudentName,
			b.OrderType,
			string(b.Status),
			b.CheckedOutAt,
			b.CheckedInAt,
			gownRFID(b.Gown),
			gownEAN(b.Gown),
			gownInStock(b.Gown),
			b.CreatedAt,
			b.UpdatedAt,
		); err != nil {
			r.logger.Err(err).
				Str("func", "bookingRepository.Save").
				Int64("booking_id", b.ID).
				Msg("failed to execute upsert for booking")
			return fmt.Errorf("failed to save booking (id=%d): %w", b.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit bookings transaction: %w", err)
	}

	return nil
}

func (r *bookingRepository) Get(ctx context.Context, id int64) (*models.Booking, error) {
	row := r.DB.QueryRowContext(ctx, getSingleBooking, id)
	return r.scanBooking(row, "bookingRepository.Get")
}

func (r *bookingRepository) GetByRFID(ctx context.Context, rfid string) (*models.Booking, error) {
	row := r.DB.QueryRowContext(ctx, getBookingByRFID, rfid)
	return r.scanBooking(row, "bookingRepository.GetByRFID")
}

func (r *bookingRepository) GetAllByEvent(ctx context.Context, eventID int64, sortBy, sortDirection string) ([]models.Booking, error) {
	if sortBy == "" {
		sortBy = "created_at"
	}
	if sortDirection == "" {
		sortDirection = "desc"
	}

	column, ok := bookingSortColumns[sortBy]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSortField, sortBy)
	}
	direction := "DESC"
	if strings.EqualFold(sortDirection, "asc") {
		direction = "ASC"
	}

	query, args, err := sq.Select(
		"id", "event_id", "ceremony_id", "student_name", "order_type", "status",
		"checked_out_at", "checked_in_at", "gown_rfid", "gown_ean", "gown_in_stock",
		"created_at", "updated_at",
	).
		From("bookings").
		Where(sq.Eq{"event_id": eventID}).
		OrderBy(column + " " + direction).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build bookings query: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Err(err).
			Str("func", "bookingRepository.GetAllByEvent").
			Int64("event_id", eventID).
			Msg("failed to execute query for event bookings")
		return nil, fmt.Errorf("failed to query event bookings: %w", err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		b, scanErr := scanBookingRow(rows)
		if scanErr != nil {
			r.logger.Err(scanErr).
				Str("func", "bookingRepository.GetAllByEvent").
				Int64("event_id", eventID).
				Msg("failed to scan booking row")
			return nil, fmt.Errorf("failed to scan booking row: %w", scanErr)
		}
		bookings = append(bookings, b)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("error iterating booking rows: %w", rowsErr)
	}

	return bookings, nil
}

func (r *bookingRepository) CountByEvent(ctx context.Context, eventID int64) (int64, error) {
	var count int64
	if err := r.DB.QueryRowContext(ctx, countBookingsByEvent, eventID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count event bookings: %w", err)
	}
	return count, nil
}

func (r *bookingRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.DB.ExecContext(ctx, deleteBooking, id); err != nil {
		return fmt.Errorf("failed to delete booking (id=%d): %w", id, err)
	}
	return nil
}

func (r *bookingRepository) Clear(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, clearBookings); err != nil {
		return fmt.Errorf("failed to clear bookings: %w", err)
	}
	return nil
}

func (r *bookingRepository) scanBooking(row *sql.Row, fn string) (*models.Booking, error) {
	b, err := scanBookingRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Err(err).Str("func", fn).Msg("failed to scan booking row")
		return nil, fmt.Errorf("failed to scan booking row: %w", err)
	}
	return &b, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanBookingRow(row rowScanner) (models.Booking, error) {
	var (
		b          models.Booking
		ceremonyID sql.NullInt64
		status     string
		outAt      sql.NullTime
		inAt       sql.NullTime
		rfid       sql.NullString
		ean        sql.NullString
		inStock    sql.NullBool
	)

	if err := row.Scan(
		&b.ID,
		&b.EventID,
		&ceremonyID,
		&b.StudentName,
		&b.OrderType,
		&status,
		&outAt,
		&inAt,
		&rfid,
		&ean,
		&inStock,
		&b.CreatedAt,
		&b.UpdatedAt,
	); err != nil {
		return models.Booking{}, err
	}

	b.Status = models.BookingStatus(status)
	if ceremonyID.Valid {
		b.CeremonyID = ceremonyID.Int64
	}
	if outAt.Valid {
		t := outAt.Time
		b.CheckedOutAt = &t
	}
	if inAt.Valid {
		t := inAt.Time
		b.CheckedInAt = &t
	}
	if rfid.Valid && rfid.String != "" {
		b.Gown = &models.Gown{
			RFID:    rfid.String,
			EAN:     ean.String,
			InStock: inStock.Valid && inStock.Bool,
		}
	}

	return b, nil
}

func nullableID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}

func gownRFID(g *models.Gown) any {
	if g == nil {
		return nil
	}
	return g.RFID
}

func gownEAN(g *models.Gown) any {
	if g == nil {
		return nil
	}
	return g.EAN
}

func gownInStock(g *models.Gown) any {
	if g == nil {
		return nil
	}
	return g.InStock
}
