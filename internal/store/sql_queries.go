// SPDX-License-Identifier: Apache-2.0

package store

const (
	upsertBooking = `
		INSERT INTO bookings (
			id,
			event_id,
			ceremony_id,
			student_name,
			order_type,
			status,
			checked_out_at,
			checked_in_at,
			gown_rfid,
			gown_ean,
			gown_in_stock,
			created_at,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			event_id       = excluded.event_id,
			ceremony_id    = excluded.ceremony_id,
			student_name   = excluded.student_name,
			order_type     = excluded.order_type,
			status         = excluded.status,
			checked_out_at = excluded.checked_out_at,
			checked_in_at  = excluded.checked_in_at,
			gown_rfid      = excluded.gown_rfid,
			gown_ean       = excluded.gown_ean,
			gown_in_stock  = excluded.gown_in_stock,
			created_at     = excluded.created_at,
			updated_at     = excluded.updated_at;`

	getSingleBooking = `
		SELECT
			id,
			event_id,
			ceremony_id,
			student_name,
			order_type,
			status,
			checked_out_at,
			checked_in_at,
			gown_rfid,
			gown_ean,
			gown_in_stock,
			created_at,
			updated_at
		FROM bookings
		WHERE id = $1;`

	getBookingByRFID = `
		SELECT
			id,
			event_id,
			ceremony_id,
			student_name,
			order_type,
			status,
			checked_out_at,
			checked_in_at,
			gown_rfid,
			gown_ean,
			gown_in_stock,
			created_at,
			updated_at
		FROM bookings
		WHERE gown_rfid = $1;`

	countBookingsByEvent = `
		SELECT COUNT(*) FROM bookings WHERE event_id = $1;`

	deleteBooking = `DELETE FROM bookings WHERE id = $1;`
	clearBookings = `DELETE FROM bookings;`

	upsertBookingStats = `
		INSERT INTO booking_stats (
			event_id,
			total_count,
			collected_count,
			returned_count,
			late_count,
			purchase_count
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (event_id) DO UPDATE SET
			total_count     = excluded.total_count,
			collected_count = excluded.collected_count,
			returned_count  = excluded.returned_count,
			late_count      = excluded.late_count,
			purchase_count  = excluded.purchase_count;`

	getBookingStats = `
		SELECT
			event_id,
			total_count,
			collected_count,
			returned_count,
			late_count,
			purchase_count
		FROM booking_stats
		WHERE event_id = $1;`

	clearBookingStats = `DELETE FROM booking_stats;`

	upsertGownStats = `
		INSERT INTO gown_stats (event_id, payload) VALUES ($1, $2)
		ON CONFLICT (event_id) DO UPDATE SET payload = excluded.payload;`

	getGownStats = `
		SELECT event_id, payload FROM gown_stats WHERE event_id = $1;`

	clearGownStats = `DELETE FROM gown_stats;`

	upsertCeremony = `
		INSERT INTO ceremonies (id, event_id, name, starts_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			event_id  = excluded.event_id,
			name      = excluded.name,
			starts_at = excluded.starts_at;`

	getCeremoniesByEvent = `
		SELECT id, event_id, name, starts_at
		FROM ceremonies
		WHERE event_id = $1
		ORDER BY starts_at;`

	clearCeremonies = `DELETE FROM ceremonies;`

	upsertEvent = `
		INSERT INTO events (id, name, venue, starts_at, cached_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name      = excluded.name,
			venue     = excluded.venue,
			starts_at = excluded.starts_at,
			cached_at = excluded.cached_at;`

	getSingleEvent = `
		SELECT id, name, venue, starts_at, cached_at FROM events WHERE id = $1;`

	clearEvents = `DELETE FROM events;`

	insertQueueItem = `
		INSERT INTO offline_queue (type, data, ts, status, error, retry_count)
		VALUES ($1, $2, $3, $4, $5, $6);`

	getSingleQueueItem = `
		SELECT id, type, data, ts, status, error, retry_count
		FROM offline_queue
		WHERE id = $1;`

	getAllQueueItems = `
		SELECT id, type, data, ts, status, error, retry_count
		FROM offline_queue
		ORDER BY ts ASC, id ASC;`

	updateQueueItemStatus = `
		UPDATE offline_queue SET status = $1, error = $2 WHERE id = $3;`

	incrementQueueItemRetry = `
		UPDATE offline_queue SET retry_count = retry_count + 1 WHERE id = $1;`

	deleteQueueItem = `DELETE FROM offline_queue WHERE id = $1;`

	deleteDoneQueueItems = `
		DELETE FROM offline_queue WHERE status = $1 AND error = '';`

	clearQueue = `DELETE FROM offline_queue;`
)
