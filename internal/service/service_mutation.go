// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/keycapdesign/gradgo-app-sub000/internal/adapter"
	"github.com/keycapdesign/gradgo-app-sub000/internal/app"
	"github.com/keycapdesign/gradgo-app-sub000/internal/cache"
	"github.com/keycapdesign/gradgo-app-sub000/internal/logger"
	"github.com/keycapdesign/gradgo-app-sub000/internal/queue"
	"github.com/keycapdesign/gradgo-app-sub000/internal/store"
	"github.com/keycapdesign/gradgo-app-sub000/models"
)

// ChangeGownRequest swaps the gown held by a collected booking for a
// different one in a single operator action.
type ChangeGownRequest struct {
	BookingID int64  `json:"booking_id"`
	EventID   int64  `json:"event_id"`
	OldRFID   string `json:"old_rfid"`
	NewRFID   string `json:"new_rfid"`
	NewEAN    string `json:"new_ean"`
}

// mutationSnapshot is the pre-image of the local state an offline
// mutation touched, kept until the queued operation settles.
type mutationSnapshot struct {
	bookings []models.Booking
	stats    *models.BookingStats
}

// MutationService accepts gown operations from the control API. While
// the backend is reachable it forwards them directly; otherwise it
// stages them on the durable queue and applies the expected outcome to
// the cached booking, remembering the pre-image for rollback.
type MutationService struct {
	server   adapter.ServerAdapter
	storages *store.Storages
	queue    *queue.OperationQueue
	cache    cache.Cache
	signal   ConnectivitySignal
	log      *logger.Logger

	mu        sync.Mutex
	snapshots map[int64]mutationSnapshot
}

func NewMutationService(server adapter.ServerAdapter, storages *store.Storages, q *queue.OperationQueue, c cache.Cache, signal ConnectivitySignal, log *logger.Logger) *MutationService {
	return &MutationService{
		server:    server,
		storages:  storages,
		queue:     q,
		cache:     c,
		signal:    signal,
		log:       &logger.Logger{Logger: log.With().Str("component", "mutation-service").Logger()},
		snapshots: make(map[int64]mutationSnapshot),
	}
}

// CheckOutGown records a gown collection against a booking.
func (s *MutationService) CheckOutGown(ctx context.Context, req models.CheckOutRequest) (models.Result, error) {
	payload := models.OperationPayload{
		BookingID: req.BookingID,
		EventID:   req.EventID,
		RFID:      req.RFID,
		EAN:       req.EAN,
	}
	if !s.signal.IsOnline() {
		return s.stageOffline(ctx, models.OpCheckOutGown, payload)
	}

	res, err := s.server.CheckOutGown(ctx, req)
	if err != nil {
		if errors.Is(err, adapter.ErrBackendUnavailable) {
			s.signal.SetOnline(false)
			return s.stageOffline(ctx, models.OpCheckOutGown, payload)
		}
		return res, err
	}
	s.refreshAfterRemote(ctx, res, req.EventID)
	return res, nil
}

// CheckInGown records a gown return against a booking.
func (s *MutationService) CheckInGown(ctx context.Context, req models.CheckInRequest) (models.Result, error) {
	payload := models.OperationPayload{
		BookingID: req.BookingID,
		EventID:   req.EventID,
		RFID:      req.RFID,
	}
	if !s.signal.IsOnline() {
		return s.stageOffline(ctx, models.OpCheckInGown, payload)
	}

	res, err := s.server.CheckInGown(ctx, req)
	if err != nil {
		if errors.Is(err, adapter.ErrBackendUnavailable) {
			s.signal.SetOnline(false)
			return s.stageOffline(ctx, models.OpCheckInGown, payload)
		}
		return res, err
	}
	s.refreshAfterRemote(ctx, res, req.EventID)
	return res, nil
}

// UndoCheckout reverts a booking's collection.
func (s *MutationService) UndoCheckout(ctx context.Context, bookingID, eventID int64) (models.Result, error) {
	payload := models.OperationPayload{BookingID: bookingID, EventID: eventID}
	if !s.signal.IsOnline() {
		return s.stageOffline(ctx, models.OpUndoCheckout, payload)
	}

	res, err := s.server.UndoCheckout(ctx, bookingID)
	if err != nil {
		if errors.Is(err, adapter.ErrBackendUnavailable) {
			s.signal.SetOnline(false)
			return s.stageOffline(ctx, models.OpUndoCheckout, payload)
		}
		return res, err
	}
	s.refreshAfterRemote(ctx, res, eventID)
	return res, nil
}

// UndoCheckin reverts a booking's return.
func (s *MutationService) UndoCheckin(ctx context.Context, bookingID, eventID int64) (models.Result, error) {
	payload := models.OperationPayload{BookingID: bookingID, EventID: eventID}
	if !s.signal.IsOnline() {
		return s.stageOffline(ctx, models.OpUndoCheckin, payload)
	}

	res, err := s.server.UndoCheckin(ctx, bookingID)
	if err != nil {
		if errors.Is(err, adapter.ErrBackendUnavailable) {
			s.signal.SetOnline(false)
			return s.stageOffline(ctx, models.OpUndoCheckin, payload)
		}
		return res, err
	}
	s.refreshAfterRemote(ctx, res, eventID)
	return res, nil
}

// ChangeGown swaps the booking's gown. Online it runs as a check-in of
// the old tag with the tag match relaxed, followed by a check-out of the
// new one; offline it queues as a single operation so the swap replays
// atomically in order.
func (s *MutationService) ChangeGown(ctx context.Context, req ChangeGownRequest) (models.Result, error) {
	payload := models.OperationPayload{
		BookingID: req.BookingID,
		EventID:   req.EventID,
		RFID:      req.NewRFID,
		OldRFID:   req.OldRFID,
		EAN:       req.NewEAN,
	}
	if !s.signal.IsOnline() {
		return s.stageOffline(ctx, models.OpChangeGown, payload)
	}

	_, err := s.server.CheckInGown(ctx, models.CheckInRequest{
		BookingID:     req.BookingID,
		RFID:          req.OldRFID,
		EventID:       req.EventID,
		SkipRFIDCheck: true,
	})
	if err != nil {
		if errors.Is(err, adapter.ErrBackendUnavailable) {
			s.signal.SetOnline(false)
			return s.stageOffline(ctx, models.OpChangeGown, payload)
		}
		return models.Result{}, fmt.Errorf("returning old gown: %w", err)
	}

	res, err := s.server.CheckOutGown(ctx, models.CheckOutRequest{
		BookingID: req.BookingID,
		RFID:      req.NewRFID,
		EAN:       req.NewEAN,
		EventID:   req.EventID,
	})
	if err != nil {
		// the old gown is already returned remotely; surface the half-done
		// state instead of pretending the swap never started
		return res, fmt.Errorf("old gown returned but new gown check-out failed: %w", err)
	}
	s.refreshAfterRemote(ctx, res, req.EventID)
	return res, nil
}

// PendingOperations returns the queued and failed operations for a
// booking, newest first.
func (s *MutationService) PendingOperations(ctx context.Context, bookingID int64) ([]models.QueueItem, error) {
	return s.queue.PendingForBooking(ctx, bookingID)
}

// ClearErrored dismisses the recorded failures for a booking.
func (s *MutationService) ClearErrored(ctx context.Context, bookingID int64) error {
	if err := s.queue.ClearErroredForBooking(ctx, bookingID); err != nil {
		return err
	}
	s.cache.Invalidate(cache.PendingKey(bookingID))
	return nil
}

// stageOffline queues the operation and applies its expected outcome to
// the cached booking. The returned result is success-shaped so the UI
// flow is identical on- and offline; Message distinguishes the cases.
func (s *MutationService) stageOffline(ctx context.Context, opType models.OperationType, payload models.OperationPayload) (models.Result, error) {
	queuedResult := models.Result{Success: true, Message: app.MsgQueuedForProcessing}

	itemID, err := s.queue.Enqueue(ctx, opType, payload)
	if err != nil {
		return models.Result{}, fmt.Errorf("queueing %s: %w", opType.Description(), err)
	}
	if itemID == queue.DuplicateOperationID {
		// the optimistic update already happened when the original was queued
		return queuedResult, nil
	}

	booking, err := s.storages.Bookings.Get(ctx, payload.BookingID)
	if err != nil {
		return models.Result{}, err
	}
	if booking != nil {
		updated, err := s.applyOptimistic(ctx, itemID, *booking, opType, payload)
		if err != nil {
			return models.Result{}, err
		}
		// return the in-memory image; the store row does not carry the
		// transient pending flags
		queuedResult.Booking = &updated
	}

	s.cache.Set(cache.PendingKey(payload.BookingID), models.PendingMarker{
		BookingID:   payload.BookingID,
		Type:        opType,
		Description: opType.Description(),
		Timestamp:   time.Now().UTC(),
	})

	s.log.Info().
		Str("func", "MutationService.stageOffline").
		Str("type", string(opType)).
		Int64("booking_id", payload.BookingID).
		Int64("queue_id", itemID).
		Msg("operation staged for later sync")
	return queuedResult, nil
}

// applyOptimistic snapshots the pre-image, writes the expected outcome
// to the store and mirrors it into the session cache. It returns the
// updated booking, pending flags included.
func (s *MutationService) applyOptimistic(ctx context.Context, itemID int64, booking models.Booking, opType models.OperationType, payload models.OperationPayload) (models.Booking, error) {
	snap := mutationSnapshot{bookings: []models.Booking{booking}}

	updated := applyOptimisticUpdate(booking, opType, payload, time.Now().UTC())
	if err := s.storages.Bookings.Save(ctx, updated); err != nil {
		return models.Booking{}, fmt.Errorf("saving optimistic booking: %w", err)
	}
	s.replaceInCachedList(updated)

	if stats, err := s.storages.BookingStats.Get(ctx, payload.EventID); err == nil && stats != nil {
		snap.stats = stats
		adjusted := applyStatsDelta(*stats, opType)
		if err := s.storages.BookingStats.Save(ctx, adjusted); err != nil {
			return models.Booking{}, fmt.Errorf("saving optimistic stats: %w", err)
		}
		s.cache.Set(cache.StatsKey(payload.EventID), adjusted)
	}

	s.mu.Lock()
	s.snapshots[itemID] = snap
	s.mu.Unlock()
	return updated, nil
}

// OnOperationSettled finalizes the optimistic state of one queued
// operation after the sync service replayed it. Success keeps the
// optimism and lowers the pending flag; permanent rejection restores
// the pre-image.
func (s *MutationService) OnOperationSettled(ctx context.Context, item models.QueueItem, opErr error) {
	s.mu.Lock()
	snap, hasSnap := s.snapshots[item.ID]
	delete(s.snapshots, item.ID)
	s.mu.Unlock()

	if opErr != nil && hasSnap {
		s.rollback(ctx, item, snap)
	} else {
		s.confirm(ctx, item)
	}

	s.cache.Invalidate(cache.PendingKey(item.Data.BookingID))
}

func (s *MutationService) confirm(ctx context.Context, item models.QueueItem) {
	booking, err := s.storages.Bookings.Get(ctx, item.Data.BookingID)
	if err != nil || booking == nil {
		return
	}
	cleared := clearPendingFlag(*booking, item.Type)
	if err := s.storages.Bookings.Save(ctx, cleared); err != nil {
		s.log.Error().Err(err).
			Str("func", "MutationService.confirm").
			Int64("booking_id", item.Data.BookingID).
			Msg("failed to lower pending flag")
		return
	}
	s.replaceInCachedList(cleared)
}

func (s *MutationService) rollback(ctx context.Context, item models.QueueItem, snap mutationSnapshot) {
	s.log.Warn().
		Str("func", "MutationService.rollback").
		Str("type", string(item.Type)).
		Int64("booking_id", item.Data.BookingID).
		Int64("queue_id", item.ID).
		Msg("rolling back optimistic update after permanent rejection")

	if len(snap.bookings) > 0 {
		if err := s.storages.Bookings.Save(ctx, snap.bookings...); err != nil {
			s.log.Error().Err(err).
				Str("func", "MutationService.rollback").
				Msg("failed to restore booking pre-image")
		}
		for _, b := range snap.bookings {
			s.replaceInCachedList(b)
		}
	}
	if snap.stats != nil {
		if err := s.storages.BookingStats.Save(ctx, *snap.stats); err != nil {
			s.log.Error().Err(err).
				Str("func", "MutationService.rollback").
				Msg("failed to restore stats pre-image")
		}
		s.cache.Set(cache.StatsKey(snap.stats.EventID), *snap.stats)
	}
}

// refreshAfterRemote folds a successful direct call's outcome back into
// the local copies so the next read does not need the network.
func (s *MutationService) refreshAfterRemote(ctx context.Context, res models.Result, eventID int64) {
	if res.Booking != nil {
		if err := s.storages.Bookings.Save(ctx, *res.Booking); err != nil {
			s.log.Error().Err(err).
				Str("func", "MutationService.refreshAfterRemote").
				Int64("booking_id", res.Booking.ID).
				Msg("failed to persist refreshed booking")
		}
		s.replaceInCachedList(*res.Booking)
	} else {
		s.cache.Invalidate(cache.BookingsKey(eventID))
	}
	s.cache.Invalidate(cache.StatsKey(eventID), cache.GownStatsKey(eventID))
}

// replaceInCachedList swaps the booking's entry inside the cached
// per-event list, when that list is cached at all.
func (s *MutationService) replaceInCachedList(b models.Booking) {
	key := cache.BookingsKey(b.EventID)
	list, ok := cache.Lookup[[]models.Booking](s.cache, key)
	if !ok {
		return
	}
	updated := make([]models.Booking, len(list))
	copy(updated, list)
	for i := range updated {
		if updated[i].ID == b.ID {
			updated[i] = b
			break
		}
	}
	s.cache.Set(key, updated)
}
