// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/keycapdesign/gradgo-app-sub000/internal/adapter"
	"github.com/keycapdesign/gradgo-app-sub000/internal/app"
	"github.com/keycapdesign/gradgo-app-sub000/internal/cache"
	"github.com/keycapdesign/gradgo-app-sub000/internal/logger"
	"github.com/keycapdesign/gradgo-app-sub000/internal/queue"
	"github.com/keycapdesign/gradgo-app-sub000/internal/store"
	"github.com/keycapdesign/gradgo-app-sub000/models"
)

// maxReplayAttempts is the retry ceiling per queued operation. An item
// that failed transiently this many times is abandoned with
// app.MsgMaxRetriesExceeded recorded against it.
const maxReplayAttempts = 3

// SyncService drains the durable queue against the backend, replaying
// operations in the order the operator performed them.
type SyncService struct {
	server   adapter.ServerAdapter
	storages *store.Storages
	queue    *queue.OperationQueue
	cache    cache.Cache
	settler  OperationSettler
	signal   ConnectivitySignal
	log      *logger.Logger

	draining atomic.Bool
}

func NewSyncService(server adapter.ServerAdapter, storages *store.Storages, q *queue.OperationQueue, c cache.Cache, settler OperationSettler, signal ConnectivitySignal, log *logger.Logger) *SyncService {
	return &SyncService{
		server:   server,
		storages: storages,
		queue:    q,
		cache:    c,
		settler:  settler,
		signal:   signal,
		log:      &logger.Logger{Logger: log.With().Str("component", "sync-service").Logger()},
	}
}

// IsDraining reports whether a drain is currently running.
func (s *SyncService) IsDraining() bool { return s.draining.Load() }

// Drain replays all pending operations oldest first. At most one drain
// runs at a time; a concurrent call returns an empty summary without
// touching the queue. Item-level failures are folded into the summary;
// only storage-level failures abort with an error.
func (s *SyncService) Drain(ctx context.Context) (models.SyncSummary, error) {
	if !s.draining.CompareAndSwap(false, true) {
		s.log.Debug().Str("func", "SyncService.Drain").Msg("drain already running, skipping")
		return models.SyncSummary{}, nil
	}
	defer s.draining.Store(false)

	started := time.Now()
	var summary models.SyncSummary

	if err := s.queue.ClearDone(ctx); err != nil {
		return summary, fmt.Errorf("clearing finished operations: %w", err)
	}
	if recovered, err := s.queue.RecoverOrphans(ctx); err != nil {
		return summary, fmt.Errorf("recovering orphaned operations: %w", err)
	} else if recovered > 0 {
		s.log.Warn().Int("recovered", recovered).Msg("re-queued operations orphaned by an interrupted drain")
	}

	pending, err := s.queue.ListPending(ctx)
	if err != nil {
		return summary, fmt.Errorf("listing pending operations: %w", err)
	}
	summary.Total = len(pending)
	if len(pending) == 0 {
		return summary, nil
	}

	// RFID tags already checked out earlier in this same pass; a later
	// queued check-out of the same tag can only be a double scan
	checkedOutTags := make(map[string]bool)
	touchedEvents := make(map[int64]bool)

	for _, item := range pending {
		if item.RetryCount >= maxReplayAttempts {
			s.settleFailed(ctx, item, &summary, errors.New(app.MsgMaxRetriesExceeded))
			continue
		}
		if item.Type == models.OpCheckOutGown && checkedOutTags[item.Data.RFID] {
			s.settleFailed(ctx, item, &summary, errors.New(app.MsgGownAlreadyProcessed))
			continue
		}

		if err := s.queue.MarkInFlight(ctx, item.ID); err != nil {
			return summary, fmt.Errorf("marking operation %d in flight: %w", item.ID, err)
		}

		replayErr := s.replay(ctx, item)
		switch {
		case replayErr == nil:
			if err := s.queue.MarkDone(ctx, item.ID, ""); err != nil {
				return summary, err
			}
			summary.Processed++
			summary.TouchedBookingIDs = append(summary.TouchedBookingIDs, item.Data.BookingID)
			touchedEvents[item.Data.EventID] = true
			if item.Type == models.OpCheckOutGown || item.Type == models.OpChangeGown {
				checkedOutTags[item.Data.RFID] = true
			}
			s.settler.OnOperationSettled(ctx, item, nil)

		case isPermanentFailure(replayErr):
			s.settleFailed(ctx, item, &summary, replayErr)

		default:
			// transient: put the item back for a later drain
			if err := s.queue.ReturnToPending(ctx, item.ID); err != nil {
				return summary, err
			}
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s (booking %d): %v", item.Type.Description(), item.Data.BookingID, replayErr))
			if errors.Is(replayErr, adapter.ErrBackendUnavailable) {
				// the link is gone again, nothing further can succeed
				s.signal.SetOnline(false)
				s.log.Warn().Err(replayErr).
					Str("func", "SyncService.Drain").
					Int64("queue_id", item.ID).
					Msg("backend unreachable, aborting drain")
				s.finishDrain(ctx, touchedEvents)
				return summary, nil
			}
			s.log.Warn().Err(replayErr).
				Str("func", "SyncService.Drain").
				Int64("queue_id", item.ID).
				Msg("transient failure, will retry on a later drain")
		}
	}

	s.finishDrain(ctx, touchedEvents)
	s.log.Info().
		Str("func", "SyncService.Drain").
		Int("processed", summary.Processed).
		Int("failed", summary.Failed).
		Int("total", summary.Total).
		Dur("took", time.Since(started)).
		Msg("queue drain finished")
	return summary, nil
}

// settleFailed records a permanent failure against the item and lets
// the settler roll the optimistic state back.
func (s *SyncService) settleFailed(ctx context.Context, item models.QueueItem, summary *models.SyncSummary, cause error) {
	if err := s.queue.MarkDone(ctx, item.ID, cause.Error()); err != nil {
		s.log.Error().Err(err).Int64("queue_id", item.ID).Msg("failed to record operation failure")
	}
	summary.Failed++
	summary.Errors = append(summary.Errors, fmt.Sprintf("%s (booking %d): %v", item.Type.Description(), item.Data.BookingID, cause))
	s.settler.OnOperationSettled(ctx, item, cause)

	s.log.Warn().
		Str("func", "SyncService.settleFailed").
		Int64("queue_id", item.ID).
		Str("type", string(item.Type)).
		Int64("booking_id", item.Data.BookingID).
		Str("reason", cause.Error()).
		Msg("queued operation permanently failed")
}

// replay issues the remote call for one queued item.
func (s *SyncService) replay(ctx context.Context, item models.QueueItem) error {
	p := item.Data
	switch item.Type {
	case models.OpCheckOutGown:
		_, err := s.server.CheckOutGown(ctx, models.CheckOutRequest{
			BookingID: p.BookingID, RFID: p.RFID, EAN: p.EAN, EventID: p.EventID,
		})
		return err

	case models.OpCheckInGown:
		_, err := s.server.CheckInGown(ctx, models.CheckInRequest{
			BookingID: p.BookingID, RFID: p.RFID, EventID: p.EventID,
		})
		return err

	case models.OpUndoCheckout:
		_, err := s.server.UndoCheckout(ctx, p.BookingID)
		return err

	case models.OpUndoCheckin:
		_, err := s.server.UndoCheckin(ctx, p.BookingID)
		return err

	case models.OpChangeGown:
		// the swap replays as its two halves; the relaxed tag match covers
		// local drift accumulated since the operation was staged
		_, err := s.server.CheckInGown(ctx, models.CheckInRequest{
			BookingID: p.BookingID, RFID: p.OldRFID, EventID: p.EventID, SkipRFIDCheck: true,
		})
		if err != nil {
			return fmt.Errorf("returning old gown: %w", err)
		}
		_, err = s.server.CheckOutGown(ctx, models.CheckOutRequest{
			BookingID: p.BookingID, RFID: p.RFID, EAN: p.EAN, EventID: p.EventID,
		})
		if err != nil {
			return fmt.Errorf("checking out replacement gown: %w", err)
		}
		return nil

	default:
		return fmt.Errorf("unknown operation type %q", item.Type)
	}
}

// finishDrain garbage-collects succeeded items and drops the cached
// read models of every touched event so the next read refetches the
// reconciled state.
func (s *SyncService) finishDrain(ctx context.Context, touchedEvents map[int64]bool) {
	if err := s.queue.ClearDone(ctx); err != nil {
		s.log.Error().Err(err).Str("func", "SyncService.finishDrain").Msg("failed to clear finished operations")
	}
	for eventID := range touchedEvents {
		s.cache.Invalidate(
			cache.BookingsKey(eventID),
			cache.StatsKey(eventID),
			cache.GownStatsKey(eventID),
		)
	}
}

// isPermanentFailure classifies a replay error. Permanent rejections
// are domain verdicts that will not change on retry; everything else
// (timeouts, refused connections, 5xx) is worth another attempt.
func isPermanentFailure(err error) bool {
	if errors.Is(err, adapter.ErrBadRequest) ||
		errors.Is(err, adapter.ErrNotFound) ||
		errors.Is(err, adapter.ErrConflict) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, phrase := range []string{
		"already checked out",
		"not found",
		"invalid",
		"does not exist",
	} {
		if strings.Contains(msg, phrase) {
			return true
		}
	}
	return false
}
