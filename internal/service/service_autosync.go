package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/keycapdesign/gradgo-app-sub000/internal/logger"
	"github.com/keycapdesign/gradgo-app-sub000/internal/queue"
	"github.com/keycapdesign/gradgo-app-sub000/models"
)

// AutoSyncConfig controls what the controller does on its own when
// connectivity returns.
type AutoSyncConfig struct {
	// EventID is the event this desk is working; Flags reports whether its
	// working set is cached.
	EventID int64

	// AutoSync drains the queue automatically after an offline period.
	AutoSync bool

	// AutoPrefetch refreshes the event working set after an offline period,
	// once the queue has been drained.
	AutoPrefetch bool

	// OfflineTTL is how long the was-offline indicator stays raised after
	// reconnecting, so the UI can show a "back online" notice.
	OfflineTTL time.Duration
}

const defaultOfflineTTL = 5 * time.Second

// AutoSyncController reacts to connectivity transitions: when the
// backend comes back after an outage it drains the queue and refreshes
// the event working set, and it exposes the point-in-time flags the UI
// shell polls.
type AutoSyncController struct {
	signal   ConnectivitySignal
	drainer  QueueDrainer
	prefetch Prefetcher
	reader   EventDataReader
	opQueue  *queue.OperationQueue
	cfg      AutoSyncConfig
	log      *logger.Logger

	wasOffline    atomic.Bool
	isSyncing     atomic.Bool
	isPrefetching atomic.Bool

	ttlMu    sync.Mutex
	ttlTimer *time.Timer
}

func NewAutoSyncController(signal ConnectivitySignal, drainer QueueDrainer, prefetch Prefetcher, reader EventDataReader, opQueue *queue.OperationQueue, cfg AutoSyncConfig, log *logger.Logger) *AutoSyncController {
	if cfg.OfflineTTL <= 0 {
		cfg.OfflineTTL = defaultOfflineTTL
	}
	return &AutoSyncController{
		signal:   signal,
		drainer:  drainer,
		prefetch: prefetch,
		reader:   reader,
		opQueue:  opQueue,
		cfg:      cfg,
		log:      &logger.Logger{Logger: log.With().Str("component", "auto-sync-controller").Logger()},
	}
}

// Run consumes connectivity transitions until the context is canceled.
func (c *AutoSyncController) Run(ctx context.Context) {
	transitions := c.signal.Subscribe()
	if c.signal.IsOnline() {
		c.prefetchOnEntry(ctx)
	} else {
		c.wasOffline.Store(true)
	}
	for {
		select {
		case <-ctx.Done():
			return
		case online := <-transitions:
			if online {
				c.handleReconnect(ctx)
			} else {
				c.markOffline()
			}
		}
	}
}

// prefetchOnEntry populates the event working set when the controller
// starts with a reachable backend and nothing cached yet, so the desk
// has offline data before the first outage.
func (c *AutoSyncController) prefetchOnEntry(ctx context.Context) {
	if !c.cfg.AutoPrefetch || c.cfg.EventID == 0 {
		return
	}
	if c.reader.IsEventDataCached(ctx, c.cfg.EventID) {
		return
	}
	if err := c.Prefetch(ctx, c.cfg.EventID); err != nil {
		c.log.Error().Err(err).Str("func", "AutoSyncController.prefetchOnEntry").Msg("initial prefetch failed")
	}
}

func (c *AutoSyncController) markOffline() {
	// a TTL timer pending from the previous reconnect must not clear the
	// indicator mid-outage, or the next reconnect would skip its drain
	c.ttlMu.Lock()
	if c.ttlTimer != nil {
		c.ttlTimer.Stop()
		c.ttlTimer = nil
	}
	c.ttlMu.Unlock()
	c.wasOffline.Store(true)
	c.log.Warn().Msg("connectivity lost, mutations will be queued")
}

func (c *AutoSyncController) handleReconnect(ctx context.Context) {
	if !c.wasOffline.Load() {
		return
	}
	c.log.Info().Msg("connectivity restored after offline period")

	if c.cfg.AutoSync {
		if _, err := c.Sync(ctx); err != nil {
			c.log.Error().Err(err).Str("func", "AutoSyncController.handleReconnect").Msg("automatic drain failed")
		}
	}
	if c.cfg.AutoPrefetch && c.cfg.EventID != 0 {
		if err := c.Prefetch(ctx, c.cfg.EventID); err != nil {
			c.log.Error().Err(err).Str("func", "AutoSyncController.handleReconnect").Msg("automatic prefetch failed")
		}
	}

	// keep the indicator raised briefly so the UI can surface the recovery
	c.ttlMu.Lock()
	if c.ttlTimer != nil {
		c.ttlTimer.Stop()
	}
	c.ttlTimer = time.AfterFunc(c.cfg.OfflineTTL, func() { c.wasOffline.Store(false) })
	c.ttlMu.Unlock()
}

// Sync runs a manual queue drain.
func (c *AutoSyncController) Sync(ctx context.Context) (models.SyncSummary, error) {
	if !c.signal.IsOnline() {
		return models.SyncSummary{}, ErrOffline
	}
	if !c.isSyncing.CompareAndSwap(false, true) {
		return models.SyncSummary{}, ErrSyncInProgress
	}
	defer c.isSyncing.Store(false)

	return c.drainer.Drain(ctx)
}

// Prefetch runs a manual working set refresh for the event.
func (c *AutoSyncController) Prefetch(ctx context.Context, eventID int64) error {
	if !c.signal.IsOnline() {
		return ErrOffline
	}
	if !c.isPrefetching.CompareAndSwap(false, true) {
		return ErrPrefetchInProgress
	}
	defer c.isPrefetching.Store(false)

	return c.prefetch.PrefetchEventData(ctx, eventID)
}

// Flags returns the controller's point-in-time state for the UI shell.
func (c *AutoSyncController) Flags(ctx context.Context) models.ControllerFlags {
	hasPending, err := c.opQueue.HasPending(ctx)
	if err != nil {
		c.log.Error().Err(err).Str("func", "AutoSyncController.Flags").Msg("failed to inspect queue")
	}
	return models.ControllerFlags{
		IsOnline:      c.signal.IsOnline(),
		WasOffline:    c.wasOffline.Load(),
		IsPrefetching: c.isPrefetching.Load(),
		IsSyncing:     c.isSyncing.Load(),
		HasPendingOps: hasPending,
		IsDataCached:  c.reader.IsEventDataCached(ctx, c.cfg.EventID),
	}
}
