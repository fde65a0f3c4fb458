package service

import (
	"context"
	"fmt"
	"time"

	"github.com/keycapdesign/gradgo-app-sub000/internal/adapter"
	"github.com/keycapdesign/gradgo-app-sub000/internal/cache"
	"github.com/keycapdesign/gradgo-app-sub000/internal/logger"
	"github.com/keycapdesign/gradgo-app-sub000/internal/store"
	"github.com/keycapdesign/gradgo-app-sub000/models"
)

// OfflineCacheService owns the event working set: it prefetches the
// collections an offline session needs and answers every read, cache
// first, store second, backend last.
type OfflineCacheService struct {
	server   adapter.ServerAdapter
	storages *store.Storages
	cache    cache.Cache
	signal   ConnectivitySignal
	log      *logger.Logger
}

func NewOfflineCacheService(server adapter.ServerAdapter, storages *store.Storages, c cache.Cache, signal ConnectivitySignal, log *logger.Logger) *OfflineCacheService {
	return &OfflineCacheService{
		server:   server,
		storages: storages,
		cache:    c,
		signal:   signal,
		log:      &logger.Logger{Logger: log.With().Str("component", "offline-cache-service").Logger()},
	}
}

// PrefetchEventData pulls the event's full working set from the backend
// into the local store and session cache. The event snapshot, bookings,
// booking counters and gown breakdown are required; ceremonies and the
// gown inventory are best effort since a desk can run without them.
func (s *OfflineCacheService) PrefetchEventData(ctx context.Context, eventID int64) error {
	if !s.signal.IsOnline() {
		return ErrOffline
	}
	started := time.Now()

	// a newer prefetch of the same event supersedes this one
	prefetchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.cache.TrackInFlight(cache.BookingsKey(eventID), cancel)

	event, err := s.server.FetchEventByID(prefetchCtx, eventID)
	if err != nil {
		return fmt.Errorf("fetching event: %w", err)
	}
	event.CachedAt = time.Now().UTC()
	if err := s.storages.Events.Save(ctx, event); err != nil {
		return fmt.Errorf("caching event: %w", err)
	}
	s.cache.Set(cache.EventKey(eventID), event)

	bookings, err := s.server.FetchAllEventBookings(prefetchCtx, models.BookingListRequest{EventID: eventID})
	if err != nil {
		return fmt.Errorf("fetching bookings: %w", err)
	}
	if err := s.storages.Bookings.Save(ctx, bookings...); err != nil {
		return fmt.Errorf("caching bookings: %w", err)
	}
	s.cache.Set(cache.BookingsKey(eventID), bookings)

	stats, err := s.server.FetchBookingStats(prefetchCtx, eventID)
	if err != nil {
		return fmt.Errorf("fetching booking stats: %w", err)
	}
	stats.EventID = eventID
	if err := s.storages.BookingStats.Save(ctx, stats); err != nil {
		return fmt.Errorf("caching booking stats: %w", err)
	}
	s.cache.Set(cache.StatsKey(eventID), stats)

	gownStats, err := s.server.FetchDetailedGownStats(prefetchCtx, eventID)
	if err != nil {
		return fmt.Errorf("fetching gown stats: %w", err)
	}
	gownStats.EventID = eventID
	if gowns, err := s.server.FetchGownsByEvent(prefetchCtx, eventID); err == nil {
		gownStats.Gowns = gowns
	}
	if err := s.storages.GownStats.Save(ctx, gownStats); err != nil {
		return fmt.Errorf("caching gown stats: %w", err)
	}
	s.cache.Set(cache.GownStatsKey(eventID), gownStats)

	if ceremonies, err := s.server.FetchEventCeremonies(prefetchCtx, eventID); err == nil {
		if err := s.storages.Ceremonies.Save(ctx, ceremonies...); err == nil {
			s.cache.Set(cache.CeremoniesKey(eventID), ceremonies)
		}
	} else {
		s.log.Warn().Err(err).Int64("event_id", eventID).Msg("ceremonies prefetch skipped")
	}

	s.log.Info().
		Str("func", "OfflineCacheService.PrefetchEventData").
		Int64("event_id", eventID).
		Int("bookings", len(bookings)).
		Dur("took", time.Since(started)).
		Msg("event data prefetched")
	return nil
}

// IsEventDataCached reports whether a usable offline working set exists
// for the event: the event snapshot plus at least one of its bookings.
func (s *OfflineCacheService) IsEventDataCached(ctx context.Context, eventID int64) bool {
	event, err := s.storages.Events.Get(ctx, eventID)
	if err != nil || event == nil {
		return false
	}
	count, err := s.storages.Bookings.CountByEvent(ctx, eventID)
	return err == nil && count > 0
}

// GetEvent returns the cached event snapshot, fetching it remotely only
// when nothing is cached and the backend is reachable.
func (s *OfflineCacheService) GetEvent(ctx context.Context, eventID int64) (*models.Event, error) {
	if event, ok := cache.Lookup[models.Event](s.cache, cache.EventKey(eventID)); ok {
		return &event, nil
	}
	event, err := s.storages.Events.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event != nil {
		s.cache.Set(cache.EventKey(eventID), *event)
		return event, nil
	}
	if !s.signal.IsOnline() {
		return nil, ErrEventDataNotCached
	}
	fetched, err := s.server.FetchEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	fetched.CachedAt = time.Now().UTC()
	if err := s.storages.Events.Save(ctx, fetched); err != nil {
		return nil, err
	}
	s.cache.Set(cache.EventKey(eventID), fetched)
	return &fetched, nil
}

// GetEventBookings returns the event's bookings. The unsorted cached
// list backs the default request; an explicit sort always goes through
// the store so the collation matches what the desk expects.
func (s *OfflineCacheService) GetEventBookings(ctx context.Context, req models.BookingListRequest) ([]models.Booking, error) {
	if req.SortBy == "" {
		if list, ok := cache.Lookup[[]models.Booking](s.cache, cache.BookingsKey(req.EventID)); ok {
			return list, nil
		}
	}

	bookings, err := s.storages.Bookings.GetAllByEvent(ctx, req.EventID, req.SortBy, req.SortDirection)
	if err != nil {
		return nil, err
	}
	if len(bookings) > 0 {
		if req.SortBy == "" {
			s.cache.Set(cache.BookingsKey(req.EventID), bookings)
		}
		return bookings, nil
	}

	if !s.signal.IsOnline() {
		return nil, ErrEventDataNotCached
	}
	fetched, err := s.server.FetchAllEventBookings(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.storages.Bookings.Save(ctx, fetched...); err != nil {
		return nil, err
	}
	if req.SortBy == "" {
		s.cache.Set(cache.BookingsKey(req.EventID), fetched)
	}
	return fetched, nil
}

// GetBooking returns one locally cached booking, or nil when the
// booking has not been prefetched. Local only, like FindBookingByRFID.
func (s *OfflineCacheService) GetBooking(ctx context.Context, bookingID int64) (*models.Booking, error) {
	return s.storages.Bookings.Get(ctx, bookingID)
}

// GetBookingStats returns the event's aggregate counters. When no stats
// snapshot exists yet the counters are computed from the cached
// bookings, so a desk that prefetched before the stats endpoint existed
// still gets live numbers.
func (s *OfflineCacheService) GetBookingStats(ctx context.Context, eventID int64) (*models.BookingStats, error) {
	if stats, ok := cache.Lookup[models.BookingStats](s.cache, cache.StatsKey(eventID)); ok {
		return &stats, nil
	}
	stats, err := s.storages.BookingStats.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if stats != nil {
		s.cache.Set(cache.StatsKey(eventID), *stats)
		return stats, nil
	}
	if bookings, err := s.storages.Bookings.GetAllByEvent(ctx, eventID, "", ""); err == nil && len(bookings) > 0 {
		computed := computeStatsFromBookings(eventID, bookings)
		s.cache.Set(cache.StatsKey(eventID), computed)
		return &computed, nil
	}
	if !s.signal.IsOnline() {
		return nil, ErrEventDataNotCached
	}
	fetched, err := s.server.FetchBookingStats(ctx, eventID)
	if err != nil {
		return nil, err
	}
	fetched.EventID = eventID
	if err := s.storages.BookingStats.Save(ctx, fetched); err != nil {
		return nil, err
	}
	s.cache.Set(cache.StatsKey(eventID), fetched)
	return &fetched, nil
}

// GetDetailedGownStats returns the event's per-product gown breakdown.
func (s *OfflineCacheService) GetDetailedGownStats(ctx context.Context, eventID int64) (*models.DetailedGownStats, error) {
	if stats, ok := cache.Lookup[models.DetailedGownStats](s.cache, cache.GownStatsKey(eventID)); ok {
		return &stats, nil
	}
	stats, err := s.storages.GownStats.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if stats != nil {
		s.cache.Set(cache.GownStatsKey(eventID), *stats)
		return stats, nil
	}
	if !s.signal.IsOnline() {
		return nil, ErrEventDataNotCached
	}
	fetched, err := s.server.FetchDetailedGownStats(ctx, eventID)
	if err != nil {
		return nil, err
	}
	fetched.EventID = eventID
	if err := s.storages.GownStats.Save(ctx, fetched); err != nil {
		return nil, err
	}
	s.cache.Set(cache.GownStatsKey(eventID), fetched)
	return &fetched, nil
}

// GetEventCeremonies returns the event's ceremony slots.
func (s *OfflineCacheService) GetEventCeremonies(ctx context.Context, eventID int64) ([]models.Ceremony, error) {
	if ceremonies, ok := cache.Lookup[[]models.Ceremony](s.cache, cache.CeremoniesKey(eventID)); ok {
		return ceremonies, nil
	}
	ceremonies, err := s.storages.Ceremonies.GetAllByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if len(ceremonies) > 0 {
		s.cache.Set(cache.CeremoniesKey(eventID), ceremonies)
		return ceremonies, nil
	}
	if !s.signal.IsOnline() {
		return nil, ErrEventDataNotCached
	}
	fetched, err := s.server.FetchEventCeremonies(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := s.storages.Ceremonies.Save(ctx, fetched...); err != nil {
		return nil, err
	}
	s.cache.Set(cache.CeremoniesKey(eventID), fetched)
	return fetched, nil
}

func computeStatsFromBookings(eventID int64, bookings []models.Booking) models.BookingStats {
	stats := models.BookingStats{EventID: eventID, TotalCount: int64(len(bookings))}
	for _, b := range bookings {
		switch b.Status {
		case models.BookingStatusCollected:
			stats.CollectedCount++
		case models.BookingStatusReturned:
			stats.ReturnedCount++
		case models.BookingStatusLate:
			stats.LateCount++
		}
		if b.OrderType == "purchase" {
			stats.PurchaseCount++
		}
	}
	return stats
}

// FindBookingByRFID resolves a scanned tag to the booking currently
// holding that gown. Local only: during a session the local copy is the
// truth about which hands hold which gown.
func (s *OfflineCacheService) FindBookingByRFID(ctx context.Context, rfid string) (*models.Booking, error) {
	return s.storages.Bookings.GetByRFID(ctx, rfid)
}

// ClearAllData wipes every local collection and the session cache. The
// queue survives; staged operations outlive a cache reset.
func (s *OfflineCacheService) ClearAllData(ctx context.Context) error {
	for name, clear := range map[string]func(context.Context) error{
		"bookings":      s.storages.Bookings.Clear,
		"booking stats": s.storages.BookingStats.Clear,
		"gown stats":    s.storages.GownStats.Clear,
		"ceremonies":    s.storages.Ceremonies.Clear,
		"events":        s.storages.Events.Clear,
	} {
		if err := clear(ctx); err != nil {
			return fmt.Errorf("clearing %s: %w", name, err)
		}
	}
	s.cache.Clear()
	return nil
}
