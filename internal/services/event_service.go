package services

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/joshua-takyi/gigboard/internal/ingest"
	"github.com/joshua-takyi/gigboard/internal/metrics"
	"github.com/joshua-takyi/gigboard/internal/models"
	"github.com/joshua-takyi/gigboard/internal/ticketmaster"
)

// Source identifies which fallback tier served a read: the store, a live
// provider fetch, the expired session cache, or the bundled sample set.
// Anything past SourceStore means degraded service.
type Source string

const (
	SourceStore      Source = "store"
	SourceLive       Source = "live"
	SourceStaleCache Source = "stale_cache"
	SourceSample     Source = "sample"
)

// Degraded reports whether data from this source should carry a user-visible
// warning.
func (s Source) Degraded() bool {
	return s == SourceStaleCache || s == SourceSample
}

type EventProvider interface {
	FetchEvents(ctx context.Context, country string, filters ticketmaster.Filters) ([]ticketmaster.RawEvent, error)
	FetchEvent(ctx context.Context, id string) (*ticketmaster.RawEvent, error)
}

// sessionCache is the short-lived in-process cache that absorbs repeated
// reads within a session. It never survives a restart.
type sessionCache struct {
	fetchedAt time.Time
	events    []models.Event
	source    Source
}

// EventService is the client read path. GetEvents never fails: it degrades
// through four tiers (fresh store, live API, expired cache, sample data) and
// always returns some slice.
type EventService struct {
	events   models.EventsRepo
	provider EventProvider
	gate     *ingest.Gate
	syncer   *ingest.Syncer
	country  string
	logger   *slog.Logger

	cacheTTL    time.Duration
	syncTimeout time.Duration
	now         func() time.Time

	mu    sync.Mutex
	cache *sessionCache

	syncInFlight atomic.Bool
}

func NewEventService(
	events models.EventsRepo,
	provider EventProvider,
	gate *ingest.Gate,
	syncer *ingest.Syncer,
	country string,
	logger *slog.Logger,
) *EventService {
	return &EventService{
		events:      events,
		provider:    provider,
		gate:        gate,
		syncer:      syncer,
		country:     country,
		logger:      logger,
		cacheTTL:    5 * time.Minute,
		syncTimeout: 2 * time.Minute,
		now:         time.Now,
	}
}

// GetEvents returns the current event list and the tier that produced it.
// A staleness check may spawn a background sync, but the read never waits on
// it.
func (s *EventService) GetEvents(ctx context.Context) ([]models.Event, Source) {
	if events, src, ok := s.freshCache(); ok {
		metrics.EventReads.WithLabelValues(string(src)).Inc()
		return events, src
	}

	s.maybeTriggerSync(ctx)

	events, err := s.events.ListEvents(ctx)
	if err == nil && len(events) > 0 {
		s.storeCache(events, SourceStore)
		metrics.EventReads.WithLabelValues(string(SourceStore)).Inc()
		return events, SourceStore
	}
	if err != nil {
		s.logger.Warn("event store read failed, falling back to live fetch", "error", err)
	} else {
		s.logger.Warn("event store returned no rows, falling back to live fetch")
	}

	raw, fetchErr := s.provider.FetchEvents(ctx, s.country, ticketmaster.Filters{
		ClassificationName: "Music",
	})
	if fetchErr == nil {
		live := ingest.Normalize(raw)
		sort.Slice(live, func(i, j int) bool {
			return live[i].RawDate.Before(live[j].RawDate)
		})
		s.storeCache(live, SourceLive)
		metrics.EventReads.WithLabelValues(string(SourceLive)).Inc()
		return live, SourceLive
	}
	s.logger.Error("live provider fetch failed", "error", fetchErr)

	if events, ok := s.expiredCache(); ok {
		metrics.EventReads.WithLabelValues(string(SourceStaleCache)).Inc()
		return events, SourceStaleCache
	}

	metrics.EventReads.WithLabelValues(string(SourceSample)).Inc()
	return SampleEvents(), SourceSample
}

// GetEvent reads a single event from the store, falling back to a direct
// provider lookup when the store misses or errors. Returns (nil, nil) when
// the event cannot be found anywhere.
func (s *EventService) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	ev, err := s.events.GetEventByID(ctx, id)
	if err == nil && ev != nil {
		return ev, nil
	}
	if err != nil {
		s.logger.Warn("event store lookup failed, falling back to provider", "id", id, "error", err)
	}

	raw, err := s.provider.FetchEvent(ctx, ingest.StripNamespace(id))
	if err != nil || raw == nil {
		return nil, err
	}
	normalized := ingest.Normalize([]ticketmaster.RawEvent{*raw})
	if len(normalized) == 0 {
		return nil, nil
	}
	return &normalized[0], nil
}

// JustAnnounced returns events that went on sale within the last 7 days,
// newest announcement first.
func (s *EventService) JustAnnounced(ctx context.Context, limit int) []models.Event {
	if limit <= 0 {
		limit = 8
	}
	now := s.now()
	cutoff := now.Add(-7 * 24 * time.Hour)

	all, _ := s.GetEvents(ctx)
	announced := make([]models.Event, 0, limit)
	for _, ev := range all {
		if ev.OnSaleDate == nil {
			continue
		}
		if ev.OnSaleDate.After(cutoff) && !ev.OnSaleDate.After(now) {
			announced = append(announced, ev)
		}
	}
	sort.Slice(announced, func(i, j int) bool {
		return announced[i].OnSaleDate.After(*announced[j].OnSaleDate)
	})
	if len(announced) > limit {
		announced = announced[:limit]
	}
	return announced
}

// Upcoming returns events within the next N days, capped to 12.
func (s *EventService) Upcoming(ctx context.Context, days int) []models.Event {
	if days <= 0 {
		days = 30
	}
	now := s.now()
	horizon := now.Add(time.Duration(days) * 24 * time.Hour)

	all, _ := s.GetEvents(ctx)
	upcoming := make([]models.Event, 0, 12)
	for _, ev := range all {
		if ev.RawDate.Before(now) || ev.RawDate.After(horizon) {
			continue
		}
		upcoming = append(upcoming, ev)
		if len(upcoming) == 12 {
			break
		}
	}
	return upcoming
}

// Featured returns editorially featured events that have not happened yet,
// soonest first, capped to 10.
func (s *EventService) Featured(ctx context.Context) []models.Event {
	now := s.now()

	all, _ := s.GetEvents(ctx)
	featured := make([]models.Event, 0, 10)
	for _, ev := range all {
		if !ev.IsFeatured || ev.RawDate.Before(now) {
			continue
		}
		featured = append(featured, ev)
		if len(featured) == 10 {
			break
		}
	}
	return featured
}

// VenueEvents matches on the venue display string, not the venue ID, so it is
// approximate by design: provider venue records and display names drift.
func (s *EventService) VenueEvents(ctx context.Context, venueName string) []models.Event {
	needle := strings.ToLower(strings.TrimSpace(venueName))
	if needle == "" {
		return []models.Event{}
	}

	all, _ := s.GetEvents(ctx)
	matched := make([]models.Event, 0)
	for _, ev := range all {
		if strings.Contains(strings.ToLower(ev.Venue), needle) {
			matched = append(matched, ev)
		}
	}
	return matched
}

// maybeTriggerSync asks the staleness gate whether a refresh is due and, if
// so, spawns the sync detached from this request. The in-flight flag keeps
// concurrent readers from starting duplicate syncs. Gate errors are swallowed:
// a failed staleness check must never slow or fail a read.
func (s *EventService) maybeTriggerSync(ctx context.Context) {
	if s.gate == nil || s.syncer == nil {
		return
	}

	stale, err := s.gate.ShouldSync(ctx, ingest.SourceTicketmaster)
	if err != nil {
		s.logger.Debug("staleness check failed", "error", err)
		return
	}
	if !stale {
		return
	}
	if !s.syncInFlight.CompareAndSwap(false, true) {
		return
	}

	go func() {
		defer s.syncInFlight.Store(false)
		// Detached from the triggering request's context.
		syncCtx, cancel := context.WithTimeout(context.Background(), s.syncTimeout)
		defer cancel()
		if _, err := s.syncer.Sync(syncCtx); err != nil {
			s.logger.Error("background sync failed", "error", err)
		}
	}()
}

func (s *EventService) freshCache() ([]models.Event, Source, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cache == nil || s.now().Sub(s.cache.fetchedAt) > s.cacheTTL {
		return nil, "", false
	}
	return s.cache.events, s.cache.source, true
}

func (s *EventService) expiredCache() ([]models.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cache == nil {
		return nil, false
	}
	return s.cache.events, true
}

func (s *EventService) storeCache(events []models.Event, source Source) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = &sessionCache{
		fetchedAt: s.now(),
		events:    events,
		source:    source,
	}
}
