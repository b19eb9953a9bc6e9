package services

import (
	"context"
	"errors"
	"log/slog"
	"reflect"
	"testing"
	"time"

	"github.com/joshua-takyi/gigboard/internal/ingest"
	"github.com/joshua-takyi/gigboard/internal/models"
	"github.com/joshua-takyi/gigboard/internal/ticketmaster"
)

type fakeEventsRepo struct {
	events    []models.Event
	err       error
	listCalls int
}

func (f *fakeEventsRepo) UpsertEvents(ctx context.Context, events []models.Event) error { return nil }

func (f *fakeEventsRepo) ListEvents(ctx context.Context) ([]models.Event, error) {
	f.listCalls++
	return f.events, f.err
}

func (f *fakeEventsRepo) GetEventByID(ctx context.Context, id string) (*models.Event, error) {
	for i := range f.events {
		if f.events[i].ID == id {
			return &f.events[i], nil
		}
	}
	return nil, nil
}

type fakeEventProvider struct {
	events     []ticketmaster.RawEvent
	err        error
	fetchCalls int
}

func (f *fakeEventProvider) FetchEvents(ctx context.Context, country string, filters ticketmaster.Filters) ([]ticketmaster.RawEvent, error) {
	f.fetchCalls++
	return f.events, f.err
}

func (f *fakeEventProvider) FetchEvent(ctx context.Context, id string) (*ticketmaster.RawEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.events {
		if f.events[i].Payload.ID == id {
			return &f.events[i], nil
		}
	}
	return nil, nil
}

func providerEvent(id, dateTime string) ticketmaster.RawEvent {
	p := ticketmaster.EventPayload{ID: id, Name: "Show " + id}
	p.Dates.Start.DateTime = dateTime
	return ticketmaster.RawEvent{Payload: p, Raw: []byte(`{}`)}
}

func storedEvent(id string, rawDate time.Time) models.Event {
	return models.Event{ID: id, Title: "Show " + id, Venue: "The Hall", RawDate: rawDate}
}

func newTestService(repo models.EventsRepo, provider EventProvider) *EventService {
	return NewEventService(repo, provider, nil, nil, "DK", slog.Default())
}

func TestGetEventsFromStore(t *testing.T) {
	now := time.Date(2027, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakeEventsRepo{events: []models.Event{
		storedEvent("tm-1", now.Add(24*time.Hour)),
		storedEvent("tm-2", now.Add(48*time.Hour)),
	}}
	provider := &fakeEventProvider{}
	svc := newTestService(repo, provider)

	events, source := svc.GetEvents(context.Background())

	if source != SourceStore {
		t.Errorf("expected store tier, got %s", source)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if provider.fetchCalls != 0 {
		t.Error("provider must not be called when the store succeeds")
	}
	for i := 1; i < len(events); i++ {
		if events[i].RawDate.Before(events[i-1].RawDate) {
			t.Error("events must be non-decreasing by raw date")
		}
	}
}

func TestGetEventsFallsBackToProviderOnStoreError(t *testing.T) {
	repo := &fakeEventsRepo{err: errors.New("connection refused")}
	provider := &fakeEventProvider{events: []ticketmaster.RawEvent{
		providerEvent("b", "2027-06-01T20:00:00Z"),
		providerEvent("a", "2027-05-01T20:00:00Z"),
	}}
	svc := newTestService(repo, provider)

	events, source := svc.GetEvents(context.Background())

	if source != SourceLive {
		t.Errorf("expected live tier, got %s", source)
	}
	if provider.fetchCalls != 1 {
		t.Errorf("expected exactly one provider call, got %d", provider.fetchCalls)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 normalized events, got %d", len(events))
	}
	// live results are sorted before returning
	if events[0].ID != "tm-a" || events[1].ID != "tm-b" {
		t.Errorf("expected sorted live results, got %s, %s", events[0].ID, events[1].ID)
	}
}

func TestGetEventsFallsBackToProviderOnEmptyStore(t *testing.T) {
	repo := &fakeEventsRepo{events: []models.Event{}}
	provider := &fakeEventProvider{events: []ticketmaster.RawEvent{
		providerEvent("a", "2027-05-01T20:00:00Z"),
	}}
	svc := newTestService(repo, provider)

	_, source := svc.GetEvents(context.Background())

	if source != SourceLive {
		t.Errorf("expected live tier on empty store, got %s", source)
	}
	if provider.fetchCalls != 1 {
		t.Errorf("expected exactly one provider call, got %d", provider.fetchCalls)
	}
}

func TestGetEventsTotalFailureReturnsSampleData(t *testing.T) {
	repo := &fakeEventsRepo{err: errors.New("db down")}
	provider := &fakeEventProvider{err: errors.New("api down")}
	svc := newTestService(repo, provider)

	events, source := svc.GetEvents(context.Background())

	if source != SourceSample {
		t.Errorf("expected sample tier, got %s", source)
	}
	if !source.Degraded() {
		t.Error("sample tier must report degraded")
	}
	if !reflect.DeepEqual(events, SampleEvents()) {
		t.Error("total failure must return the bundled sample dataset exactly")
	}
}

func TestGetEventsUsesExpiredCacheBeforeSampleData(t *testing.T) {
	now := time.Date(2027, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakeEventsRepo{events: []models.Event{storedEvent("tm-1", now.Add(24 * time.Hour))}}
	provider := &fakeEventProvider{}
	svc := newTestService(repo, provider)

	clock := now
	svc.now = func() time.Time { return clock }

	// prime the cache from the store
	if _, source := svc.GetEvents(context.Background()); source != SourceStore {
		t.Fatalf("expected store tier on first read, got %s", source)
	}

	// move past the cache TTL and break both backends
	clock = clock.Add(time.Hour)
	repo.err = errors.New("db down")
	repo.events = nil
	provider.err = errors.New("api down")

	events, source := svc.GetEvents(context.Background())
	if source != SourceStaleCache {
		t.Errorf("expected stale cache tier, got %s", source)
	}
	if !source.Degraded() {
		t.Error("stale cache tier must report degraded")
	}
	if len(events) != 1 || events[0].ID != "tm-1" {
		t.Error("expected cached events to be served")
	}
}

func TestGetEventsFreshCacheAvoidsSecondStoreRead(t *testing.T) {
	now := time.Date(2027, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakeEventsRepo{events: []models.Event{storedEvent("tm-1", now.Add(24 * time.Hour))}}
	svc := newTestService(repo, &fakeEventProvider{})
	svc.now = func() time.Time { return now }

	svc.GetEvents(context.Background())
	svc.GetEvents(context.Background())

	if repo.listCalls != 1 {
		t.Errorf("expected 1 store read within the cache TTL, got %d", repo.listCalls)
	}
}

func TestJustAnnouncedWindow(t *testing.T) {
	now := time.Date(2027, 3, 10, 12, 0, 0, 0, time.UTC)
	recent := now.Add(-3 * 24 * time.Hour)
	old := now.Add(-10 * 24 * time.Hour)

	recentEv := storedEvent("tm-recent", now.Add(30*24*time.Hour))
	recentEv.OnSaleDate = &recent
	oldEv := storedEvent("tm-old", now.Add(30*24*time.Hour))
	oldEv.OnSaleDate = &old

	repo := &fakeEventsRepo{events: []models.Event{recentEv, oldEv}}
	svc := newTestService(repo, &fakeEventProvider{})
	svc.now = func() time.Time { return now }

	announced := svc.JustAnnounced(context.Background(), 8)

	if len(announced) != 1 {
		t.Fatalf("expected 1 just-announced event, got %d", len(announced))
	}
	if announced[0].ID != "tm-recent" {
		t.Errorf("expected the 3-day-old announcement, got %s", announced[0].ID)
	}
}

func TestUpcomingWindowAndCap(t *testing.T) {
	now := time.Date(2027, 3, 1, 12, 0, 0, 0, time.UTC)
	var stored []models.Event
	// 14 events inside the window, one outside, one in the past
	for i := 0; i < 14; i++ {
		stored = append(stored, storedEvent(string(rune('a'+i)), now.Add(time.Duration(i+1)*24*time.Hour)))
	}
	stored = append(stored, storedEvent("far", now.Add(90*24*time.Hour)))
	past := storedEvent("past", now.Add(-24*time.Hour))
	stored = append([]models.Event{past}, stored...)

	repo := &fakeEventsRepo{events: stored}
	svc := newTestService(repo, &fakeEventProvider{})
	svc.now = func() time.Time { return now }

	upcoming := svc.Upcoming(context.Background(), 30)

	if len(upcoming) != 12 {
		t.Fatalf("expected cap of 12 upcoming events, got %d", len(upcoming))
	}
	for _, ev := range upcoming {
		if ev.ID == "past" || ev.ID == "far" {
			t.Errorf("event %s is outside the window", ev.ID)
		}
	}
}

func TestFeaturedFiltersAndCaps(t *testing.T) {
	now := time.Date(2027, 3, 1, 12, 0, 0, 0, time.UTC)
	var stored []models.Event
	for i := 0; i < 12; i++ {
		ev := storedEvent(string(rune('a'+i)), now.Add(time.Duration(i+1)*24*time.Hour))
		ev.IsFeatured = true
		stored = append(stored, ev)
	}
	pastFeatured := storedEvent("past", now.Add(-24*time.Hour))
	pastFeatured.IsFeatured = true
	plain := storedEvent("plain", now.Add(24*time.Hour))
	stored = append(stored, pastFeatured, plain)

	repo := &fakeEventsRepo{events: stored}
	svc := newTestService(repo, &fakeEventProvider{})
	svc.now = func() time.Time { return now }

	featured := svc.Featured(context.Background())

	if len(featured) != 10 {
		t.Fatalf("expected cap of 10 featured events, got %d", len(featured))
	}
	for _, ev := range featured {
		if !ev.IsFeatured {
			t.Errorf("event %s is not featured", ev.ID)
		}
		if ev.RawDate.Before(now) {
			t.Errorf("event %s is in the past", ev.ID)
		}
	}
}

func TestVenueEventsSubstringMatch(t *testing.T) {
	now := time.Date(2027, 3, 1, 12, 0, 0, 0, time.UTC)
	hall := storedEvent("tm-1", now.Add(24*time.Hour))
	hall.Venue = "Royal Concert Hall"
	arena := storedEvent("tm-2", now.Add(48*time.Hour))
	arena.Venue = "City Arena"

	repo := &fakeEventsRepo{events: []models.Event{hall, arena}}
	svc := newTestService(repo, &fakeEventProvider{})

	matched := svc.VenueEvents(context.Background(), "concert hall")
	if len(matched) != 1 || matched[0].ID != "tm-1" {
		t.Errorf("expected substring match on venue name, got %v", matched)
	}

	if got := svc.VenueEvents(context.Background(), "  "); len(got) != 0 {
		t.Errorf("blank venue name must match nothing, got %d", len(got))
	}
}

func TestGetEventFallsBackToProvider(t *testing.T) {
	repo := &fakeEventsRepo{}
	provider := &fakeEventProvider{events: []ticketmaster.RawEvent{
		providerEvent("abc", "2027-05-01T20:00:00Z"),
	}}
	svc := newTestService(repo, provider)

	ev, err := svc.GetEvent(context.Background(), "tm-abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev == nil {
		t.Fatal("expected event from provider fallback")
	}
	if ev.ID != "tm-abc" {
		t.Errorf("expected namespaced ID tm-abc, got %s", ev.ID)
	}

	missing, err := svc.GetEvent(context.Background(), "tm-nope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for unknown event")
	}
}

// Staleness-triggered sync: the read must not block and at most one sync may
// run at a time.

type syncProbeStore struct {
	done chan struct{}
}

func (s *syncProbeStore) UpsertVenues(ctx context.Context, venues []models.Venue) error { return nil }
func (s *syncProbeStore) UpsertEvents(ctx context.Context, events []models.Event) error { return nil }
func (s *syncProbeStore) UpdateSyncMetadata(ctx context.Context, sourceID, status string, count int) error {
	s.done <- struct{}{}
	return nil
}

type neverSyncedReader struct{}

func (neverSyncedReader) GetSyncMetadata(ctx context.Context, sourceID string) (*models.SyncMetadata, error) {
	return nil, nil
}

func TestStaleReadTriggersDetachedSync(t *testing.T) {
	now := time.Date(2027, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakeEventsRepo{events: []models.Event{storedEvent("tm-1", now.Add(24 * time.Hour))}}
	provider := &fakeEventProvider{events: []ticketmaster.RawEvent{
		providerEvent("a", "2027-05-01T20:00:00Z"),
	}}

	probe := &syncProbeStore{done: make(chan struct{}, 1)}
	gate := ingest.NewGate(neverSyncedReader{}, 24*time.Hour)
	syncer := ingest.NewSyncer(provider, probe, "DK", slog.Default())

	svc := NewEventService(repo, provider, gate, syncer, "DK", slog.Default())

	events, source := svc.GetEvents(context.Background())
	if source != SourceStore {
		t.Errorf("read must be served from the store while sync runs, got %s", source)
	}
	if len(events) != 1 {
		t.Errorf("expected 1 event, got %d", len(events))
	}

	select {
	case <-probe.done:
	case <-time.After(2 * time.Second):
		t.Fatal("expected background sync to run")
	}
}
