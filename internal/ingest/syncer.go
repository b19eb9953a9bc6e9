package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/joshua-takyi/gigboard/internal/metrics"
	"github.com/joshua-takyi/gigboard/internal/models"
	"github.com/joshua-takyi/gigboard/internal/ticketmaster"
)

// SourceTicketmaster is the sync metadata key for the Ticketmaster source.
const SourceTicketmaster = "ticketmaster"

type Provider interface {
	FetchEvents(ctx context.Context, country string, filters ticketmaster.Filters) ([]ticketmaster.RawEvent, error)
}

type Store interface {
	UpsertVenues(ctx context.Context, venues []models.Venue) error
	UpsertEvents(ctx context.Context, events []models.Event) error
	UpdateSyncMetadata(ctx context.Context, sourceID, status string, count int) error
}

// Syncer runs the batch pull-normalize-persist cycle for one source.
type Syncer struct {
	provider Provider
	store    Store
	country  string
	logger   *slog.Logger
}

func NewSyncer(provider Provider, store Store, country string, logger *slog.Logger) *Syncer {
	return &Syncer{
		provider: provider,
		store:    store,
		country:  country,
		logger:   logger,
	}
}

// Sync fetches, normalizes and upserts one batch. Venues are written before
// events so event rows never reference a venue the store has not seen. The
// sync metadata row is updated on every outcome, including failures, so the
// staleness gate always works from the latest attempt.
func (s *Syncer) Sync(ctx context.Context) (count int, err error) {
	defer func() {
		status := models.SyncStatusSuccess
		outcome := "success"
		if err != nil {
			status = "error: " + err.Error()
			outcome = "error"
		}
		metrics.SyncRuns.WithLabelValues(outcome).Inc()
		if mErr := s.store.UpdateSyncMetadata(ctx, SourceTicketmaster, status, count); mErr != nil {
			s.logger.Error("failed to record sync metadata", "source", SourceTicketmaster, "error", mErr)
		}
	}()

	raw, err := s.provider.FetchEvents(ctx, s.country, ticketmaster.Filters{
		ClassificationName: "Music",
	})
	if err != nil {
		return 0, fmt.Errorf("fetch from provider failed: %w", err)
	}

	events := Normalize(raw)
	venueMap := CollectVenues(raw, s.logger)

	venues := make([]models.Venue, 0, len(venueMap))
	for _, v := range venueMap {
		venues = append(venues, v)
	}

	// Venue failure aborts the sync: events could otherwise reference venues
	// that were never written.
	if err = s.store.UpsertVenues(ctx, venues); err != nil {
		return 0, fmt.Errorf("venue upsert failed: %w", err)
	}

	// If this fails the venues stay persisted, which is harmless.
	if err = s.store.UpsertEvents(ctx, events); err != nil {
		return 0, fmt.Errorf("event upsert failed: %w", err)
	}

	metrics.EventsUpserted.Add(float64(len(events)))
	s.logger.Info("sync completed", "source", SourceTicketmaster, "events", len(events), "venues", len(venues))
	return len(events), nil
}
