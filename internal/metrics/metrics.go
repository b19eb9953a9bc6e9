package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SyncRuns counts sync cycles by outcome ("success" or "error").
	SyncRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gigboard_sync_runs_total",
		Help: "Sync cycles against the external event source, by outcome.",
	}, []string{"outcome"})

	EventsUpserted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gigboard_events_upserted_total",
		Help: "Normalized events written to the store by the syncer.",
	})

	// EventReads counts reads by the tier that served them: store, live,
	// stale_cache or sample. Anything past "store" means degraded service.
	EventReads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gigboard_event_reads_total",
		Help: "Event list reads by the fallback tier that served them.",
	}, []string{"source"})
)
