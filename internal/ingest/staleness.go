package ingest

import (
	"context"
	"time"

	"github.com/joshua-takyi/gigboard/internal/models"
)

type MetadataReader interface {
	GetSyncMetadata(ctx context.Context, sourceID string) (*models.SyncMetadata, error)
}

// Gate decides whether persisted data for a source is old enough to warrant a
// refresh. It is the sole trigger for re-fetching from the provider.
type Gate struct {
	meta   MetadataReader
	maxAge time.Duration
	now    func() time.Time
}

func NewGate(meta MetadataReader, maxAge time.Duration) *Gate {
	return &Gate{
		meta:   meta,
		maxAge: maxAge,
		now:    time.Now,
	}
}

// ShouldSync reports whether a source needs a refresh: true when the source
// has never been synced, or when the last sync is older than the threshold.
func (g *Gate) ShouldSync(ctx context.Context, sourceID string) (bool, error) {
	meta, err := g.meta.GetSyncMetadata(ctx, sourceID)
	if err != nil {
		return false, err
	}
	if meta == nil {
		return true, nil
	}
	return g.now().Sub(meta.LastUpdated) > g.maxAge, nil
}
