package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/joshua-takyi/gigboard/internal/models"
)

type fakeMetadataReader struct {
	meta *models.SyncMetadata
	err  error
}

func (f *fakeMetadataReader) GetSyncMetadata(ctx context.Context, sourceID string) (*models.SyncMetadata, error) {
	return f.meta, f.err
}

func TestShouldSync(t *testing.T) {
	now := time.Date(2027, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		meta *models.SyncMetadata
		want bool
	}{
		{
			name: "no metadata row",
			meta: nil,
			want: true,
		},
		{
			name: "last sync 25h ago",
			meta: &models.SyncMetadata{ID: SourceTicketmaster, LastUpdated: now.Add(-25 * time.Hour)},
			want: true,
		},
		{
			name: "last sync 1h ago",
			meta: &models.SyncMetadata{ID: SourceTicketmaster, LastUpdated: now.Add(-time.Hour)},
			want: false,
		},
		{
			name: "exactly at threshold",
			meta: &models.SyncMetadata{ID: SourceTicketmaster, LastUpdated: now.Add(-24 * time.Hour)},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate := NewGate(&fakeMetadataReader{meta: tt.meta}, 24*time.Hour)
			gate.now = func() time.Time { return now }

			got, err := gate.ShouldSync(context.Background(), SourceTicketmaster)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ShouldSync = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShouldSyncPropagatesReadErrors(t *testing.T) {
	gate := NewGate(&fakeMetadataReader{err: errors.New("connection refused")}, 24*time.Hour)

	_, err := gate.ShouldSync(context.Background(), SourceTicketmaster)
	if err == nil {
		t.Fatal("expected error from metadata read to propagate")
	}
}
