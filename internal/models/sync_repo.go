package models

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

type SyncRepo interface {
	GetSyncMetadata(ctx context.Context, sourceID string) (*SyncMetadata, error)
	UpdateSyncMetadata(ctx context.Context, sourceID, status string, count int) error
}

type syncMetadataRow struct {
	ID          string `json:"id"`
	LastUpdated string `json:"last_updated"`
	RecordCount int    `json:"record_count"`
	Status      string `json:"status"`
}

// GetSyncMetadata returns the sync record for a source, or (nil, nil) when the
// source has never been synced.
func (su *SupabaseRepo) GetSyncMetadata(ctx context.Context, sourceID string) (*SyncMetadata, error) {
	data, count, err := su.supabaseClient.
		From(MetadataTable).
		Select("*", "exact", false).
		Eq("id", sourceID).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get sync metadata for %s: %v", sourceID, err)
	}
	if count == 0 {
		return nil, nil
	}

	var rows []syncMetadataRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sync metadata: %v", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	lastUpdated, err := ParseTimestamp(rows[0].LastUpdated)
	if err != nil {
		return nil, fmt.Errorf("sync metadata for %s has unparseable last_updated %q: %v", sourceID, rows[0].LastUpdated, err)
	}

	return &SyncMetadata{
		ID:          rows[0].ID,
		LastUpdated: lastUpdated,
		RecordCount: rows[0].RecordCount,
		Status:      rows[0].Status,
	}, nil
}

// UpdateSyncMetadata upserts the per-source sync record. Called after every
// sync attempt, success or failure.
func (su *SupabaseRepo) UpdateSyncMetadata(ctx context.Context, sourceID, status string, count int) error {
	row := map[string]interface{}{
		"id":           sourceID,
		"last_updated": time.Now().UTC().Format(time.RFC3339),
		"status":       status,
	}
	if status == SyncStatusSuccess {
		row["record_count"] = count
	}

	_, _, err := su.supabaseClient.
		From(MetadataTable).
		Insert(row, true, "id", "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to update sync metadata for %s: %v", sourceID, err)
	}
	return nil
}
