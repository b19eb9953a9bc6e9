package models

import "time"

// SyncStatusSuccess is the status recorded after a clean sync. Failures are
// recorded as "error: <message>".
const SyncStatusSuccess = "success"

// SyncMetadata tracks the last sync attempt per external source. One row per
// source, keyed by the source name (e.g. "ticketmaster").
type SyncMetadata struct {
	ID          string    `db:"id" json:"id"`
	LastUpdated time.Time `db:"last_updated" json:"last_updated"`
	RecordCount int       `db:"record_count" json:"record_count"`
	Status      string    `db:"status" json:"status"`
}
