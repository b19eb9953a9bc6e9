package models

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

type VenuesRepo interface {
	UpsertVenues(ctx context.Context, venues []Venue) error
	ListVenues(ctx context.Context, offset, limit int) ([]Venue, error)
}

// UpsertVenues writes venues keyed by id. Venues must be written before the
// events that reference them; the syncer enforces that ordering.
func (su *SupabaseRepo) UpsertVenues(ctx context.Context, venues []Venue) error {
	if len(venues) == 0 {
		return nil
	}

	now := time.Now().UTC().Format(time.RFC3339)
	rows := make([]map[string]interface{}, 0, len(venues))
	for _, v := range venues {
		rows = append(rows, map[string]interface{}{
			"id":          v.ID,
			"name":        v.Name,
			"city":        nilIfEmpty(v.City),
			"address":     nilIfEmpty(v.Address),
			"postal_code": nilIfEmpty(v.PostalCode),
			"state":       nilIfEmpty(v.State),
			"country":     nilIfEmpty(v.Country),
			"latitude":    v.Latitude,
			"longitude":   v.Longitude,
			"url":         nilIfEmpty(v.URL),
			"image_url":   nilIfEmpty(v.ImageURL),
			"raw_data":    v.RawData,
			"updated_at":  now,
		})
	}

	_, _, err := su.supabaseClient.
		From(VenuesTable).
		Insert(rows, true, "id", "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to upsert %d venues: %v", len(venues), err)
	}
	return nil
}

func (su *SupabaseRepo) ListVenues(ctx context.Context, offset, limit int) ([]Venue, error) {
	data, count, err := su.supabaseClient.
		From(VenuesTable).
		Select("*", "exact", false).
		Range(offset, offset+limit-1, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get venues: %v", err)
	}
	if count == 0 {
		return []Venue{}, nil
	}

	var venues []Venue
	if err := json.Unmarshal(data, &venues); err != nil {
		return nil, fmt.Errorf("failed to unmarshal venues: %v", err)
	}
	return venues, nil
}
