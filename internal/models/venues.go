package models

import "encoding/json"

// Venue is a performance location referenced by events via Event.VenueID.
// Venues are created and updated only during sync and are never deleted; the
// reference from an event is weak, so an event may outlive a resolvable venue.
type Venue struct {
	ID         string  `db:"id" json:"id"`
	Name       string  `db:"name" json:"name"`
	City       string  `db:"city" json:"city,omitempty"`
	Address    string  `db:"address" json:"address,omitempty"`
	PostalCode string  `db:"postal_code" json:"postal_code,omitempty"`
	State      string  `db:"state" json:"state,omitempty"`
	Country    string  `db:"country" json:"country,omitempty"`
	Latitude   float64 `db:"latitude" json:"latitude,omitempty"`
	Longitude  float64 `db:"longitude" json:"longitude,omitempty"`
	URL        string  `db:"url" json:"url,omitempty"`
	ImageURL   string  `db:"image_url" json:"image_url,omitempty"`

	RawData json.RawMessage `db:"raw_data" json:"raw_data,omitempty"`

	// Supabase returns timestamps as strings; venues only ever surface them
	// for display, so they are not parsed.
	CreatedAt string `db:"created_at" json:"created_at,omitempty"`
	UpdatedAt string `db:"updated_at" json:"updated_at,omitempty"`
}
