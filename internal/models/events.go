package models

import (
	"encoding/json"
	"time"
)

type EventType string

const (
	EventTypeConcert  EventType = "concert"
	EventTypeFestival EventType = "festival"
)

// PlaceholderImage is used by the normalizer when the provider payload
// carries no usable image.
const PlaceholderImage = "/images/event-placeholder.jpg"

// Event is the canonical, provider-agnostic event record. IDs are namespaced
// per source (e.g. "tm-G5vYZ4x..."), so one table can hold multiple providers
// without collisions.
type Event struct {
	ID      string `db:"id" json:"id"`
	Title   string `db:"title" json:"title"`
	Artist  string `db:"artist" json:"artist"`
	Venue   string `db:"venue" json:"venue"`
	VenueID string `db:"venue_id" json:"venue_id,omitempty"`

	// Date and Time are display strings (fixed English locale). RawDate is
	// the full ISO instant and is the only field used for sorting and range
	// comparisons.
	Date       string     `db:"date" json:"date"`
	Time       string     `db:"time" json:"time"`
	RawDate    time.Time  `db:"raw_date" json:"raw_date"`
	OnSaleDate *time.Time `db:"on_sale_date" json:"on_sale_date,omitempty"`

	Genre    string `db:"genre" json:"genre,omitempty"`
	SubGenre string `db:"subgenre" json:"subgenre,omitempty"`

	// MaxPrice is only set when strictly greater than MinPrice; an equal
	// min/max pair from the provider collapses to a single price.
	MinPrice *float64 `db:"min_price" json:"min_price,omitempty"`
	MaxPrice *float64 `db:"max_price" json:"max_price,omitempty"`

	ImageURL  string    `db:"image_url" json:"image_url"`
	TicketURL string    `db:"ticket_url" json:"ticket_url,omitempty"`
	Type      EventType `db:"type" json:"type"`
	Country   string    `db:"country" json:"country,omitempty"`

	IsFeatured bool `db:"is_featured" json:"is_featured"`
	IsHidden   bool `db:"is_hidden" json:"is_hidden"`

	// RawData archives the provider payload for fields that were never
	// promoted to first-class columns. ArtistLinks holds the attraction's
	// external links (spotify, homepage, ...) as provider-shaped JSON.
	RawData     json.RawMessage `db:"raw_data" json:"raw_data,omitempty"`
	ArtistLinks json.RawMessage `db:"artist_links" json:"artist_links,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at,omitempty"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at,omitempty"`
}
