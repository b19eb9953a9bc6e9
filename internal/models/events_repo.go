package models

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/supabase-community/postgrest-go"
)

type EventsRepo interface {
	UpsertEvents(ctx context.Context, events []Event) error
	ListEvents(ctx context.Context) ([]Event, error)
	GetEventByID(ctx context.Context, id string) (*Event, error)
}

// eventRow is the intermediate shape used when unmarshaling from Supabase,
// which returns timestamps as strings.
type eventRow struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Artist     string   `json:"artist"`
	Venue      string   `json:"venue"`
	VenueID    *string  `json:"venue_id"`
	Date       string   `json:"date"`
	Time       string   `json:"time"`
	RawDate    string   `json:"raw_date"`
	OnSaleDate *string  `json:"on_sale_date"`
	Genre      *string  `json:"genre"`
	SubGenre   *string  `json:"subgenre"`
	MinPrice   *float64 `json:"min_price"`
	MaxPrice   *float64 `json:"max_price"`
	ImageURL   string   `json:"image_url"`
	TicketURL  *string  `json:"ticket_url"`
	Type       string   `json:"type"`
	Country    *string  `json:"country"`
	IsFeatured bool     `json:"is_featured"`
	IsHidden   bool     `json:"is_hidden"`

	RawData     json.RawMessage `json:"raw_data"`
	ArtistLinks json.RawMessage `json:"artist_links"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (r *eventRow) toEvent() (Event, error) {
	rawDate, err := ParseTimestamp(r.RawDate)
	if err != nil {
		return Event{}, fmt.Errorf("event %s has unparseable raw_date %q: %v", r.ID, r.RawDate, err)
	}

	ev := Event{
		ID:          r.ID,
		Title:       r.Title,
		Artist:      r.Artist,
		Venue:       r.Venue,
		Date:        r.Date,
		Time:        r.Time,
		RawDate:     rawDate,
		MinPrice:    r.MinPrice,
		MaxPrice:    r.MaxPrice,
		ImageURL:    r.ImageURL,
		Type:        EventType(r.Type),
		IsFeatured:  r.IsFeatured,
		IsHidden:    r.IsHidden,
		RawData:     r.RawData,
		ArtistLinks: r.ArtistLinks,
	}
	if r.VenueID != nil {
		ev.VenueID = *r.VenueID
	}
	if r.Genre != nil {
		ev.Genre = *r.Genre
	}
	if r.SubGenre != nil {
		ev.SubGenre = *r.SubGenre
	}
	if r.TicketURL != nil {
		ev.TicketURL = *r.TicketURL
	}
	if r.Country != nil {
		ev.Country = *r.Country
	}
	if r.OnSaleDate != nil {
		if t, err := ParseTimestamp(*r.OnSaleDate); err == nil {
			ev.OnSaleDate = &t
		}
	}
	if t, err := ParseTimestamp(r.CreatedAt); err == nil {
		ev.CreatedAt = t
	}
	if t, err := ParseTimestamp(r.UpdatedAt); err == nil {
		ev.UpdatedAt = t
	}
	return ev, nil
}

// ParseTimestamp handles both RFC3339 timestamps and the offset-less form
// Postgres uses for "timestamp without time zone" columns.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", s)
}

func eventToRowData(ev Event, now time.Time) map[string]interface{} {
	data := map[string]interface{}{
		"id":           ev.ID,
		"title":        ev.Title,
		"artist":       ev.Artist,
		"venue":        ev.Venue,
		"venue_id":     nilIfEmpty(ev.VenueID),
		"date":         ev.Date,
		"time":         ev.Time,
		"raw_date":     ev.RawDate.UTC().Format(time.RFC3339),
		"on_sale_date": nil,
		"genre":        nilIfEmpty(ev.Genre),
		"subgenre":     nilIfEmpty(ev.SubGenre),
		"min_price":    ev.MinPrice,
		"max_price":    ev.MaxPrice,
		"image_url":    ev.ImageURL,
		"ticket_url":   nilIfEmpty(ev.TicketURL),
		"type":         string(ev.Type),
		"country":      nilIfEmpty(ev.Country),
		"raw_data":     ev.RawData,
		"artist_links": ev.ArtistLinks,
		"updated_at":   now.UTC().Format(time.RFC3339),
	}
	if ev.OnSaleDate != nil {
		data["on_sale_date"] = ev.OnSaleDate.UTC().Format(time.RFC3339)
	}
	return data
}

func nilIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// UpsertEvents writes normalized events keyed by id. Editorial columns
// (is_featured, is_hidden) are deliberately not included so a re-sync never
// clobbers admin curation.
func (su *SupabaseRepo) UpsertEvents(ctx context.Context, events []Event) error {
	if len(events) == 0 {
		return nil
	}

	now := time.Now()
	rows := make([]map[string]interface{}, 0, len(events))
	for _, ev := range events {
		rows = append(rows, eventToRowData(ev, now))
	}

	_, _, err := su.supabaseClient.
		From(EventsTable).
		Insert(rows, true, "id", "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to upsert %d events: %v", len(events), err)
	}
	return nil
}

func (su *SupabaseRepo) ListEvents(ctx context.Context) ([]Event, error) {
	data, count, err := su.supabaseClient.
		From(EventsTable).
		Select("*", "exact", false).
		Eq("is_hidden", "false").
		Order("raw_date", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %v", err)
	}
	if count == 0 {
		return []Event{}, nil
	}

	var rows []eventRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal events: %v", err)
	}

	events := make([]Event, 0, len(rows))
	for i := range rows {
		ev, err := rows[i].toEvent()
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

func (su *SupabaseRepo) GetEventByID(ctx context.Context, id string) (*Event, error) {
	data, count, err := su.supabaseClient.
		From(EventsTable).
		Select("*", "exact", false).
		Eq("id", id).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get event %s: %v", id, err)
	}
	if count == 0 {
		return nil, nil
	}

	var rows []eventRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event %s: %v", id, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	ev, err := rows[0].toEvent()
	if err != nil {
		return nil, err
	}
	return &ev, nil
}
