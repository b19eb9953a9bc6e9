// Package ingest implements the pull-normalize-persist pipeline that keeps
// the events store in step with the external ticketing provider.
package ingest

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/joshua-takyi/gigboard/internal/models"
	"github.com/joshua-takyi/gigboard/internal/ticketmaster"
)

// Provider IDs are namespaced before they reach the store so a second source
// can never collide with Ticketmaster rows in the same tables.
const idPrefix = "tm-"

// Minimum usable image width; narrower images render badly on event cards.
const minImageWidth = 640

const (
	displayDateFormat = "Mon, Jan 2, 2006"
	displayTimeFormat = "3:04 PM"
)

// NamespaceID prefixes a provider-assigned ID with the source marker.
func NamespaceID(id string) string {
	return idPrefix + id
}

// StripNamespace recovers the provider-assigned ID from a namespaced one, for
// calls back into the provider API.
func StripNamespace(id string) string {
	return strings.TrimPrefix(id, idPrefix)
}

// Normalize maps raw provider events into canonical event records. Pure: no
// I/O, no clock. Events whose start date cannot be resolved are dropped, since
// every downstream ordering and range comparison depends on RawDate.
func Normalize(raw []ticketmaster.RawEvent) []models.Event {
	events := make([]models.Event, 0, len(raw))
	for i := range raw {
		ev, ok := normalizeOne(&raw[i])
		if !ok {
			continue
		}
		events = append(events, ev)
	}
	return events
}

func normalizeOne(raw *ticketmaster.RawEvent) (models.Event, bool) {
	p := &raw.Payload

	rawDate, ok := resolveStart(&p.Dates)
	if !ok {
		return models.Event{}, false
	}

	ev := models.Event{
		ID:        NamespaceID(p.ID),
		Title:     p.Name,
		Artist:    extractArtist(p),
		Date:      rawDate.Format(displayDateFormat),
		Time:      rawDate.Format(displayTimeFormat),
		RawDate:   rawDate,
		ImageURL:  pickImage(p),
		TicketURL: p.URL,
		RawData:   raw.Raw,
	}

	if t, err := time.Parse(time.RFC3339, p.Sales.Public.StartDateTime); err == nil {
		ev.OnSaleDate = &t
	}

	var subGenre string
	if cl := p.PrimaryClassification(); cl != nil {
		ev.Genre = dropSentinel(cl.Genre.Name)
		subGenre = dropSentinel(cl.SubGenre.Name)
		ev.SubGenre = subGenre
	}
	ev.Type = Classify(p.Name, subGenre)

	if len(p.PriceRanges) > 0 {
		pr := p.PriceRanges[0]
		min := pr.Min
		ev.MinPrice = &min
		if pr.Max > pr.Min {
			max := pr.Max
			ev.MaxPrice = &max
		}
	}

	if len(p.Embedded.Venues) > 0 {
		v := &p.Embedded.Venues[0]
		ev.Venue = v.Name
		if v.ID != "" {
			ev.VenueID = NamespaceID(v.ID)
		}
		ev.Country = v.Country.CountryCode
	}

	if len(p.Embedded.Attractions) > 0 {
		if links := p.Embedded.Attractions[0].ExternalLinks; len(links) > 0 {
			if data, err := json.Marshal(links); err == nil {
				ev.ArtistLinks = data
			}
		}
	}

	return ev, true
}

// Classify decides concert vs festival from the title and subgenre. Kept as
// its own function so the heuristic can be swapped without touching the rest
// of the normalizer.
func Classify(title, subGenre string) models.EventType {
	if strings.Contains(strings.ToLower(title), "festival") ||
		strings.Contains(strings.ToLower(subGenre), "festival") {
		return models.EventTypeFestival
	}
	return models.EventTypeConcert
}

// resolveStart turns the provider's date block into a single instant.
// Preference order: full dateTime, localDate+localTime, localDate at midnight.
func resolveStart(d *ticketmaster.Dates) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, d.Start.DateTime); err == nil {
		return t, true
	}
	if d.Start.LocalDate != "" && d.Start.LocalTime != "" {
		if t, err := time.Parse("2006-01-02 15:04:05", d.Start.LocalDate+" "+d.Start.LocalTime); err == nil {
			return t.UTC(), true
		}
	}
	if d.Start.LocalDate != "" {
		if t, err := time.Parse("2006-01-02", d.Start.LocalDate); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func extractArtist(p *ticketmaster.EventPayload) string {
	if len(p.Embedded.Attractions) > 0 && p.Embedded.Attractions[0].Name != "" {
		return p.Embedded.Attractions[0].Name
	}
	if before, _, found := strings.Cut(p.Name, ":"); found {
		return strings.TrimSpace(before)
	}
	return p.Name
}

// pickImage applies the deterministic image fallback ordering: venue image,
// 16:9 above the minimum width, anything above the minimum width, first image,
// static placeholder.
func pickImage(p *ticketmaster.EventPayload) string {
	if len(p.Embedded.Venues) > 0 {
		for _, img := range p.Embedded.Venues[0].Images {
			if img.URL != "" {
				return img.URL
			}
		}
	}
	for _, img := range p.Images {
		if img.Ratio == "16_9" && img.Width >= minImageWidth {
			return img.URL
		}
	}
	for _, img := range p.Images {
		if img.Width >= minImageWidth {
			return img.URL
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0].URL
	}
	return models.PlaceholderImage
}

func dropSentinel(s string) string {
	if s == ticketmaster.UndefinedSentinel {
		return ""
	}
	return s
}

func parseCoordinate(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}
