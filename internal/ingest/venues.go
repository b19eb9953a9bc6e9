package ingest

import (
	"encoding/json"
	"log/slog"

	"github.com/joshua-takyi/gigboard/internal/models"
	"github.com/joshua-takyi/gigboard/internal/ticketmaster"
)

// CollectVenues gathers the venues referenced across a batch of raw events
// into a map keyed by namespaced venue ID, so each venue is upserted once per
// sync. Last write wins on duplicates, which is fine since venue data is
// near-static. Venues without a name are skipped: the venues table enforces a
// non-null name.
func CollectVenues(raw []ticketmaster.RawEvent, logger *slog.Logger) map[string]models.Venue {
	venues := make(map[string]models.Venue)
	for i := range raw {
		for _, vp := range raw[i].Payload.Embedded.Venues {
			if vp.ID == "" {
				continue
			}
			if vp.Name == "" {
				logger.Warn("skipping venue without a name", "venue_id", vp.ID)
				continue
			}
			venues[NamespaceID(vp.ID)] = venueFromPayload(&vp)
		}
	}
	return venues
}

func venueFromPayload(vp *ticketmaster.VenuePayload) models.Venue {
	venue := models.Venue{
		ID:         NamespaceID(vp.ID),
		Name:       vp.Name,
		City:       vp.City.Name,
		Address:    vp.Address.Line1,
		PostalCode: vp.PostalCode,
		State:      vp.State.Name,
		Country:    vp.Country.CountryCode,
		Latitude:   parseCoordinate(vp.Location.Latitude),
		Longitude:  parseCoordinate(vp.Location.Longitude),
		URL:        vp.URL,
	}
	for _, img := range vp.Images {
		if img.URL != "" {
			venue.ImageURL = img.URL
			break
		}
	}
	if data, err := json.Marshal(vp); err == nil {
		venue.RawData = data
	}
	return venue
}
