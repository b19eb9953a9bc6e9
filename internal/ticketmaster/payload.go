// Package ticketmaster wraps the Ticketmaster Discovery API v2.
package ticketmaster

import "encoding/json"

// UndefinedSentinel is the literal the Discovery API uses for unknown
// genre/subgenre classifications.
const UndefinedSentinel = "Undefined"

// RawEvent pairs the typed view of one Discovery API event with the original
// JSON bytes, which are archived alongside the normalized record.
type RawEvent struct {
	Payload EventPayload
	Raw     json.RawMessage
}

// EventPayload is the subset of the Discovery API event schema the pipeline
// reads. Anything not represented here survives in RawEvent.Raw.
type EventPayload struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	URL             string           `json:"url"`
	Images          []Image          `json:"images"`
	Dates           Dates            `json:"dates"`
	Sales           Sales            `json:"sales"`
	Classifications []Classification `json:"classifications"`
	PriceRanges     []PriceRange     `json:"priceRanges"`
	Embedded        EventEmbedded    `json:"_embedded"`
}

type EventEmbedded struct {
	Venues      []VenuePayload      `json:"venues"`
	Attractions []AttractionPayload `json:"attractions"`
}

type Image struct {
	Ratio    string `json:"ratio"`
	URL      string `json:"url"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Fallback bool   `json:"fallback"`
}

type Dates struct {
	Start struct {
		LocalDate      string `json:"localDate"`
		LocalTime      string `json:"localTime"`
		DateTime       string `json:"dateTime"`
		DateTBD        bool   `json:"dateTBD"`
		DateTBA        bool   `json:"dateTBA"`
		TimeTBA        bool   `json:"timeTBA"`
		NoSpecificTime bool   `json:"noSpecificTime"`
	} `json:"start"`
	Timezone string `json:"timezone"`
	Status   struct {
		Code string `json:"code"`
	} `json:"status"`
}

type Sales struct {
	Public struct {
		StartDateTime string `json:"startDateTime"`
		EndDateTime   string `json:"endDateTime"`
	} `json:"public"`
}

type Named struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Classification struct {
	Primary  bool  `json:"primary"`
	Segment  Named `json:"segment"`
	Genre    Named `json:"genre"`
	SubGenre Named `json:"subGenre"`
}

type PriceRange struct {
	Type     string  `json:"type"`
	Currency string  `json:"currency"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
}

type VenuePayload struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	URL        string  `json:"url"`
	PostalCode string  `json:"postalCode"`
	Images     []Image `json:"images"`
	City       struct {
		Name string `json:"name"`
	} `json:"city"`
	State struct {
		Name      string `json:"name"`
		StateCode string `json:"stateCode"`
	} `json:"state"`
	Country struct {
		Name        string `json:"name"`
		CountryCode string `json:"countryCode"`
	} `json:"country"`
	Address struct {
		Line1 string `json:"line1"`
	} `json:"address"`
	Location struct {
		Longitude string `json:"longitude"`
		Latitude  string `json:"latitude"`
	} `json:"location"`
}

type AttractionPayload struct {
	ID            string                    `json:"id"`
	Name          string                    `json:"name"`
	URL           string                    `json:"url"`
	ExternalLinks map[string][]ExternalLink `json:"externalLinks"`
}

type ExternalLink struct {
	URL string `json:"url"`
}

// PrimaryClassification returns the primary classification, falling back to
// the first one the payload carries.
func (p *EventPayload) PrimaryClassification() *Classification {
	for i := range p.Classifications {
		if p.Classifications[i].Primary {
			return &p.Classifications[i]
		}
	}
	if len(p.Classifications) > 0 {
		return &p.Classifications[0]
	}
	return nil
}

// discoveryPage is one page of the events search response. Events are kept as
// raw JSON so each event's original bytes can be archived.
type discoveryPage struct {
	Embedded struct {
		Events []json.RawMessage `json:"events"`
	} `json:"_embedded"`
	Page struct {
		Size          int `json:"size"`
		TotalElements int `json:"totalElements"`
		TotalPages    int `json:"totalPages"`
		Number        int `json:"number"`
	} `json:"page"`
}
