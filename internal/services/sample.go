package services

import (
	"time"

	"github.com/joshua-takyi/gigboard/internal/models"
)

// SampleEvents is the last fallback tier: a small bundled dataset returned
// when both the store and the provider are unreachable, so the site always
// has something to show. Sorted ascending by RawDate like every other tier.
func SampleEvents() []models.Event {
	return []models.Event{
		{
			ID:       "sample-1",
			Title:    "Midnight Echoes: European Tour",
			Artist:   "Midnight Echoes",
			Venue:    "Royal Arena",
			Date:     "Fri, Mar 12, 2027",
			Time:     "8:00 PM",
			RawDate:  time.Date(2027, 3, 12, 20, 0, 0, 0, time.UTC),
			Genre:    "Rock",
			MinPrice: floatPtr(45),
			MaxPrice: floatPtr(120),
			ImageURL: models.PlaceholderImage,
			Type:     models.EventTypeConcert,
		},
		{
			ID:       "sample-2",
			Title:    "Nova Skyline",
			Artist:   "Nova Skyline",
			Venue:    "Harbour Hall",
			Date:     "Sat, Apr 17, 2027",
			Time:     "7:30 PM",
			RawDate:  time.Date(2027, 4, 17, 19, 30, 0, 0, time.UTC),
			Genre:    "Pop",
			MinPrice: floatPtr(38),
			ImageURL: models.PlaceholderImage,
			Type:     models.EventTypeConcert,
		},
		{
			ID:       "sample-3",
			Title:    "Greenfields Festival 2027",
			Artist:   "Various Artists",
			Venue:    "Greenfields Park",
			Date:     "Fri, Jun 25, 2027",
			Time:     "12:00 PM",
			RawDate:  time.Date(2027, 6, 25, 12, 0, 0, 0, time.UTC),
			Genre:    "Alternative",
			MinPrice: floatPtr(150),
			MaxPrice: floatPtr(310),
			ImageURL: models.PlaceholderImage,
			Type:     models.EventTypeFestival,
		},
		{
			ID:       "sample-4",
			Title:    "Ivy & the Woodland Choir",
			Artist:   "Ivy & the Woodland Choir",
			Venue:    "Old Theatre",
			Date:     "Sun, Sep 5, 2027",
			Time:     "6:00 PM",
			RawDate:  time.Date(2027, 9, 5, 18, 0, 0, 0, time.UTC),
			Genre:    "Folk",
			MinPrice: floatPtr(29),
			ImageURL: models.PlaceholderImage,
			Type:     models.EventTypeConcert,
		},
		{
			ID:       "sample-5",
			Title:    "Basslines Winter Festival",
			Artist:   "Various Artists",
			Venue:    "Dockside Warehouse",
			Date:     "Sat, Dec 11, 2027",
			Time:     "4:00 PM",
			RawDate:  time.Date(2027, 12, 11, 16, 0, 0, 0, time.UTC),
			Genre:    "Electronic",
			MinPrice: floatPtr(65),
			MaxPrice: floatPtr(95),
			ImageURL: models.PlaceholderImage,
			Type:     models.EventTypeFestival,
		},
	}
}

func floatPtr(v float64) *float64 {
	return &v
}
