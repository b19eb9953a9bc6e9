package models

import (
	"fmt"
	"time"

	"github.com/joshua-takyi/gigboard/internal/helpers"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is a user-submitted concert review. Reviews reference the show they
// cover by display strings, not by event ID, so a review survives the event
// row being re-synced or removed.
type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title" validate:"required"`
	Artist    string             `bson:"artist" json:"artist" validate:"required"`
	Venue     string             `bson:"venue" json:"venue"`
	Date      string             `bson:"date" json:"date"`
	ImageURL  string             `bson:"image_url" json:"imageUrl"`
	Content   string             `bson:"content" json:"content" validate:"required"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

func (r *Review) BeforeCreate() error {
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	return nil
}

func (r *Review) ValidateReview() error {
	if err := Validate.Struct(r); err != nil {
		return fmt.Errorf("invalid review data: %v", err)
	}
	return nil
}

func (r *Review) Sanitize() {
	r.Title = helpers.StringTrim(r.Title)
	r.Artist = helpers.StringTrim(r.Artist)
	r.Venue = helpers.StringTrim(r.Venue)
	r.Content = helpers.StringTrim(r.Content)
	r.Content = helpers.Truncate(r.Content, 5000)
}
