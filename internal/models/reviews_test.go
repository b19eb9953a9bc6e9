package models

import (
	"strings"
	"testing"
)

func validReview() *Review {
	return &Review{
		Title:    "Unforgettable night",
		Artist:   "The Band",
		Venue:    "Royal Arena",
		Date:     "Fri, Mar 12, 2027",
		ImageURL: "https://img.example.com/show.jpg",
		Content:  "Great sound, great crowd.",
	}
}

func TestValidateReview(t *testing.T) {
	if err := validReview().ValidateReview(); err != nil {
		t.Errorf("valid review rejected: %v", err)
	}

	missingTitle := validReview()
	missingTitle.Title = ""
	if err := missingTitle.ValidateReview(); err == nil {
		t.Error("review without a title must be rejected")
	}

	missingContent := validReview()
	missingContent.Content = ""
	if err := missingContent.ValidateReview(); err == nil {
		t.Error("review without content must be rejected")
	}
}

func TestReviewSanitize(t *testing.T) {
	r := validReview()
	r.Title = "  Unforgettable night  "
	r.Content = "  " + strings.Repeat("x", 6000) + "  "

	r.Sanitize()

	if r.Title != "Unforgettable night" {
		t.Errorf("title not trimmed: %q", r.Title)
	}
	if len(r.Content) != 5000 {
		t.Errorf("content not truncated: %d", len(r.Content))
	}
}

func TestReviewBeforeCreate(t *testing.T) {
	r := validReview()
	if err := r.BeforeCreate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.ID.IsZero() {
		t.Error("expected an ID to be assigned")
	}
	if r.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
}
