package services

import (
	"context"
	"fmt"

	"github.com/joshua-takyi/gigboard/internal/models"
)

type VenuesService struct {
	venuesRepo models.VenuesRepo
}

func NewVenuesService(venuesRepo models.VenuesRepo) *VenuesService {
	return &VenuesService{
		venuesRepo: venuesRepo,
	}
}

func (vs *VenuesService) ListVenues(ctx context.Context, offset, limit int) ([]models.Venue, error) {
	if offset < 0 || limit <= 0 {
		return nil, fmt.Errorf("invalid offset or limit")
	}
	return vs.venuesRepo.ListVenues(ctx, offset, limit)
}
