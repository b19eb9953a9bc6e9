package services

import (
	"context"

	"github.com/joshua-takyi/gigboard/internal/models"
)

type ReviewService struct {
	reviewsRepo models.ReviewsRepo
}

func NewReviewService(reviewsRepo models.ReviewsRepo) *ReviewService {
	return &ReviewService{
		reviewsRepo: reviewsRepo,
	}
}

func (rs *ReviewService) CreateReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	review.Sanitize()
	return rs.reviewsRepo.CreateReview(ctx, review)
}

func (rs *ReviewService) ListReviews(ctx context.Context) ([]*models.Review, error) {
	return rs.reviewsRepo.ListReviews(ctx)
}
