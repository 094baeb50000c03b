package services

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/olivier-stoked/cinebase/internal/api"
	"github.com/olivier-stoked/cinebase/internal/models"
	"github.com/olivier-stoked/cinebase/internal/shared"
)

// ReviewService maps review submission and retrieval to the review endpoints.
type ReviewService struct {
	client *api.Client
	logger *log.Logger
}

// NewReviewService creates a review resource client over the gateway.
func NewReviewService(client *api.Client, logger *log.Logger) *ReviewService {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &ReviewService{client: client, logger: logger}
}

// Add submits a review and returns the created record. The rating is
// validated as an integer in [0,10] before transmission.
func (s *ReviewService) Add(ctx context.Context, review *models.Review) (*models.Review, error) {
	if err := review.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	var created models.Review
	if err := s.client.Post(ctx, "reviews.add", "/reviews", review, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ListByMovie retrieves all reviews for a movie, each with the reviewer's
// username denormalized by the backend.
func (s *ReviewService) ListByMovie(ctx context.Context, movieID int64) ([]models.Review, error) {
	var reviews []models.Review
	path := fmt.Sprintf("/reviews/movie/%d", movieID)
	if err := s.client.Get(ctx, "reviews.list", path, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// AverageRating fetches the community average for a movie. This is the one
// operation with a defined fallback: any failure yields 0.0 instead of an
// error, because the rating display must never break over a missing
// statistic. A 401 still tears the session down inside the gateway before the
// fallback applies.
func (s *ReviewService) AverageRating(ctx context.Context, movieID int64) float64 {
	var average float64
	path := fmt.Sprintf("/reviews/movie/%d/average", movieID)
	if err := s.client.Get(ctx, "reviews.average", path, &average); err != nil {
		s.logger.Warn("failed to fetch average rating", "movieID", movieID, "error", err)
		return 0.0
	}
	return average
}
