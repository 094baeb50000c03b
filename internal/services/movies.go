package services

import (
	"context"
	"fmt"

	"github.com/olivier-stoked/cinebase/internal/api"
	"github.com/olivier-stoked/cinebase/internal/models"
	"github.com/olivier-stoked/cinebase/internal/shared"
)

// MovieService maps catalog operations to the movie endpoints.
// Create, Update, and Delete are admin-only server-side; the client sends
// them regardless and surfaces the 403 locally.
type MovieService struct {
	client *api.Client
}

// NewMovieService creates a movie resource client over the gateway.
func NewMovieService(client *api.Client) *MovieService {
	return &MovieService{client: client}
}

// List retrieves the full movie catalog.
func (s *MovieService) List(ctx context.Context) ([]models.Movie, error) {
	var movies []models.Movie
	if err := s.client.Get(ctx, "movies.list", "/movies", &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// Get retrieves a single movie by ID.
func (s *MovieService) Get(ctx context.Context, id int64) (*models.Movie, error) {
	var movie models.Movie
	path := fmt.Sprintf("/movies/%d", id)
	if err := s.client.Get(ctx, "movies.get", path, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

// Create adds a new movie record and returns the created record.
func (s *MovieService) Create(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	if err := movie.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	var created models.Movie
	if err := s.client.Post(ctx, "movies.create", "/movies", movie, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update replaces an existing movie record and returns the updated record.
func (s *MovieService) Update(ctx context.Context, id int64, movie *models.Movie) (*models.Movie, error) {
	if err := movie.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	var updated models.Movie
	path := fmt.Sprintf("/movies/%d", id)
	if err := s.client.Put(ctx, "movies.update", path, movie, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a movie record.
func (s *MovieService) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/movies/%d", id)
	return s.client.Delete(ctx, "movies.delete", path)
}
