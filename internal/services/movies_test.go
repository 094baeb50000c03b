package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/olivier-stoked/cinebase/internal/models"
	"github.com/olivier-stoked/cinebase/internal/shared"
)

func TestMovieService(t *testing.T) {
	ctx := context.Background()

	t.Run("List decodes the catalog", func(t *testing.T) {
		client, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/movies" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode([]map[string]any{
				{"id": 1, "title": "Stalker", "releaseYear": 1979, "rating": 9.1, "averageRating": 8.5},
				{"id": 2, "title": "Solaris", "releaseYear": 1972, "rating": 8.8, "averageRating": nil},
			})
		})

		service := NewMovieService(client)
		movies, err := service.List(ctx)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(movies) != 2 {
			t.Fatalf("expected 2 movies, got %d", len(movies))
		}
		if movies[0].AverageRating == nil || *movies[0].AverageRating != 8.5 {
			t.Errorf("expected averageRating 8.5, got %v", movies[0].AverageRating)
		}
		if movies[1].AverageRating != nil {
			t.Errorf("expected nil averageRating, got %v", *movies[1].AverageRating)
		}
	})

	t.Run("Get fetches a single movie", func(t *testing.T) {
		client, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/movies/4" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode(map[string]any{"id": 4, "title": "Mirror", "rating": 8.9})
		})

		service := NewMovieService(client)
		movie, err := service.Get(ctx, 4)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if movie.Title != "Mirror" {
			t.Errorf("unexpected movie: %+v", movie)
		}
	})

	t.Run("Create validates before transmitting", func(t *testing.T) {
		client, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected for invalid movie")
		})

		service := NewMovieService(client)
		if _, err := service.Create(ctx, &models.Movie{Rating: 5}); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput for missing title, got %v", err)
		}
	})

	t.Run("Update puts to the movie path", func(t *testing.T) {
		client, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPut || r.URL.Path != "/movies/4" {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
			var body models.Movie
			json.NewDecoder(r.Body).Decode(&body)
			json.NewEncoder(w).Encode(body)
		})

		service := NewMovieService(client)
		updated, err := service.Update(ctx, 4, &models.Movie{ID: 4, Title: "Mirror", Rating: 9.0})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if updated.Rating != 9.0 {
			t.Errorf("unexpected updated movie: %+v", updated)
		}
	})

	t.Run("Delete issues a delete request", func(t *testing.T) {
		var method, path string
		client, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			method, path = r.Method, r.URL.Path
			w.WriteHeader(http.StatusNoContent)
		})

		service := NewMovieService(client)
		if err := service.Delete(ctx, 9); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if method != http.MethodDelete || path != "/movies/9" {
			t.Errorf("unexpected request %s %s", method, path)
		}
	})

	t.Run("missing movie surfaces the backend message", func(t *testing.T) {
		client, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "Movie not found with id: 99"})
		})

		service := NewMovieService(client)
		_, err := service.Get(ctx, 99)
		if err == nil || !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})
}
