package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/olivier-stoked/cinebase/internal/models"
)

// MovieCacheRepository persists snapshots of the movie catalog.
type MovieCacheRepository struct {
	db *sql.DB
}

// NewMovieCacheRepository creates a new [MovieCacheRepository] with the given database connection
func NewMovieCacheRepository(db *sql.DB) *MovieCacheRepository {
	return &MovieCacheRepository{db: db}
}

// ReplaceAll swaps the cached catalog for the given snapshot in one
// transaction, stamping every row with the refresh time.
func (r *MovieCacheRepository) ReplaceAll(movies []models.Movie) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM movies"); err != nil {
		return fmt.Errorf("failed to clear movie cache: %w", err)
	}

	query := `
		INSERT INTO movies (id, title, description, genre, release_year, director, rating, average_rating, cached_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	now := time.Now()
	for _, m := range movies {
		var avg sql.NullFloat64
		if m.AverageRating != nil {
			avg = sql.NullFloat64{Float64: *m.AverageRating, Valid: true}
		}

		_, err := tx.Exec(query, m.ID, m.Title, m.Description, m.Genre, m.ReleaseYear, m.Director, m.Rating, avg, now)
		if err != nil {
			return fmt.Errorf("failed to insert movie %d: %w", m.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit movie cache: %w", err)
	}

	return nil
}

// List returns the cached catalog ordered by title.
func (r *MovieCacheRepository) List() ([]models.Movie, error) {
	query := `
		SELECT id, title, description, genre, release_year, director, rating, average_rating
		FROM movies
		ORDER BY title ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query movie cache: %w", err)
	}
	defer rows.Close()

	var movies []models.Movie
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, *movie)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return movies, nil
}

// Get returns a cached movie by ID.
func (r *MovieCacheRepository) Get(id int64) (*models.Movie, error) {
	query := `
		SELECT id, title, description, genre, release_year, director, rating, average_rating
		FROM movies
		WHERE id = ?
	`

	row := r.db.QueryRow(query, id)
	movie, err := scanMovie(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("movie not cached: %d", id)
	}
	if err != nil {
		return nil, err
	}

	return movie, nil
}

// RefreshedAt returns when the cache was last replaced, or the zero time for
// an empty cache.
func (r *MovieCacheRepository) RefreshedAt() (time.Time, error) {
	var refreshed sql.NullTime
	err := r.db.QueryRow("SELECT MAX(cached_at) FROM movies").Scan(&refreshed)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to query cache age: %w", err)
	}

	if !refreshed.Valid {
		return time.Time{}, nil
	}
	return refreshed.Time, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMovie(row rowScanner) (*models.Movie, error) {
	var (
		movie models.Movie
		avg   sql.NullFloat64
	)

	err := row.Scan(&movie.ID, &movie.Title, &movie.Description, &movie.Genre, &movie.ReleaseYear, &movie.Director, &movie.Rating, &avg)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan movie: %w", err)
	}

	if avg.Valid {
		movie.AverageRating = &avg.Float64
	}

	return &movie, nil
}
