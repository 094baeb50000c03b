package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/olivier-stoked/cinebase/internal/formatter"
	"github.com/olivier-stoked/cinebase/internal/models"
	"github.com/olivier-stoked/cinebase/internal/repositories"
	"github.com/olivier-stoked/cinebase/internal/shared"
	"github.com/olivier-stoked/cinebase/internal/ui"
)

// MoviesList lists the catalog, from the API or the local cache.
func (r *Runner) MoviesList(ctx context.Context, cmd *cli.Command) error {
	var movies []models.Movie
	var err error

	if cmd.Bool("cached") {
		movies, err = r.cachedMovies()
	} else {
		movies, err = r.movies.List(ctx)
	}
	if err != nil {
		return err
	}

	r.logger.Info("fetched catalog", "count", len(movies), "cached", cmd.Bool("cached"))

	if cmd.Bool("json") {
		return r.writeJSON(movies, cmd.Bool("pretty"))
	}

	data, err := r.formatMovies(movies, cmd.String("format"))
	if err != nil {
		return err
	}

	if outputPath := cmd.String("output"); outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		return r.writePlain("✓ Wrote %d movies to %s\n", len(movies), outputPath)
	}

	return r.writePlain("%s", string(data))
}

// MoviesGet shows one movie with its reviews and community average.
func (r *Runner) MoviesGet(ctx context.Context, cmd *cli.Command) error {
	id := int64(cmd.IntArg("id"))
	if id <= 0 {
		return fmt.Errorf("%w: movie id argument is required", shared.ErrMissingArgument)
	}

	movie, err := r.movies.Get(ctx, id)
	if err != nil {
		return err
	}

	reviews, err := r.reviews.ListByMovie(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{"movie": movie, "reviews": reviews}, cmd.Bool("pretty"))
	}

	r.writePlain("%s (%d)\n", movie.Title, movie.ReleaseYear)
	r.writePlain("Director:  %s\n", movie.Director)
	r.writePlain("Genre:     %s\n", movie.Genre)
	r.writePlain("Jury:      %s (%.1f/10)\n", ui.Stars(movie.Rating), movie.Rating)
	r.writePlain("Community: %s/10 over %d reviews\n", movie.FormatAverage(), len(reviews))
	if movie.Description != "" {
		r.writePlainln("%s", movie.Description)
	}

	for _, review := range reviews {
		comment := review.Comment
		if comment == "" {
			comment = "(no comment)"
		}
		r.writePlain("  %s %s: %s\n", ui.Stars(float64(review.Rating)), review.Username, comment)
	}

	return nil
}

// MoviesCreate adds a movie to the catalog. The API enforces the admin role.
func (r *Runner) MoviesCreate(ctx context.Context, cmd *cli.Command) error {
	movie := movieFromFlags(cmd, nil)

	created, err := r.movies.Create(ctx, movie)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(created, true)
	}
	return r.writePlain("✓ Created '%s' with id %d\n", created.Title, created.ID)
}

// MoviesUpdate overlays the provided flags onto the current catalog entry, so
// unset flags keep their existing values.
func (r *Runner) MoviesUpdate(ctx context.Context, cmd *cli.Command) error {
	id := int64(cmd.IntArg("id"))
	if id <= 0 {
		return fmt.Errorf("%w: movie id argument is required", shared.ErrMissingArgument)
	}

	current, err := r.movies.Get(ctx, id)
	if err != nil {
		return err
	}

	movie := movieFromFlags(cmd, current)

	updated, err := r.movies.Update(ctx, id, movie)
	if err != nil {
		return err
	}
	return r.writePlain("✓ Updated '%s'\n", updated.Title)
}

// MoviesDelete removes a catalog entry.
func (r *Runner) MoviesDelete(ctx context.Context, cmd *cli.Command) error {
	id := int64(cmd.IntArg("id"))
	if id <= 0 {
		return fmt.Errorf("%w: movie id argument is required", shared.ErrMissingArgument)
	}

	if err := r.movies.Delete(ctx, id); err != nil {
		return err
	}
	return r.writePlain("✓ Deleted movie %d\n", id)
}

// cachedMovies reads the catalog from the local sqlite cache.
func (r *Runner) cachedMovies() ([]models.Movie, error) {
	db, err := r.openDatabase()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	repo := repositories.NewMovieCacheRepository(db)
	movies, err := repo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to read cache: %w", err)
	}
	if len(movies) == 0 {
		r.logger.Warn("cache is empty, run 'cinebase cache refresh'")
	}
	return movies, nil
}

func (r *Runner) formatMovies(movies []models.Movie, format string) ([]byte, error) {
	switch format {
	case "csv":
		return formatter.ExportToCSV(movies)
	case "markdown", "md":
		return formatter.ExportToMarkdown(movies), nil
	case "text", "":
		return formatter.ExportToText(movies), nil
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}
}

// movieFromFlags builds a movie from command flags. When base is non-nil only
// flags the user set override it.
func movieFromFlags(cmd *cli.Command, base *models.Movie) *models.Movie {
	movie := &models.Movie{}
	if base != nil {
		clone := *base
		movie = &clone
	}

	if cmd.IsSet("title") || base == nil {
		movie.Title = cmd.String("title")
	}
	if cmd.IsSet("director") || base == nil {
		movie.Director = cmd.String("director")
	}
	if cmd.IsSet("genre") || base == nil {
		movie.Genre = cmd.String("genre")
	}
	if cmd.IsSet("year") || base == nil {
		movie.ReleaseYear = cmd.Int("year")
	}
	if cmd.IsSet("rating") || base == nil {
		movie.Rating = cmd.Float("rating")
	}
	if cmd.IsSet("description") || base == nil {
		movie.Description = cmd.String("description")
	}

	return movie
}
