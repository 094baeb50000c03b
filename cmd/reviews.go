package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/olivier-stoked/cinebase/internal/models"
	"github.com/olivier-stoked/cinebase/internal/shared"
	"github.com/olivier-stoked/cinebase/internal/ui"
)

// ReviewsAdd submits a review for a movie.
func (r *Runner) ReviewsAdd(ctx context.Context, cmd *cli.Command) error {
	review := &models.Review{
		MovieID: int64(cmd.Int("movie")),
		Rating:  cmd.Int("rating"),
		Comment: cmd.String("comment"),
	}

	created, err := r.reviews.Add(ctx, review)
	if err != nil {
		return err
	}

	return r.writePlain("✓ Review %s recorded for movie %d\n",
		ui.Stars(float64(created.Rating)), created.MovieID)
}

// ReviewsList lists all reviews for a movie.
func (r *Runner) ReviewsList(ctx context.Context, cmd *cli.Command) error {
	movieID := int64(cmd.IntArg("movie_id"))
	if movieID <= 0 {
		return fmt.Errorf("%w: movie id argument is required", shared.ErrMissingArgument)
	}

	reviews, err := r.reviews.ListByMovie(ctx, movieID)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(reviews, cmd.Bool("pretty"))
	}

	if len(reviews) == 0 {
		return r.writePlain("No reviews yet for movie %d\n", movieID)
	}

	for _, review := range reviews {
		comment := review.Comment
		if comment == "" {
			comment = "(no comment)"
		}
		r.writePlain("%s %s: %s\n", ui.Stars(float64(review.Rating)), review.Username, comment)
	}
	return nil
}

// ReviewsAverage prints the community average, or 0.0 when it cannot be read.
func (r *Runner) ReviewsAverage(ctx context.Context, cmd *cli.Command) error {
	movieID := int64(cmd.IntArg("movie_id"))
	if movieID <= 0 {
		return fmt.Errorf("%w: movie id argument is required", shared.ErrMissingArgument)
	}

	average := r.reviews.AverageRating(ctx, movieID)
	return r.writePlain("%.1f\n", average)
}
