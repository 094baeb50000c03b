package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/olivier-stoked/cinebase/internal/repositories"
)

// CacheRefresh fetches the catalog and replaces the local cache with it.
func (r *Runner) CacheRefresh(ctx context.Context, cmd *cli.Command) error {
	movies, err := r.movies.List(ctx)
	if err != nil {
		return err
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewMovieCacheRepository(db)
	if err := repo.ReplaceAll(movies); err != nil {
		return fmt.Errorf("failed to refresh cache: %w", err)
	}

	r.logger.Info("cache refreshed", "count", len(movies))
	return r.writePlain("✓ Cached %d movies\n", len(movies))
}

// CacheList prints the cached catalog without touching the network.
func (r *Runner) CacheList(ctx context.Context, cmd *cli.Command) error {
	movies, err := r.cachedMovies()
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(movies, cmd.Bool("pretty"))
	}

	data, err := r.formatMovies(movies, "text")
	if err != nil {
		return err
	}
	return r.writePlain("%s", string(data))
}

// CacheStatus reports when the cache was last refreshed.
func (r *Runner) CacheStatus(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewMovieCacheRepository(db)
	refreshedAt, err := repo.RefreshedAt()
	if err != nil {
		return fmt.Errorf("failed to read cache: %w", err)
	}

	if refreshedAt.IsZero() {
		return r.writePlain("Cache is empty, run 'cinebase cache refresh'\n")
	}
	return r.writePlain("Cache last refreshed at %s\n", refreshedAt.Format("2006-01-02 15:04:05"))
}
