package main

import (
	"context"
	"errors"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/olivier-stoked/cinebase/internal/api"
	"github.com/olivier-stoked/cinebase/internal/services"
	"github.com/olivier-stoked/cinebase/internal/session"
	"github.com/olivier-stoked/cinebase/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	sessionDir, err := config.Session.Resolve()
	if err != nil {
		logger.Fatalf("failed to resolve session directory: %v", err)
	}

	store, err := session.NewStore(sessionDir)
	if err != nil {
		logger.Fatalf("failed to open session store: %v", err)
	}

	// The gateway's 401 hook needs the controller, and the controller needs
	// the auth service built on the gateway. The closure breaks the cycle.
	var controller *session.Controller

	client := api.NewClient(api.Opts{
		Config: config.API,
		Tokens: store.TokenSource(),
		OnUnauthorized: func() {
			if controller != nil {
				controller.Invalidate()
			}
		},
		Logger: logger,
	})

	authService := services.NewAuthService(client)
	movieService := services.NewMovieService(client)
	reviewService := services.NewReviewService(client, logger)

	controller = session.NewController(store, authService, logger)
	controller.Restore()

	runner := NewRunner(RunnerOpts{
		Config:     config,
		Controller: controller,
		Auth:       authService,
		Movies:     movieService,
		Reviews:    reviewService,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "cinebase",
		Usage:    "Browse the CINEBASE movie catalog from the terminal",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		switch {
		case api.IsUnauthorized(err):
			logger.Warn("session expired, run 'cinebase auth login'")
			os.Exit(1)
		case api.IsForbidden(err):
			logger.Warnf("permission denied: %v", err)
			os.Exit(1)
		case errors.Is(err, shared.ErrNotImplemented):
			logger.Warn("not implemented")
			os.Exit(0)
		default:
			logger.Fatalf("application error: %v", err)
		}
	}
}
