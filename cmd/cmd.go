// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// authCommand handles session and account operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage the local session",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Sign in with username or email and persist the session",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "identifier"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "password",
						Aliases: []string{"p"},
						Usage:   "Password (prompted for when omitted)",
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "Clear the persisted session",
				Action: r.AuthLogout,
			},
			{
				Name:  "register",
				Usage: "Create a new account",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "username",
						Aliases:  []string{"u"},
						Usage:    "Username for the new account",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Email for the new account",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "password",
						Aliases: []string{"p"},
						Usage:   "Password (prompted for when omitted)",
					},
				},
				Action: r.AuthRegister,
			},
			{
				Name:   "whoami",
				Usage:  "Show the persisted user profile",
				Flags:  outputFlags(false),
				Action: r.AuthWhoami,
			},
			{
				Name:   "status",
				Usage:  "Show whether a session is persisted and where",
				Action: r.AuthStatus,
			},
		},
	}
}

// moviesCommand handles catalog operations
func moviesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "movies",
		Aliases: []string{"mov"},
		Usage:   "Browse and manage the movie catalog",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List all movies",
				Flags: append(outputFlags(true),
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: text, csv, or markdown",
						Value:   "text",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write the listing to a file instead of stdout",
					},
					&cli.BoolFlag{
						Name:  "cached",
						Usage: "Read from the local cache instead of the API",
					},
				),
				Action: r.MoviesList,
			},
			{
				Name:  "get",
				Usage: "Show one movie with its reviews",
				Arguments: []cli.Argument{
					&cli.IntArg{Name: "id"},
				},
				Flags:  outputFlags(true),
				Action: r.MoviesGet,
			},
			{
				Name:  "create",
				Usage: "Add a movie to the catalog (admin)",
				Flags: append(movieFlags(true),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				),
				Action: r.MoviesCreate,
			},
			{
				Name:  "update",
				Usage: "Update a catalog entry (admin)",
				Arguments: []cli.Argument{
					&cli.IntArg{Name: "id"},
				},
				Flags:  movieFlags(false),
				Action: r.MoviesUpdate,
			},
			{
				Name:  "delete",
				Usage: "Remove a movie from the catalog (admin)",
				Arguments: []cli.Argument{
					&cli.IntArg{Name: "id"},
				},
				Action: r.MoviesDelete,
			},
		},
	}
}

// reviewsCommand handles community review operations
func reviewsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "reviews",
		Aliases: []string{"rev"},
		Usage:   "Read and write movie reviews",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Submit a review for a movie",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "movie",
						Aliases:  []string{"m"},
						Usage:    "Movie ID to review",
						Required: true,
					},
					&cli.IntFlag{
						Name:     "rating",
						Aliases:  []string{"r"},
						Usage:    "Rating from 0 to 10",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "comment",
						Aliases: []string{"c"},
						Usage:   "Optional comment, up to 500 characters",
					},
				},
				Action: r.ReviewsAdd,
			},
			{
				Name:  "list",
				Usage: "List reviews for a movie",
				Arguments: []cli.Argument{
					&cli.IntArg{Name: "movie_id"},
				},
				Flags:  outputFlags(true),
				Action: r.ReviewsList,
			},
			{
				Name:  "average",
				Usage: "Show the community average for a movie",
				Arguments: []cli.Argument{
					&cli.IntArg{Name: "movie_id"},
				},
				Action: r.ReviewsAverage,
			},
		},
	}
}

// cacheCommand handles the local catalog cache
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Manage the offline catalog cache",
		Commands: []*cli.Command{
			{
				Name:   "refresh",
				Usage:  "Fetch the catalog and replace the local cache",
				Action: r.CacheRefresh,
			},
			{
				Name:   "list",
				Usage:  "List cached movies without touching the network",
				Flags:  outputFlags(true),
				Action: r.CacheList,
			},
			{
				Name:   "status",
				Usage:  "Show when the cache was last refreshed",
				Action: r.CacheStatus,
			},
		},
	}
}

// setupCommand handles setup operations for configuration and the cache database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize the cache database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive catalog browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive catalog browser",
		Action:  r.TUI,
	}
}

func outputFlags(prettyDefault bool) []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print output",
			Value: prettyDefault,
		},
	}
}

func movieFlags(required bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "title",
			Usage:    "Movie title",
			Required: required,
		},
		&cli.StringFlag{
			Name:  "director",
			Usage: "Director name",
		},
		&cli.StringFlag{
			Name:  "genre",
			Usage: "Genre label",
		},
		&cli.IntFlag{
			Name:  "year",
			Usage: "Release year",
		},
		&cli.FloatFlag{
			Name:  "rating",
			Usage: "Jury rating from 0 to 10",
		},
		&cli.StringFlag{
			Name:  "description",
			Usage: "Synopsis",
		},
	}
}
