package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/olivier-stoked/cinebase/internal/models"
	"github.com/olivier-stoked/cinebase/internal/session"
	"github.com/olivier-stoked/cinebase/internal/shared"
	tu "github.com/olivier-stoked/cinebase/internal/testing"
)

func newTestRunner(t *testing.T, output *bytes.Buffer) *Runner {
	t.Helper()

	store, err := session.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	controller := session.NewController(store, &tu.MockAuthenticator{}, shared.NewLogger(nil))

	return NewRunner(RunnerOpts{
		Config:     shared.DefaultConfig(),
		Controller: controller,
		Logger:     shared.NewLogger(nil),
		Output:     output,
	})
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}

			runner := NewRunner(RunnerOpts{
				Config: config,
				Logger: logger,
				Output: output,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})
	})

	t.Run("register wires every command group", func(t *testing.T) {
		runner := newTestRunner(t, &bytes.Buffer{})

		commands := runner.register()
		if len(commands) != 6 {
			t.Fatalf("expected 6 command groups, got %d", len(commands))
		}

		names := map[string]bool{}
		for _, command := range commands {
			names[command.Name] = true
		}
		for _, want := range []string{"setup", "auth", "movies", "reviews", "cache", "tui"} {
			if !names[want] {
				t.Errorf("expected command %q to be registered", want)
			}
		}
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("compact output", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := newTestRunner(t, output)

			if err := runner.writeJSON(map[string]int{"id": 1}, false); err != nil {
				t.Fatalf("writeJSON failed: %v", err)
			}
			if output.String() != "{\"id\":1}\n" {
				t.Errorf("unexpected output: %q", output.String())
			}
		})

		t.Run("pretty output is indented", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := newTestRunner(t, output)

			if err := runner.writeJSON(map[string]int{"id": 1}, true); err != nil {
				t.Fatalf("writeJSON failed: %v", err)
			}
			if !strings.Contains(output.String(), "  \"id\": 1") {
				t.Errorf("expected indented output, got %q", output.String())
			}
		})

		t.Run("write failures surface", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			if err := runner.writeJSON(map[string]int{"id": 1}, false); err == nil {
				t.Error("expected write error")
			}
		})

		t.Run("unmarshalable data surfaces", func(t *testing.T) {
			runner := newTestRunner(t, &bytes.Buffer{})

			if err := runner.writeJSON(make(chan int), false); err == nil {
				t.Error("expected marshal error")
			}
		})
	})

	t.Run("writePlain formats into the output", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := newTestRunner(t, output)

		if err := runner.writePlain("hello %s\n", "world"); err != nil {
			t.Fatalf("writePlain failed: %v", err)
		}
		if output.String() != "hello world\n" {
			t.Errorf("unexpected output: %q", output.String())
		}
	})

	t.Run("formatMovies", func(t *testing.T) {
		movies := []models.Movie{tu.SampleMovie(1)}
		runner := newTestRunner(t, &bytes.Buffer{})

		t.Run("text is the default", func(t *testing.T) {
			data, err := runner.formatMovies(movies, "")
			if err != nil {
				t.Fatalf("formatMovies failed: %v", err)
			}
			if !strings.Contains(string(data), "The Long Reel") {
				t.Errorf("expected title in listing, got %q", data)
			}
		})

		t.Run("csv includes headers", func(t *testing.T) {
			data, err := runner.formatMovies(movies, "csv")
			if err != nil {
				t.Fatalf("formatMovies failed: %v", err)
			}
			if !strings.HasPrefix(string(data), "ID,Title") {
				t.Errorf("expected CSV headers, got %q", data)
			}
		})

		t.Run("markdown accepts the md alias", func(t *testing.T) {
			data, err := runner.formatMovies(movies, "md")
			if err != nil {
				t.Fatalf("formatMovies failed: %v", err)
			}
			if !strings.Contains(string(data), "| Title |") {
				t.Errorf("expected markdown table, got %q", data)
			}
		})

		t.Run("unknown format errors", func(t *testing.T) {
			if _, err := runner.formatMovies(movies, "xml"); err == nil {
				t.Error("expected error for unknown format")
			}
		})
	})
}
