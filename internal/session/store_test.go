package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/olivier-stoked/cinebase/internal/shared"
	tu "github.com/olivier-stoked/cinebase/internal/testing"
)

func TestStore(t *testing.T) {
	t.Run("NewStore creates directory with owner-only permissions", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "sessions")
		store, err := NewStore(dir)
		if err != nil {
			t.Fatalf("NewStore failed: %v", err)
		}
		if store.Dir() != dir {
			t.Errorf("expected dir %s, got %s", dir, store.Dir())
		}

		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("session directory was not created: %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0700 {
			t.Errorf("expected permissions 0700, got %o", perm)
		}
	})

	t.Run("Token returns empty string when nothing is stored", func(t *testing.T) {
		store, _ := NewStore(t.TempDir())

		token, err := store.Token()
		if err != nil {
			t.Fatalf("Token failed: %v", err)
		}
		if token != "" {
			t.Errorf("expected empty token, got %q", token)
		}
	})

	t.Run("Profile returns nil when nothing is stored", func(t *testing.T) {
		store, _ := NewStore(t.TempDir())

		profile, err := store.Profile()
		if err != nil {
			t.Fatalf("Profile failed: %v", err)
		}
		if profile != nil {
			t.Errorf("expected nil profile, got %+v", profile)
		}
	})

	t.Run("Save then read round-trips token and profile", func(t *testing.T) {
		store, _ := NewStore(t.TempDir())
		saved := tu.SampleProfile("USER")

		if err := store.Save("tok-123", saved); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		token, err := store.Token()
		if err != nil {
			t.Fatalf("Token failed: %v", err)
		}
		if token != "tok-123" {
			t.Errorf("expected tok-123, got %q", token)
		}

		profile, err := store.Profile()
		if err != nil {
			t.Fatalf("Profile failed: %v", err)
		}
		if profile == nil {
			t.Fatal("expected profile, got nil")
		}
		if profile.Username != saved.Username || profile.Role != saved.Role || profile.ID != saved.ID {
			t.Errorf("profile mismatch: got %+v", profile)
		}
	})

	t.Run("Save writes files with owner-only permissions", func(t *testing.T) {
		dir := t.TempDir()
		store, _ := NewStore(dir)

		if err := store.Save("tok", tu.SampleProfile("USER")); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		for _, name := range []string{"token", "profile.json"} {
			info, err := os.Stat(filepath.Join(dir, name))
			if err != nil {
				t.Fatalf("missing %s: %v", name, err)
			}
			if perm := info.Mode().Perm(); perm != 0600 {
				t.Errorf("expected %s permissions 0600, got %o", name, perm)
			}
		}
	})

	t.Run("Save rejects empty token and nil profile", func(t *testing.T) {
		dir := t.TempDir()
		store, _ := NewStore(dir)

		if err := store.Save("", tu.SampleProfile("USER")); err == nil {
			t.Error("expected error for empty token")
		}
		if err := store.Save("tok", nil); err == nil {
			t.Error("expected error for nil profile")
		}
		tu.AssertFileAbsent(t, filepath.Join(dir, "token"))
		tu.AssertFileAbsent(t, filepath.Join(dir, "profile.json"))
	})

	t.Run("Clear removes both keys", func(t *testing.T) {
		dir := t.TempDir()
		store, _ := NewStore(dir)
		store.Save("tok", tu.SampleProfile("USER"))

		if err := store.Clear(); err != nil {
			t.Fatalf("Clear failed: %v", err)
		}

		tu.AssertFileAbsent(t, filepath.Join(dir, "token"))
		tu.AssertFileAbsent(t, filepath.Join(dir, "profile.json"))
	})

	t.Run("Clear on empty store is a no-op", func(t *testing.T) {
		store, _ := NewStore(t.TempDir())

		if err := store.Clear(); err != nil {
			t.Errorf("expected nil error, got %v", err)
		}
		if err := store.Clear(); err != nil {
			t.Errorf("expected second Clear to succeed, got %v", err)
		}
	})

	t.Run("corrupt profile surfaces a parse error", func(t *testing.T) {
		dir := t.TempDir()
		store, _ := NewStore(dir)

		if err := os.WriteFile(filepath.Join(dir, "profile.json"), []byte("{not json"), 0600); err != nil {
			t.Fatal(err)
		}

		if _, err := store.Profile(); err == nil {
			t.Error("expected error for corrupt profile")
		}
	})
}

func TestTokenSource(t *testing.T) {
	t.Run("returns bearer token when stored", func(t *testing.T) {
		store, _ := NewStore(t.TempDir())
		store.Save("tok-abc", tu.SampleProfile("USER"))

		token, err := store.TokenSource().Token()
		if err != nil {
			t.Fatalf("Token failed: %v", err)
		}
		if token.AccessToken != "tok-abc" {
			t.Errorf("expected tok-abc, got %q", token.AccessToken)
		}
		if token.TokenType != "Bearer" {
			t.Errorf("expected Bearer, got %q", token.TokenType)
		}
	})

	t.Run("returns ErrNotAuthenticated when empty", func(t *testing.T) {
		store, _ := NewStore(t.TempDir())

		if _, err := store.TokenSource().Token(); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("re-reads storage on every call", func(t *testing.T) {
		store, _ := NewStore(t.TempDir())
		source := store.TokenSource()

		store.Save("tok-1", tu.SampleProfile("USER"))
		if token, err := source.Token(); err != nil || token.AccessToken != "tok-1" {
			t.Fatalf("expected tok-1, got %v (%v)", token, err)
		}

		store.Clear()
		if _, err := source.Token(); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated after Clear, got %v", err)
		}
	})
}
