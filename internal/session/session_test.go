package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/olivier-stoked/cinebase/internal/models"
	"github.com/olivier-stoked/cinebase/internal/shared"
	tu "github.com/olivier-stoked/cinebase/internal/testing"
)

func newTestController(t *testing.T, auth Authenticator) *Controller {
	t.Helper()
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	return NewController(store, auth, shared.NewLogger(nil))
}

func TestController(t *testing.T) {
	ctx := context.Background()

	t.Run("starts loading and unauthenticated", func(t *testing.T) {
		controller := newTestController(t, &tu.MockAuthenticator{})

		sess := controller.Session()
		if !sess.Loading {
			t.Error("expected Loading to be true before restore")
		}
		if sess.Authenticated {
			t.Error("expected unauthenticated before restore")
		}
	})

	t.Run("Restore with empty store resolves to logged out", func(t *testing.T) {
		controller := newTestController(t, &tu.MockAuthenticator{})

		sess := controller.Restore()
		if sess.Loading {
			t.Error("expected Loading to resolve to false")
		}
		if sess.Authenticated || sess.User != nil || sess.Token != "" {
			t.Errorf("expected cleared session, got %+v", sess)
		}
	})

	t.Run("Restore with persisted session authenticates", func(t *testing.T) {
		controller := newTestController(t, &tu.MockAuthenticator{})
		profile := tu.SampleProfile(models.RoleAdmin)
		if err := controller.Store().Save("tok-xyz", profile); err != nil {
			t.Fatal(err)
		}

		sess := controller.Restore()
		if !sess.Authenticated {
			t.Error("expected authenticated session")
		}
		if sess.Token != "tok-xyz" {
			t.Errorf("expected tok-xyz, got %q", sess.Token)
		}
		if sess.User == nil || sess.User.Username != profile.Username {
			t.Errorf("expected restored profile, got %+v", sess.User)
		}
	})

	t.Run("Restore with token but no profile stays logged out", func(t *testing.T) {
		controller := newTestController(t, &tu.MockAuthenticator{})
		path := filepath.Join(controller.Store().Dir(), "token")
		if err := os.WriteFile(path, []byte("orphan-token"), 0600); err != nil {
			t.Fatal(err)
		}

		sess := controller.Restore()
		if sess.Authenticated {
			t.Error("expected unauthenticated session")
		}
		if sess.Loading {
			t.Error("expected Loading to resolve to false")
		}
	})

	t.Run("Login persists before updating memory", func(t *testing.T) {
		auth := &tu.MockAuthenticator{Token: "tok-login", Profile: tu.SampleProfile(models.RoleUser)}
		controller := newTestController(t, auth)
		controller.Restore()

		sess, err := controller.Login(ctx, "casey", "hunter2")
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if !sess.Authenticated || sess.Token != "tok-login" {
			t.Errorf("unexpected session: %+v", sess)
		}
		if auth.Calls != 1 {
			t.Errorf("expected one authenticator call, got %d", auth.Calls)
		}

		stored, err := controller.Store().Token()
		if err != nil || stored != "tok-login" {
			t.Errorf("expected persisted token, got %q (%v)", stored, err)
		}
	})

	t.Run("failed Login leaves session and store untouched", func(t *testing.T) {
		auth := &tu.MockAuthenticator{Err: errors.New("invalid credentials")}
		controller := newTestController(t, auth)
		controller.Restore()

		if _, err := controller.Login(ctx, "casey", "wrong"); err == nil {
			t.Fatal("expected login error")
		}

		sess := controller.Session()
		if sess.Authenticated || sess.User != nil || sess.Token != "" {
			t.Errorf("expected untouched session, got %+v", sess)
		}
		if token, _ := controller.Store().Token(); token != "" {
			t.Errorf("expected empty store, got token %q", token)
		}
	})

	t.Run("login then restore round-trips through storage", func(t *testing.T) {
		store, err := NewStore(t.TempDir())
		if err != nil {
			t.Fatal(err)
		}
		auth := &tu.MockAuthenticator{Token: "tok-rt", Profile: tu.SampleProfile(models.RoleAdmin)}

		first := NewController(store, auth, shared.NewLogger(nil))
		first.Restore()
		if _, err := first.Login(ctx, "casey", "hunter2"); err != nil {
			t.Fatalf("Login failed: %v", err)
		}

		second := NewController(store, auth, shared.NewLogger(nil))
		sess := second.Restore()
		if !sess.Authenticated {
			t.Error("expected restored session to be authenticated")
		}
		if sess.Token != "tok-rt" {
			t.Errorf("expected tok-rt, got %q", sess.Token)
		}
		if sess.User == nil || sess.User.Role != models.RoleAdmin {
			t.Errorf("expected admin profile, got %+v", sess.User)
		}
	})

	t.Run("Logout clears store and memory", func(t *testing.T) {
		auth := &tu.MockAuthenticator{Token: "tok", Profile: tu.SampleProfile(models.RoleUser)}
		controller := newTestController(t, auth)
		controller.Restore()
		controller.Login(ctx, "casey", "hunter2")

		if err := controller.Logout(); err != nil {
			t.Fatalf("Logout failed: %v", err)
		}

		sess := controller.Session()
		if sess.Authenticated || sess.User != nil || sess.Token != "" {
			t.Errorf("expected cleared session, got %+v", sess)
		}
		if token, _ := controller.Store().Token(); token != "" {
			t.Errorf("expected cleared store, got %q", token)
		}
	})

	t.Run("Logout twice ends in the same state as once", func(t *testing.T) {
		auth := &tu.MockAuthenticator{Token: "tok", Profile: tu.SampleProfile(models.RoleUser)}
		controller := newTestController(t, auth)
		controller.Restore()
		controller.Login(ctx, "casey", "hunter2")

		if err := controller.Logout(); err != nil {
			t.Fatalf("first Logout failed: %v", err)
		}
		if err := controller.Logout(); err != nil {
			t.Fatalf("second Logout failed: %v", err)
		}
		if sess := controller.Session(); sess.Authenticated {
			t.Errorf("expected logged out session, got %+v", sess)
		}
	})

	t.Run("Invalidate tears down session and storage", func(t *testing.T) {
		auth := &tu.MockAuthenticator{Token: "tok", Profile: tu.SampleProfile(models.RoleUser)}
		controller := newTestController(t, auth)
		controller.Restore()
		controller.Login(ctx, "casey", "hunter2")

		controller.Invalidate()

		if sess := controller.Session(); sess.Authenticated {
			t.Errorf("expected invalidated session, got %+v", sess)
		}
		if token, _ := controller.Store().Token(); token != "" {
			t.Errorf("expected cleared store, got %q", token)
		}
	})
}
