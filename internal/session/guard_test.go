package session

import (
	"testing"

	"github.com/olivier-stoked/cinebase/internal/models"
	tu "github.com/olivier-stoked/cinebase/internal/testing"
)

func TestDecide(t *testing.T) {
	userSession := Session{
		User:          tu.SampleProfile(models.RoleUser),
		Token:         "tok",
		Authenticated: true,
	}
	adminSession := Session{
		User:          tu.SampleProfile(models.RoleAdmin),
		Token:         "tok",
		Authenticated: true,
	}

	tests := []struct {
		name     string
		session  Session
		required models.Role
		want     Action
	}{
		{"loading shows placeholder", Session{Loading: true}, "", ShowLoading},
		{"loading wins over role checks", Session{Loading: true}, models.RoleAdmin, ShowLoading},
		{"unauthenticated redirects to login", Session{}, "", RedirectLogin},
		{"unauthenticated admin route still redirects to login", Session{}, models.RoleAdmin, RedirectLogin},
		{"authenticated user renders open route", userSession, "", Render},
		{"authenticated user lacks admin role", userSession, models.RoleAdmin, RedirectForbidden},
		{"admin renders admin route", adminSession, models.RoleAdmin, Render},
		{"admin renders open route", adminSession, "", Render},
		{"user-only requirement rejects admin", adminSession, models.RoleUser, RedirectForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decide(tt.session, tt.required); got != tt.want {
				t.Errorf("Decide() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("authenticated flag without profile never renders role-gated views", func(t *testing.T) {
		broken := Session{Token: "tok", Authenticated: true}
		if got := Decide(broken, models.RoleAdmin); got != RedirectForbidden {
			t.Errorf("Decide() = %v, want %v", got, RedirectForbidden)
		}
	})
}

func TestGuardAfterExpiredRestore(t *testing.T) {
	// A stale token with no profile must resolve to logged out, and the
	// guard must then redirect instead of rendering a protected view.
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	controller := NewController(store, &tu.MockAuthenticator{}, nil)

	if got := Decide(controller.Session(), ""); got != ShowLoading {
		t.Fatalf("expected ShowLoading before restore, got %v", got)
	}

	sess := controller.Restore()
	if got := Decide(sess, ""); got != RedirectLogin {
		t.Errorf("expected RedirectLogin after empty restore, got %v", got)
	}
	if got := Decide(sess, models.RoleAdmin); got != RedirectLogin {
		t.Errorf("expected RedirectLogin for admin route, got %v", got)
	}
}
