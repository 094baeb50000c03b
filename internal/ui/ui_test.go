package ui

import (
	"context"
	"testing"

	"github.com/olivier-stoked/cinebase/internal/api"
	"github.com/olivier-stoked/cinebase/internal/models"
	"github.com/olivier-stoked/cinebase/internal/session"
	"github.com/olivier-stoked/cinebase/internal/shared"
	tu "github.com/olivier-stoked/cinebase/internal/testing"
)

func newTestModel(t *testing.T, profile *models.UserProfile) Model {
	t.Helper()

	store, err := session.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if profile != nil {
		if err := store.Save("tok-test", profile); err != nil {
			t.Fatal(err)
		}
	}

	controller := session.NewController(store, &tu.MockAuthenticator{}, shared.NewLogger(nil))
	controller.Restore()

	return NewModel(ModelOpts{
		Context:    context.Background(),
		Controller: controller,
		Logger:     shared.NewLogger(nil),
	})
}

func TestNavigate(t *testing.T) {
	t.Run("unauthenticated users are redirected to login", func(t *testing.T) {
		model := newTestModel(t, nil)

		next, _ := model.navigate(RouteMovies)
		if next.route != RouteLogin {
			t.Errorf("expected %s, got %s", RouteLogin, next.route)
		}
		if next.intended != RouteMovies {
			t.Errorf("expected intended route to be remembered, got %s", next.intended)
		}
	})

	t.Run("authenticated users reach the catalog", func(t *testing.T) {
		model := newTestModel(t, tu.SampleProfile(models.RoleUser))

		next, cmd := model.navigate(RouteMovies)
		if next.route != RouteMovies {
			t.Errorf("expected %s, got %s", RouteMovies, next.route)
		}
		if cmd == nil {
			t.Error("expected a fetch command for the catalog route")
		}
	})

	t.Run("non-admins are redirected to forbidden", func(t *testing.T) {
		model := newTestModel(t, tu.SampleProfile(models.RoleUser))

		next, _ := model.navigate(RouteAdmin)
		if next.route != RouteForbidden {
			t.Errorf("expected %s, got %s", RouteForbidden, next.route)
		}
	})

	t.Run("admins reach the admin route", func(t *testing.T) {
		model := newTestModel(t, tu.SampleProfile(models.RoleAdmin))

		next, _ := model.navigate(RouteAdmin)
		if next.route != RouteAdmin {
			t.Errorf("expected %s, got %s", RouteAdmin, next.route)
		}
	})

	t.Run("public routes never redirect", func(t *testing.T) {
		model := newTestModel(t, nil)

		for _, route := range []Route{RouteHome, RouteLogin, RouteForbidden} {
			next, _ := model.navigate(route)
			if next.route != route {
				t.Errorf("expected %s, got %s", route, next.route)
			}
		}
	})
}

func TestHandleUnauthorized(t *testing.T) {
	t.Run("gateway 401 errors navigate to login", func(t *testing.T) {
		model := newTestModel(t, tu.SampleProfile(models.RoleUser))
		model.route = RouteMovies

		err := error(&api.Error{Kind: api.KindUnauthorized, Message: "session expired"})
		handled, next, _ := model.handleUnauthorized(err)
		if !handled {
			t.Fatal("expected the error to be handled")
		}
		nextModel := next.(Model)
		if nextModel.route != RouteLogin {
			t.Errorf("expected %s, got %s", RouteLogin, nextModel.route)
		}
	})

	t.Run("other errors are left for the view", func(t *testing.T) {
		model := newTestModel(t, tu.SampleProfile(models.RoleUser))

		err := error(&api.Error{Kind: api.KindDomain, Message: "nope"})
		if handled, _, _ := model.handleUnauthorized(err); handled {
			t.Error("expected domain errors to pass through")
		}
	})

	t.Run("nil error passes through", func(t *testing.T) {
		model := newTestModel(t, tu.SampleProfile(models.RoleUser))

		if handled, _, _ := model.handleUnauthorized(nil); handled {
			t.Error("expected nil to pass through")
		}
	})
}
