package ui

import "github.com/olivier-stoked/cinebase/internal/models"

// Route identifies a view, mirroring the browser-style paths the backend docs
// use.
type Route string

const (
	RouteHome      Route = "/"
	RouteLogin     Route = "/login"
	RouteForbidden Route = "/forbidden"
	RouteMovies    Route = "/movies"
	RouteAdmin     Route = "/admin"
	RouteNotFound  Route = "/404"
)

// protectedRoutes maps each guarded route to its required role. An empty role
// means any authenticated user passes. Routes absent from the map are public.
var protectedRoutes = map[Route]models.Role{
	RouteMovies: "",
	RouteAdmin:  models.RoleAdmin,
}

// isProtected reports whether r needs a guard decision, returning the
// required role.
func isProtected(r Route) (models.Role, bool) {
	role, ok := protectedRoutes[r]
	return role, ok
}
