package session

import "github.com/olivier-stoked/cinebase/internal/models"

// Action is the route guard's decision for a view given the current session.
type Action int

const (
	// Render the requested view.
	Render Action = iota
	// ShowLoading renders a placeholder while the initial restore is in
	// flight, preventing a flash of the unauthenticated view.
	ShowLoading
	// RedirectLogin sends the user to the login route.
	RedirectLogin
	// RedirectForbidden sends the user to the forbidden route.
	RedirectForbidden
)

func (a Action) String() string {
	switch a {
	case Render:
		return "render"
	case ShowLoading:
		return "loading"
	case RedirectLogin:
		return "redirect-login"
	case RedirectForbidden:
		return "redirect-forbidden"
	default:
		return "unknown"
	}
}

// Decide maps a session snapshot and a route's required role to an [Action].
// An empty requiredRole means any authenticated role passes. Decide is pure;
// interpreting the action (navigation) is the caller's job.
func Decide(s Session, requiredRole models.Role) Action {
	if s.Loading {
		return ShowLoading
	}
	if !s.Authenticated {
		return RedirectLogin
	}
	if requiredRole != "" && (s.User == nil || s.User.Role != requiredRole) {
		return RedirectForbidden
	}
	return Render
}
