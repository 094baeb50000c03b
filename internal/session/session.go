package session

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/olivier-stoked/cinebase/internal/models"
	"github.com/olivier-stoked/cinebase/internal/shared"
)

// Session is the in-memory login session state.
//
// Invariant: Authenticated is true iff both User and Token are present.
// Loading is true only during the initial restore-from-storage phase.
type Session struct {
	User          *models.UserProfile
	Token         string
	Authenticated bool
	Loading       bool
}

// Authenticator performs the credential exchange with the backend.
// Implemented by services.AuthService.
type Authenticator interface {
	// Login exchanges an identifier (username or email) and secret for a
	// bearer token and the mapped user profile.
	Login(ctx context.Context, identifier, secret string) (string, *models.UserProfile, error)
}

// Controller is the single authoritative owner of the in-memory [Session].
// Views receive read-only snapshots via [Controller.Session]; all mutation
// goes through Restore, Login, Logout, and Invalidate.
type Controller struct {
	store   *Store
	auth    Authenticator
	logger  *log.Logger
	session Session
}

// NewController creates a Controller whose session starts in the loading,
// unauthenticated state. Restore must run before protected views render.
func NewController(store *Store, auth Authenticator, logger *log.Logger) *Controller {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Controller{
		store:   store,
		auth:    auth,
		logger:  logger,
		session: Session{Loading: true},
	}
}

// Session returns a snapshot of the current session state.
func (c *Controller) Session() Session {
	return c.session
}

// Store returns the persistent store backing this controller.
func (c *Controller) Store() *Store {
	return c.store
}

// Restore reads the token and profile from the persistent store. Both present
// means the session is authenticated; anything else leaves it cleared. Loading
// always resolves to false, even on storage errors, so the route guard never
// wedges views on the loading placeholder.
func (c *Controller) Restore() Session {
	defer func() {
		c.session.Loading = false
	}()

	token, err := c.store.Token()
	if err != nil {
		c.logger.Warn("failed to read stored token", "error", err)
		c.reset()
		return c.session
	}

	profile, err := c.store.Profile()
	if err != nil {
		c.logger.Warn("failed to read stored profile", "error", err)
		c.reset()
		return c.session
	}

	if token == "" || profile == nil {
		c.logger.Debug("no active session found")
		c.reset()
		return c.session
	}

	c.session.User = profile
	c.session.Token = token
	c.session.Authenticated = true
	c.logger.Info("session restored", "username", profile.Username, "role", profile.Role)

	return c.session
}

// Login authenticates against the backend and, on success, persists the
// token and profile before updating the in-memory session. On failure the
// session and store are left untouched and the error is returned to the
// caller for display.
func (c *Controller) Login(ctx context.Context, identifier, secret string) (Session, error) {
	c.logger.Info("login attempt", "identifier", identifier)

	token, profile, err := c.auth.Login(ctx, identifier, secret)
	if err != nil {
		return c.session, err
	}

	if err := c.store.Save(token, profile); err != nil {
		return c.session, fmt.Errorf("failed to persist session: %w", err)
	}

	c.session = Session{
		User:          profile,
		Token:         token,
		Authenticated: true,
		Loading:       false,
	}

	c.logger.Info("login successful", "username", profile.Username, "role", profile.Role)
	return c.session, nil
}

// Logout clears the persistent store and resets the in-memory session.
// Callers perform the full navigation reset to the application root so no
// stale view state stays visible. Idempotent: logging out twice ends in the
// same state as once.
func (c *Controller) Logout() error {
	c.logger.Info("logout, clearing stored session")

	if err := c.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear session store: %w", err)
	}

	c.reset()
	return nil
}

// Invalidate is the global 401 teardown: storage is cleared and the in-memory
// session reset regardless of which request observed the rejection. Storage
// errors are logged, not returned, because the teardown must always complete.
func (c *Controller) Invalidate() {
	c.logger.Warn("token rejected by backend, invalidating session")

	if err := c.store.Clear(); err != nil {
		c.logger.Error("failed to clear session store", "error", err)
	}

	c.reset()
}

func (c *Controller) reset() {
	loading := c.session.Loading
	c.session = Session{Loading: loading}
}
