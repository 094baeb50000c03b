package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/olivier-stoked/cinebase/internal/services"
	"github.com/olivier-stoked/cinebase/internal/shared"
)

// AuthLogin signs in against the API and persists the session locally.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	identifier := strings.TrimSpace(cmd.StringArg("identifier"))
	if identifier == "" {
		return fmt.Errorf("%w: username or email argument is required", shared.ErrMissingArgument)
	}

	password, err := r.resolvePassword(cmd)
	if err != nil {
		return err
	}

	r.logger.Info("signing in", "identifier", identifier)

	sess, err := r.controller.Login(ctx, identifier, password)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	r.writePlain("✓ Signed in as %s (%s)\n", sess.User.Username, sess.User.Role)
	r.writePlain("Session saved to %s\n", r.controller.Store().Dir())
	return nil
}

// AuthLogout clears the persisted session. Running it twice is harmless.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.controller.Logout(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return r.writePlain("✓ Signed out\n")
}

// AuthRegister creates a new account. It does not sign the new user in.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	password, err := r.resolvePassword(cmd)
	if err != nil {
		return err
	}

	input := services.RegisterInput{
		Username: cmd.String("username"),
		Email:    cmd.String("email"),
		Password: password,
	}

	r.logger.Info("registering account", "username", input.Username)

	profile, err := r.auth.Register(ctx, input)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	r.writePlain("✓ Account created for %s\n", profile.Username)
	r.writePlain("Sign in with: cinebase auth login %s\n", profile.Username)
	return nil
}

// AuthWhoami prints the persisted user profile without calling the API.
func (r *Runner) AuthWhoami(ctx context.Context, cmd *cli.Command) error {
	profile, err := r.controller.Store().Profile()
	if err != nil {
		return fmt.Errorf("failed to read session: %w", err)
	}
	if profile == nil {
		return fmt.Errorf("%w: no session found, run 'cinebase auth login'", shared.ErrNotAuthenticated)
	}

	if cmd.Bool("json") {
		return r.writeJSON(profile, cmd.Bool("pretty"))
	}

	r.writePlain("Username: %s\n", profile.Username)
	r.writePlain("Email:    %s\n", profile.Email)
	r.writePlain("Role:     %s\n", profile.Role)
	return nil
}

// AuthStatus reports whether a session is persisted and where it lives.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	store := r.controller.Store()

	token, err := store.Token()
	if err != nil {
		return fmt.Errorf("failed to read session: %w", err)
	}
	profile, err := store.Profile()
	if err != nil {
		return fmt.Errorf("failed to read session: %w", err)
	}

	r.writePlain("Session directory: %s\n", store.Dir())
	if token != "" && profile != nil {
		r.writePlain("Status: ✓ Signed in as %s\n", profile.Username)
	} else {
		r.writePlain("Status: ✗ Not signed in\n")
	}
	return nil
}

// resolvePassword reads the --password flag, falling back to a stdin prompt.
func (r *Runner) resolvePassword(cmd *cli.Command) (string, error) {
	if password := cmd.String("password"); password != "" {
		return password, nil
	}

	r.writePlain("Password: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", fmt.Errorf("%w: password is required", shared.ErrMissingArgument)
	}
	return password, nil
}
