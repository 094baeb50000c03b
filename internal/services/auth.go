package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/olivier-stoked/cinebase/internal/api"
	"github.com/olivier-stoked/cinebase/internal/models"
	"github.com/olivier-stoked/cinebase/internal/shared"
)

// AuthService maps login and registration to the backend auth endpoints.
type AuthService struct {
	client *api.Client
}

// NewAuthService creates an auth resource client over the gateway.
func NewAuthService(client *api.Client) *AuthService {
	return &AuthService{client: client}
}

// loginRequest is the backend's expected login body. The identifier field is
// named usernameOrEmail server-side regardless of what the caller typed.
type loginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

// loginResponse mirrors the backend LoginResponseDTO. The user identifier has
// shipped as both "userId" and "id" across backend revisions, so both are
// decoded and mapped explicitly.
type loginResponse struct {
	Token     string      `json:"token"`
	TokenType string      `json:"tokenType"`
	UserID    int64       `json:"userId"`
	ID        int64       `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	ExpiresIn int64       `json:"expiresIn"`
}

// Login exchanges credentials for a bearer token and the mapped profile.
// Implements session.Authenticator.
func (s *AuthService) Login(ctx context.Context, identifier, secret string) (string, *models.UserProfile, error) {
	if identifier == "" || secret == "" {
		return "", nil, fmt.Errorf("%w: identifier and password are required", shared.ErrInvalidInput)
	}

	var resp loginResponse
	body := loginRequest{UsernameOrEmail: identifier, Password: secret}
	if err := s.client.Post(ctx, "auth.login", "/auth/login", body, &resp); err != nil {
		return "", nil, err
	}

	if resp.Token == "" {
		return "", nil, fmt.Errorf("%w: backend returned no token", shared.ErrAuthFailed)
	}

	userID := resp.UserID
	if userID == 0 {
		userID = resp.ID
	}

	// The login payload omits the email on some revisions; fall back to the
	// identifier when it was an address.
	email := resp.Email
	if email == "" && strings.Contains(identifier, "@") {
		email = identifier
	}

	profile := &models.UserProfile{
		ID:       userID,
		Username: resp.Username,
		Email:    email,
		Role:     resp.Role,
	}

	if err := profile.Validate(); err != nil {
		return "", nil, fmt.Errorf("%w: malformed profile payload: %v", shared.ErrAuthFailed, err)
	}

	return resp.Token, profile, nil
}

// RegisterInput holds the registration fields.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account and returns the created profile.
// The register payload names the identifier "id", unlike login's "userId".
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.UserProfile, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", shared.ErrInvalidInput)
	}

	var profile models.UserProfile
	if err := s.client.Post(ctx, "auth.register", "/auth/register", input, &profile); err != nil {
		return nil, err
	}

	return &profile, nil
}
