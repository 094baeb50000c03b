package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/oauth2"

	"github.com/olivier-stoked/cinebase/internal/models"
	"github.com/olivier-stoked/cinebase/internal/shared"
)

const (
	tokenFile   = "token"
	profileFile = "profile.json"
)

// Store persists the bearer token and the cached user profile under two
// independent keys in the session directory. The two are written and cleared
// together by the [Controller]; the gateway's 401 policy may clear them
// unilaterally, so in-memory state can go stale relative to storage until the
// next read.
type Store struct {
	dir string
}

// NewStore creates a session store rooted at dir, creating it with owner-only
// permissions. An empty dir defaults to ~/.cinebase.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, ".cinebase")
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	return &Store{dir: dir}, nil
}

// Dir returns the directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

// Token returns the persisted bearer token, or "" when none is stored.
func (s *Store) Token() (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Profile returns the persisted user profile, or nil when none is stored.
func (s *Store) Profile() (*models.UserProfile, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, profileFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	var profile models.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}

	return &profile, nil
}

// Save writes the token and profile together. Partial writes are rolled back
// so a failed save never leaves one key without the other.
func (s *Store) Save(token string, profile *models.UserProfile) error {
	if token == "" {
		return fmt.Errorf("refusing to persist empty token")
	}
	if profile == nil {
		return fmt.Errorf("refusing to persist nil profile")
	}

	if err := s.writeAtomic(tokenFile, []byte(token)); err != nil {
		return fmt.Errorf("failed to write token: %w", err)
	}

	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	if err := s.writeAtomic(profileFile, data); err != nil {
		os.Remove(filepath.Join(s.dir, tokenFile))
		return fmt.Errorf("failed to write profile: %w", err)
	}

	return nil
}

// Clear removes both keys. Clearing an already-empty store is a no-op, which
// keeps the global 401 teardown idempotent across concurrent in-flight
// requests.
func (s *Store) Clear() error {
	for _, name := range []string{tokenFile, profileFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", name, err)
		}
	}
	return nil
}

// writeAtomic writes data via a temp file and rename so readers never observe
// a torn value.
func (s *Store) writeAtomic(name string, data []byte) error {
	path := filepath.Join(s.dir, name)
	tempPath := path + ".tmp"

	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return err
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return err
	}

	return nil
}

// TokenSource exposes the stored bearer token as an [oauth2.TokenSource] for
// the API gateway client. Each call re-reads storage, so a token cleared by a
// 401 on a sibling request is not reattached.
func (s *Store) TokenSource() oauth2.TokenSource {
	return storeTokenSource{store: s}
}

type storeTokenSource struct {
	store *Store
}

func (ts storeTokenSource) Token() (*oauth2.Token, error) {
	token, err := ts.store.Token()
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, shared.ErrNotAuthenticated
	}
	return &oauth2.Token{AccessToken: token, TokenType: "Bearer"}, nil
}
