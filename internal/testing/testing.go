// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/olivier-stoked/cinebase/internal/models"
)

// MockAuthenticator is a test double for [session.Authenticator]
type MockAuthenticator struct {
	Token   string
	Profile *models.UserProfile
	Err     error
	Calls   int
}

func (m *MockAuthenticator) Login(ctx context.Context, identifier, secret string) (string, *models.UserProfile, error) {
	m.Calls++
	if m.Err != nil {
		return "", nil, m.Err
	}
	return m.Token, m.Profile, nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertFileAbsent(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("File should not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path exists but is not a directory: %s", path)
	}
}

// SampleProfile returns a populated user record for tests.
func SampleProfile(role models.Role) *models.UserProfile {
	return &models.UserProfile{
		ID:       42,
		Username: "casey",
		Email:    "casey@example.com",
		Role:     role,
	}
}

// SampleMovie returns a populated catalog record for tests.
func SampleMovie(id int64) models.Movie {
	avg := 7.5
	return models.Movie{
		ID:            id,
		Title:         "The Long Reel",
		Description:   "A projectionist refuses to close the last cinema in town.",
		Genre:         "Drama",
		ReleaseYear:   1997,
		Director:      "R. Ademi",
		Rating:        8.2,
		AverageRating: &avg,
	}
}
