package models

import (
	"fmt"
	"time"
)

// Role is the coarse authorization tag attached to a profile.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is one of the roles the backend issues.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// UserProfile represents an authenticated user as cached client-side.
// Immutable once received from the backend for the lifetime of the session;
// refreshed only by a new login.
type UserProfile struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// Validate checks the profile fields the client depends on.
func (u *UserProfile) Validate() error {
	if u.Username == "" {
		return fmt.Errorf("username is required")
	}
	if !u.Role.Valid() {
		return fmt.Errorf("unknown role: %q", u.Role)
	}
	return nil
}

// IsAdmin reports whether the profile carries the ADMIN role.
func (u *UserProfile) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Movie represents a movie record as served by the backend.
//
// Rating is the jury score (0-10, curator-assigned). AverageRating is the
// community score computed server-side from reviews; nil until at least one
// review exists.
type Movie struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Genre         string   `json:"genre"`
	ReleaseYear   int      `json:"releaseYear"`
	Director      string   `json:"director"`
	Rating        float64  `json:"rating"`
	AverageRating *float64 `json:"averageRating,omitempty"`
}

// Validate checks movie fields before a create or update is transmitted.
func (m *Movie) Validate() error {
	if m.Title == "" {
		return fmt.Errorf("title is required")
	}
	if m.Rating < 0 || m.Rating > 10 {
		return fmt.Errorf("rating must be between 0 and 10, got %.1f", m.Rating)
	}
	if m.ReleaseYear != 0 && (m.ReleaseYear < 1888 || m.ReleaseYear > time.Now().Year()+5) {
		return fmt.Errorf("implausible release year: %d", m.ReleaseYear)
	}
	return nil
}

// FormatAverage renders the community average to one decimal place,
// or "-" when the backend has not supplied one.
func (m *Movie) FormatAverage() string {
	if m.AverageRating == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *m.AverageRating)
}

// MaxCommentLength is the backend's review comment bound.
const MaxCommentLength = 500

// Review represents a submitted rating with an optional comment.
// Username is denormalized by the backend on reads.
type Review struct {
	ID        int64     `json:"id,omitempty"`
	MovieID   int64     `json:"movieId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	Username  string    `json:"username,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Validate checks the review against the backend contract: integer rating in
// [0,10] and a comment of at most [MaxCommentLength] characters.
func (r *Review) Validate() error {
	if r.MovieID <= 0 {
		return fmt.Errorf("movieId is required")
	}
	if r.Rating < 0 || r.Rating > 10 {
		return fmt.Errorf("rating must be between 0 and 10, got %d", r.Rating)
	}
	if len([]rune(r.Comment)) > MaxCommentLength {
		return fmt.Errorf("comment exceeds %d characters", MaxCommentLength)
	}
	return nil
}
