package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a session id is unknown or expired.
var ErrNotFound = errors.New("session not found")

// Session is the server-side identity attached to a request. HospitalID
// is set only for hospital_admin sessions.
type Session struct {
	ID         string    `json:"id"`
	UserID     int64     `json:"user_id"`
	Username   string    `json:"username"`
	Role       string    `json:"role"`
	HospitalID *int64    `json:"hospital_id,omitempty"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// Store is a pluggable session store. The in-memory implementation
// serves a single instance; the Redis implementation allows horizontal
// scaling.
type Store interface {
	Create(ctx context.Context, sess *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// New builds a session with a fresh opaque id and the given lifetime.
func New(userID int64, username, role string, hospitalID *int64, ttl time.Duration) *Session {
	return &Session{
		ID:         uuid.New().String(),
		UserID:     userID,
		Username:   username,
		Role:       role,
		HospitalID: hospitalID,
		ExpiresAt:  time.Now().Add(ttl),
	}
}
