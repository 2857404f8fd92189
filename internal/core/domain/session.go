package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session is the server-side half of a browser session. UserID is nil until
// the browser signs up or logs in, and again after logout.
type Session struct {
	ID        string    `db:"id"` // UUID
	UserID    *int64    `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
}

func NewSession(userID int64, ttl time.Duration) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.New().String(),
		UserID:    &userID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

func (s *Session) IsExpired() bool {
	return time.Now().UTC().After(s.ExpiresAt)
}

// HasUser reports whether the session currently identifies a logged-in user.
func (s *Session) HasUser() bool {
	return s != nil && s.UserID != nil
}
