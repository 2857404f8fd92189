package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewSession(t *testing.T) {
	s := NewSession(7, time.Hour)

	assert.NotEmpty(t, s.ID)
	assert.True(t, s.HasUser())
	assert.Equal(t, int64(7), *s.UserID)
	assert.False(t, s.IsExpired())
	assert.WithinDuration(t, s.CreatedAt.Add(time.Hour), s.ExpiresAt, time.Second)
}

func TestSession_IsExpired(t *testing.T) {
	s := NewSession(1, -time.Minute)
	assert.True(t, s.IsExpired())
}

func TestSession_HasUser(t *testing.T) {
	var nilSession *Session
	assert.False(t, nilSession.HasUser())

	s := NewSession(1, time.Hour)
	s.UserID = nil
	assert.False(t, s.HasUser())
}
