package model

import "time"

// Session binds an opaque credential token to an authenticated identity.
type Session struct {
	Token     string      `json:"token"`
	User      UserProfile `json:"user"`
	CreatedAt time.Time   `json:"created_at"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// Expired reports whether the session TTL has elapsed.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
