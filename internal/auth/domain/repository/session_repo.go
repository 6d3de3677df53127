package repository

import (
	"context"
	"time"

	"cvforge/internal/auth/domain/model"
)

// SessionRepository persists session state keyed by the opaque credential token.
type SessionRepository interface {
	// CreateSession stores a session until its ExpiresAt.
	CreateSession(ctx context.Context, session *model.Session) error
	// GetSession returns the session for token, or errors.ErrSessionNotFound.
	GetSession(ctx context.Context, token string) (*model.Session, error)
	// DeleteSession removes a session. Deleting an absent session is not an error.
	DeleteSession(ctx context.Context, token string) error

	// StashReturnTo stores a post-login redirect target keyed by the OAuth state,
	// bounded by ttl.
	StashReturnTo(ctx context.Context, state, returnTo string, ttl time.Duration) error
	// TakeReturnTo consumes a stashed redirect target exactly once. It returns ""
	// when nothing was stashed for state.
	TakeReturnTo(ctx context.Context, state string) (string, error)
}
