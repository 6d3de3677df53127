package repository

import (
	"context"

	"cvforge/internal/auth/domain/model"
)

// IdentityProvider wraps the OAuth handshake with the external identity provider.
type IdentityProvider interface {
	// AuthCodeURL returns the provider consent URL for the given state.
	AuthCodeURL(state string) string
	// NewState issues a signed, short-lived state parameter.
	NewState() (string, error)
	// VerifyState checks a state parameter returned by the provider callback.
	VerifyState(state string) error
	// ResolveIdentity exchanges the authorization code and fetches the user's
	// profile from the provider.
	ResolveIdentity(ctx context.Context, code string) (*model.UserProfile, error)
}
