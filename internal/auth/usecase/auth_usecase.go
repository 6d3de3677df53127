package usecase

import (
	"context"
	"errors"
	"time"

	"cvforge/internal/auth/config"
	"cvforge/internal/auth/domain/model"
	"cvforge/internal/auth/domain/repository"
	apperrors "cvforge/internal/shared/errors"
	"cvforge/internal/shared/logger"

	"github.com/google/uuid"
)

// AuthUsecaseInterface defines the authentication gate contract.
type AuthUsecaseInterface interface {
	// BeginLogin starts the OAuth handshake, stashing the optional returnTo
	// target, and returns the provider consent URL.
	BeginLogin(ctx context.Context, returnTo string) (string, error)
	// CompleteLogin finishes the handshake: it verifies state, resolves the
	// identity, creates a session and consumes the stashed returnTo.
	CompleteLogin(ctx context.Context, state, code string) (*model.Session, string, error)
	// Logout destroys the session for token. Idempotent: an absent or empty
	// token still succeeds.
	Logout(ctx context.Context, token string) error
	// CurrentSession resolves a live session from its token, lazily destroying
	// expired ones. Returns apperrors.ErrSessionNotFound when no valid,
	// unexpired session exists.
	CurrentSession(ctx context.Context, token string) (*model.Session, error)
}

// AuthUsecase implements the authentication gate on top of the session
// repository and the identity provider.
type AuthUsecase struct {
	sessions repository.SessionRepository
	provider repository.IdentityProvider
	config   *config.Config
	log      logger.Logger
}

// NewAuthUsecase creates a new authentication usecase.
func NewAuthUsecase(sessions repository.SessionRepository, provider repository.IdentityProvider, cfg *config.Config, log logger.Logger) *AuthUsecase {
	return &AuthUsecase{
		sessions: sessions,
		provider: provider,
		config:   cfg,
		log:      log.WithComponent("auth"),
	}
}

// BeginLogin issues the OAuth state and returns the consent URL. A non-empty
// returnTo is stashed server-side keyed by the state so the callback can
// consume it exactly once.
func (uc *AuthUsecase) BeginLogin(ctx context.Context, returnTo string) (string, error) {
	state, err := uc.provider.NewState()
	if err != nil {
		return "", apperrors.NewAuthProviderError("failed to start login").WithCause(err)
	}

	if returnTo != "" {
		if err := uc.sessions.StashReturnTo(ctx, state, returnTo, uc.config.StateTTL); err != nil {
			return "", err
		}
	}

	return uc.provider.AuthCodeURL(state), nil
}

// CompleteLogin verifies the callback, establishes a session and returns it
// together with the post-login redirect target (default "/").
func (uc *AuthUsecase) CompleteLogin(ctx context.Context, state, code string) (*model.Session, string, error) {
	if err := uc.provider.VerifyState(state); err != nil {
		return nil, "", apperrors.NewAuthProviderError("oauth state verification failed").WithCause(err)
	}

	profile, err := uc.provider.ResolveIdentity(ctx, code)
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	session := &model.Session{
		Token:     uuid.New().String(),
		User:      *profile,
		CreatedAt: now,
		ExpiresAt: now.Add(uc.config.SessionTTL),
	}
	if err := uc.sessions.CreateSession(ctx, session); err != nil {
		return nil, "", err
	}

	returnTo, err := uc.sessions.TakeReturnTo(ctx, state)
	if err != nil {
		// The login itself succeeded; fall back to the home location.
		uc.log.WithContext(ctx).Warnf("failed to consume returnTo target: %v", err)
		returnTo = ""
	}
	if returnTo == "" {
		returnTo = "/"
	}

	uc.log.WithFields(map[string]interface{}{"user_id": profile.ID}).Info("login completed")
	return session, returnTo, nil
}

// Logout destroys the session. Logging out with no active session still
// succeeds and reports success.
func (uc *AuthUsecase) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := uc.sessions.DeleteSession(ctx, token); err != nil {
		return err
	}
	return nil
}

// CurrentSession resolves the session for token. Expiry is detected lazily on
// access: an expired session is deleted and reported as not found.
func (uc *AuthUsecase) CurrentSession(ctx context.Context, token string) (*model.Session, error) {
	if token == "" {
		return nil, apperrors.ErrSessionNotFound
	}

	session, err := uc.sessions.GetSession(ctx, token)
	if err != nil {
		return nil, err
	}

	if session.Expired(time.Now()) {
		if delErr := uc.sessions.DeleteSession(ctx, token); delErr != nil && !errors.Is(delErr, apperrors.ErrSessionNotFound) {
			uc.log.Warnf("failed to delete expired session: %v", delErr)
		}
		return nil, apperrors.ErrSessionNotFound
	}

	return session, nil
}
