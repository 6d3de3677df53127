package redisdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cvforge/internal/auth/domain/model"
	"cvforge/internal/auth/domain/repository"
	apperrors "cvforge/internal/shared/errors"

	"github.com/redis/go-redis/v9"
)

// RedisSessionRepository implements SessionRepository on top of Redis. Session
// expiry is enforced by key TTLs, so an expired session reads as not found.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewRedisSessionRepository creates a Redis-backed session repository.
func NewRedisSessionRepository(client *redis.Client) repository.SessionRepository {
	return &RedisSessionRepository{client: client}
}

func sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

func returnToKey(state string) string {
	return fmt.Sprintf("return_to:%s", state)
}

// CreateSession stores the session with a TTL derived from its expiry.
func (r *RedisSessionRepository) CreateSession(ctx context.Context, session *model.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := r.client.Set(ctx, sessionKey(session.Token), data, ttl).Err(); err != nil {
		return apperrors.NewUnavailableError("session store write failed").WithCause(err)
	}
	return nil
}

// GetSession loads a session by token.
func (r *RedisSessionRepository) GetSession(ctx context.Context, token string) (*model.Session, error) {
	data, err := r.client.Get(ctx, sessionKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, apperrors.ErrSessionNotFound
	}
	if err != nil {
		return nil, apperrors.NewUnavailableError("session store read failed").WithCause(err)
	}

	var session model.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// DeleteSession removes a session. Absent sessions delete cleanly, which keeps
// logout idempotent.
func (r *RedisSessionRepository) DeleteSession(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return apperrors.NewUnavailableError("session store delete failed").WithCause(err)
	}
	return nil
}

// StashReturnTo stores a redirect target keyed by OAuth state.
func (r *RedisSessionRepository) StashReturnTo(ctx context.Context, state, returnTo string, ttl time.Duration) error {
	if err := r.client.Set(ctx, returnToKey(state), returnTo, ttl).Err(); err != nil {
		return apperrors.NewUnavailableError("session store write failed").WithCause(err)
	}
	return nil
}

// TakeReturnTo consumes a stashed redirect target exactly once. GETDEL makes
// the read-and-clear atomic.
func (r *RedisSessionRepository) TakeReturnTo(ctx context.Context, state string) (string, error) {
	returnTo, err := r.client.GetDel(ctx, returnToKey(state)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", apperrors.NewUnavailableError("session store read failed").WithCause(err)
	}
	return returnTo, nil
}
