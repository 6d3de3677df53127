package http

import (
	"context"
	"time"

	"cvforge/internal/auth/usecase"
	"cvforge/internal/shared/contextkeys"
	apperrors "cvforge/internal/shared/errors"
	"cvforge/internal/shared/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// AuthMiddleware provides the session gate for Fiber routes.
type AuthMiddleware struct {
	usecase    usecase.AuthUsecaseInterface
	cookieName string
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(uc usecase.AuthUsecaseInterface, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		usecase:    uc,
		cookieName: cookieName,
	}
}

// RequestID middleware
func (m *AuthMiddleware) RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     "X-Request-ID",
		ContextKey: string(contextkeys.RequestIDKey),
	})
}

// RequestContext copies the generated request ID from fiber locals into the
// request context so it reaches context-aware loggers downstream.
func (m *AuthMiddleware) RequestContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rid, ok := c.Locals(string(contextkeys.RequestIDKey)).(string); ok && rid != "" {
			c.SetUserContext(utils.WithRequestID(c.UserContext(), rid))
		}
		return c.Next()
	}
}

// RateLimiter creates rate limiting middleware for the auth endpoints
func (m *AuthMiddleware) RateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               30,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.Get("X-Forwarded-For", c.IP())
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Rate limit exceeded. Please try again later.",
			})
		},
	})
}

// Protect returns middleware that requires a valid, unexpired session. The
// request is rejected before reaching any protected handler; on success the
// resolved identity is injected into the request context.
func (m *AuthMiddleware) Protect() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(m.cookieName)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authenticated",
			})
		}

		session, err := m.usecase.CurrentSession(c.Context(), token)
		if err != nil {
			if apperrors.IsUnavailable(err) {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "Something went wrong!",
				})
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authenticated",
			})
		}

		ctx := c.UserContext()
		ctx = context.WithValue(ctx, contextkeys.UserIDKey, session.User.ID)
		ctx = context.WithValue(ctx, contextkeys.UserNameKey, session.User.DisplayName)
		ctx = context.WithValue(ctx, contextkeys.SessionTokenKey, session.Token)
		if email := session.User.Email(); email != "" {
			ctx = context.WithValue(ctx, contextkeys.UserEmailKey, email)
		}

		c.SetUserContext(ctx)
		return c.Next()
	}
}
