package auth

import (
	"fmt"

	authhttp "cvforge/internal/auth/adapter/http"
	"cvforge/internal/auth/adapter/persistence/redisdb"
	"cvforge/internal/auth/adapter/security"
	"cvforge/internal/auth/config"
	"cvforge/internal/auth/domain/repository"
	"cvforge/internal/auth/usecase"
	"cvforge/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// AuthModule represents the complete authentication module
type AuthModule struct {
	sessions repository.SessionRepository
	provider repository.IdentityProvider
	usecase  usecase.AuthUsecaseInterface
	handler  *authhttp.AuthHTTPHandler
	config   *config.Config
}

// NewAuthModule creates a new authentication module instance
func NewAuthModule(redisClient *redis.Client, cfg *config.Config, log logger.Logger) (*AuthModule, error) {
	sessionRepo := redisdb.NewRedisSessionRepository(redisClient)

	provider, err := security.NewGoogleProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity provider: %w", err)
	}

	authUsecase := usecase.NewAuthUsecase(sessionRepo, provider, cfg, log)
	handler := authhttp.NewAuthHTTPHandler(authUsecase, cfg, log)

	return &AuthModule{
		sessions: sessionRepo,
		provider: provider,
		usecase:  authUsecase,
		handler:  handler,
		config:   cfg,
	}, nil
}

// RegisterRoutes registers authentication routes with the provided router
func (am *AuthModule) RegisterRoutes(router fiber.Router) {
	middleware := am.GetMiddleware()
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestContext())
	router.Use("/auth", middleware.RateLimiter())
	am.handler.SetupAuthRoutes(router)
}

// GetUsecase returns the auth usecase for external access
func (am *AuthModule) GetUsecase() usecase.AuthUsecaseInterface {
	return am.usecase
}

// GetMiddleware returns the session gate middleware
func (am *AuthModule) GetMiddleware() *authhttp.AuthMiddleware {
	return authhttp.NewAuthMiddleware(am.usecase, am.config.CookieName)
}
