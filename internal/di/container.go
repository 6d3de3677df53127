package di

import (
	"context"
	"fmt"
	"sync"

	"cvforge/internal/auth"
	authconfig "cvforge/internal/auth/config"
	"cvforge/internal/cv"
	"cvforge/internal/shared/logger"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container wires the application's modules to their stores. Every handle is
// constructed explicitly at startup and injected; there are no lazily
// initialized globals, and HealthCheck backs the readiness endpoint.
type Container struct {
	mu sync.RWMutex

	// Module instances
	AuthModule *auth.AuthModule
	CVModule   *cv.CVModule

	// Store connections
	MongoDB     *mongo.Database
	RedisClient *redis.Client

	// Configuration
	AuthConfig *authconfig.Config

	// Logger
	Logger logger.Logger
}

// NewContainer creates a new DI container
func NewContainer(log logger.Logger) *Container {
	return &Container{Logger: log}
}

// InitializeAuth initializes the authentication module against the session store
func (c *Container) InitializeAuth(redisClient *redis.Client, cfg *authconfig.Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.RedisClient = redisClient
	c.AuthConfig = cfg

	authModule, err := auth.NewAuthModule(redisClient, cfg, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to create auth module: %w", err)
	}

	c.AuthModule = authModule
	return nil
}

// InitializeCV initializes the CV ownership module against the document store
func (c *Container) InitializeCV(mongoDB *mongo.Database) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.AuthModule == nil {
		return fmt.Errorf("auth module must be initialized before the CV module")
	}
	if mongoDB == nil {
		return fmt.Errorf("MongoDB must be initialized before the CV module")
	}

	c.MongoDB = mongoDB

	cvModule, err := cv.NewCVModule(mongoDB, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to create CV module: %w", err)
	}

	c.CVModule = cvModule
	return nil
}

// GetAuthModule returns the auth module instance
func (c *Container) GetAuthModule() *auth.AuthModule {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.AuthModule
}

// GetCVModule returns the CV module instance
func (c *Container) GetCVModule() *cv.CVModule {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.CVModule
}

// HealthCheck verifies that both stores are reachable.
func (c *Container) HealthCheck(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.MongoDB == nil || c.RedisClient == nil {
		return fmt.Errorf("container not fully initialized")
	}

	if err := c.MongoDB.Client().Ping(ctx, nil); err != nil {
		return fmt.Errorf("document store unreachable: %w", err)
	}
	if err := c.RedisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("session store unreachable: %w", err)
	}
	return nil
}

// Close releases the container's store connections.
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			return fmt.Errorf("failed to close redis client: %w", err)
		}
	}
	return nil
}
