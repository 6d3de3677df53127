package config

import (
	"errors"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config holds all configuration for the auth module.
type Config struct {
	// Google OAuth Configuration
	GoogleClientID     string `env:"GOOGLE_CLIENT_ID,required"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET,required"`
	GoogleRedirectURL  string `env:"GOOGLE_REDIRECT_URL" envDefault:"http://localhost:5000/auth/google/callback"`

	// State token signing key for the OAuth handshake (CSRF protection)
	StateSecretKey string        `env:"STATE_SECRET_KEY,required"`
	StateTTL       time.Duration `env:"STATE_TTL" envDefault:"10m"`

	// Session Configuration
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// Frontend redirect base for post-login and logout destinations
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`

	// Cookie Configuration
	CookieName     string `env:"COOKIE_NAME" envDefault:"cv_session"`
	CookiePath     string `env:"COOKIE_PATH" envDefault:"/"`
	CookieDomain   string `env:"COOKIE_DOMAIN" envDefault:""`
	CookieSecure   bool   `env:"COOKIE_SECURE" envDefault:"false"`
	CookieHTTPOnly bool   `env:"COOKIE_HTTP_ONLY" envDefault:"true"`
	CookieSameSite string `env:"COOKIE_SAME_SITE" envDefault:"Lax"` // "Lax", "Strict", "None"
}

// LoadConfig loads configuration from environment variables and applies defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, errors.New("failed to load auth configuration from environment: " + err.Error() +
			". Please ensure all required environment variables are set.")
	}

	if cfg.StateSecretKey == "" {
		return nil, errors.New("state_secret_key is required")
	}
	if cfg.SessionTTL <= 0 {
		return nil, errors.New("session_ttl must be positive")
	}

	// Normalize and validate CookieSameSite
	cfg.CookieSameSite = normalizeSameSite(cfg.CookieSameSite)
	if !(cfg.CookieSameSite == "Lax" || cfg.CookieSameSite == "Strict" || cfg.CookieSameSite == "None") {
		return nil, errors.New("cookie_same_site must be one of 'Lax', 'Strict', or 'None'")
	}

	cfg.FrontendURL = strings.TrimRight(cfg.FrontendURL, "/")

	return cfg, nil
}

func normalizeSameSite(v string) string {
	if v == "" {
		return "Lax"
	}
	return strings.ToUpper(v[:1]) + strings.ToLower(v[1:])
}

// LoginFailedURL is the destination for failed identity-provider handshakes.
func (c *Config) LoginFailedURL() string {
	return c.FrontendURL + "/login?error=auth_failed"
}
