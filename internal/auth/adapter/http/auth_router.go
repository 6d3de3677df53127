package http

import (
	"strings"
	"time"

	"cvforge/internal/auth/config"
	"cvforge/internal/auth/usecase"
	apperrors "cvforge/internal/shared/errors"
	"cvforge/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// AuthHTTPHandler handles HTTP requests for authentication
type AuthHTTPHandler struct {
	usecase usecase.AuthUsecaseInterface
	config  *config.Config
	log     logger.Logger
}

// NewAuthHTTPHandler creates a new authentication HTTP handler
func NewAuthHTTPHandler(uc usecase.AuthUsecaseInterface, cfg *config.Config, log logger.Logger) *AuthHTTPHandler {
	return &AuthHTTPHandler{
		usecase: uc,
		config:  cfg,
		log:     log.WithComponent("auth_http"),
	}
}

// SetupAuthRoutes registers the authentication routes. All of them are public;
// /auth/user answers null instead of 401 for anonymous callers.
func (h *AuthHTTPHandler) SetupAuthRoutes(router fiber.Router) {
	router.Get("/auth/google", h.GoogleLogin)
	router.Get("/auth/google/callback", h.GoogleCallback)
	router.Get("/auth/logout", h.Logout)
	router.Post("/auth/logout", h.Logout)
	router.Get("/auth/user", h.CurrentUser)
}

// GoogleLogin redirects the client to the Google consent screen. An optional
// returnTo query target is stashed for the callback.
func (h *AuthHTTPHandler) GoogleLogin(c *fiber.Ctx) error {
	authURL, err := h.usecase.BeginLogin(c.Context(), c.Query("returnTo"))
	if err != nil {
		h.log.Errorf("failed to begin login: %v", err)
		return c.Redirect(h.config.LoginFailedURL(), fiber.StatusFound)
	}
	return c.Redirect(authURL, fiber.StatusFound)
}

// GoogleCallback completes the OAuth handshake. Success sets the session
// cookie and redirects to the stashed returnTo target; any failure redirects
// to the login-failed URL, never a 5xx.
func (h *AuthHTTPHandler) GoogleCallback(c *fiber.Ctx) error {
	if providerErr := c.Query("error"); providerErr != "" {
		h.log.Warnf("provider declined login: %s", providerErr)
		return c.Redirect(h.config.LoginFailedURL(), fiber.StatusFound)
	}

	session, returnTo, err := h.usecase.CompleteLogin(c.Context(), c.Query("state"), c.Query("code"))
	if err != nil {
		h.log.Errorf("failed to complete login: %v", err)
		return c.Redirect(h.config.LoginFailedURL(), fiber.StatusFound)
	}

	h.setSessionCookie(c, session.Token)
	return c.Redirect(h.config.FrontendURL+returnTo, fiber.StatusFound)
}

// Logout destroys the session, clears the cookie, then responds; the order is
// fixed. Logging out twice in a row both report success.
func (h *AuthHTTPHandler) Logout(c *fiber.Ctx) error {
	returnTo := c.Query("returnTo")
	if returnTo == "" {
		returnTo = "/"
	}

	token := c.Cookies(h.config.CookieName)
	if err := h.usecase.Logout(c.Context(), token); err != nil {
		h.log.Errorf("failed to destroy session: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error logging out",
		})
	}

	h.clearSessionCookie(c)

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		return c.JSON(fiber.Map{"success": true})
	}
	return c.Redirect(h.config.FrontendURL+returnTo, fiber.StatusFound)
}

// CurrentUser returns the session's profile, or JSON null for anonymous
// callers. It never answers 401.
func (h *AuthHTTPHandler) CurrentUser(c *fiber.Ctx) error {
	token := c.Cookies(h.config.CookieName)
	session, err := h.usecase.CurrentSession(c.Context(), token)
	if err != nil {
		if apperrors.IsUnavailable(err) {
			h.log.Errorf("failed to resolve session: %v", err)
		}
		return c.JSON(nil)
	}

	return c.JSON(fiber.Map{
		"_id":         session.User.ID,
		"displayName": session.User.DisplayName,
		"email":       session.User.Email(),
	})
}

// Helper methods

func (h *AuthHTTPHandler) setSessionCookie(c *fiber.Ctx, token string) {
	maxAge := int(h.config.SessionTTL.Seconds())
	c.Cookie(&fiber.Cookie{
		Name:     h.config.CookieName,
		Value:    token,
		Path:     h.config.CookiePath,
		Domain:   h.config.CookieDomain,
		MaxAge:   maxAge,
		Secure:   h.config.CookieSecure,
		HTTPOnly: h.config.CookieHTTPOnly,
		SameSite: h.config.CookieSameSite,
		Expires:  time.Now().Add(h.config.SessionTTL),
	})
}

func (h *AuthHTTPHandler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     h.config.CookieName,
		Value:    "",
		Path:     h.config.CookiePath,
		Domain:   h.config.CookieDomain,
		MaxAge:   -1,
		Secure:   h.config.CookieSecure,
		HTTPOnly: h.config.CookieHTTPOnly,
		SameSite: h.config.CookieSameSite,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}
