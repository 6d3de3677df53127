package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	authhttp "cvforge/internal/auth/adapter/http"
	"cvforge/internal/auth/config"
	"cvforge/internal/auth/domain/model"
	apperrors "cvforge/internal/shared/errors"
	"cvforge/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// Mock usecase
type mockAuthUsecase struct {
	mock.Mock
}

func (m *mockAuthUsecase) BeginLogin(ctx context.Context, returnTo string) (string, error) {
	args := m.Called(ctx, returnTo)
	return args.String(0), args.Error(1)
}

func (m *mockAuthUsecase) CompleteLogin(ctx context.Context, state, code string) (*model.Session, string, error) {
	args := m.Called(ctx, state, code)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*model.Session), args.String(1), args.Error(2)
}

func (m *mockAuthUsecase) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *mockAuthUsecase) CurrentSession(ctx context.Context, token string) (*model.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

type AuthHTTPTestSuite struct {
	suite.Suite
	app         *fiber.App
	mockUsecase *mockAuthUsecase
	config      *config.Config
}

func (suite *AuthHTTPTestSuite) SetupTest() {
	suite.mockUsecase = &mockAuthUsecase{}
	suite.app = fiber.New()
	suite.config = &config.Config{
		SessionTTL:     24 * time.Hour,
		FrontendURL:    "http://localhost:5173",
		CookieName:     "cv_session",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	}

	handler := authhttp.NewAuthHTTPHandler(suite.mockUsecase, suite.config, logger.NewLogger())
	handler.SetupAuthRoutes(suite.app)
}

func (suite *AuthHTTPTestSuite) TestGoogleLogin_RedirectsToProvider() {
	suite.mockUsecase.On("BeginLogin", mock.Anything, "/editor").
		Return("https://accounts.google.com/o/oauth2/auth?state=abc", nil)

	req := httptest.NewRequest("GET", "/auth/google?returnTo=/editor", nil)
	resp, err := suite.app.Test(req)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusFound, resp.StatusCode)
	assert.Equal(suite.T(), "https://accounts.google.com/o/oauth2/auth?state=abc", resp.Header.Get("Location"))
}

func (suite *AuthHTTPTestSuite) TestGoogleCallback_Success() {
	session := &model.Session{
		Token: "session-token-1",
		User:  model.UserProfile{ID: "google-user-1"},
	}

	suite.mockUsecase.On("CompleteLogin", mock.Anything, "state-1", "code-1").
		Return(session, "/editor", nil)

	req := httptest.NewRequest("GET", "/auth/google/callback?state=state-1&code=code-1", nil)
	resp, err := suite.app.Test(req)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusFound, resp.StatusCode)
	assert.Equal(suite.T(), "http://localhost:5173/editor", resp.Header.Get("Location"))

	var sessionCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "cv_session" {
			sessionCookie = c
		}
	}
	require.NotNil(suite.T(), sessionCookie)
	assert.Equal(suite.T(), "session-token-1", sessionCookie.Value)
	assert.True(suite.T(), sessionCookie.HttpOnly)
}

func (suite *AuthHTTPTestSuite) TestGoogleCallback_ProviderFailureRedirects() {
	suite.mockUsecase.On("CompleteLogin", mock.Anything, "state-1", "code-1").
		Return(nil, "", apperrors.NewAuthProviderError("exchange failed"))

	req := httptest.NewRequest("GET", "/auth/google/callback?state=state-1&code=code-1", nil)
	resp, err := suite.app.Test(req)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusFound, resp.StatusCode)
	assert.Equal(suite.T(), "http://localhost:5173/login?error=auth_failed", resp.Header.Get("Location"))
}

func (suite *AuthHTTPTestSuite) TestGoogleCallback_ProviderErrorParam() {
	req := httptest.NewRequest("GET", "/auth/google/callback?error=access_denied", nil)
	resp, err := suite.app.Test(req)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusFound, resp.StatusCode)
	assert.Equal(suite.T(), "http://localhost:5173/login?error=auth_failed", resp.Header.Get("Location"))
	suite.mockUsecase.AssertNotCalled(suite.T(), "CompleteLogin")
}

func (suite *AuthHTTPTestSuite) TestLogout_JSONResponse() {
	suite.mockUsecase.On("Logout", mock.Anything, "session-token-1").Return(nil)

	req := httptest.NewRequest("POST", "/auth/logout", nil)
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "cv_session", Value: "session-token-1"})

	resp, err := suite.app.Test(req)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	var body map[string]bool
	require.NoError(suite.T(), json.NewDecoder(resp.Body).Decode(&body))
	assert.True(suite.T(), body["success"])

	var sessionCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "cv_session" {
			sessionCookie = c
		}
	}
	require.NotNil(suite.T(), sessionCookie, "logout must clear the session cookie")
	assert.Empty(suite.T(), sessionCookie.Value)
}

func (suite *AuthHTTPTestSuite) TestLogout_BrowserRedirect() {
	suite.mockUsecase.On("Logout", mock.Anything, "").Return(nil)

	req := httptest.NewRequest("GET", "/auth/logout?returnTo=/goodbye", nil)
	resp, err := suite.app.Test(req)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusFound, resp.StatusCode)
	assert.Equal(suite.T(), "http://localhost:5173/goodbye", resp.Header.Get("Location"))
}

func (suite *AuthHTTPTestSuite) TestLogout_WithoutSessionStillSucceeds() {
	suite.mockUsecase.On("Logout", mock.Anything, "").Return(nil)

	req := httptest.NewRequest("GET", "/auth/logout", nil)
	req.Header.Set("Content-Type", "application/json")
	resp, err := suite.app.Test(req)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
}

func (suite *AuthHTTPTestSuite) TestLogout_StoreError() {
	suite.mockUsecase.On("Logout", mock.Anything, "session-token-1").
		Return(apperrors.NewUnavailableError("session store delete failed"))

	req := httptest.NewRequest("POST", "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "cv_session", Value: "session-token-1"})
	resp, err := suite.app.Test(req)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusInternalServerError, resp.StatusCode)
}

func (suite *AuthHTTPTestSuite) TestCurrentUser_Authenticated() {
	session := &model.Session{
		Token: "session-token-1",
		User: model.UserProfile{
			ID:          "google-user-1",
			DisplayName: "Ada Lovelace",
			Emails:      []string{"ada@example.com", "secondary@example.com"},
		},
	}

	suite.mockUsecase.On("CurrentSession", mock.Anything, "session-token-1").Return(session, nil)

	req := httptest.NewRequest("GET", "/auth/user", nil)
	req.AddCookie(&http.Cookie{Name: "cv_session", Value: "session-token-1"})
	resp, err := suite.app.Test(req)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(suite.T(), json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(suite.T(), "google-user-1", body["_id"])
	assert.Equal(suite.T(), "Ada Lovelace", body["displayName"])
	assert.Equal(suite.T(), "ada@example.com", body["email"], "first email is canonical")
}

func (suite *AuthHTTPTestSuite) TestCurrentUser_AnonymousGetsNull() {
	suite.mockUsecase.On("CurrentSession", mock.Anything, "").
		Return(nil, apperrors.ErrSessionNotFound)

	req := httptest.NewRequest("GET", "/auth/user", nil)
	resp, err := suite.app.Test(req)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	var body interface{}
	require.NoError(suite.T(), json.NewDecoder(resp.Body).Decode(&body))
	assert.Nil(suite.T(), body)
}

func TestAuthHTTPTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHTTPTestSuite))
}
