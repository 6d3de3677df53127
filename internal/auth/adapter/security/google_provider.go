package security

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"cvforge/internal/auth/config"
	"cvforge/internal/auth/domain/model"
	apperrors "cvforge/internal/shared/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const userInfoEndpoint = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleProvider implements the IdentityProvider port against Google OAuth2.
type GoogleProvider struct {
	oauth    *oauth2.Config
	stateKey []byte
	stateTTL time.Duration
}

type stateClaims struct {
	Nonce string `json:"nonce"`
	jwt.RegisteredClaims
}

// NewGoogleProvider creates a Google OAuth2 identity provider from config.
func NewGoogleProvider(cfg *config.Config) (*GoogleProvider, error) {
	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
		return nil, fmt.Errorf("google client credentials are required")
	}

	return &GoogleProvider{
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.profile",
				"https://www.googleapis.com/auth/userinfo.email",
			},
			Endpoint: google.Endpoint,
		},
		stateKey: []byte(cfg.StateSecretKey),
		stateTTL: cfg.StateTTL,
	}, nil
}

// NewState issues a signed, short-lived state parameter for CSRF protection.
func (p *GoogleProvider) NewState() (string, error) {
	now := time.Now()
	claims := &stateClaims{
		Nonce: uuid.New().String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.stateTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(p.stateKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign state token: %w", err)
	}
	return signed, nil
}

// VerifyState validates the signature and expiry of a returned state parameter.
func (p *GoogleProvider) VerifyState(state string) error {
	token, err := jwt.ParseWithClaims(state, &stateClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.stateKey, nil
	})
	if err != nil || !token.Valid {
		return apperrors.ErrInvalidState
	}
	return nil
}

// AuthCodeURL returns the Google consent URL. The account chooser is always
// shown, matching the login entry point's behavior.
func (p *GoogleProvider) AuthCodeURL(state string) string {
	return p.oauth.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "select_account"))
}

// ResolveIdentity exchanges the authorization code and fetches the profile.
func (p *GoogleProvider) ResolveIdentity(ctx context.Context, code string) (*model.UserProfile, error) {
	token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, apperrors.NewAuthProviderError("failed to exchange authorization code").WithCause(err)
	}

	client := p.oauth.Client(ctx, token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, userInfoEndpoint, nil)
	if err != nil {
		return nil, apperrors.NewAuthProviderError("failed to build userinfo request").WithCause(err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, apperrors.NewAuthProviderError("failed to fetch user info").WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewAuthProviderError(fmt.Sprintf("userinfo request failed: %s", resp.Status))
	}

	var info struct {
		ID      string `json:"id"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, apperrors.NewAuthProviderError("failed to decode user info").WithCause(err)
	}
	if info.ID == "" {
		return nil, apperrors.NewAuthProviderError("provider returned empty user identity")
	}

	profile := &model.UserProfile{
		ID:          info.ID,
		DisplayName: info.Name,
		Picture:     info.Picture,
	}
	if info.Email != "" {
		profile.Emails = []string{info.Email}
	}
	return profile, nil
}
