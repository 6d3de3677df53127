package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	apperrors "cvforge/internal/shared/errors"

	"github.com/stretchr/testify/assert"
)

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := apperrors.NewUnavailableError("session store read failed").WithCause(cause)

	assert.Equal(t, "session store read failed: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPCode)
}

func TestTaxonomyClassifiers(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		notFound      bool
		authn         bool
		provider      bool
		unavailable   bool
	}{
		{
			name:     "not found app error",
			err:      apperrors.NewNotFoundError("CV"),
			notFound: true,
		},
		{
			name:     "cv sentinel",
			err:      apperrors.ErrCVNotFound,
			notFound: true,
		},
		{
			name:     "session sentinel",
			err:      apperrors.ErrSessionNotFound,
			notFound: true,
		},
		{
			name:  "authentication app error",
			err:   apperrors.NewAuthenticationError("no session"),
			authn: true,
		},
		{
			name:     "provider app error",
			err:      apperrors.NewAuthProviderError("exchange failed"),
			provider: true,
		},
		{
			name:     "invalid state sentinel",
			err:      apperrors.ErrInvalidState,
			provider: true,
		},
		{
			name:        "unavailable app error",
			err:         apperrors.NewUnavailableError("store down"),
			unavailable: true,
		},
		{
			name: "plain error matches no class",
			err:  stderrors.New("boom"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.notFound, apperrors.IsNotFound(tt.err))
			assert.Equal(t, tt.authn, apperrors.IsAuthentication(tt.err))
			assert.Equal(t, tt.provider, apperrors.IsAuthProvider(tt.err))
			assert.Equal(t, tt.unavailable, apperrors.IsUnavailable(tt.err))
		})
	}
}

func TestClassifiersSeeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("save failed: %w", apperrors.NewUnavailableError("store down"))
	assert.True(t, apperrors.IsUnavailable(err))

	err = fmt.Errorf("lookup: %w", apperrors.ErrCVNotFound)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestWrapError_PreservesAppError(t *testing.T) {
	orig := apperrors.NewNotFoundError("CV")
	wrapped := apperrors.WrapError(orig, "fetch failed")

	assert.Same(t, orig, wrapped)
}

func TestWrapError_WrapsPlainError(t *testing.T) {
	cause := stderrors.New("boom")
	wrapped := apperrors.WrapError(cause, "fetch failed")

	assert.Equal(t, apperrors.ErrorTypeInternal, wrapped.Type)
	assert.ErrorIs(t, wrapped, cause)
}

func TestWithDetailAndCode(t *testing.T) {
	err := apperrors.NewValidationError("bad input").
		WithCode("INVALID_BODY").
		WithComponent("cv_http").
		WithDetail("field", "cvData")

	assert.Equal(t, "INVALID_BODY", err.Code)
	assert.Equal(t, "cv_http", err.Component)
	assert.Equal(t, "cvData", err.Details["field"])
}
