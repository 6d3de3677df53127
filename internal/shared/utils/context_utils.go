package utils

import (
	"context"
	"errors"

	"cvforge/internal/shared/contextkeys"
)

// Common context errors
var (
	ErrUserIDNotFound        = errors.New("userID not found in context")
	ErrUserIDNotString       = errors.New("userID in context is not a string")
	ErrUserEmailNotFound     = errors.New("userEmail not found in context")
	ErrUserEmailNotString    = errors.New("userEmail in context is not a string")
	ErrUserNameNotFound      = errors.New("userName not found in context")
	ErrUserNameNotString     = errors.New("userName in context is not a string")
	ErrSessionTokenNotFound  = errors.New("sessionToken not found in context")
	ErrSessionTokenNotString = errors.New("sessionToken in context is not a string")
	ErrRequestIDNotFound     = errors.New("requestID not found in context")
	ErrRequestIDNotString    = errors.New("requestID in context is not a string")
)

// GetUserIDFromContext retrieves the authenticated user's ID from the context.
// It returns an error if the user ID is not found or is not a string.
func GetUserIDFromContext(ctx context.Context) (string, error) {
	val := ctx.Value(contextkeys.UserIDKey)
	if val == nil {
		return "", ErrUserIDNotFound
	}
	userID, ok := val.(string)
	if !ok {
		return "", ErrUserIDNotString
	}
	return userID, nil
}

// GetUserEmailFromContext retrieves the user's canonical email from the context.
func GetUserEmailFromContext(ctx context.Context) (string, error) {
	val := ctx.Value(contextkeys.UserEmailKey)
	if val == nil {
		return "", ErrUserEmailNotFound
	}
	userEmail, ok := val.(string)
	if !ok {
		return "", ErrUserEmailNotString
	}
	return userEmail, nil
}

// GetUserNameFromContext retrieves the user's display name from the context.
func GetUserNameFromContext(ctx context.Context) (string, error) {
	val := ctx.Value(contextkeys.UserNameKey)
	if val == nil {
		return "", ErrUserNameNotFound
	}
	userName, ok := val.(string)
	if !ok {
		return "", ErrUserNameNotString
	}
	return userName, nil
}

// GetSessionTokenFromContext retrieves the session credential from the context.
func GetSessionTokenFromContext(ctx context.Context) (string, error) {
	val := ctx.Value(contextkeys.SessionTokenKey)
	if val == nil {
		return "", ErrSessionTokenNotFound
	}
	token, ok := val.(string)
	if !ok {
		return "", ErrSessionTokenNotString
	}
	return token, nil
}

// GetRequestIDFromContext retrieves the request ID from the context.
func GetRequestIDFromContext(ctx context.Context) (string, error) {
	val := ctx.Value(contextkeys.RequestIDKey)
	if val == nil {
		return "", ErrRequestIDNotFound
	}
	requestID, ok := val.(string)
	if !ok {
		return "", ErrRequestIDNotString
	}
	return requestID, nil
}

// Context builder functions

// WithUserID adds the user ID to the context
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, contextkeys.UserIDKey, userID)
}

// WithUserEmail adds the user email to the context
func WithUserEmail(ctx context.Context, userEmail string) context.Context {
	return context.WithValue(ctx, contextkeys.UserEmailKey, userEmail)
}

// WithUserName adds the user display name to the context
func WithUserName(ctx context.Context, userName string) context.Context {
	return context.WithValue(ctx, contextkeys.UserNameKey, userName)
}

// WithSessionToken adds the session credential to the context
func WithSessionToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, contextkeys.SessionTokenKey, token)
}

// WithRequestID adds the request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextkeys.RequestIDKey, requestID)
}

// WithComponent adds the component name to the context
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, contextkeys.ComponentKey, component)
}

// WithOperation adds the operation name to the context
func WithOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, contextkeys.OperationKey, operation)
}
