package repository

import (
	"context"

	"cvforge/internal/cv/domain/model"
)

// SaveOutcome reports which branch a Save took.
type SaveOutcome int

const (
	// SaveCreated means no document existed for the user and one was created.
	SaveCreated SaveOutcome = iota
	// SaveUpdated means the user's existing document had its payload replaced.
	SaveUpdated
)

// String returns a readable name for logging.
func (o SaveOutcome) String() string {
	if o == SaveCreated {
		return "created"
	}
	return "updated"
}

// CVRepository persists at most one CV per user. Implementations must keep the
// lookup-then-write of Save atomic so concurrent saves for the same user never
// produce two documents.
type CVRepository interface {
	// Save creates the user's document on first call and replaces its payload
	// afterwards. CreatedAt and identity are immutable across updates.
	Save(ctx context.Context, userID string, data interface{}) (SaveOutcome, error)
	// Get returns the sole document for the user, or errors.ErrCVNotFound.
	Get(ctx context.Context, userID string) (*model.CV, error)
}
