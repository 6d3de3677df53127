package usecase

import (
	"context"

	"cvforge/internal/cv/domain/model"
	"cvforge/internal/cv/domain/repository"
	"cvforge/internal/shared/logger"
)

// CVUsecaseInterface is the authenticated ownership contract over the document
// store. Callers are trusted to supply an already-authenticated userID; the
// gate in front of the HTTP routes is responsible for that.
type CVUsecaseInterface interface {
	Save(ctx context.Context, userID string, data interface{}) (repository.SaveOutcome, error)
	Get(ctx context.Context, userID string) (*model.CV, error)
}

// CVUsecase implements the ownership service.
type CVUsecase struct {
	repo repository.CVRepository
	log  logger.Logger
}

// NewCVUsecase creates a new CV usecase.
func NewCVUsecase(repo repository.CVRepository, log logger.Logger) *CVUsecase {
	return &CVUsecase{
		repo: repo,
		log:  log.WithComponent("cv"),
	}
}

// Save persists the payload for userID, creating the document on first save.
// The payload is opaque; Save never fails because of its shape.
func (uc *CVUsecase) Save(ctx context.Context, userID string, data interface{}) (repository.SaveOutcome, error) {
	outcome, err := uc.repo.Save(ctx, userID, data)
	if err != nil {
		return outcome, err
	}
	uc.log.WithContext(ctx).Infof("cv %s", outcome)
	return outcome, nil
}

// Get returns the sole document for userID, or errors.ErrCVNotFound.
func (uc *CVUsecase) Get(ctx context.Context, userID string) (*model.CV, error) {
	return uc.repo.Get(ctx, userID)
}
