package cv

import (
	"fmt"

	cvhttp "cvforge/internal/cv/adapter/http"
	"cvforge/internal/cv/adapter/persistence/mongodb"
	"cvforge/internal/cv/domain/repository"
	"cvforge/internal/cv/usecase"
	"cvforge/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"
)

// CVModule represents the complete CV ownership module
type CVModule struct {
	repository repository.CVRepository
	usecase    usecase.CVUsecaseInterface
	handler    *cvhttp.CVHTTPHandler
}

// NewCVModule creates a new CV module instance
func NewCVModule(db *mongo.Database, log logger.Logger) (*CVModule, error) {
	cvRepo, err := mongodb.NewMongoCVRepository(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create cv repository: %w", err)
	}

	cvUsecase := usecase.NewCVUsecase(cvRepo, log)
	handler := cvhttp.NewCVHTTPHandler(cvUsecase, log)

	return &CVModule{
		repository: cvRepo,
		usecase:    cvUsecase,
		handler:    handler,
	}, nil
}

// RegisterRoutes registers the CV routes behind the supplied session gate.
func (cm *CVModule) RegisterRoutes(router fiber.Router, protect fiber.Handler) {
	cm.handler.SetupCVRoutes(router, protect)
}

// GetUsecase returns the CV usecase for external access
func (cm *CVModule) GetUsecase() usecase.CVUsecaseInterface {
	return cm.usecase
}
