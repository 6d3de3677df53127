package http

import (
	"cvforge/internal/cv/domain/repository"
	"cvforge/internal/cv/usecase"
	apperrors "cvforge/internal/shared/errors"
	"cvforge/internal/shared/logger"
	"cvforge/internal/shared/utils"

	"github.com/gofiber/fiber/v2"
)

// CVHTTPHandler handles HTTP requests for the CV resource
type CVHTTPHandler struct {
	usecase usecase.CVUsecaseInterface
	log     logger.Logger
}

// NewCVHTTPHandler creates a new CV HTTP handler
func NewCVHTTPHandler(uc usecase.CVUsecaseInterface, log logger.Logger) *CVHTTPHandler {
	return &CVHTTPHandler{
		usecase: uc,
		log:     log.WithComponent("cv_http"),
	}
}

// SetupCVRoutes registers the CV routes behind the session gate.
func (h *CVHTTPHandler) SetupCVRoutes(router fiber.Router, protect fiber.Handler) {
	api := router.Group("/api", protect)
	api.Post("/cv", h.SaveCV)
	api.Get("/cv", h.GetCV)
}

type saveCVRequest struct {
	CVData interface{} `json:"cvData"`
}

// SaveCV creates or replaces the caller's document. 201 on first save, 200 on
// subsequent ones.
func (h *CVHTTPHandler) SaveCV(c *fiber.Ctx) error {
	userID, err := utils.GetUserIDFromContext(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Not authenticated",
		})
	}

	var req saveCVRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	outcome, err := h.usecase.Save(c.UserContext(), userID, req.CVData)
	if err != nil {
		h.log.WithContext(c.UserContext()).Errorf("failed to save cv: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save CV",
		})
	}

	if outcome == repository.SaveCreated {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "CV saved successfully",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "CV updated successfully",
	})
}

// GetCV returns the caller's document, 404 when none exists yet.
func (h *CVHTTPHandler) GetCV(c *fiber.Ctx) error {
	userID, err := utils.GetUserIDFromContext(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Not authenticated",
		})
	}

	cv, err := h.usecase.Get(c.UserContext(), userID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "No CV found",
			})
		}
		h.log.WithContext(c.UserContext()).Errorf("failed to fetch cv: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch CV",
		})
	}

	return c.Status(fiber.StatusOK).JSON(cv)
}
