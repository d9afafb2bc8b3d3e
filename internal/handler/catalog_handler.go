package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edupoint-labs/exam-portal-api/internal/service"
	"github.com/edupoint-labs/exam-portal-api/internal/utils"
)

// CatalogHandler serves the public, unauthenticated catalog listings.
type CatalogHandler struct {
	service service.PublicCatalogService
	logger  zerolog.Logger
}

// NewCatalogHandler constructs the handler.
func NewCatalogHandler(service service.PublicCatalogService, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		logger:  logger.With().Str("component", "catalog_handler").Logger(),
	}
}

// Register attaches public catalog endpoints to the router group.
func (h *CatalogHandler) Register(router fiber.Router) {
	router.Get("/exams", h.exams)
	router.Get("/quizzes", h.quizzes)
}

func (h *CatalogHandler) exams(c *fiber.Ctx) error {
	exams, err := h.service.ListExams(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "exams retrieved", exams)
}

func (h *CatalogHandler) quizzes(c *fiber.Ctx) error {
	quizzes, err := h.service.ListQuizzes(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "quizzes retrieved", quizzes)
}
