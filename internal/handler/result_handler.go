package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edupoint-labs/exam-portal-api/internal/auth"
	"github.com/edupoint-labs/exam-portal-api/internal/middleware"
	"github.com/edupoint-labs/exam-portal-api/internal/service"
	"github.com/edupoint-labs/exam-portal-api/internal/utils"
)

// ResultHandler wires the reporting routes over the submission ledger.
type ResultHandler struct {
	service service.ResultService
	logger  zerolog.Logger
}

// NewResultHandler constructs the handler.
func NewResultHandler(service service.ResultService, logger zerolog.Logger) *ResultHandler {
	return &ResultHandler{
		service: service,
		logger:  logger.With().Str("component", "result_handler").Logger(),
	}
}

// Register attaches reporting endpoints to the router group.
func (h *ResultHandler) Register(router fiber.Router) {
	router.Get("/grading", middleware.RequireRole(auth.RoleTeacher, auth.RoleAdmin), h.grading)
	router.Get("/mine", h.mine)
	router.Get("/performance", h.performance)
}

func (h *ResultHandler) grading(c *fiber.Ctx) error {
	rows, err := h.service.ListForGrading(c.Context(), middleware.GetPrincipal(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "grading queue retrieved", rows)
}

func (h *ResultHandler) mine(c *fiber.Ctx) error {
	rows, err := h.service.MySubmissions(c.Context(), middleware.GetPrincipal(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "submissions retrieved", rows)
}

func (h *ResultHandler) performance(c *fiber.Ctx) error {
	rows, err := h.service.StudentPerformance(c.Context(), middleware.GetPrincipal(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "performance report retrieved", rows)
}

func (h *ResultHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
