package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edupoint-labs/exam-portal-api/internal/auth"
	"github.com/edupoint-labs/exam-portal-api/internal/dto"
	"github.com/edupoint-labs/exam-portal-api/internal/middleware"
	"github.com/edupoint-labs/exam-portal-api/internal/service"
	"github.com/edupoint-labs/exam-portal-api/internal/utils"
)

// QuizHandler wires quiz catalog routes.
type QuizHandler struct {
	service service.QuizService
	logger  zerolog.Logger
}

// NewQuizHandler constructs the handler.
func NewQuizHandler(service service.QuizService, logger zerolog.Logger) *QuizHandler {
	return &QuizHandler{
		service: service,
		logger:  logger.With().Str("component", "quiz_handler").Logger(),
	}
}

// Register attaches quiz endpoints to the router group.
func (h *QuizHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Post("", middleware.RequireRole(auth.RoleTeacher, auth.RoleAdmin), h.create)
	router.Delete("/:id", middleware.RequireRole(auth.RoleTeacher, auth.RoleAdmin), h.delete)
}

func (h *QuizHandler) list(c *fiber.Ctx) error {
	quizzes, err := h.service.ListFor(c.Context(), middleware.GetPrincipal(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "quizzes retrieved", quizzes)
}

func (h *QuizHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	quiz, err := h.service.GetByID(c.Context(), id, middleware.GetPrincipal(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "quiz retrieved", quiz)
}

func (h *QuizHandler) create(c *fiber.Ctx) error {
	var payload dto.QuizCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	quiz, err := h.service.Create(c.Context(), payload, middleware.GetPrincipal(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "quiz created", quiz)
}

func (h *QuizHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.Context(), id, middleware.GetPrincipal(c)); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "quiz deleted", fiber.Map{"id": id})
}

func (h *QuizHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrQuizNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "quiz not found")
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
