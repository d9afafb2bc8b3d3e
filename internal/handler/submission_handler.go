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

// SubmissionHandler wires the submission ledger routes.
type SubmissionHandler struct {
	service service.SubmissionService
	logger  zerolog.Logger
}

// NewSubmissionHandler constructs the handler.
func NewSubmissionHandler(service service.SubmissionService, logger zerolog.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		service: service,
		logger:  logger.With().Str("component", "submission_handler").Logger(),
	}
}

// Register attaches submission endpoints to the router group.
func (h *SubmissionHandler) Register(router fiber.Router) {
	router.Post("/exam", h.submitExam)
	router.Post("/quiz", h.submitQuiz)
	router.Get("/:id", h.get)
	router.Post("/:id/evaluate", middleware.RequireRole(auth.RoleTeacher, auth.RoleAdmin), h.evaluate)
	router.Delete("/:id", middleware.RequireRole(auth.RoleTeacher, auth.RoleAdmin), h.delete)
}

// RegisterAnswerAppend attaches the late answer append route. It lives
// outside the submission group for compatibility with older clients.
func (h *SubmissionHandler) RegisterAnswerAppend(router fiber.Router) {
	router.Post("/answers", h.appendAnswer)
}

func (h *SubmissionHandler) submitExam(c *fiber.Ctx) error {
	var payload dto.ExamSubmitRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.service.SubmitExam(c.Context(), payload, middleware.GetPrincipal(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "exam submission recorded", response)
}

func (h *SubmissionHandler) submitQuiz(c *fiber.Ctx) error {
	var payload dto.QuizSubmitRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.service.SubmitQuiz(c.Context(), payload, middleware.GetPrincipal(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "quiz submission graded", response)
}

func (h *SubmissionHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	detail, err := h.service.Get(c.Context(), id, middleware.GetPrincipal(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "submission retrieved", detail)
}

func (h *SubmissionHandler) evaluate(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.EvaluateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	detail, err := h.service.Evaluate(c.Context(), id, payload, middleware.GetPrincipal(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "submission evaluated", detail)
}

func (h *SubmissionHandler) appendAnswer(c *fiber.Ctx) error {
	var payload dto.AppendAnswerRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	detail, err := h.service.AppendAnswer(c.Context(), payload.SubmissionID, payload, middleware.GetPrincipal(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "answer appended", detail)
}

func (h *SubmissionHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.Context(), id, middleware.GetPrincipal(c)); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "submission deleted", fiber.Map{"id": id})
}

func (h *SubmissionHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrSubmissionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "submission not found")
	case errors.Is(err, service.ErrExamNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "exam not found")
	case errors.Is(err, service.ErrQuizNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "quiz not found")
	case errors.Is(err, service.ErrQuestionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "question not found")
	case errors.Is(err, service.ErrStudentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "student not found")
	case errors.Is(err, service.ErrSubmissionForbidden):
		return utils.SendError(c, fiber.StatusForbidden, "not allowed to access this submission")
	case errors.Is(err, service.ErrNotExamSubmission):
		return utils.SendError(c, fiber.StatusBadRequest, "only exam submissions can be evaluated")
	case errors.Is(err, service.ErrAnswerNotInSubmission):
		return utils.SendError(c, fiber.StatusBadRequest, "answer does not belong to this submission")
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
