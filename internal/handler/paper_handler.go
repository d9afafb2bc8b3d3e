package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edupoint-labs/exam-portal-api/internal/auth"
	"github.com/edupoint-labs/exam-portal-api/internal/dto"
	"github.com/edupoint-labs/exam-portal-api/internal/middleware"
	"github.com/edupoint-labs/exam-portal-api/internal/service"
	"github.com/edupoint-labs/exam-portal-api/internal/utils"
)

// PaperHandler wires the past-year question paper routes.
type PaperHandler struct {
	service service.PaperService
	logger  zerolog.Logger
}

// NewPaperHandler constructs the handler.
func NewPaperHandler(service service.PaperService, logger zerolog.Logger) *PaperHandler {
	return &PaperHandler{
		service: service,
		logger:  logger.With().Str("component", "paper_handler").Logger(),
	}
}

// Register attaches paper endpoints to the router group.
func (h *PaperHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Post("", middleware.RequireRole(auth.RoleTeacher, auth.RoleAdmin), h.upload)
}

func (h *PaperHandler) list(c *fiber.Ctx) error {
	papers, err := h.service.List(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "papers retrieved", papers)
}

func (h *PaperHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	paper, err := h.service.GetByID(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "paper retrieved", paper)
}

func (h *PaperHandler) upload(c *fiber.Ctx) error {
	year, _ := strconv.Atoi(c.FormValue("year"))
	payload := dto.PaperUploadRequest{
		Subject: c.FormValue("subject"),
		Year:    year,
	}

	file, err := c.FormFile("file")
	if err != nil {
		file = nil
	}

	paper, err := h.service.Upload(c.Context(), payload, file)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "paper archived", paper)
}

func (h *PaperHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrPaperNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "paper not found")
	case errors.Is(err, service.ErrPaperNotPDF):
		return utils.SendError(c, fiber.StatusBadRequest, "question paper must be a PDF")
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
