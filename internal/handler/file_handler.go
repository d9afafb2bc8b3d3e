package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edupoint-labs/exam-portal-api/internal/service"
	"github.com/edupoint-labs/exam-portal-api/internal/utils"
)

// FileHandler wires the generic attachment upload route.
type FileHandler struct {
	service service.FileService
	logger  zerolog.Logger
}

// NewFileHandler constructs the handler.
func NewFileHandler(service service.FileService, logger zerolog.Logger) *FileHandler {
	return &FileHandler{
		service: service,
		logger:  logger.With().Str("component", "file_handler").Logger(),
	}
}

// Register attaches the upload endpoint to the router group.
func (h *FileHandler) Register(router fiber.Router) {
	router.Post("/upload", h.upload)
}

func (h *FileHandler) upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "file is required")
	}

	response, err := h.service.Upload(c.Context(), file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFileTooLarge):
			return utils.SendError(c, fiber.StatusRequestEntityTooLarge, "file exceeds maximum allowed size")
		case errors.Is(err, service.ErrFileTypeNotAllowed):
			return utils.SendError(c, fiber.StatusBadRequest, "file type not allowed")
		default:
			h.logger.Error().Err(err).Msg("internal server error")
			return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "file uploaded", response)
}
