package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/edupoint-labs/exam-portal-api/internal/dto"
	"github.com/edupoint-labs/exam-portal-api/internal/models"
	"github.com/edupoint-labs/exam-portal-api/internal/repository"
)

// ErrPaperNotPDF indicates the uploaded question paper is not a PDF.
var ErrPaperNotPDF = errors.New("question paper must be a PDF")

// ErrPaperNotFound indicates a paper record could not be located.
var ErrPaperNotFound = errors.New("paper not found")

// FileStorage abstracts upload destinations.
type FileStorage interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

// PaperService manages the past-year question paper archive.
type PaperService interface {
	Upload(ctx context.Context, payload dto.PaperUploadRequest, file *multipart.FileHeader) (dto.PaperResponse, error)
	List(ctx context.Context) ([]dto.PaperResponse, error)
	GetByID(ctx context.Context, id uint) (dto.PaperResponse, error)
}

type paperService struct {
	papers    repository.PaperRepository
	storage   FileStorage
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewPaperService constructs a PaperService instance.
func NewPaperService(papers repository.PaperRepository, storage FileStorage, validate *validator.Validate, logger zerolog.Logger) PaperService {
	return &paperService{
		papers:    papers,
		storage:   storage,
		validator: validate,
		logger:    logger.With().Str("component", "paper_service").Logger(),
	}
}

// Upload validates the file is a real PDF by content sniffing, pushes it to
// storage, and records the archive entry.
func (s *paperService) Upload(ctx context.Context, payload dto.PaperUploadRequest, file *multipart.FileHeader) (dto.PaperResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.PaperResponse{}, err
	}

	if file == nil {
		return dto.PaperResponse{}, errors.New("file is required")
	}

	handle, err := file.Open()
	if err != nil {
		return dto.PaperResponse{}, err
	}
	defer handle.Close()

	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, handle); err != nil {
		return dto.PaperResponse{}, err
	}

	detected := mimetype.Detect(buf.Bytes())
	if !strings.EqualFold(detected.String(), "application/pdf") {
		return dto.PaperResponse{}, ErrPaperNotPDF
	}

	url, err := s.storage.Upload(ctx, file.Filename, bytes.NewReader(buf.Bytes()))
	if err != nil {
		return dto.PaperResponse{}, err
	}

	paper := models.Paper{
		Subject:  strings.TrimSpace(payload.Subject),
		Year:     payload.Year,
		FileName: file.Filename,
		FileURL:  url,
	}

	if err := s.papers.Create(ctx, &paper); err != nil {
		return dto.PaperResponse{}, err
	}

	s.logger.Info().
		Uint("paper_id", paper.ID).
		Str("subject", paper.Subject).
		Int("year", paper.Year).
		Msg("question paper archived")

	return dto.NewPaperResponse(paper), nil
}

func (s *paperService) List(ctx context.Context) ([]dto.PaperResponse, error) {
	papers, err := s.papers.List(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewPaperResponseSlice(papers), nil
}

func (s *paperService) GetByID(ctx context.Context, id uint) (dto.PaperResponse, error) {
	paper, err := s.papers.GetByID(ctx, id)
	if err != nil {
		return dto.PaperResponse{}, ErrPaperNotFound
	}

	return dto.NewPaperResponse(paper), nil
}
