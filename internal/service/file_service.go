package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"github.com/edupoint-labs/exam-portal-api/internal/dto"
)

// ErrFileTooLarge indicates the upload exceeded the configured limit.
var ErrFileTooLarge = errors.New("file exceeds maximum allowed size")

// ErrFileTypeNotAllowed indicates the detected MIME type is not permitted.
var ErrFileTypeNotAllowed = errors.New("file type not allowed")

// FileService stores answer attachments such as scanned long-answer sheets.
// The returned URL is what clients place in an answer's file path.
type FileService interface {
	Upload(ctx context.Context, file *multipart.FileHeader) (dto.FileUploadResponse, error)
}

type fileService struct {
	storage FileStorage
	maxSize int64
	logger  zerolog.Logger
}

// NewFileService constructs the attachment upload service.
func NewFileService(storage FileStorage, maxSizeMB int, logger zerolog.Logger) FileService {
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	return &fileService{
		storage: storage,
		maxSize: int64(maxSizeMB) * 1024 * 1024,
		logger:  logger.With().Str("component", "file_service").Logger(),
	}
}

func (s *fileService) Upload(ctx context.Context, file *multipart.FileHeader) (dto.FileUploadResponse, error) {
	if file == nil {
		return dto.FileUploadResponse{}, errors.New("file is required")
	}

	if file.Size > s.maxSize {
		return dto.FileUploadResponse{}, ErrFileTooLarge
	}

	handle, err := file.Open()
	if err != nil {
		return dto.FileUploadResponse{}, err
	}
	defer handle.Close()

	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, io.LimitReader(handle, s.maxSize+1)); err != nil {
		return dto.FileUploadResponse{}, err
	}
	if int64(buf.Len()) > s.maxSize {
		return dto.FileUploadResponse{}, ErrFileTooLarge
	}

	detected := mimetype.Detect(buf.Bytes())
	if !isAllowedAttachment(detected.String()) {
		return dto.FileUploadResponse{}, ErrFileTypeNotAllowed
	}

	url, err := s.storage.Upload(ctx, file.Filename, bytes.NewReader(buf.Bytes()))
	if err != nil {
		return dto.FileUploadResponse{}, err
	}

	s.logger.Info().
		Str("file", file.Filename).
		Str("mime", detected.String()).
		Int("size_bytes", buf.Len()).
		Msg("attachment uploaded")

	return dto.FileUploadResponse{
		FileName:  file.Filename,
		URL:       url,
		MimeType:  detected.String(),
		SizeBytes: int64(buf.Len()),
	}, nil
}

// Attachments are limited to PDFs and images; everything else is rejected.
func isAllowedAttachment(mime string) bool {
	lower := strings.ToLower(strings.TrimSpace(mime))
	if strings.HasPrefix(lower, "image/") {
		return true
	}
	return lower == "application/pdf"
}
