package dto

import (
	"time"

	"github.com/edupoint-labs/exam-portal-api/internal/models"
)

// PaperUploadRequest carries the metadata accompanying a paper upload.
type PaperUploadRequest struct {
	Subject string `form:"subject" validate:"required"`
	Year    int    `form:"year" validate:"required,gte=1900"`
}

// PaperResponse serializes an uploaded past-year question paper.
type PaperResponse struct {
	ID        uint      `json:"id"`
	Subject   string    `json:"subject"`
	Year      int       `json:"year"`
	FileName  string    `json:"file_name"`
	FileURL   string    `json:"file_url"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPaperResponse maps the entity onto its API shape.
func NewPaperResponse(paper models.Paper) PaperResponse {
	return PaperResponse{
		ID:        paper.ID,
		Subject:   paper.Subject,
		Year:      paper.Year,
		FileName:  paper.FileName,
		FileURL:   paper.FileURL,
		CreatedAt: paper.CreatedAt,
	}
}

// NewPaperResponseSlice maps a list of papers.
func NewPaperResponseSlice(papers []models.Paper) []PaperResponse {
	responses := make([]PaperResponse, 0, len(papers))
	for _, paper := range papers {
		responses = append(responses, NewPaperResponse(paper))
	}
	return responses
}
