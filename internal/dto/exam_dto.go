package dto

import (
	"time"

	"github.com/edupoint-labs/exam-portal-api/internal/models"
)

// ExamQuestionInput describes one free-text question inside a create request.
type ExamQuestionInput struct {
	Text  string `json:"text" validate:"required"`
	Marks int    `json:"marks" validate:"gte=0"`
	Type  string `json:"type" validate:"omitempty,oneof=Short Long Other"`
}

// ExamCreateRequest is the payload teachers send to author an exam.
type ExamCreateRequest struct {
	Subject         string              `json:"subject"`
	Title           string              `json:"title" validate:"required"`
	Description     string              `json:"description"`
	DurationMinutes int                 `json:"duration_minutes" validate:"gte=0"`
	Questions       []ExamQuestionInput `json:"questions" validate:"required,min=1,dive"`
}

// ExamQuestionResponse serializes a question on exam reads.
type ExamQuestionResponse struct {
	ID    uint   `json:"id"`
	Text  string `json:"text"`
	Marks int    `json:"marks"`
	Type  string `json:"type"`
}

// ExamResponse serializes an exam definition.
type ExamResponse struct {
	ID              uint                   `json:"id"`
	Subject         string                 `json:"subject"`
	Title           string                 `json:"title"`
	Description     string                 `json:"description"`
	DurationMinutes int                    `json:"duration_minutes"`
	CreatedBy       string                 `json:"created_by"`
	Questions       []ExamQuestionResponse `json:"questions"`
	CreatedAt       time.Time              `json:"created_at"`
}

// NewExamResponse maps the entity onto its API shape.
func NewExamResponse(exam models.Exam) ExamResponse {
	questions := make([]ExamQuestionResponse, 0, len(exam.Questions))
	for _, question := range exam.Questions {
		questions = append(questions, ExamQuestionResponse{
			ID:    question.ID,
			Text:  question.Text,
			Marks: question.Marks,
			Type:  question.Type,
		})
	}

	createdBy := ""
	if exam.CreatedBy != nil {
		createdBy = exam.CreatedBy.Username
	}

	return ExamResponse{
		ID:              exam.ID,
		Subject:         exam.Subject,
		Title:           exam.Title,
		Description:     exam.Description,
		DurationMinutes: exam.DurationMinutes,
		CreatedBy:       createdBy,
		Questions:       questions,
		CreatedAt:       exam.CreatedAt,
	}
}

// NewExamResponseSlice maps a list of exams.
func NewExamResponseSlice(exams []models.Exam) []ExamResponse {
	responses := make([]ExamResponse, 0, len(exams))
	for _, exam := range exams {
		responses = append(responses, NewExamResponse(exam))
	}
	return responses
}
