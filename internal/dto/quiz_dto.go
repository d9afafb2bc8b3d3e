package dto

import (
	"time"

	"github.com/edupoint-labs/exam-portal-api/internal/models"
)

// QuizOptionInput describes one selectable choice in a create request.
type QuizOptionInput struct {
	Text      string `json:"text" validate:"required"`
	IsCorrect bool   `json:"is_correct"`
}

// QuizQuestionInput describes one multiple-choice question in a create request.
type QuizQuestionInput struct {
	Text    string            `json:"text" validate:"required"`
	Marks   int               `json:"marks" validate:"gte=0"`
	Options []QuizOptionInput `json:"options" validate:"required,min=2,dive"`
}

// QuizCreateRequest is the payload teachers send to author a quiz.
type QuizCreateRequest struct {
	Title           string              `json:"title" validate:"required"`
	Description     string              `json:"description"`
	DurationMinutes int                 `json:"duration_minutes" validate:"gte=0"`
	Questions       []QuizQuestionInput `json:"questions" validate:"required,min=1,dive"`
}

// QuizOptionResponse serializes an option. The answer key is only included
// on author-scoped reads, never on the public catalog.
type QuizOptionResponse struct {
	ID        uint   `json:"id"`
	Text      string `json:"text"`
	IsCorrect *bool  `json:"is_correct,omitempty"`
}

// QuizQuestionResponse serializes a quiz question with its options.
type QuizQuestionResponse struct {
	ID      uint                 `json:"id"`
	Text    string               `json:"text"`
	Marks   int                  `json:"marks"`
	Options []QuizOptionResponse `json:"options"`
}

// QuizResponse serializes a quiz definition.
type QuizResponse struct {
	ID              uint                   `json:"id"`
	Title           string                 `json:"title"`
	Description     string                 `json:"description"`
	DurationMinutes int                    `json:"duration_minutes"`
	CreatedBy       string                 `json:"created_by"`
	Questions       []QuizQuestionResponse `json:"questions"`
	CreatedAt       time.Time              `json:"created_at"`
}

// NewQuizResponse maps the entity onto its API shape. When includeAnswerKey
// is false the options' correctness flags are omitted.
func NewQuizResponse(quiz models.Quiz, includeAnswerKey bool) QuizResponse {
	questions := make([]QuizQuestionResponse, 0, len(quiz.Questions))
	for _, question := range quiz.Questions {
		options := make([]QuizOptionResponse, 0, len(question.Options))
		for _, option := range question.Options {
			response := QuizOptionResponse{ID: option.ID, Text: option.Text}
			if includeAnswerKey {
				isCorrect := option.IsCorrect
				response.IsCorrect = &isCorrect
			}
			options = append(options, response)
		}
		questions = append(questions, QuizQuestionResponse{
			ID:      question.ID,
			Text:    question.Text,
			Marks:   question.Marks,
			Options: options,
		})
	}

	createdBy := ""
	if quiz.CreatedBy != nil {
		createdBy = quiz.CreatedBy.Username
	}

	return QuizResponse{
		ID:              quiz.ID,
		Title:           quiz.Title,
		Description:     quiz.Description,
		DurationMinutes: quiz.DurationMinutes,
		CreatedBy:       createdBy,
		Questions:       questions,
		CreatedAt:       quiz.CreatedAt,
	}
}

// NewQuizResponseSlice maps a list of quizzes.
func NewQuizResponseSlice(quizzes []models.Quiz, includeAnswerKey bool) []QuizResponse {
	responses := make([]QuizResponse, 0, len(quizzes))
	for _, quiz := range quizzes {
		responses = append(responses, NewQuizResponse(quiz, includeAnswerKey))
	}
	return responses
}
