package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/edupoint-labs/exam-portal-api/internal/models"
)

// QuestionRepository resolves individual questions and their options.
type QuestionRepository interface {
	GetByID(ctx context.Context, id uint) (models.Question, error)
}

type questionRepository struct {
	db *gorm.DB
}

// NewQuestionRepository instantiates the repository.
func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) GetByID(ctx context.Context, id uint) (models.Question, error) {
	var question models.Question
	if err := r.db.WithContext(ctx).
		Preload("Options").
		First(&question, id).Error; err != nil {
		return models.Question{}, err
	}

	return question, nil
}
