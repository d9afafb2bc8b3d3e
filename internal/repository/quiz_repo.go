package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/edupoint-labs/exam-portal-api/internal/models"
)

// QuizRepository defines data operations for quiz definitions.
type QuizRepository interface {
	Create(ctx context.Context, quiz *models.Quiz) error
	GetByID(ctx context.Context, id uint) (models.Quiz, error)
	GetByTitle(ctx context.Context, title string) (models.Quiz, error)
	List(ctx context.Context) ([]models.Quiz, error)
	ListByCreator(ctx context.Context, username string) ([]models.Quiz, error)
	Delete(ctx context.Context, id uint) error
}

type quizRepository struct {
	db *gorm.DB
}

// NewQuizRepository instantiates the repository.
func NewQuizRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Quiz{}).
		Preload("Questions.Options").
		Preload("CreatedBy")
}

func (r *quizRepository) Create(ctx context.Context, quiz *models.Quiz) error {
	return r.db.WithContext(ctx).Create(quiz).Error
}

func (r *quizRepository) GetByID(ctx context.Context, id uint) (models.Quiz, error) {
	var quiz models.Quiz
	if err := r.baseQuery(ctx).First(&quiz, id).Error; err != nil {
		return models.Quiz{}, err
	}

	return quiz, nil
}

func (r *quizRepository) GetByTitle(ctx context.Context, title string) (models.Quiz, error) {
	var quiz models.Quiz
	if err := r.baseQuery(ctx).
		Where("LOWER(title) = LOWER(?)", title).
		First(&quiz).Error; err != nil {
		return models.Quiz{}, err
	}

	return quiz, nil
}

func (r *quizRepository) List(ctx context.Context) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	if err := r.baseQuery(ctx).Order("created_at DESC").Find(&quizzes).Error; err != nil {
		return nil, err
	}

	return quizzes, nil
}

func (r *quizRepository) ListByCreator(ctx context.Context, username string) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	if err := r.baseQuery(ctx).
		Joins("JOIN users ON users.id = quizzes.created_by_id").
		Where("LOWER(users.username) = LOWER(?)", username).
		Order("quizzes.created_at DESC").
		Find(&quizzes).Error; err != nil {
		return nil, err
	}

	return quizzes, nil
}

// Delete removes the quiz together with its questions and their options.
func (r *quizRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var questionIDs []uint
		if err := tx.Model(&models.Question{}).
			Where("quiz_id = ?", id).
			Pluck("id", &questionIDs).Error; err != nil {
			return err
		}

		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&models.Option{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", questionIDs).Delete(&models.Question{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.Quiz{}, id).Error
	})
}
