package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/edupoint-labs/exam-portal-api/internal/models"
)

// ExamRepository defines data operations for exam definitions.
type ExamRepository interface {
	Create(ctx context.Context, exam *models.Exam) error
	GetByID(ctx context.Context, id uint) (models.Exam, error)
	List(ctx context.Context) ([]models.Exam, error)
	ListByCreator(ctx context.Context, username string) ([]models.Exam, error)
	Delete(ctx context.Context, id uint) error
}

type examRepository struct {
	db *gorm.DB
}

// NewExamRepository instantiates the repository.
func NewExamRepository(db *gorm.DB) ExamRepository {
	return &examRepository{db: db}
}

func (r *examRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Exam{}).
		Preload("Questions").
		Preload("CreatedBy")
}

func (r *examRepository) Create(ctx context.Context, exam *models.Exam) error {
	return r.db.WithContext(ctx).Create(exam).Error
}

func (r *examRepository) GetByID(ctx context.Context, id uint) (models.Exam, error) {
	var exam models.Exam
	if err := r.baseQuery(ctx).First(&exam, id).Error; err != nil {
		return models.Exam{}, err
	}

	return exam, nil
}

func (r *examRepository) List(ctx context.Context) ([]models.Exam, error) {
	var exams []models.Exam
	if err := r.baseQuery(ctx).Order("created_at DESC").Find(&exams).Error; err != nil {
		return nil, err
	}

	return exams, nil
}

func (r *examRepository) ListByCreator(ctx context.Context, username string) ([]models.Exam, error) {
	var exams []models.Exam
	if err := r.baseQuery(ctx).
		Joins("JOIN users ON users.id = exams.created_by_id").
		Where("LOWER(users.username) = LOWER(?)", username).
		Order("exams.created_at DESC").
		Find(&exams).Error; err != nil {
		return nil, err
	}

	return exams, nil
}

// Delete removes the exam and its questions. Submissions referencing the exam
// must be removed first so answers never point at deleted questions.
func (r *examRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("exam_id = ?", id).Delete(&models.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Exam{}, id).Error
	})
}
