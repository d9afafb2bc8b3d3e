package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/edupoint-labs/exam-portal-api/internal/models"
)

// PaperRepository defines data operations for past-year question papers.
type PaperRepository interface {
	Create(ctx context.Context, paper *models.Paper) error
	GetByID(ctx context.Context, id uint) (models.Paper, error)
	List(ctx context.Context) ([]models.Paper, error)
}

type paperRepository struct {
	db *gorm.DB
}

// NewPaperRepository instantiates the repository.
func NewPaperRepository(db *gorm.DB) PaperRepository {
	return &paperRepository{db: db}
}

func (r *paperRepository) Create(ctx context.Context, paper *models.Paper) error {
	return r.db.WithContext(ctx).Create(paper).Error
}

func (r *paperRepository) GetByID(ctx context.Context, id uint) (models.Paper, error) {
	var paper models.Paper
	if err := r.db.WithContext(ctx).First(&paper, id).Error; err != nil {
		return models.Paper{}, err
	}

	return paper, nil
}

func (r *paperRepository) List(ctx context.Context) ([]models.Paper, error) {
	var papers []models.Paper
	if err := r.db.WithContext(ctx).
		Order("year DESC, subject ASC").
		Find(&papers).Error; err != nil {
		return nil, err
	}

	return papers, nil
}
