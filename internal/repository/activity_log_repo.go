package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/edupoint-labs/exam-portal-api/internal/models"
)

// ActivityLogFilter narrows audit trail queries. Actor matching is
// case-insensitive because quiz attempts record free-form student names.
type ActivityLogFilter struct {
	Page       int
	PageSize   int
	ActorName  string
	Action     string
	EntityType string
}

func (f ActivityLogFilter) apply(query *gorm.DB) *gorm.DB {
	if f.ActorName != "" {
		query = query.Where("LOWER(actor_name) = LOWER(?)", f.ActorName)
	}
	if f.Action != "" {
		query = query.Where("action = ?", f.Action)
	}
	if f.EntityType != "" {
		query = query.Where("entity_type = ?", f.EntityType)
	}

	return query
}

func (f ActivityLogFilter) offset() int {
	page := f.Page
	if page <= 0 {
		page = 1
	}

	return (page - 1) * f.PageSize
}

// ActivityLogRepository persists audit trail events.
type ActivityLogRepository interface {
	Create(ctx context.Context, entry *models.ActivityLog) error
	List(ctx context.Context, filter ActivityLogFilter) ([]models.ActivityLog, int64, error)
}

type activityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository constructs the activity log repository.
func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepository{db: db}
}

func (r *activityLogRepository) Create(ctx context.Context, entry *models.ActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *activityLogRepository) List(ctx context.Context, filter ActivityLogFilter) ([]models.ActivityLog, int64, error) {
	query := filter.apply(r.db.WithContext(ctx).Model(&models.ActivityLog{}))

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		query = query.Offset(filter.offset()).Limit(filter.PageSize)
	}

	var entries []models.ActivityLog
	if err := query.Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
