package dto

import (
	"time"

	"github.com/edupoint-labs/exam-portal-api/internal/models"
)

// ActivityResponse serializes one audit trail entry.
type ActivityResponse struct {
	ID         uint                   `json:"id"`
	ActorName  string                 `json:"actor_name"`
	ActorRole  string                 `json:"actor_role"`
	Action     string                 `json:"action"`
	EntityType string                 `json:"entity_type"`
	EntityID   *uint                  `json:"entity_id"`
	Metadata   map[string]interface{} `json:"metadata"`
	CreatedAt  time.Time              `json:"created_at"`
}

// ActivityListRequest filters the audit trail listing.
type ActivityListRequest struct {
	Page       int    `query:"page"`
	PageSize   int    `query:"page_size" validate:"omitempty,lte=200"`
	ActorName  string `query:"actor_name"`
	Action     string `query:"action"`
	EntityType string `query:"entity_type"`
}

// ActivityListResponse wraps a page of audit entries.
type ActivityListResponse struct {
	Items []ActivityResponse `json:"items"`
	Total int64              `json:"total"`
}

// NewActivityResponse maps the entity onto its API shape.
func NewActivityResponse(entry models.ActivityLog) ActivityResponse {
	return ActivityResponse{
		ID:         entry.ID,
		ActorName:  entry.ActorName,
		ActorRole:  entry.ActorRole,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Metadata:   entry.Metadata,
		CreatedAt:  entry.CreatedAt,
	}
}
