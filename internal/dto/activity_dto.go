package dto

import (
	"time"

	"github.com/opencampus/academics-api/internal/models"
)

// ActivityListRequest carries audit log filters.
type ActivityListRequest struct {
	ActorID    uint   `validate:"omitempty,gt=0"`
	Action     string `validate:"omitempty,max=64"`
	EntityType string `validate:"omitempty,max=64"`
	Page       int    `validate:"omitempty,gte=1"`
	PageSize   int    `validate:"omitempty,gte=1,lte=100"`
}

// ActivityResponse is one serialized audit entry.
type ActivityResponse struct {
	ID         uint                   `json:"id"`
	ActorID    uint                   `json:"actor_id"`
	ActorRole  string                 `json:"actor_role"`
	Action     string                 `json:"action"`
	EntityType string                 `json:"entity_type"`
	EntityID   *uint                  `json:"entity_id,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}

// ActivityListResponse wraps a page of audit entries.
type ActivityListResponse struct {
	Items      []ActivityResponse `json:"items"`
	Pagination PaginationMeta     `json:"pagination"`
}

// NewActivityResponse converts a model into a DTO.
func NewActivityResponse(model models.ActivityLog) ActivityResponse {
	return ActivityResponse{
		ID:         model.ID,
		ActorID:    model.ActorID,
		ActorRole:  model.ActorRole,
		Action:     model.Action,
		EntityType: model.EntityType,
		EntityID:   model.EntityID,
		Metadata:   map[string]interface{}(model.Metadata),
		CreatedAt:  model.CreatedAt,
	}
}
