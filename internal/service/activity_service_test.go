package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/opencampus/academics-api/internal/dto"
	"github.com/opencampus/academics-api/internal/models"
	"github.com/opencampus/academics-api/internal/repository"
)

type memoryActivityRepo struct {
	entries []models.ActivityLog
}

func (m *memoryActivityRepo) Create(_ context.Context, entry *models.ActivityLog) error {
	entry.ID = uint(len(m.entries) + 1)
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *memoryActivityRepo) List(_ context.Context, filter repository.ActivityLogFilter) ([]models.ActivityLog, int64, error) {
	filtered := make([]models.ActivityLog, 0, len(m.entries))
	for _, entry := range m.entries {
		if filter.ActorID != nil && entry.ActorID != *filter.ActorID {
			continue
		}
		if filter.Action != "" && entry.Action != filter.Action {
			continue
		}
		if filter.EntityType != "" && entry.EntityType != filter.EntityType {
			continue
		}
		filtered = append(filtered, entry)
	}
	return filtered, int64(len(filtered)), nil
}

func newTestActivityService(repo repository.ActivityLogRepository) ActivityService {
	validate := validator.New(validator.WithRequiredStructEnabled())
	return NewActivityService(repo, validate, testLogger())
}

func TestActivityServiceRecordNormalizes(t *testing.T) {
	repo := &memoryActivityRepo{}
	svc := newTestActivityService(repo)

	entityID := uint(10)
	result, err := svc.Record(context.Background(), ActivityEntry{
		ActorID:    7,
		ActorRole:  " Faculty ",
		Action:     "Assignment.Created",
		EntityType: "Assignment",
		EntityID:   &entityID,
	})
	require.NoError(t, err)
	require.Equal(t, "faculty", result.ActorRole)
	require.Equal(t, "assignment.created", result.Action)
	require.Equal(t, "assignment", result.EntityType)
}

func TestActivityServiceRecordRequiresAction(t *testing.T) {
	repo := &memoryActivityRepo{}
	svc := newTestActivityService(repo)

	_, err := svc.Record(context.Background(), ActivityEntry{EntityType: "assignment"})
	require.Error(t, err)
	require.Empty(t, repo.entries)
}

func TestActivityServiceRecordMasksSensitiveMetadata(t *testing.T) {
	repo := &memoryActivityRepo{}
	svc := newTestActivityService(repo)

	result, err := svc.Record(context.Background(), ActivityEntry{
		ActorID:    7,
		ActorRole:  "faculty",
		Action:     "submission.graded",
		EntityType: "submission",
		Metadata: map[string]interface{}{
			"student_email": "student@example.edu",
			"marks":         85,
		},
	})
	require.NoError(t, err)
	require.Equal(t, "***", result.Metadata["student_email"])
	require.Equal(t, 85, result.Metadata["marks"])
}

func TestActivityServiceListFilters(t *testing.T) {
	repo := &memoryActivityRepo{}
	svc := newTestActivityService(repo)

	for _, action := range []string{"assignment.created", "assignment.published", "submission.graded"} {
		_, err := svc.Record(context.Background(), ActivityEntry{
			ActorID:    7,
			ActorRole:  "faculty",
			Action:     action,
			EntityType: "assignment",
		})
		require.NoError(t, err)
	}

	result, err := svc.List(context.Background(), dto.ActivityListRequest{Action: "assignment.created"})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	require.Equal(t, int64(1), result.Pagination.TotalItems)
}
