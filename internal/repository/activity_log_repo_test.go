package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/opencampus/academics-api/internal/models"
)

func TestActivityLogRepositoryListFiltersAndPaginates(t *testing.T) {
	db := setupRepoTestDB(t, "activity_log", &models.ActivityLog{})
	repo := NewActivityLogRepository(db)

	entries := []models.ActivityLog{
		{ActorID: 7, ActorRole: "faculty", Action: "assignment.created", EntityType: "assignment", Metadata: datatypes.JSONMap{"status": "draft"}},
		{ActorID: 7, ActorRole: "faculty", Action: "assignment.published", EntityType: "assignment", Metadata: datatypes.JSONMap{}},
		{ActorID: 21, ActorRole: "student", Action: "submission.created", EntityType: "submission", Metadata: datatypes.JSONMap{}},
	}
	for i := range entries {
		require.NoError(t, repo.Create(context.Background(), &entries[i]))
	}

	all, total, err := repo.List(context.Background(), ActivityLogFilter{})
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, all, 3)

	actorID := uint(7)
	byActor, total, err := repo.List(context.Background(), ActivityLogFilter{ActorID: &actorID})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, byActor, 2)

	byAction, _, err := repo.List(context.Background(), ActivityLogFilter{Action: "submission.created"})
	require.NoError(t, err)
	require.Len(t, byAction, 1)
	require.Equal(t, uint(21), byAction[0].ActorID)

	paged, total, err := repo.List(context.Background(), ActivityLogFilter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, paged, 1)
}
