package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/opencampus/academics-api/internal/models"
)

func TestGradeRepositoryHistoryOrderedNewestFirst(t *testing.T) {
	db := setupRepoTestDB(t, "grade_history", &models.AssignmentGrade{}, &models.GradeHistory{})
	repo := NewGradeRepository(db)

	base := time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)
	entries := []models.GradeHistory{
		{SubmissionID: 1, MarksObtained: 60, GradedBy: 7, GradedAt: base},
		{SubmissionID: 1, MarksObtained: 75, GradedBy: 7, GradedAt: base.Add(time.Hour)},
		{SubmissionID: 2, MarksObtained: 50, GradedBy: 8, GradedAt: base},
	}
	for i := range entries {
		require.NoError(t, repo.CreateHistory(context.Background(), &entries[i]))
	}

	history, err := repo.ListHistory(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, 75.0, history[0].MarksObtained, "latest grading action comes first")
	require.Equal(t, 60.0, history[1].MarksObtained)
}

func TestGradeRepositoryCreateAndUpdate(t *testing.T) {
	db := setupRepoTestDB(t, "grade_crud", &models.AssignmentGrade{}, &models.GradeHistory{})
	repo := NewGradeRepository(db)

	grade := models.AssignmentGrade{MarksObtained: 60, GradedBy: 7, GradedAt: time.Now()}
	require.NoError(t, repo.Create(context.Background(), &grade))
	require.NotZero(t, grade.ID)

	grade.MarksObtained = 75
	grade.Feedback = "regraded"
	require.NoError(t, repo.Update(context.Background(), &grade))

	stored, err := repo.GetByID(context.Background(), grade.ID)
	require.NoError(t, err)
	require.Equal(t, 75.0, stored.MarksObtained)
	require.Equal(t, "regraded", stored.Feedback)
}
