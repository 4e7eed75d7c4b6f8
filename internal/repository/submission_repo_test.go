package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/opencampus/academics-api/internal/models"
)

func TestSubmissionRepositoryUniquePerAssignmentAndStudent(t *testing.T) {
	db := setupRepoTestDB(t, "submission_unique", &models.Assignment{}, &models.AssignmentGrade{}, &models.AssignmentSubmission{})
	repo := NewSubmissionRepository(db)

	submission := models.AssignmentSubmission{
		AssignmentID: 1,
		StudentID:    21,
		Content:      "first",
		Status:       models.SubmissionStatusSubmitted,
		SubmittedAt:  time.Now(),
	}
	require.NoError(t, repo.Create(context.Background(), &submission))

	duplicate := models.AssignmentSubmission{
		AssignmentID: 1,
		StudentID:    21,
		Content:      "second",
		Status:       models.SubmissionStatusSubmitted,
		SubmittedAt:  time.Now(),
	}
	require.Error(t, repo.Create(context.Background(), &duplicate), "unique index must reject a second submission")

	other := models.AssignmentSubmission{
		AssignmentID: 1,
		StudentID:    22,
		Content:      "different student",
		Status:       models.SubmissionStatusSubmitted,
		SubmittedAt:  time.Now(),
	}
	require.NoError(t, repo.Create(context.Background(), &other))
}

func TestSubmissionRepositoryGetByAssignmentAndStudent(t *testing.T) {
	db := setupRepoTestDB(t, "submission_lookup", &models.Assignment{}, &models.AssignmentGrade{}, &models.AssignmentSubmission{})
	repo := NewSubmissionRepository(db)

	submission := models.AssignmentSubmission{
		AssignmentID: 2,
		StudentID:    21,
		Content:      "lookup me",
		Status:       models.SubmissionStatusSubmitted,
		SubmittedAt:  time.Now(),
	}
	require.NoError(t, repo.Create(context.Background(), &submission))

	found, err := repo.GetByAssignmentAndStudent(context.Background(), 2, 21)
	require.NoError(t, err)
	require.Equal(t, submission.ID, found.ID)

	_, err = repo.GetByAssignmentAndStudent(context.Background(), 2, 99)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSubmissionRepositoryListLateFilterAndGradePreload(t *testing.T) {
	db := setupRepoTestDB(t, "submission_filters", &models.Assignment{}, &models.AssignmentGrade{}, &models.AssignmentSubmission{})
	repo := NewSubmissionRepository(db)

	grade := models.AssignmentGrade{MarksObtained: 90, GradedBy: 7, GradedAt: time.Now()}
	require.NoError(t, db.Create(&grade).Error)

	onTime := models.AssignmentSubmission{
		AssignmentID: 3,
		StudentID:    21,
		Content:      "on time",
		Status:       models.SubmissionStatusSubmitted,
		SubmittedAt:  time.Now().Add(-time.Hour),
	}
	late := models.AssignmentSubmission{
		AssignmentID: 3,
		StudentID:    22,
		Content:      "late",
		Status:       models.SubmissionStatusLate,
		IsLate:       true,
		SubmittedAt:  time.Now(),
		GradeID:      &grade.ID,
	}
	require.NoError(t, repo.Create(context.Background(), &onTime))
	require.NoError(t, repo.Create(context.Background(), &late))

	assignmentID := uint(3)
	all, err := repo.List(context.Background(), SubmissionFilter{AssignmentID: &assignmentID})
	require.NoError(t, err)
	require.Len(t, all, 2)

	lateOnly, err := repo.List(context.Background(), SubmissionFilter{AssignmentID: &assignmentID, LateOnly: true})
	require.NoError(t, err)
	require.Len(t, lateOnly, 1)
	require.Equal(t, uint(22), lateOnly[0].StudentID)
	require.NotNil(t, lateOnly[0].Grade)
	require.Equal(t, 90.0, lateOnly[0].Grade.MarksObtained)
}
