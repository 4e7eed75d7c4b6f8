package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/opencampus/academics-api/internal/dto"
	"github.com/opencampus/academics-api/internal/models"
)

type memoryGradeRepo struct {
	grades  map[uint]models.AssignmentGrade
	history []models.GradeHistory
	nextID  uint
}

// newMemoryGradeRepo shares the submission repo's grade map so the fake
// preload in hydrate sees grades created here.
func newMemoryGradeRepo(subRepo *memorySubmissionRepo) *memoryGradeRepo {
	return &memoryGradeRepo{grades: subRepo.grades, nextID: 1}
}

func (m *memoryGradeRepo) GetByID(_ context.Context, id uint) (models.AssignmentGrade, error) {
	grade, ok := m.grades[id]
	if !ok {
		return models.AssignmentGrade{}, gorm.ErrRecordNotFound
	}
	return grade, nil
}

func (m *memoryGradeRepo) Create(_ context.Context, grade *models.AssignmentGrade) error {
	grade.ID = m.nextID
	m.grades[m.nextID] = *grade
	m.nextID++
	return nil
}

func (m *memoryGradeRepo) Update(_ context.Context, grade *models.AssignmentGrade) error {
	if _, ok := m.grades[grade.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.grades[grade.ID] = *grade
	return nil
}

func (m *memoryGradeRepo) CreateHistory(_ context.Context, entry *models.GradeHistory) error {
	entry.ID = uint(len(m.history) + 1)
	m.history = append(m.history, *entry)
	return nil
}

func (m *memoryGradeRepo) ListHistory(_ context.Context, submissionID uint) ([]models.GradeHistory, error) {
	entries := make([]models.GradeHistory, 0)
	for _, entry := range m.history {
		if entry.SubmissionID == submissionID {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

type gradingFixture struct {
	svc        *gradingService
	subRepo    *memorySubmissionRepo
	gradeRepo  *memoryGradeRepo
	submission models.AssignmentSubmission
	events     *recordingPublisher
	activity   *recordingActivity
}

func newGradingFixture(t *testing.T, maxMarks float64) gradingFixture {
	t.Helper()

	assignments := newMemoryAssignmentRepo()
	assignment := seedAssignment(assignments, models.AssignmentStatusPublished, time.Now().Add(24*time.Hour))
	assignment.MaxMarks = maxMarks
	assignments.assignments[assignment.ID] = assignment

	subRepo := newMemorySubmissionRepo(assignments)
	submission := models.AssignmentSubmission{
		AssignmentID: assignment.ID,
		StudentID:    21,
		Content:      "final answers",
		Status:       models.SubmissionStatusSubmitted,
		SubmittedAt:  time.Now(),
	}
	require.NoError(t, subRepo.Create(context.Background(), &submission))

	gradeRepo := newMemoryGradeRepo(subRepo)
	events := &recordingPublisher{}
	activity := &recordingActivity{}
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewGradingService(subRepo, gradeRepo, validate, activity, events, testLogger()).(*gradingService)

	return gradingFixture{
		svc:        svc,
		subRepo:    subRepo,
		gradeRepo:  gradeRepo,
		submission: submission,
		events:     events,
		activity:   activity,
	}
}

func TestGradingServiceRecordsGrade(t *testing.T) {
	fx := newGradingFixture(t, 100)

	result, err := fx.svc.Grade(context.Background(), fx.submission.ID, dto.GradeRequest{
		MarksObtained: 85,
		Feedback:      "solid work",
	}, Actor{ID: 7, Role: RoleFaculty})
	require.NoError(t, err)
	require.NotNil(t, result.Grade)
	require.Equal(t, float64(85), result.Grade.MarksObtained)
	require.NotNil(t, result.Grade.Percentage)
	require.Equal(t, 85.0, *result.Grade.Percentage)
	require.Equal(t, "A", result.Grade.GradeLetter)
	require.Equal(t, uint(7), result.Grade.GradedBy)
	require.Contains(t, fx.events.subjects, EventSubmissionGraded)
	require.Contains(t, fx.activity.actions, "submission.graded")
}

func TestGradingServicePercentageRounding(t *testing.T) {
	fx := newGradingFixture(t, 30)

	result, err := fx.svc.Grade(context.Background(), fx.submission.ID, dto.GradeRequest{
		MarksObtained: 20,
	}, Actor{ID: 7, Role: RoleFaculty})
	require.NoError(t, err)
	require.NotNil(t, result.Grade.Percentage)
	require.Equal(t, 66.67, *result.Grade.Percentage)
}

func TestGradingServiceMarksExceedMax(t *testing.T) {
	fx := newGradingFixture(t, 100)

	_, err := fx.svc.Grade(context.Background(), fx.submission.ID, dto.GradeRequest{
		MarksObtained: 110,
	}, Actor{ID: 7, Role: RoleFaculty})
	require.ErrorIs(t, err, ErrMarksExceedMax)
	require.Empty(t, fx.gradeRepo.history)
}

func TestGradingServiceNonPositiveMaxMarksSentinel(t *testing.T) {
	fx := newGradingFixture(t, 0)

	result, err := fx.svc.Grade(context.Background(), fx.submission.ID, dto.GradeRequest{
		MarksObtained: 42,
	}, Actor{ID: 7, Role: RoleFaculty})
	require.NoError(t, err)
	require.NotNil(t, result.Grade)
	require.Nil(t, result.Grade.Percentage)
	require.Empty(t, result.Grade.GradeLetter)
}

func TestGradingServiceRegradeKeepsHistory(t *testing.T) {
	fx := newGradingFixture(t, 100)
	actor := Actor{ID: 7, Role: RoleFaculty}

	first, err := fx.svc.Grade(context.Background(), fx.submission.ID, dto.GradeRequest{MarksObtained: 60}, actor)
	require.NoError(t, err)
	gradeID := first.Grade.ID

	second, err := fx.svc.Grade(context.Background(), fx.submission.ID, dto.GradeRequest{MarksObtained: 75, Feedback: "regrade after appeal"}, actor)
	require.NoError(t, err)
	require.Equal(t, gradeID, second.Grade.ID)
	require.Equal(t, float64(75), second.Grade.MarksObtained)

	history, err := fx.svc.History(context.Background(), fx.submission.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
}

func TestGradingServiceHistoryMissingSubmission(t *testing.T) {
	fx := newGradingFixture(t, 100)

	_, err := fx.svc.History(context.Background(), fx.submission.ID+100)
	require.ErrorIs(t, err, ErrSubmissionNotFound)
}

func TestGradingServiceGradeMissingSubmission(t *testing.T) {
	fx := newGradingFixture(t, 100)

	_, err := fx.svc.Grade(context.Background(), fx.submission.ID+100, dto.GradeRequest{MarksObtained: 10}, Actor{ID: 7, Role: RoleFaculty})
	require.ErrorIs(t, err, ErrSubmissionNotFound)
}
