package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/opencampus/academics-api/internal/models"
)

// SubmissionFilter narrows submission listings.
type SubmissionFilter struct {
	AssignmentID *uint
	StudentID    *uint
	Status       string
	LateOnly     bool
}

// SubmissionRepository defines persistence operations for submissions.
type SubmissionRepository interface {
	List(ctx context.Context, filter SubmissionFilter) ([]models.AssignmentSubmission, error)
	GetByID(ctx context.Context, id uint) (models.AssignmentSubmission, error)
	GetByAssignmentAndStudent(ctx context.Context, assignmentID, studentID uint) (models.AssignmentSubmission, error)
	Create(ctx context.Context, submission *models.AssignmentSubmission) error
	Update(ctx context.Context, submission *models.AssignmentSubmission) error
}

type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository instantiates a GORM-backed repository.
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) List(ctx context.Context, filter SubmissionFilter) ([]models.AssignmentSubmission, error) {
	query := r.db.WithContext(ctx).Model(&models.AssignmentSubmission{}).
		Preload("Assignment").
		Preload("Grade")

	if filter.AssignmentID != nil {
		query = query.Where("assignment_id = ?", *filter.AssignmentID)
	}
	if filter.StudentID != nil {
		query = query.Where("student_id = ?", *filter.StudentID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", strings.ToLower(strings.TrimSpace(filter.Status)))
	}
	if filter.LateOnly {
		query = query.Where("is_late = ?", true)
	}

	var submissions []models.AssignmentSubmission
	if err := query.Order("submitted_at DESC").Find(&submissions).Error; err != nil {
		return nil, err
	}

	return submissions, nil
}

func (r *submissionRepository) GetByID(ctx context.Context, id uint) (models.AssignmentSubmission, error) {
	var submission models.AssignmentSubmission
	err := r.db.WithContext(ctx).
		Preload("Assignment").
		Preload("Student").
		Preload("Grade").
		First(&submission, id).Error
	if err != nil {
		return models.AssignmentSubmission{}, err
	}

	return submission, nil
}

func (r *submissionRepository) GetByAssignmentAndStudent(ctx context.Context, assignmentID, studentID uint) (models.AssignmentSubmission, error) {
	var submission models.AssignmentSubmission
	err := r.db.WithContext(ctx).
		Where("assignment_id = ? AND student_id = ?", assignmentID, studentID).
		First(&submission).Error
	if err != nil {
		return models.AssignmentSubmission{}, err
	}

	return submission, nil
}

func (r *submissionRepository) Create(ctx context.Context, submission *models.AssignmentSubmission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *submissionRepository) Update(ctx context.Context, submission *models.AssignmentSubmission) error {
	return r.db.WithContext(ctx).Save(submission).Error
}
