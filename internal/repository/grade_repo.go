package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/opencampus/academics-api/internal/models"
)

// GradeRepository persists grades and their audit history.
type GradeRepository interface {
	GetByID(ctx context.Context, id uint) (models.AssignmentGrade, error)
	Create(ctx context.Context, grade *models.AssignmentGrade) error
	Update(ctx context.Context, grade *models.AssignmentGrade) error
	CreateHistory(ctx context.Context, entry *models.GradeHistory) error
	ListHistory(ctx context.Context, submissionID uint) ([]models.GradeHistory, error)
}

type gradeRepository struct {
	db *gorm.DB
}

// NewGradeRepository instantiates a GORM-backed repository.
func NewGradeRepository(db *gorm.DB) GradeRepository {
	return &gradeRepository{db: db}
}

func (r *gradeRepository) GetByID(ctx context.Context, id uint) (models.AssignmentGrade, error) {
	var grade models.AssignmentGrade
	if err := r.db.WithContext(ctx).First(&grade, id).Error; err != nil {
		return models.AssignmentGrade{}, err
	}
	return grade, nil
}

func (r *gradeRepository) Create(ctx context.Context, grade *models.AssignmentGrade) error {
	return r.db.WithContext(ctx).Create(grade).Error
}

func (r *gradeRepository) Update(ctx context.Context, grade *models.AssignmentGrade) error {
	return r.db.WithContext(ctx).Save(grade).Error
}

func (r *gradeRepository) CreateHistory(ctx context.Context, entry *models.GradeHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *gradeRepository) ListHistory(ctx context.Context, submissionID uint) ([]models.GradeHistory, error) {
	var entries []models.GradeHistory
	err := r.db.WithContext(ctx).
		Where("submission_id = ?", submissionID).
		Order("graded_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
