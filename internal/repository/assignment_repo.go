package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/opencampus/academics-api/internal/models"
)

// ErrSectionQuotaFull signals that the section already carries the maximum
// number of non-cancelled assignments for the academic year and semester.
var ErrSectionQuotaFull = errors.New("section assignment quota reached")

// AssignmentFilter describes listing options for assignments.
type AssignmentFilter struct {
	Search          string
	Status          string
	CourseSectionID *uint
	FacultyID       *uint
	Sort            string
	Page            int
	PageSize        int
}

// AssignmentRepository defines persistence operations for assignments.
type AssignmentRepository interface {
	List(ctx context.Context, filter AssignmentFilter) ([]models.Assignment, int64, error)
	GetByID(ctx context.Context, id uint) (models.Assignment, error)
	Create(ctx context.Context, assignment *models.Assignment) error
	Update(ctx context.Context, assignment *models.Assignment) error
	Delete(ctx context.Context, id uint) error
	CountActiveForSection(ctx context.Context, sectionID, yearID uint, semester int, excludeID uint) (int64, error)
}

type assignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository instantiates a GORM-backed repository.
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) List(ctx context.Context, filter AssignmentFilter) ([]models.Assignment, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Assignment{})

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(strings.TrimSpace(filter.Search)) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", strings.ToLower(strings.TrimSpace(filter.Status)))
	}
	if filter.CourseSectionID != nil {
		query = query.Where("course_section_id = ?", *filter.CourseSectionID)
	}
	if filter.FacultyID != nil {
		query = query.Where("faculty_id = ?", *filter.FacultyID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if order := normalizeAssignmentSort(filter.Sort); order != "" {
		query = query.Order(order)
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var assignments []models.Assignment
	if err := query.Find(&assignments).Error; err != nil {
		return nil, 0, err
	}

	return assignments, total, nil
}

func (r *assignmentRepository) GetByID(ctx context.Context, id uint) (models.Assignment, error) {
	var assignment models.Assignment
	err := r.db.WithContext(ctx).
		Preload("Faculty").
		Preload("CourseSection").
		Preload("Category").
		First(&assignment, id).Error
	if err != nil {
		return models.Assignment{}, err
	}

	return assignment, nil
}

// Create inserts the assignment inside a transaction that locks the section
// row and re-counts the term's active assignments, so two concurrent creates
// cannot both slip under the quota.
func (r *assignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockSection(tx, assignment.CourseSectionID); err != nil {
			return err
		}

		count, err := countActive(tx, assignment.CourseSectionID, assignment.AcademicYearID, assignment.Semester, 0)
		if err != nil {
			return err
		}
		if assignment.CountsTowardQuota() && count >= models.SectionAssignmentQuota {
			return ErrSectionQuotaFull
		}

		return tx.Create(assignment).Error
	})
}

// Update persists the assignment under the same section lock as Create so a
// cancelled assignment cannot be revived past the quota.
func (r *assignmentRepository) Update(ctx context.Context, assignment *models.Assignment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockSection(tx, assignment.CourseSectionID); err != nil {
			return err
		}

		count, err := countActive(tx, assignment.CourseSectionID, assignment.AcademicYearID, assignment.Semester, assignment.ID)
		if err != nil {
			return err
		}
		if assignment.CountsTowardQuota() && count >= models.SectionAssignmentQuota {
			return ErrSectionQuotaFull
		}

		return tx.Save(assignment).Error
	})
}

func (r *assignmentRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Assignment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *assignmentRepository) CountActiveForSection(ctx context.Context, sectionID, yearID uint, semester int, excludeID uint) (int64, error) {
	return countActive(r.db.WithContext(ctx), sectionID, yearID, semester, excludeID)
}

func lockSection(tx *gorm.DB, sectionID uint) error {
	var section models.CourseSection
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&section, sectionID).Error
}

func countActive(tx *gorm.DB, sectionID, yearID uint, semester int, excludeID uint) (int64, error) {
	query := tx.Model(&models.Assignment{}).
		Where("course_section_id = ? AND academic_year_id = ? AND semester = ?", sectionID, yearID, semester).
		Where("status <> ?", models.AssignmentStatusCancelled)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func normalizeAssignmentSort(sort string) string {
	switch strings.ToLower(strings.TrimSpace(sort)) {
	case "due_date", "due_date:asc":
		return "due_date ASC"
	case "-due_date", "due_date:desc":
		return "due_date DESC"
	case "updated_at", "updated_at:asc":
		return "updated_at ASC"
	case "-updated_at", "updated_at:desc":
		return "updated_at DESC"
	case "title", "title:asc":
		return "title ASC"
	case "-title", "title:desc":
		return "title DESC"
	default:
		return "due_date ASC"
	}
}
