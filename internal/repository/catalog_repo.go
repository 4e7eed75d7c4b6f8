package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/opencampus/academics-api/internal/models"
)

// CatalogRepository reads the academic structure: departments, courses and
// course sections. The assignment service resolves canonical links through
// it; nothing here is mutated by the assignment workflow.
type CatalogRepository interface {
	ListDepartments(ctx context.Context) ([]models.Department, error)
	ListCourses(ctx context.Context, departmentID *uint) ([]models.Course, error)
	ListSections(ctx context.Context, courseID *uint) ([]models.CourseSection, error)
	GetSection(ctx context.Context, id uint) (models.CourseSection, error)
	GetCourse(ctx context.Context, id uint) (models.Course, error)
	GetFaculty(ctx context.Context, id uint) (models.Faculty, error)
	GetStudent(ctx context.Context, id uint) (models.Student, error)
}

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository instantiates a GORM-backed repository.
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) ListDepartments(ctx context.Context) ([]models.Department, error) {
	var departments []models.Department
	if err := r.db.WithContext(ctx).Order("code ASC").Find(&departments).Error; err != nil {
		return nil, err
	}
	return departments, nil
}

func (r *catalogRepository) ListCourses(ctx context.Context, departmentID *uint) ([]models.Course, error) {
	query := r.db.WithContext(ctx).Preload("Department").Order("code ASC")
	if departmentID != nil {
		query = query.Where("department_id = ?", *departmentID)
	}

	var courses []models.Course
	if err := query.Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *catalogRepository) ListSections(ctx context.Context, courseID *uint) ([]models.CourseSection, error) {
	query := r.db.WithContext(ctx).
		Preload("Course").
		Preload("Faculty").
		Order("label ASC")
	if courseID != nil {
		query = query.Where("course_id = ?", *courseID)
	}

	var sections []models.CourseSection
	if err := query.Find(&sections).Error; err != nil {
		return nil, err
	}
	return sections, nil
}

// GetSection loads the section with the full join chain needed to resolve an
// assignment's canonical links in one read.
func (r *catalogRepository) GetSection(ctx context.Context, id uint) (models.CourseSection, error) {
	var section models.CourseSection
	err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("Course.Department").
		Preload("Batch").
		Preload("Faculty").
		First(&section, id).Error
	if err != nil {
		return models.CourseSection{}, err
	}
	return section, nil
}

func (r *catalogRepository) GetCourse(ctx context.Context, id uint) (models.Course, error) {
	var course models.Course
	if err := r.db.WithContext(ctx).Preload("Department").First(&course, id).Error; err != nil {
		return models.Course{}, err
	}
	return course, nil
}

func (r *catalogRepository) GetFaculty(ctx context.Context, id uint) (models.Faculty, error) {
	var faculty models.Faculty
	if err := r.db.WithContext(ctx).First(&faculty, id).Error; err != nil {
		return models.Faculty{}, err
	}
	return faculty, nil
}

func (r *catalogRepository) GetStudent(ctx context.Context, id uint) (models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).First(&student, id).Error; err != nil {
		return models.Student{}, err
	}
	return student, nil
}
