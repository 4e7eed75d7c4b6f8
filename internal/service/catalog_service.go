package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/opencampus/academics-api/internal/dto"
	"github.com/opencampus/academics-api/internal/repository"
)

// CatalogService exposes read-only access to the academic structure.
type CatalogService interface {
	ListDepartments(ctx context.Context) ([]dto.DepartmentResponse, error)
	ListCourses(ctx context.Context, departmentID *uint) ([]dto.CourseResponse, error)
	ListSections(ctx context.Context, courseID *uint) ([]dto.SectionResponse, error)
	GetSection(ctx context.Context, id uint) (dto.SectionResponse, error)
}

type catalogService struct {
	repo   repository.CatalogRepository
	logger zerolog.Logger
}

// NewCatalogService builds the catalog reader.
func NewCatalogService(repo repository.CatalogRepository, logger zerolog.Logger) CatalogService {
	return &catalogService{
		repo:   repo,
		logger: logger.With().Str("component", "catalog_service").Logger(),
	}
}

func (s *catalogService) ListDepartments(ctx context.Context) ([]dto.DepartmentResponse, error) {
	departments, err := s.repo.ListDepartments(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewDepartmentResponseSlice(departments), nil
}

func (s *catalogService) ListCourses(ctx context.Context, departmentID *uint) ([]dto.CourseResponse, error) {
	courses, err := s.repo.ListCourses(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	return dto.NewCourseResponseSlice(courses), nil
}

func (s *catalogService) ListSections(ctx context.Context, courseID *uint) ([]dto.SectionResponse, error) {
	sections, err := s.repo.ListSections(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return dto.NewSectionResponseSlice(sections), nil
}

func (s *catalogService) GetSection(ctx context.Context, id uint) (dto.SectionResponse, error) {
	section, err := s.repo.GetSection(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SectionResponse{}, ErrSectionNotFound
		}
		return dto.SectionResponse{}, err
	}
	return dto.NewSectionResponse(section), nil
}
