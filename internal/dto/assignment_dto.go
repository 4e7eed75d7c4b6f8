package dto

import (
	"time"

	"github.com/opencampus/academics-api/internal/models"
)

// AssignmentCreateRequest describes the payload for creating an assignment.
// Only the section must be named; course, department, year, semester and
// (when the section is staffed) faculty are resolved server-side.
type AssignmentCreateRequest struct {
	Title             string  `json:"title" validate:"required,min=3,max=255"`
	Description       string  `json:"description" validate:"required,min=10"`
	CourseSectionID   uint    `json:"course_section_id" validate:"required,gt=0"`
	CategoryID        *uint   `json:"category_id" validate:"omitempty,gt=0"`
	FacultyID         *uint   `json:"faculty_id" validate:"omitempty,gt=0"`
	Status            string  `json:"status" validate:"omitempty,oneof=draft published"`
	DueDate           string  `json:"due_date" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	AvailableFrom     *string `json:"available_from" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	AvailableUntil    *string `json:"available_until" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	IsGroupAssignment bool    `json:"is_group_assignment"`
	MaxGroupSize      int     `json:"max_group_size" validate:"omitempty,gte=0"`
	MaxMarks          float64 `json:"max_marks" validate:"required,gt=0"`
}

// AssignmentUpdateRequest describes a partial update of a draft or published
// assignment.
type AssignmentUpdateRequest struct {
	Title             *string  `json:"title" validate:"omitempty,min=3,max=255"`
	Description       *string  `json:"description" validate:"omitempty,min=10"`
	CategoryID        *uint    `json:"category_id" validate:"omitempty,gt=0"`
	DueDate           *string  `json:"due_date" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	AvailableFrom     *string  `json:"available_from" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	AvailableUntil    *string  `json:"available_until" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	IsGroupAssignment *bool    `json:"is_group_assignment"`
	MaxGroupSize      *int     `json:"max_group_size" validate:"omitempty,gte=0"`
	MaxMarks          *float64 `json:"max_marks" validate:"omitempty,gt=0"`
}

// AssignmentListRequest carries list filters supplied via query parameters.
type AssignmentListRequest struct {
	Search          string `validate:"omitempty,max=255"`
	Status          string `validate:"omitempty,oneof=draft published closed cancelled"`
	CourseSectionID *uint  `validate:"omitempty,gt=0"`
	FacultyID       *uint  `validate:"omitempty,gt=0"`
	Sort            string
	Page            int `validate:"omitempty,gte=1"`
	PageSize        int `validate:"omitempty,gte=1,lte=100"`
}

// AssignmentResponse is the serialized representation returned to clients.
type AssignmentResponse struct {
	ID                uint       `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Status            string     `json:"status"`
	DueDate           time.Time  `json:"due_date"`
	AvailableFrom     *time.Time `json:"available_from,omitempty"`
	AvailableUntil    *time.Time `json:"available_until,omitempty"`
	IsGroupAssignment bool       `json:"is_group_assignment"`
	MaxGroupSize      int        `json:"max_group_size"`
	MaxMarks          float64    `json:"max_marks"`
	CategoryID        *uint      `json:"category_id,omitempty"`
	FacultyID         uint       `json:"faculty_id"`
	DepartmentID      uint       `json:"department_id"`
	CourseID          uint       `json:"course_id"`
	CourseSectionID   uint       `json:"course_section_id"`
	AcademicYearID    uint       `json:"academic_year_id"`
	Semester          int        `json:"semester"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// AssignmentSaveResult wraps a persisted assignment together with any
// lifecycle correction applied during the save. Callers can detect a publish
// downgrade programmatically instead of diffing the stored status.
type AssignmentSaveResult struct {
	Assignment       AssignmentResponse `json:"assignment"`
	StatusAdjusted   bool               `json:"status_adjusted"`
	AdjustmentReason string             `json:"adjustment_reason,omitempty"`
}

// AssignmentListResponse wraps a page of assignments.
type AssignmentListResponse struct {
	Items      []AssignmentResponse `json:"items"`
	Pagination PaginationMeta       `json:"pagination"`
	Search     string               `json:"search,omitempty"`
}

// NewAssignmentResponse converts a model into a DTO.
func NewAssignmentResponse(model models.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:                model.ID,
		Title:             model.Title,
		Description:       model.Description,
		Status:            model.Status,
		DueDate:           model.DueDate,
		AvailableFrom:     model.AvailableFrom,
		AvailableUntil:    model.AvailableUntil,
		IsGroupAssignment: model.IsGroupAssignment,
		MaxGroupSize:      model.MaxGroupSize,
		MaxMarks:          model.MaxMarks,
		CategoryID:        model.CategoryID,
		FacultyID:         model.FacultyID,
		DepartmentID:      model.DepartmentID,
		CourseID:          model.CourseID,
		CourseSectionID:   model.CourseSectionID,
		AcademicYearID:    model.AcademicYearID,
		Semester:          model.Semester,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	}
}

// NewAssignmentResponseSlice converts a slice of models into DTOs.
func NewAssignmentResponseSlice(assignments []models.Assignment) []AssignmentResponse {
	responses := make([]AssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		responses = append(responses, NewAssignmentResponse(assignment))
	}

	return responses
}
