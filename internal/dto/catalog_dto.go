package dto

import "github.com/opencampus/academics-api/internal/models"

// DepartmentResponse is the serialized department returned by the catalog.
type DepartmentResponse struct {
	ID   uint   `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// CourseResponse is the serialized course returned by the catalog.
type CourseResponse struct {
	ID           uint   `json:"id"`
	Code         string `json:"code"`
	Title        string `json:"title"`
	Credits      int    `json:"credits"`
	DepartmentID uint   `json:"department_id"`
}

// SectionResponse is the serialized course section returned by the catalog.
type SectionResponse struct {
	ID             uint   `json:"id"`
	Label          string `json:"label"`
	CourseID       uint   `json:"course_id"`
	CourseCode     string `json:"course_code,omitempty"`
	BatchID        uint   `json:"batch_id"`
	AcademicYearID uint   `json:"academic_year_id"`
	Semester       int    `json:"semester"`
	FacultyID      *uint  `json:"faculty_id,omitempty"`
	FacultyName    string `json:"faculty_name,omitempty"`
}

// NewDepartmentResponseSlice converts department models into DTOs.
func NewDepartmentResponseSlice(departments []models.Department) []DepartmentResponse {
	responses := make([]DepartmentResponse, 0, len(departments))
	for _, department := range departments {
		responses = append(responses, DepartmentResponse{
			ID:   department.ID,
			Code: department.Code,
			Name: department.Name,
		})
	}
	return responses
}

// NewCourseResponseSlice converts course models into DTOs.
func NewCourseResponseSlice(courses []models.Course) []CourseResponse {
	responses := make([]CourseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, CourseResponse{
			ID:           course.ID,
			Code:         course.Code,
			Title:        course.Title,
			Credits:      course.Credits,
			DepartmentID: course.DepartmentID,
		})
	}
	return responses
}

// NewSectionResponse converts a section model into a DTO.
func NewSectionResponse(section models.CourseSection) SectionResponse {
	response := SectionResponse{
		ID:             section.ID,
		Label:          section.Label,
		CourseID:       section.CourseID,
		CourseCode:     section.Course.Code,
		BatchID:        section.BatchID,
		AcademicYearID: section.AcademicYearID,
		Semester:       section.Semester,
		FacultyID:      section.FacultyID,
	}
	if section.Faculty != nil {
		response.FacultyName = section.Faculty.Name
	}
	return response
}

// NewSectionResponseSlice converts section models into DTOs.
func NewSectionResponseSlice(sections []models.CourseSection) []SectionResponse {
	responses := make([]SectionResponse, 0, len(sections))
	for _, section := range sections {
		responses = append(responses, NewSectionResponse(section))
	}
	return responses
}
