package dto

import (
	"time"

	"github.com/opencampus/academics-api/internal/models"
)

// SubmissionCreateRequest describes a student handing in work.
type SubmissionCreateRequest struct {
	AssignmentID  uint   `json:"assignment_id" validate:"required,gt=0"`
	Content       string `json:"content" validate:"required,min=1"`
	AttachmentURL string `json:"attachment_url" validate:"omitempty,url,max=512"`
}

// SubmissionResubmitRequest replaces the content of an existing submission.
type SubmissionResubmitRequest struct {
	Content       string `json:"content" validate:"required,min=1"`
	AttachmentURL string `json:"attachment_url" validate:"omitempty,url,max=512"`
}

// SubmissionFilter carries list filters supplied via query parameters.
type SubmissionFilter struct {
	AssignmentID *uint  `validate:"omitempty,gt=0"`
	StudentID    *uint  `validate:"omitempty,gt=0"`
	Status       string `validate:"omitempty,oneof=submitted draft late resubmitted"`
	LateOnly     bool
}

// SubmissionResponse is the serialized representation returned to clients.
type SubmissionResponse struct {
	ID            uint           `json:"id"`
	AssignmentID  uint           `json:"assignment_id"`
	StudentID     uint           `json:"student_id"`
	Content       string         `json:"content"`
	AttachmentURL string         `json:"attachment_url,omitempty"`
	Status        string         `json:"status"`
	IsLate        bool           `json:"is_late"`
	SubmittedAt   time.Time      `json:"submitted_at"`
	Grade         *GradeResponse `json:"grade,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// NewSubmissionResponse converts a model into a DTO. The grade percentage is
// derived against the parent assignment's max marks when both are loaded.
func NewSubmissionResponse(model models.AssignmentSubmission) SubmissionResponse {
	response := SubmissionResponse{
		ID:            model.ID,
		AssignmentID:  model.AssignmentID,
		StudentID:     model.StudentID,
		Content:       model.Content,
		AttachmentURL: model.AttachmentURL,
		Status:        model.Status,
		IsLate:        model.IsLate,
		SubmittedAt:   model.SubmittedAt,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}

	if model.Grade != nil {
		grade := NewGradeResponse(*model.Grade, model.Assignment.MaxMarks)
		response.Grade = &grade
	}

	return response
}

// NewSubmissionResponseSlice converts a slice of models into DTOs.
func NewSubmissionResponseSlice(submissions []models.AssignmentSubmission) []SubmissionResponse {
	responses := make([]SubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		responses = append(responses, NewSubmissionResponse(submission))
	}

	return responses
}
