package dto

import (
	"time"

	"github.com/opencampus/academics-api/internal/models"
)

// GradeRequest describes marks being recorded for a submission.
type GradeRequest struct {
	MarksObtained float64 `json:"marks_obtained" validate:"gte=0"`
	Feedback      string  `json:"feedback" validate:"omitempty,max=4000"`
}

// GradeResponse is the serialized grade returned to clients. Percentage is
// nil when the parent assignment's max marks make it underivable.
type GradeResponse struct {
	ID            uint      `json:"id"`
	MarksObtained float64   `json:"marks_obtained"`
	MaxMarks      float64   `json:"max_marks"`
	Percentage    *float64  `json:"percentage"`
	GradeLetter   string    `json:"grade_letter,omitempty"`
	Feedback      string    `json:"feedback,omitempty"`
	GradedBy      uint      `json:"graded_by"`
	GradedAt      time.Time `json:"graded_at"`
}

// GradeHistoryEntry is one audit row of past grading actions.
type GradeHistoryEntry struct {
	MarksObtained float64   `json:"marks_obtained"`
	Feedback      string    `json:"feedback,omitempty"`
	GradedBy      uint      `json:"graded_by"`
	GradedAt      time.Time `json:"graded_at"`
}

// NewGradeResponse converts a model into a DTO, deriving the display-only
// percentage and letter against the assignment's max marks.
func NewGradeResponse(model models.AssignmentGrade, maxMarks float64) GradeResponse {
	response := GradeResponse{
		ID:            model.ID,
		MarksObtained: model.MarksObtained,
		MaxMarks:      maxMarks,
		Percentage:    model.Percentage(maxMarks),
		GradeLetter:   model.GradeLetter,
		Feedback:      model.Feedback,
		GradedBy:      model.GradedBy,
		GradedAt:      model.GradedAt,
	}

	return response
}

// NewGradeHistorySlice converts audit rows into DTOs.
func NewGradeHistorySlice(entries []models.GradeHistory) []GradeHistoryEntry {
	responses := make([]GradeHistoryEntry, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, GradeHistoryEntry{
			MarksObtained: entry.MarksObtained,
			Feedback:      entry.Feedback,
			GradedBy:      entry.GradedBy,
			GradedAt:      entry.GradedAt,
		})
	}
	return responses
}
