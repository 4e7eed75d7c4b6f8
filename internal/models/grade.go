package models

import (
	"math"
	"time"
)

// AssignmentGrade records the marks awarded to one submission. It lives in
// its own table so the grading audit trail survives submission edits; there
// is no cascading recomputation when an assignment changes.
type AssignmentGrade struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	MarksObtained float64   `gorm:"not null" json:"marks_obtained"`
	GradeLetter   string    `gorm:"size:4" json:"grade_letter"`
	Feedback      string    `gorm:"type:text" json:"feedback"`
	GradedBy      uint      `gorm:"not null" json:"graded_by"`
	GradedAt      time.Time `gorm:"not null" json:"graded_at"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// GradeHistory keeps every grading action for audit, including regrades.
type GradeHistory struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	SubmissionID  uint      `gorm:"not null;index" json:"submission_id"`
	MarksObtained float64   `gorm:"not null" json:"marks_obtained"`
	Feedback      string    `gorm:"type:text" json:"feedback"`
	GradedBy      uint      `gorm:"not null" json:"graded_by"`
	GradedAt      time.Time `gorm:"not null" json:"graded_at"`
}

// Percentage derives the score as a fraction of maxMarks, rounded to two
// decimals. It returns nil when maxMarks is not positive, mirroring the
// "unavailable" sentinel rather than failing on bad catalog data.
func (g AssignmentGrade) Percentage(maxMarks float64) *float64 {
	if maxMarks <= 0 {
		return nil
	}
	value := math.Round(g.MarksObtained/maxMarks*100*100) / 100
	return &value
}

// LetterFor maps a percentage to the display letter used on transcripts.
func LetterFor(percentage float64) string {
	switch {
	case percentage >= 90:
		return "A+"
	case percentage >= 80:
		return "A"
	case percentage >= 70:
		return "B"
	case percentage >= 60:
		return "C"
	case percentage >= 50:
		return "D"
	default:
		return "F"
	}
}
