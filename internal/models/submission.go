package models

import "time"

// Submission statuses.
const (
	SubmissionStatusSubmitted   = "submitted"
	SubmissionStatusDraft       = "draft"
	SubmissionStatusLate        = "late"
	SubmissionStatusResubmitted = "resubmitted"
)

// AssignmentSubmission is one student's answer to an assignment. A student
// submits at most once per assignment; resubmissions replace the content of
// the existing row. IsLate is classified exactly once, when the row is first
// persisted, and is never recomputed even if the assignment's due date
// changes afterwards.
type AssignmentSubmission struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	AssignmentID  uint             `gorm:"not null;uniqueIndex:idx_submission_assignment_student" json:"assignment_id"`
	Assignment    Assignment       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"assignment"`
	StudentID     uint             `gorm:"not null;uniqueIndex:idx_submission_assignment_student" json:"student_id"`
	Student       Student          `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"student"`
	Content       string           `gorm:"type:text" json:"content"`
	AttachmentURL string           `gorm:"size:512" json:"attachment_url"`
	Status        string           `gorm:"size:16;not null;default:submitted" json:"status"`
	IsLate        bool             `gorm:"not null;default:false" json:"is_late"`
	SubmittedAt   time.Time        `gorm:"not null" json:"submitted_at"`
	GradeID       *uint            `gorm:"index" json:"grade_id"`
	Grade         *AssignmentGrade `json:"grade,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// IsGraded reports whether a grade has been attached.
func (s AssignmentSubmission) IsGraded() bool {
	return s.GradeID != nil
}
