package models

import "time"

// AssignmentCategory tags assignments for filtering (homework, lab, project).
type AssignmentCategory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:128;uniqueIndex;not null" json:"name"`
	Weight    float64   `gorm:"default:0" json:"weight"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AssignmentGroup is a named student group working on one group assignment.
// Group names are unique within an assignment.
type AssignmentGroup struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	AssignmentID uint      `gorm:"not null;uniqueIndex:idx_group_assignment_name" json:"assignment_id"`
	Name         string    `gorm:"size:128;not null;uniqueIndex:idx_group_assignment_name" json:"name"`
	LeaderID     *uint     `json:"leader_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LearningOutcome links an assignment to a curriculum outcome code, unique
// per assignment.
type LearningOutcome struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	AssignmentID uint      `gorm:"not null;uniqueIndex:idx_outcome_assignment_code" json:"assignment_id"`
	Code         string    `gorm:"size:32;not null;uniqueIndex:idx_outcome_assignment_code" json:"code"`
	Description  string    `gorm:"type:text" json:"description"`
	CreatedAt    time.Time `json:"created_at"`
}

// PeerReview captures a 1-5 rating one student gives another's submission.
type PeerReview struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SubmissionID uint      `gorm:"not null;index" json:"submission_id"`
	ReviewerID   uint      `gorm:"not null" json:"reviewer_id"`
	Rating       int       `gorm:"not null" json:"rating"`
	Comments     string    `gorm:"type:text" json:"comments"`
	CreatedAt    time.Time `json:"created_at"`
}

// PlagiarismCheck stores the similarity score reported for a submission.
type PlagiarismCheck struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SubmissionID uint      `gorm:"not null;index" json:"submission_id"`
	Similarity   float64   `gorm:"not null" json:"similarity"`
	ReportURL    string    `gorm:"size:512" json:"report_url"`
	CheckedAt    time.Time `gorm:"not null" json:"checked_at"`
}
