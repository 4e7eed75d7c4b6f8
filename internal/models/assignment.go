package models

import "time"

// Assignment statuses. Cancelled is terminal; a cancelled assignment is
// never resurrected.
const (
	AssignmentStatusDraft     = "draft"
	AssignmentStatusPublished = "published"
	AssignmentStatusClosed    = "closed"
	AssignmentStatusCancelled = "cancelled"
)

// SectionAssignmentQuota caps the number of non-cancelled assignments a
// section may carry within one academic year and semester.
const SectionAssignmentQuota = 2

// Assignment is a graded piece of coursework attached to a course section.
// Department, course, academic year and semester are denormalised from the
// section at save time so listing queries never need the join chain.
type Assignment struct {
	ID                uint                `gorm:"primaryKey" json:"id"`
	Title             string              `gorm:"size:255;not null" json:"title"`
	Description       string              `gorm:"type:text" json:"description"`
	CategoryID        *uint               `gorm:"index" json:"category_id"`
	Category          *AssignmentCategory `json:"category,omitempty"`
	Status            string              `gorm:"size:16;not null;default:draft" json:"status"`
	DueDate           time.Time           `gorm:"not null" json:"due_date"`
	AvailableFrom     *time.Time          `json:"available_from"`
	AvailableUntil    *time.Time          `json:"available_until"`
	IsGroupAssignment bool                `gorm:"default:false" json:"is_group_assignment"`
	MaxGroupSize      int                 `gorm:"default:0" json:"max_group_size"`
	MaxMarks          float64             `gorm:"not null;default:100" json:"max_marks"`
	FacultyID         uint                `gorm:"not null;index" json:"faculty_id"`
	Faculty           Faculty             `json:"faculty"`
	DepartmentID      uint                `gorm:"not null;index" json:"department_id"`
	CourseID          uint                `gorm:"not null;index" json:"course_id"`
	CourseSectionID   uint                `gorm:"not null;index:idx_assignment_section_term" json:"course_section_id"`
	CourseSection     CourseSection       `json:"course_section"`
	AcademicYearID    uint                `gorm:"not null;index:idx_assignment_section_term" json:"academic_year_id"`
	Semester          int                 `gorm:"not null;index:idx_assignment_section_term" json:"semester"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

// IsPastDue reports whether the deadline has passed at the reference instant.
// A reference exactly at the due instant counts as past due; the deadline is
// only open while the reference is strictly before it.
func (a Assignment) IsPastDue(reference time.Time) bool {
	return !reference.Before(a.DueDate)
}

// IsTerminal reports whether the assignment can no longer change state.
func (a Assignment) IsTerminal() bool {
	return a.Status == AssignmentStatusClosed || a.Status == AssignmentStatusCancelled
}

// CountsTowardQuota reports whether the assignment occupies one of the
// section's term slots. Cancelled assignments free their slot.
func (a Assignment) CountsTowardQuota() bool {
	return a.Status != AssignmentStatusCancelled
}

// CanTransitionTo reports whether the lifecycle allows moving to target.
func (a Assignment) CanTransitionTo(target string) bool {
	switch a.Status {
	case AssignmentStatusDraft:
		return target == AssignmentStatusPublished || target == AssignmentStatusCancelled
	case AssignmentStatusPublished:
		return target == AssignmentStatusClosed || target == AssignmentStatusCancelled
	default:
		return false
	}
}
