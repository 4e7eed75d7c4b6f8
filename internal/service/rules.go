package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/opencampus/academics-api/internal/models"
)

// Integrity rule codes, in evaluation order. The first violated rule aborts
// the save; violations are never aggregated.
const (
	RuleGroupSize        = "rule_group_size"
	RuleDueFuture        = "rule_due_future"
	RuleWindow           = "rule_window"
	RuleSectionCourse    = "rule_section_course"
	RuleCourseDepartment = "rule_course_department"
	RuleFacultyMatch     = "rule_faculty_match"
	RuleSectionQuota     = "rule_section_quota"
)

// RuleViolation is a failed integrity rule, carrying a stable code clients
// can branch on and a human-readable message.
type RuleViolation struct {
	Rule    string
	Message string
}

func (v *RuleViolation) Error() string {
	return fmt.Sprintf("%s: %s", v.Rule, v.Message)
}

// AsRuleViolation unwraps err into a RuleViolation when it is one.
func AsRuleViolation(err error) (*RuleViolation, bool) {
	var violation *RuleViolation
	if errors.As(err, &violation) {
		return violation, true
	}
	return nil, false
}

func violation(rule, format string, args ...interface{}) error {
	return &RuleViolation{Rule: rule, Message: fmt.Sprintf(format, args...)}
}

// checkAssignmentIntegrity runs the in-memory integrity rules against a fully
// resolved assignment. The per-section quota is not checked here: it needs
// the section row lock and is enforced by the repository transaction at
// persist time, which keeps it last in the rule order.
func checkAssignmentIntegrity(assignment models.Assignment, section models.CourseSection, now time.Time) error {
	if assignment.IsGroupAssignment && assignment.MaxGroupSize < 2 {
		return violation(RuleGroupSize, "group assignments need a max group size of at least 2")
	}

	if assignment.Status == models.AssignmentStatusPublished && !assignment.DueDate.After(now) {
		return violation(RuleDueFuture, "published assignments must have a future due date")
	}

	if assignment.AvailableUntil != nil && assignment.AvailableUntil.Before(assignment.DueDate) {
		return violation(RuleWindow, "available_until must not be earlier than the due date")
	}

	if assignment.CourseID != 0 && section.CourseID != assignment.CourseID {
		return violation(RuleSectionCourse, "course section belongs to course %d, not %d", section.CourseID, assignment.CourseID)
	}

	if assignment.DepartmentID != 0 && section.Course.DepartmentID != assignment.DepartmentID {
		return violation(RuleCourseDepartment, "course belongs to department %d, not %d", section.Course.DepartmentID, assignment.DepartmentID)
	}

	if section.FacultyID != nil && *section.FacultyID != assignment.FacultyID {
		return violation(RuleFacultyMatch, "assignment faculty does not match the section's assigned faculty")
	}

	return nil
}
