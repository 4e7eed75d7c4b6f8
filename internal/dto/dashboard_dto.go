package dto

// SectionDashboardResponse aggregates grading progress for one section term.
type SectionDashboardResponse struct {
	CourseSectionID uint                 `json:"course_section_id"`
	Assignments     []AssignmentSnapshot `json:"assignments"`
	Summary         SectionSummary       `json:"summary"`
}

// AssignmentSnapshot is one assignment's submission/grading tallies.
type AssignmentSnapshot struct {
	AssignmentID uint    `json:"assignment_id"`
	Title        string  `json:"title"`
	Status       string  `json:"status"`
	Submissions  int     `json:"submissions"`
	Late         int     `json:"late"`
	Graded       int     `json:"graded"`
	AverageMarks float64 `json:"average_marks"`
}

// SectionSummary totals the snapshots across the section.
type SectionSummary struct {
	TotalAssignments int     `json:"total_assignments"`
	TotalSubmissions int     `json:"total_submissions"`
	LateSubmissions  int     `json:"late_submissions"`
	GradedCount      int     `json:"graded_count"`
	LateRate         float64 `json:"late_rate"`
	GradingProgress  float64 `json:"grading_progress"`
}
