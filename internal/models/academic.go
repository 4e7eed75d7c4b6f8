package models

import "time"

// Department is a top-level academic unit owning courses and faculty.
type Department struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Code      string    `gorm:"size:16;uniqueIndex;not null" json:"code"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Course is a unit of study offered by a department.
type Course struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Code         string     `gorm:"size:32;uniqueIndex;not null" json:"code"`
	Title        string     `gorm:"size:255;not null" json:"title"`
	Credits      int        `gorm:"not null;default:3" json:"credits"`
	DepartmentID uint       `gorm:"not null;index" json:"department_id"`
	Department   Department `json:"department"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// AcademicYear delimits a teaching year, e.g. 2025-2026.
type AcademicYear struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Label     string    `gorm:"size:32;uniqueIndex;not null" json:"label"`
	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null" json:"end_date"`
	IsCurrent bool      `gorm:"default:false" json:"is_current"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StudentBatch groups the students admitted together into a cohort.
type StudentBatch struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"size:64;not null" json:"name"`
	EntryYear    int        `gorm:"not null" json:"entry_year"`
	DepartmentID uint       `gorm:"not null;index" json:"department_id"`
	Department   Department `json:"department"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// CourseSection is one scheduled offering of a course to a batch within an
// academic year and semester. FacultyID is nullable until an instructor is
// assigned.
type CourseSection struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	Label          string       `gorm:"size:16;not null" json:"label"`
	CourseID       uint         `gorm:"not null;index" json:"course_id"`
	Course         Course       `json:"course"`
	BatchID        uint         `gorm:"not null;index" json:"batch_id"`
	Batch          StudentBatch `json:"batch"`
	AcademicYearID uint         `gorm:"not null;index" json:"academic_year_id"`
	AcademicYear   AcademicYear `json:"academic_year"`
	Semester       int          `gorm:"not null" json:"semester"`
	FacultyID      *uint        `gorm:"index" json:"faculty_id"`
	Faculty        *Faculty     `json:"faculty,omitempty"`
	Capacity       int          `gorm:"default:60" json:"capacity"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// Faculty is a teaching staff member.
type Faculty struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"size:255;not null" json:"name"`
	Email        string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	DepartmentID uint       `gorm:"not null;index" json:"department_id"`
	Department   Department `json:"department"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Student is an enrolled learner belonging to a batch.
type Student struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	Name           string       `gorm:"size:255;not null" json:"name"`
	Email          string       `gorm:"size:255;uniqueIndex;not null" json:"email"`
	RegistrationNo string       `gorm:"size:64;uniqueIndex;not null" json:"registration_no"`
	BatchID        uint         `gorm:"not null;index" json:"batch_id"`
	Batch          StudentBatch `json:"batch"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}
