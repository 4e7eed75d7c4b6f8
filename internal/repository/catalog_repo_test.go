package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/opencampus/academics-api/internal/models"
)

func TestCatalogRepositoryGetSectionPreloadsJoinChain(t *testing.T) {
	db := setupRepoTestDB(t, "catalog_section",
		&models.Department{},
		&models.Course{},
		&models.AcademicYear{},
		&models.StudentBatch{},
		&models.Faculty{},
		&models.CourseSection{},
	)
	repo := NewCatalogRepository(db)

	department := models.Department{Code: "CS", Name: "Computer Science"}
	require.NoError(t, db.Create(&department).Error)
	course := models.Course{Code: "CS201", Title: "Algorithms", Credits: 4, DepartmentID: department.ID}
	require.NoError(t, db.Create(&course).Error)
	faculty := models.Faculty{Name: "Ada Lovelace", Email: "ada@example.edu", DepartmentID: department.ID}
	require.NoError(t, db.Create(&faculty).Error)
	batch := models.StudentBatch{Name: "2024 intake", EntryYear: 2024, DepartmentID: department.ID}
	require.NoError(t, db.Create(&batch).Error)
	section := models.CourseSection{
		Label:          "A",
		CourseID:       course.ID,
		BatchID:        batch.ID,
		AcademicYearID: 1,
		Semester:       1,
		FacultyID:      &faculty.ID,
	}
	require.NoError(t, db.Create(&section).Error)

	loaded, err := repo.GetSection(context.Background(), section.ID)
	require.NoError(t, err)
	require.Equal(t, "CS201", loaded.Course.Code)
	require.Equal(t, department.ID, loaded.Course.DepartmentID)
	require.Equal(t, "Computer Science", loaded.Course.Department.Name)
	require.Equal(t, "2024 intake", loaded.Batch.Name)
	require.NotNil(t, loaded.Faculty)
	require.Equal(t, "Ada Lovelace", loaded.Faculty.Name)

	_, err = repo.GetSection(context.Background(), section.ID+100)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCatalogRepositoryListCoursesByDepartment(t *testing.T) {
	db := setupRepoTestDB(t, "catalog_courses", &models.Department{}, &models.Course{})
	repo := NewCatalogRepository(db)

	cs := models.Department{Code: "CS", Name: "Computer Science"}
	math := models.Department{Code: "MA", Name: "Mathematics"}
	require.NoError(t, db.Create(&cs).Error)
	require.NoError(t, db.Create(&math).Error)

	require.NoError(t, db.Create(&models.Course{Code: "CS201", Title: "Algorithms", DepartmentID: cs.ID}).Error)
	require.NoError(t, db.Create(&models.Course{Code: "MA101", Title: "Calculus", DepartmentID: math.ID}).Error)

	all, err := repo.ListCourses(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, all, 2)

	filtered, err := repo.ListCourses(context.Background(), &cs.ID)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	require.Equal(t, "CS201", filtered[0].Code)
}
