package repository

import (
	"testing"
	"time"

	"github.com/schoolsync/gradebook-api/internal/dataset"
	"github.com/schoolsync/gradebook-api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *dataset.Store {
	t.Helper()
	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	return &dataset.Store{
		Location: loc,
		Courses: map[string]model.CourseDefinition{
			"0123 - 1": {ID: "0123 - 1", Name: "Algebra II", Categories: map[string]float64{"Daily": 1}},
		},
		Students: map[string]model.StudentRecord{
			"123456": {ID: "123456", Name: "Amber Lannister"},
		},
		Classwork: map[string][]dataset.RawClasswork{
			"123456": {
				{Course: "0123 - 1 Algebra II", Assignment: "Factoring Drill", Category: "Daily", DateDue: "12/19/2019", Score: "75.00"},
				{Course: "0123 - 1 Algebra II", Assignment: "Lost Worksheet", Category: "Daily", DateDue: "12/20/2019", Score: "M", Comment: "Turn in late"},
				{Course: "0123 - 1 Algebra II", Assignment: "Undated", Category: "Daily", DateDue: "someday", Score: "80.00"},
			},
		},
	}
}

func TestClassworkForStudent(t *testing.T) {
	repo := NewClassworkRepository(testStore(t))

	entries := repo.ForStudent("123456")
	require.Len(t, entries, 3)

	t.Run("derives course id and due epoch", func(t *testing.T) {
		assert.Equal(t, "0123 - 1", entries[0].CourseID)
		assert.Equal(t, "0123 - 1 Algebra II", entries[0].Course)
		// 12/19/2019 midnight America/Chicago.
		assert.Equal(t, int64(1576735200000), entries[0].DateDueMs)
	})

	t.Run("tags missing work", func(t *testing.T) {
		assert.Equal(t, "[missing work] Turn in late", entries[1].Comment)
		assert.Equal(t, model.MissingScore, entries[1].Score)
	})

	t.Run("unparseable due date keeps zero epoch", func(t *testing.T) {
		assert.Zero(t, entries[2].DateDueMs)
	})

	t.Run("unknown student yields empty slice", func(t *testing.T) {
		assert.Empty(t, repo.ForStudent("000000"))
	})
}

func TestCourseRepository(t *testing.T) {
	repo := NewCourseRepository(testStore(t))

	course, ok := repo.Get("0123 - 1")
	require.True(t, ok)
	assert.Equal(t, "Algebra II", course.Name)

	_, ok = repo.Get("9999 - 9")
	assert.False(t, ok)

	all := repo.All()
	require.Len(t, all, 1)
	assert.Equal(t, "0123 - 1", all[0].ID)
}

func TestStudentRepository(t *testing.T) {
	repo := NewStudentRepository(testStore(t))

	student, ok := repo.Get("123456")
	require.True(t, ok)
	assert.Equal(t, "Amber Lannister", student.Name)

	_, ok = repo.Get("000000")
	assert.False(t, ok)

	assert.Len(t, repo.All(), 1)
}
