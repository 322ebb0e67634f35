package service

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/schoolsync/gradebook-api/internal/dataset"
	"github.com/schoolsync/gradebook-api/internal/model"
	"github.com/schoolsync/gradebook-api/internal/repository"
	"github.com/stretchr/testify/require"
)

const fixtureStudent = "123456"

// chicago returns the school timezone the fixture calendar lives in.
func chicago(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)
	return loc
}

// fixtureStore builds the reference dataset used across service tests:
// seven period boundaries (runs 1-6), three courses with different weight
// layouts, and one student exercising every scoring edge.
func fixtureStore(t *testing.T) *dataset.Store {
	t.Helper()
	loc := chicago(t)

	boundaryDates := []string{
		"8/19/2019", "10/7/2019", "11/4/2019", "12/23/2019",
		"2/3/2020", "3/9/2020", "4/27/2020",
	}
	boundaries := make([]time.Time, 0, len(boundaryDates))
	for _, d := range boundaryDates {
		tm, ok := model.ParseSchoolDate(d, loc)
		require.True(t, ok, d)
		boundaries = append(boundaries, tm)
	}

	return &dataset.Store{
		Boundaries: boundaries,
		Location:   loc,
		Courses: map[string]model.CourseDefinition{
			"0123 - 1": {
				ID:         "0123 - 1",
				Name:       "Algebra II",
				Categories: map[string]float64{"Assessment": 0.5, "Daily": 0.5},
			},
			"0225 - 3": {
				ID:         "0225 - 3",
				Name:       "English Language Arts",
				Categories: map[string]float64{"Assessment": 0.6, "Daily": 0.4},
			},
			"0341 - 2": {
				ID:         "0341 - 2",
				Name:       "Biology",
				Categories: map[string]float64{"Major": 0.5, "Minor": 0.3, "Homework": 0.2},
			},
		},
		Students: map[string]model.StudentRecord{
			fixtureStudent: {
				ID:       fixtureStudent,
				Name:     "Amber Lannister",
				Grade:    "10",
				Building: "Big Middle School",
				Homeroom: "154 - Brown",
			},
		},
		Classwork: map[string][]dataset.RawClasswork{
			fixtureStudent: {
				// Run 3: the canonical 95/75 pair.
				{Course: "0123 - 1 Algebra II", Assignment: "Chapter 4 Test", Category: "Assessment", DateDue: "12/19/2019", Score: "95.00"},
				{Course: "0123 - 1 Algebra II", Assignment: "Factoring Drill", Category: "Daily", DateDue: "12/19/2019", Score: "75.00"},
				// Run 4, graded.
				{Course: "0123 - 1 Algebra II", Assignment: "Midterm Review", Category: "Assessment", DateDue: "1/15/2020", Score: "90.00"},
				// Ungraded: excluded everywhere.
				{Course: "0123 - 1 Algebra II", Assignment: "Winter Packet", Category: "Daily", DateDue: "1/8/2020", Score: ""},
				// Missing-work sentinel with a teacher comment.
				{Course: "0225 - 3 English Language Arts", Assignment: "Reading Log 7", Category: "Daily", DateDue: "12/16/2019", Score: "M", Comment: "See me after class"},
				// Due exactly on the run 3/4 boundary.
				{Course: "0225 - 3 English Language Arts", Assignment: "Essay Draft", Category: "Daily", DateDue: "12/23/2019", Score: "100.00"},
				// Only one of Biology's three categories has graded work.
				{Course: "0341 - 2 Biology", Assignment: "Cell Quiz", Category: "Minor", DateDue: "12/18/2019", Score: "58.00"},
				// No catalog entry for this course id.
				{Course: "9999 - 9 Mystery Elective", Assignment: "Orientation", Category: "Daily", DateDue: "12/18/2019", Score: "80.00"},
			},
		},
	}
}

type fixture struct {
	store     *dataset.Store
	periods   *PeriodService
	grades    *GradeService
	classwork *ClassworkService
	students  *StudentService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := fixtureStore(t)
	log := zerolog.Nop()

	periods := NewPeriodService(store, log)
	classworkRepo := repository.NewClassworkRepository(store)
	courseRepo := repository.NewCourseRepository(store)
	studentRepo := repository.NewStudentRepository(store)

	return &fixture{
		store:     store,
		periods:   periods,
		grades:    NewGradeService(classworkRepo, courseRepo, periods, nil, 0, log),
		classwork: NewClassworkService(classworkRepo, courseRepo, periods, log),
		students:  NewStudentService(studentRepo, periods),
	}
}
