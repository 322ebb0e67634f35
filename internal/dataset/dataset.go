// Package dataset loads the static district export into an immutable
// in-memory store. The API is read-only: everything is loaded once at
// process start and shared without locking across requests.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/schoolsync/gradebook-api/internal/model"
)

const (
	intervalsFile = "intervals.json"
	coursesFile   = "courses.json"
	studentsFile  = "students.json"
	classworkFile = "classwork.json"
)

// RawClasswork is a classwork entry exactly as it appears in the export.
// Derived fields (course id, due date in ms) are computed by the repository
// layer at read time, not stored.
type RawClasswork struct {
	Course       string `json:"course"`
	Assignment   string `json:"assignment"`
	Category     string `json:"category"`
	DateAssigned string `json:"dateAssigned"`
	DateDue      string `json:"dateDue"`
	Score        string `json:"score"`
	Comment      string `json:"comment"`
}

// studentClasswork mirrors the export's per-student wrapper object.
type studentClasswork struct {
	Classwork []RawClasswork `json:"classwork"`
}

// Store holds the loaded dataset. Fields are exported so tests can build
// fixture stores directly instead of going through JSON files.
type Store struct {
	// Boundaries are the ordered grading period boundary dates, parsed at
	// midnight in the school timezone. Run k spans Boundaries[k-1]..[k].
	Boundaries []time.Time
	Courses    map[string]model.CourseDefinition
	Students   map[string]model.StudentRecord
	Classwork  map[string][]RawClasswork
	Location   *time.Location
}

// Load reads the dataset directory and parses it into a Store. Any missing
// or malformed file fails the whole load; a server with half a dataset
// would serve wrong averages silently.
func Load(dir string, loc *time.Location) (*Store, error) {
	var boundaryDates []string
	if err := readJSON(filepath.Join(dir, intervalsFile), &boundaryDates); err != nil {
		return nil, err
	}

	boundaries := make([]time.Time, 0, len(boundaryDates))
	for _, d := range boundaryDates {
		t, ok := model.ParseSchoolDate(d, loc)
		if !ok {
			return nil, fmt.Errorf("%s: unparseable boundary date %q", intervalsFile, d)
		}
		boundaries = append(boundaries, t)
	}
	for i := 1; i < len(boundaries); i++ {
		if !boundaries[i-1].Before(boundaries[i]) {
			return nil, fmt.Errorf("%s: boundaries out of order at index %d", intervalsFile, i)
		}
	}

	courses := make(map[string]model.CourseDefinition)
	if err := readJSON(filepath.Join(dir, coursesFile), &courses); err != nil {
		return nil, err
	}
	for id, c := range courses {
		c.ID = id
		courses[id] = c
	}

	students := make(map[string]model.StudentRecord)
	if err := readJSON(filepath.Join(dir, studentsFile), &students); err != nil {
		return nil, err
	}
	for id, s := range students {
		s.ID = id
		students[id] = s
	}

	wrapped := make(map[string]studentClasswork)
	if err := readJSON(filepath.Join(dir, classworkFile), &wrapped); err != nil {
		return nil, err
	}
	classwork := make(map[string][]RawClasswork, len(wrapped))
	for id, w := range wrapped {
		classwork[id] = w.Classwork
	}

	return &Store{
		Boundaries: boundaries,
		Courses:    courses,
		Students:   students,
		Classwork:  classwork,
		Location:   loc,
	}, nil
}

func readJSON(path string, dst interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read dataset file: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}
