package service

import (
	"github.com/schoolsync/gradebook-api/internal/model"
	"github.com/schoolsync/gradebook-api/internal/repository"
)

// StudentService serves student profiles annotated with the current grading
// period.
type StudentService struct {
	students *repository.StudentRepository
	periods  *PeriodService
}

func NewStudentService(students *repository.StudentRepository, periods *PeriodService) *StudentService {
	return &StudentService{students: students, periods: periods}
}

// Profile is a student record plus the grading period the calendar
// currently falls in. RunID is -1 outside any period (summer, boundary
// days).
type Profile struct {
	model.StudentRecord
	GradingPeriod int `json:"grading_period"`
}

// Get returns one student's profile. The second return is false for ids not
// in the dataset.
func (s *StudentService) Get(studentID string) (Profile, bool) {
	record, ok := s.students.Get(studentID)
	if !ok {
		return Profile{}, false
	}
	return Profile{StudentRecord: record, GradingPeriod: s.currentRun()}, true
}

// All returns every student profile ordered by id.
func (s *StudentService) All() []Profile {
	records := s.students.All()
	profiles := make([]Profile, 0, len(records))
	run := s.currentRun()
	for _, record := range records {
		profiles = append(profiles, Profile{StudentRecord: record, GradingPeriod: run})
	}
	return profiles
}

func (s *StudentService) currentRun() int {
	period := s.periods.Resolve(model.SelectCurrent())
	if !period.Resolved {
		return -1
	}
	return period.RunID
}
