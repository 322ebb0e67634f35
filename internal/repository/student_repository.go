package repository

import (
	"sort"

	"github.com/schoolsync/gradebook-api/internal/dataset"
	"github.com/schoolsync/gradebook-api/internal/model"
)

// StudentRepository serves student profile records.
type StudentRepository struct {
	store *dataset.Store
}

func NewStudentRepository(store *dataset.Store) *StudentRepository {
	return &StudentRepository{store: store}
}

// Get returns a student's profile. The second return is false for ids not
// in the dataset.
func (r *StudentRepository) Get(studentID string) (model.StudentRecord, bool) {
	s, ok := r.store.Students[studentID]
	return s, ok
}

// All returns every student profile ordered by id.
func (r *StudentRepository) All() []model.StudentRecord {
	students := make([]model.StudentRecord, 0, len(r.store.Students))
	for _, s := range r.store.Students {
		students = append(students, s)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })
	return students
}
