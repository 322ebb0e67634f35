package repository

import (
	"github.com/schoolsync/gradebook-api/internal/dataset"
	"github.com/schoolsync/gradebook-api/internal/model"
)

// ClassworkRepository serves per-student classwork entries with the derived
// fields filled in: the trimmed course id prefix, the due date in epoch
// milliseconds, and the missing-work comment tag.
type ClassworkRepository struct {
	store *dataset.Store
}

func NewClassworkRepository(store *dataset.Store) *ClassworkRepository {
	return &ClassworkRepository{store: store}
}

// ForStudent returns every classwork entry on a student's record, ungraded
// entries included. Unknown students yield an empty slice, never an error.
// A due date that fails to parse leaves DateDueMs at zero, which every
// interval filter treats as outside the period.
func (r *ClassworkRepository) ForStudent(studentID string) []model.ClassworkEntry {
	raw := r.store.Classwork[studentID]
	entries := make([]model.ClassworkEntry, 0, len(raw))

	for _, w := range raw {
		var dueMs int64
		if due, ok := model.ParseSchoolDate(w.DateDue, r.store.Location); ok {
			dueMs = due.UnixMilli()
		}

		entries = append(entries, model.ClassworkEntry{
			Course:       w.Course,
			CourseID:     model.ExtractCourseID(w.Course),
			Assignment:   w.Assignment,
			Category:     w.Category,
			DateAssigned: w.DateAssigned,
			DateDue:      w.DateDue,
			DateDueMs:    dueMs,
			Score:        w.Score,
			Comment:      model.TagMissingWork(w.Score, w.Comment),
		})
	}

	return entries
}
