package repository

import (
	"sort"

	"github.com/schoolsync/gradebook-api/internal/dataset"
	"github.com/schoolsync/gradebook-api/internal/model"
)

// CourseRepository is the course catalog: a pure lookup from course id to
// its category-weight definition.
type CourseRepository struct {
	store *dataset.Store
}

func NewCourseRepository(store *dataset.Store) *CourseRepository {
	return &CourseRepository{store: store}
}

// Get returns the course definition for an id. The second return is false
// for ids absent from the catalog; callers must tolerate that (weighting is
// undefined for such entries).
func (r *CourseRepository) Get(courseID string) (model.CourseDefinition, bool) {
	c, ok := r.store.Courses[courseID]
	return c, ok
}

// All returns every catalog entry ordered by id. Used by the dataset checker
// and startup diagnostics.
func (r *CourseRepository) All() []model.CourseDefinition {
	courses := make([]model.CourseDefinition, 0, len(r.store.Courses))
	for _, c := range r.store.Courses {
		courses = append(courses, c)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })
	return courses
}
