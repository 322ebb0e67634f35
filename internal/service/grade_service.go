package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/schoolsync/gradebook-api/internal/config"
	"github.com/schoolsync/gradebook-api/internal/model"
	"github.com/schoolsync/gradebook-api/internal/repository"
)

// GradeService computes weighted course averages for a grading period. It
// composes the classwork repository, the course catalog and the period
// service; computed averages for explicit runs are cached in Redis when a
// client is configured.
type GradeService struct {
	classwork *repository.ClassworkRepository
	courses   *repository.CourseRepository
	periods   *PeriodService
	rdb       *redis.Client
	cacheTTL  time.Duration
	log       zerolog.Logger
}

func NewGradeService(
	classwork *repository.ClassworkRepository,
	courses *repository.CourseRepository,
	periods *PeriodService,
	rdb *redis.Client,
	cacheTTL time.Duration,
	log zerolog.Logger,
) *GradeService {
	return &GradeService{
		classwork: classwork,
		courses:   courses,
		periods:   periods,
		rdb:       rdb,
		cacheTTL:  cacheTTL,
		log:       log.With().Str("component", "grade_service").Logger(),
	}
}

// Interval exposes the resolved bounds for a selector so callers can echo
// them back. The second return is false for "all" and unresolved selectors.
func (s *GradeService) Interval(sel model.PeriodSelector) (model.Interval, bool) {
	period := s.periods.Resolve(sel)
	if !period.Resolved || period.All {
		return model.Interval{}, false
	}
	return period.Interval, true
}

// Grades returns raw numeric scores grouped by course then category for the
// selected period. Ungraded and non-numeric scores are excluded.
func (s *GradeService) Grades(studentID string, sel model.PeriodSelector) map[string]map[string][]float64 {
	return s.groupScores(studentID, sel, false)
}

// WeightedGrades is Grades with each score multiplied by its category
// weight before grouping. Weighting is per entry, not per group: two scores
// in the same category each carry the weight individually.
func (s *GradeService) WeightedGrades(studentID string, sel model.PeriodSelector) map[string]map[string][]float64 {
	return s.groupScores(studentID, sel, true)
}

func (s *GradeService) groupScores(studentID string, sel model.PeriodSelector, weighted bool) map[string]map[string][]float64 {
	grouped := make(map[string]map[string][]float64)

	period := s.periods.Resolve(sel)
	if !period.Resolved {
		return grouped
	}

	for _, work := range s.classwork.ForStudent(studentID) {
		score, ok := model.ParseScore(work.Score)
		if !ok {
			continue
		}
		if !period.All && !period.Interval.Contains(work.DateDueMs) {
			continue
		}

		value := score
		if weighted {
			course, ok := s.courses.Get(work.CourseID)
			if !ok {
				// Catalog gap: weighting is undefined for this entry, so it
				// is skipped rather than poisoning sibling courses.
				s.log.Warn().
					Str("student_id", studentID).
					Str("course_id", work.CourseID).
					Msg("classwork references unknown course")
				continue
			}
			weight, ok := course.Categories[work.Category]
			if !ok {
				s.log.Warn().
					Str("course_id", work.CourseID).
					Str("category", work.Category).
					Msg("classwork references unknown category")
				continue
			}
			value = score * weight
		}

		if grouped[work.CourseID] == nil {
			grouped[work.CourseID] = make(map[string][]float64)
		}
		grouped[work.CourseID][work.Category] = append(grouped[work.CourseID][work.Category], value)
	}

	return grouped
}

// CourseAverages computes the weighted average per course for the selected
// period. Courses with no graded work in the period are absent from the
// result, not zeroed.
//
// For each course: take the mean of weighted scores per active category,
// sum those means, then divide by the weight adjustment — one minus the
// weights of categories with no graded work yet. The adjustment keeps an
// average from being deflated by categories nobody has scored; when the
// active weights already sum to one it is exactly 1 and changes nothing.
func (s *GradeService) CourseAverages(ctx context.Context, studentID string, sel model.PeriodSelector) map[string]model.CourseAverage {
	period := s.periods.Resolve(sel)
	if !period.Resolved {
		return map[string]model.CourseAverage{}
	}

	cacheKey := ""
	if !period.All {
		cacheKey = config.CacheKey.CourseAverages(studentID, period.RunID)
		if cached, ok := s.cacheGet(ctx, cacheKey); ok {
			return cached
		}
	}

	weighted := s.groupScores(studentID, sel, true)
	averages := make(map[string]model.CourseAverage, len(weighted))

	for courseID, categories := range weighted {
		course, ok := s.courses.Get(courseID)
		if !ok {
			continue
		}

		inactive := make(map[string]float64, len(course.Categories))
		for cat, weight := range course.Categories {
			inactive[cat] = weight
		}

		var courseTotal float64
		for cat, scores := range categories {
			var catTotal float64
			for _, v := range scores {
				catTotal += v
			}
			courseTotal += catTotal / float64(len(scores))
			delete(inactive, cat)
		}

		adjustment := 1.0
		for _, weight := range inactive {
			adjustment -= weight
		}
		if adjustment == 0 {
			adjustment = 1
		}

		averages[courseID] = model.CourseAverage{
			CourseID:   courseID,
			CourseName: course.Name,
			Average:    strconv.FormatFloat(courseTotal/adjustment, 'f', 2, 64),
		}
	}

	if cacheKey != "" {
		s.cacheSet(ctx, cacheKey, averages)
	}

	return averages
}

func (s *GradeService) cacheGet(ctx context.Context, key string) (map[string]model.CourseAverage, bool) {
	if s.rdb == nil {
		return nil, false
	}
	raw, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			s.log.Error().Err(err).Str("key", key).Msg("cache read failed")
		}
		return nil, false
	}
	var averages map[string]model.CourseAverage
	if err := json.Unmarshal([]byte(raw), &averages); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("cache payload corrupt")
		return nil, false
	}
	return averages, true
}

func (s *GradeService) cacheSet(ctx context.Context, key string, averages map[string]model.CourseAverage) {
	if s.rdb == nil {
		return
	}
	payload, err := json.Marshal(averages)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, payload, s.cacheTTL).Err(); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("cache write failed")
	}
}
