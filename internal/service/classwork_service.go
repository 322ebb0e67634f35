package service

import (
	"sort"

	"github.com/rs/zerolog"
	"github.com/schoolsync/gradebook-api/internal/model"
	"github.com/schoolsync/gradebook-api/internal/repository"
)

// ClassworkService serves period-filtered classwork listings and the alert
// view built on top of them. It shares the inclusive interval filtering of
// the period service with the averaging path but performs no weighting.
type ClassworkService struct {
	classwork *repository.ClassworkRepository
	courses   *repository.CourseRepository
	periods   *PeriodService
	log       zerolog.Logger
}

func NewClassworkService(
	classwork *repository.ClassworkRepository,
	courses *repository.CourseRepository,
	periods *PeriodService,
	log zerolog.Logger,
) *ClassworkService {
	return &ClassworkService{
		classwork: classwork,
		courses:   courses,
		periods:   periods,
		log:       log.With().Str("component", "classwork_service").Logger(),
	}
}

// RecordsForPeriod groups a student's graded classwork by course for the
// selected period. Each course record carries its catalog name and category
// weights alongside the entries. An unresolved period yields an empty map.
func (s *ClassworkService) RecordsForPeriod(studentID string, sel model.PeriodSelector) map[string]model.CourseRecord {
	records := make(map[string]model.CourseRecord)

	period := s.periods.Resolve(sel)
	if !period.Resolved {
		return records
	}

	for _, work := range s.classwork.ForStudent(studentID) {
		if !work.Graded() {
			continue
		}
		if !period.All && !period.Interval.Contains(work.DateDueMs) {
			continue
		}

		record, ok := records[work.CourseID]
		if !ok {
			record = model.CourseRecord{Name: work.Course, Classwork: []model.ClassworkEntry{}}
			if course, found := s.courses.Get(work.CourseID); found {
				record.Name = course.Name
				record.Categories = course.Categories
				record.CategoryTotal = course.CategoryTotal
			}
		}
		record.Classwork = append(record.Classwork, work)
		records[work.CourseID] = record
	}

	return records
}

// Alerts flags classwork a parent should look at: entries with a teacher
// comment, and entries scored strictly below the threshold, whose comments
// get the low-score tag. Missing work always alerts since its comment
// carries the missing-work tag.
func (s *ClassworkService) Alerts(studentID string, sel model.PeriodSelector, threshold int) []model.Alert {
	alerts := []model.Alert{}

	records := s.RecordsForPeriod(studentID, sel)
	courseIDs := make([]string, 0, len(records))
	for id := range records {
		courseIDs = append(courseIDs, id)
	}
	sort.Strings(courseIDs)

	for _, id := range courseIDs {
		record := records[id]
		for _, work := range record.Classwork {
			score, numeric := model.ParseScore(work.Score)
			low := numeric && score < float64(threshold)

			if work.Comment == "" && !low {
				continue
			}

			comment := work.Comment
			if low {
				comment = model.TagLowScore(comment)
			}

			alerts = append(alerts, model.Alert{
				Date:       work.DateDue,
				Course:     record.Name,
				Assignment: work.Assignment,
				Score:      work.Score,
				Comment:    comment,
			})
		}
	}

	return alerts
}
