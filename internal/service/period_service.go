package service

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/schoolsync/gradebook-api/internal/dataset"
	"github.com/schoolsync/gradebook-api/internal/model"
)

// PeriodService resolves grading periods (report-card "runs") from the
// ordered boundary dates in the dataset. Run k spans the open interval
// between boundary k-1 and boundary k; run 0 has no preceding boundary and
// never resolves.
//
// Two comparison modes coexist on purpose. Date-to-run resolution is strict
// (a date exactly on a boundary belongs to no run), while interval
// membership for classwork is inclusive (model.Interval.Contains). The
// listing, alerts and averaging paths all use the inclusive form.
type PeriodService struct {
	boundaries []time.Time
	now        func() time.Time
	log        zerolog.Logger
}

func NewPeriodService(store *dataset.Store, log zerolog.Logger) *PeriodService {
	return &PeriodService{
		boundaries: store.Boundaries,
		now:        time.Now,
		log:        log.With().Str("component", "period_service").Logger(),
	}
}

// RunForDate returns the run whose open interval contains the date. The
// second return is false when no run matches: dates before the first
// boundary, after the last, or exactly on a boundary.
func (s *PeriodService) RunForDate(t time.Time) (int, bool) {
	for k := 1; k < len(s.boundaries); k++ {
		if t.After(s.boundaries[k-1]) && t.Before(s.boundaries[k]) {
			return k, true
		}
	}
	return 0, false
}

// RunBounds returns a run's start and end boundary as epoch milliseconds.
// The second return is false for run 0 (no preceding boundary) and for runs
// past the end of the boundary sequence.
func (s *PeriodService) RunBounds(runID int) (model.Interval, bool) {
	if runID < 1 || runID >= len(s.boundaries) {
		return model.Interval{}, false
	}
	return model.Interval{
		StartMs: s.boundaries[runID-1].UnixMilli(),
		EndMs:   s.boundaries[runID].UnixMilli(),
	}, true
}

// Resolve turns a period selector into concrete bounds. Unresolvable
// selectors come back with Resolved == false; callers decide what an
// unresolved period means for them (typically an empty result).
func (s *PeriodService) Resolve(sel model.PeriodSelector) model.ResolvedPeriod {
	if sel.IsAll() {
		return model.ResolvedPeriod{All: true, Resolved: true}
	}

	runID, explicit := sel.IsRun()
	if !explicit {
		date, ok := sel.IsDate()
		if !ok {
			date = s.now()
		}
		runID, ok = s.RunForDate(date)
		if !ok {
			s.log.Debug().Time("date", date).Msg("date resolves to no grading period")
			return model.ResolvedPeriod{}
		}
	}

	iv, ok := s.RunBounds(runID)
	if !ok {
		s.log.Debug().Int("run_id", runID).Msg("run id out of range")
		return model.ResolvedPeriod{}
	}

	return model.ResolvedPeriod{Resolved: true, RunID: runID, Interval: iv}
}
