package worker

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/schoolsync/gradebook-api/internal/config"
	"github.com/schoolsync/gradebook-api/internal/model"
	"github.com/schoolsync/gradebook-api/internal/repository"
	"github.com/schoolsync/gradebook-api/internal/service"
)

// PrewarmWorker periodically computes current-period course averages for
// every student so the first dashboard hit of the morning lands on a warm
// cache instead of paying for aggregation.
type PrewarmWorker struct {
	students *repository.StudentRepository
	grades   *service.GradeService
	rdb      *redis.Client
	interval time.Duration
	log      zerolog.Logger
}

func NewPrewarmWorker(
	students *repository.StudentRepository,
	grades *service.GradeService,
	rdb *redis.Client,
	interval time.Duration,
	log zerolog.Logger,
) *PrewarmWorker {
	return &PrewarmWorker{
		students: students,
		grades:   grades,
		rdb:      rdb,
		interval: interval,
		log:      log.With().Str("component", "prewarm_worker").Logger(),
	}
}

// Start runs the prewarm loop until the context is cancelled. One pass runs
// immediately so a fresh deploy starts warm.
func (w *PrewarmWorker) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("PrewarmWorker started")

	w.runOnce(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("PrewarmWorker stopped")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *PrewarmWorker) runOnce(ctx context.Context) {
	start := time.Now()
	var warmed int

	for _, student := range w.students.All() {
		if ctx.Err() != nil {
			return
		}
		// CourseAverages writes through to the cache for resolved runs.
		if len(w.grades.CourseAverages(ctx, student.ID, model.SelectCurrent())) > 0 {
			warmed++
		}
	}

	if w.rdb != nil {
		stamp := time.Now().UTC().Format(time.RFC3339)
		if err := w.rdb.Set(ctx, config.CacheKey.PrewarmStamp(), stamp, 0).Err(); err != nil {
			w.log.Error().Err(err).Msg("failed to record prewarm stamp")
		}
	}

	w.log.Info().
		Int("students", warmed).
		Dur("elapsed", time.Since(start)).
		Msg("Prewarm pass complete")
}
