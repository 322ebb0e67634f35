package main

import (
	"context"
	"math"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/schoolsync/gradebook-api/internal/config"
	"github.com/schoolsync/gradebook-api/internal/database"
	"github.com/schoolsync/gradebook-api/internal/dataset"
	"github.com/schoolsync/gradebook-api/internal/handler"
	"github.com/schoolsync/gradebook-api/internal/logger"
	"github.com/schoolsync/gradebook-api/internal/repository"
	"github.com/schoolsync/gradebook-api/internal/router"
	"github.com/schoolsync/gradebook-api/internal/service"
	"github.com/schoolsync/gradebook-api/internal/validator"
	"github.com/schoolsync/gradebook-api/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("data_dir", cfg.DataDir).
		Msg("Starting Gradebook API")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Load Dataset ──────────────────────────────────────────────────
	loc, err := time.LoadLocation(cfg.SchoolTimezone)
	if err != nil {
		log.Fatal().Err(err).Str("tz", cfg.SchoolTimezone).Msg("Unknown school timezone")
	}

	store, err := dataset.Load(cfg.DataDir, loc)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load dataset")
	}
	log.Info().
		Int("students", len(store.Students)).
		Int("courses", len(store.Courses)).
		Int("boundaries", len(store.Boundaries)).
		Msg("Dataset loaded")

	// ─── Connect to Redis (optional cache) ─────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	if rdb != nil {
		defer rdb.Close()
	}

	// ─── Initialize Repositories ───────────────────────────────────────
	studentRepo := repository.NewStudentRepository(store)
	courseRepo := repository.NewCourseRepository(store)
	classworkRepo := repository.NewClassworkRepository(store)

	reportCatalogDiagnostics(courseRepo, log)

	// ─── Initialize Services ──────────────────────────────────────────
	periodService := service.NewPeriodService(store, log)
	studentService := service.NewStudentService(studentRepo, periodService)
	classworkService := service.NewClassworkService(classworkRepo, courseRepo, periodService, log)
	gradeService := service.NewGradeService(classworkRepo, courseRepo, periodService, rdb, cfg.CacheTTL, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Student: handler.NewStudentHandler(studentService, classworkService, gradeService, cfg.BaseURL, loc),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	if rdb != nil {
		prewarmWorker := worker.NewPrewarmWorker(studentRepo, gradeService, rdb, cfg.PrewarmInterval, log)
		go prewarmWorker.Start(workerCtx)
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	workerCancel()

	log.Info().Msg("Shutdown complete")
}

// reportCatalogDiagnostics warns about catalog entries whose category
// weights do not sum to 1. Averages are still computed as loaded; the log
// line is the paper trail for data-entry errors.
func reportCatalogDiagnostics(courses *repository.CourseRepository, log zerolog.Logger) {
	for _, course := range courses.All() {
		if sum := course.WeightSum(); math.Abs(sum-1) > 1e-9 {
			log.Warn().
				Str("course_id", course.ID).
				Float64("weight_sum", sum).
				Msg("Catalog category weights do not sum to 1")
		}
	}
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
