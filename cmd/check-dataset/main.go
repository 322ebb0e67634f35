package main

import (
	"fmt"
	"math"
	"time"

	"github.com/schoolsync/gradebook-api/internal/config"
	"github.com/schoolsync/gradebook-api/internal/dataset"
	"github.com/schoolsync/gradebook-api/internal/logger"
	"github.com/schoolsync/gradebook-api/internal/repository"
)

// check-dataset loads DATA_DIR the same way the server does and prints
// what it finds, including catalog weight diagnostics. Run it before a
// deploy to catch a broken export without bouncing the service.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	loc, err := time.LoadLocation(cfg.SchoolTimezone)
	if err != nil {
		log.Fatal().Err(err).Str("tz", cfg.SchoolTimezone).Msg("Unknown school timezone")
	}

	store, err := dataset.Load(cfg.DataDir, loc)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("Dataset failed to load")
	}

	fmt.Printf("=== Dataset %s ===\n", cfg.DataDir)
	fmt.Printf("boundaries: %d (%d resolvable runs)\n", len(store.Boundaries), max(len(store.Boundaries)-1, 0))
	fmt.Printf("courses:    %d\n", len(store.Courses))
	fmt.Printf("students:   %d\n", len(store.Students))

	var entries int
	for _, works := range store.Classwork {
		entries += len(works)
	}
	fmt.Printf("classwork:  %d entries\n", entries)

	courseRepo := repository.NewCourseRepository(store)
	var flagged int
	for _, course := range courseRepo.All() {
		if sum := course.WeightSum(); math.Abs(sum-1) > 1e-9 {
			flagged++
			fmt.Printf("WARN course %s (%s): category weights sum to %.4f\n", course.ID, course.Name, sum)
		}
	}
	if flagged == 0 {
		fmt.Println("catalog OK: all category weights sum to 1")
	}
}
