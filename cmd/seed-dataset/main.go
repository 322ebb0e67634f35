package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/schoolsync/gradebook-api/internal/config"
	"github.com/schoolsync/gradebook-api/internal/logger"
)

// seed-dataset writes a small, deterministic sample dataset into DATA_DIR.
// It covers the shapes the server expects: weighted categories, ungraded
// work, the missing-work sentinel and low scores for the alert path.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("Failed to create data dir")
	}

	fmt.Printf("=== Seeding sample dataset into %s ===\n", cfg.DataDir)

	intervals := []string{
		"8/19/2019", "10/7/2019", "11/4/2019", "12/23/2019",
		"2/3/2020", "3/9/2020", "4/27/2020",
	}

	courses := map[string]interface{}{
		"0123 - 1": course("Algebra II", map[string]float64{"Assessment": 0.5, "Daily": 0.5}),
		"0225 - 3": course("English Language Arts", map[string]float64{"Assessment": 0.6, "Daily": 0.4}),
		"0341 - 2": course("Biology", map[string]float64{"Major": 0.5, "Minor": 0.3, "Homework": 0.2}),
	}

	students := map[string]interface{}{
		"123456": student("Amber Lannister", "10", "Big Middle School", "154 - Brown"),
		"123457": student("Ravi Patel", "10", "Big Middle School", "154 - Brown"),
	}

	classwork := map[string]interface{}{
		"123456": assignments(
			work("0123 - 1 Algebra II", "Chapter 4 Test", "Assessment", "12/19/2019", "95.00", ""),
			work("0123 - 1 Algebra II", "Factoring Drill", "Daily", "12/19/2019", "75.00", ""),
			work("0123 - 1 Algebra II", "Winter Packet", "Daily", "1/8/2020", "", ""),
			work("0225 - 3 English Language Arts", "Reading Log 7", "Daily", "12/16/2019", "M", "See me after class"),
			work("0341 - 2 Biology", "Cell Quiz", "Minor", "12/18/2019", "58.00", ""),
		),
		"123457": assignments(
			work("0341 - 2 Biology", "Cell Quiz", "Minor", "12/18/2019", "88.00", "Nice improvement"),
		),
	}

	files := map[string]interface{}{
		"intervals.json": intervals,
		"courses.json":   courses,
		"students.json":  students,
		"classwork.json": classwork,
	}

	for name, payload := range files {
		path := filepath.Join(cfg.DataDir, name)
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			log.Fatal().Err(err).Str("file", name).Msg("Failed to encode")
		}
		if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
			log.Fatal().Err(err).Str("file", name).Msg("Failed to write")
		}
		fmt.Printf("wrote %s\n", path)
	}

	fmt.Println("Done.")
}

func course(name string, categories map[string]float64) map[string]interface{} {
	return map[string]interface{}{
		"name":     name,
		"category": categories,
	}
}

func student(name, grade, building, homeroom string) map[string]interface{} {
	return map[string]interface{}{
		"name":     name,
		"grade":    grade,
		"building": building,
		"homeroom": homeroom,
	}
}

func assignments(entries ...map[string]string) map[string]interface{} {
	return map[string]interface{}{"classwork": entries}
}

func work(course, assignment, category, dateDue, score, comment string) map[string]string {
	return map[string]string{
		"course":     course,
		"assignment": assignment,
		"category":   category,
		"dateDue":    dateDue,
		"score":      score,
		"comment":    comment,
	}
}
