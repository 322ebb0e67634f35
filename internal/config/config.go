package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	ServerPort string
	GinMode    string
	LogLevel   string
	LogFormat  string
	// DataDir is the directory holding the static district export
	// (intervals.json, courses.json, students.json, classwork.json).
	DataDir string
	// SchoolTimezone is the IANA zone the district calendar lives in.
	// Period boundaries and due dates are midnight in this zone.
	SchoolTimezone string
	// BaseURL is the externally visible students root used to build
	// resource links in responses.
	BaseURL string
	// RedisURL enables the course-average cache when non-empty.
	RedisURL        string
	CacheTTL        time.Duration
	PrewarmInterval time.Duration
	// AllowedOrigins controls HTTP CORS. Empty slice means all origins are
	// permitted (dev default).
	AllowedOrigins []string
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // Ignore error — .env is optional

	return &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		GinMode:         getEnv("GIN_MODE", "debug"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "pretty"),
		DataDir:         getEnv("DATA_DIR", "./data"),
		SchoolTimezone:  getEnv("SCHOOL_TIMEZONE", "America/Chicago"),
		BaseURL:         getEnv("BASE_URL", "http://localhost:8080/api/v1/students"),
		RedisURL:        getEnv("REDIS_URL", ""),
		CacheTTL:        time.Duration(getEnvInt("CACHE_TTL_MINUTES", 15)) * time.Minute,
		PrewarmInterval: time.Duration(getEnvInt("PREWARM_INTERVAL_MINUTES", 30)) * time.Minute,
		AllowedOrigins:  parseOrigins(getEnv("ALLOWED_ORIGINS", "")),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// parseOrigins splits a comma-separated origins string into a trimmed slice.
// Returns nil (allow-all) if the input is empty.
func parseOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
