package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/schoolsync/gradebook-api/internal/config"
	"github.com/schoolsync/gradebook-api/internal/handler"
	"github.com/schoolsync/gradebook-api/internal/middleware"
	"github.com/schoolsync/gradebook-api/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Student *handler.StudentHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for the API (120 requests per minute per IP).
	apiLimiter := middleware.NewRateLimiter(120, time.Minute)

	// ─── Students (Read-Only) ──────────────────────────────────────────
	students := router.Group("/api/v1/students")
	students.Use(
		apiLimiter.Middleware(),
		// The dataset only changes on redeploy, so responses tolerate a
		// short shared cache.
		middleware.CacheControl(60),
	)
	{
		students.GET("", handlers.Student.GetAll)
		students.GET("/:studentId", handlers.Student.GetStudent)
		students.GET("/:studentId/classwork", handlers.Student.GetClasswork)
		students.GET("/:studentId/grades", handlers.Student.GetGrades)
		students.GET("/:studentId/grades/average", handlers.Student.GetGradeAverages)
	}

	return router
}
