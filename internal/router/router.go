package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/qbank-backend/internal/config"
	"github.com/stemsi/qbank-backend/internal/handler"
	"github.com/stemsi/qbank-backend/internal/middleware"
	"github.com/stemsi/qbank-backend/internal/response"
	"github.com/stemsi/qbank-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth     *handler.AuthHandler
	Course   *handler.CourseHandler
	Question *handler.QuestionHandler
	Exam     *handler.ExamHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	rdb *redis.Client,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", response.HeaderRequestID}
	corsConfig.ExposeHeaders = []string{response.HeaderRequestID, "Retry-After"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Request ID first so the access log and every envelope carry it.
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	authLimiter := middleware.NewRateLimiter(rdb, "auth", cfg.AuthRateLimit, time.Minute, log)
	requireUser := []gin.HandlerFunc{
		middleware.RequireUserJWT(authService),
		middleware.CheckSingleSession(authService),
		middleware.NoStore(),
	}

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/register", authLimiter.Middleware(), handlers.Auth.Register)
		auth.POST("/login", authLimiter.Middleware(), middleware.NoStore(), handlers.Auth.Login)

		// Authenticated profile routes
		auth.POST("/logout", append(requireUser, handlers.Auth.Logout)...)
		auth.GET("/me", append(requireUser, handlers.Auth.Me)...)
	}

	// ─── 2. Lecturer Group (JWT + Single Session) ──────────────────────
	api := router.Group("/api/v1")
	api.Use(requireUser...)
	{
		// Courses
		api.GET("/courses", handlers.Course.ListCourses)
		api.POST("/courses", handlers.Course.CreateCourse)
		api.DELETE("/courses/:id", handlers.Course.DeleteCourse)

		// Question bank
		api.GET("/questions", handlers.Question.ListQuestions)
		api.POST("/questions", handlers.Question.CreateQuestion)
		api.GET("/questions/:id", handlers.Question.GetQuestion)
		api.PUT("/questions/:id", handlers.Question.UpdateQuestion)
		api.DELETE("/questions/:id", handlers.Question.DeleteQuestion)

		// Exam papers
		api.GET("/exams", handlers.Exam.ListExams)
		api.POST("/exams", handlers.Exam.CreateExam)
		api.GET("/exams/:id", handlers.Exam.GetExam)
		api.DELETE("/exams/:id", handlers.Exam.DeleteExam)
	}

	return router
}
