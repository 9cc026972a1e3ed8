package server

import (
	"github.com/gin-gonic/gin"

	"github.com/oumacavin/smartlearn-backend/internal/http/handlers"
	"github.com/oumacavin/smartlearn-backend/internal/http/middleware"
	"github.com/oumacavin/smartlearn-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log             *logger.Logger
	AuthMiddleware  *middleware.AuthMiddleware
	HealthHandler   *handlers.HealthHandler
	AuthHandler     *handlers.AuthHandler
	ContentHandler  *handlers.ContentHandler
	QuizHandler     *handlers.QuizHandler
	UserHandler     *handlers.UserHandler
	AIHandler       *handlers.AIHandler
	ActivityHandler *handlers.ActivityHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Log))
	router.Use(middleware.RequestLogger(cfg.Log))

	// Public
	router.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	router.POST("/login", cfg.AuthHandler.Login)

	// Admin API
	api := router.Group("/api/admin")
	api.Use(cfg.AuthMiddleware.RequireAdmin())
	{
		// Courses
		api.POST("/courses", cfg.ContentHandler.CreateCourse)
		api.GET("/courses", cfg.ContentHandler.SearchCourses)
		api.GET("/courses/:id", cfg.ContentHandler.GetCourse)
		api.PATCH("/courses/:id", cfg.ContentHandler.UpdateCourse)
		api.DELETE("/courses/:id", cfg.ContentHandler.DeleteCourse)
		api.POST("/courses/:id/publish", cfg.ContentHandler.PublishCourse)
		api.GET("/courses/:id/lessons", cfg.ContentHandler.GetCourseLessons)

		// Lessons
		api.POST("/lessons", cfg.ContentHandler.CreateLesson)

		// Concepts
		api.POST("/concepts", cfg.ContentHandler.CreateConcept)
		api.GET("/concepts/:id", cfg.ContentHandler.GetConcept)
		api.GET("/concepts/:id/relationships", cfg.ContentHandler.GetConceptRelationships)
		api.DELETE("/concepts/:id", cfg.ContentHandler.DeleteConcept)
		api.POST("/concepts/link", cfg.ContentHandler.LinkConcepts)

		// Quizzes
		api.POST("/quizzes", cfg.QuizHandler.CreateQuiz)
		api.GET("/quizzes", cfg.QuizHandler.SearchQuizzes)
		api.GET("/quizzes/:id", cfg.QuizHandler.GetQuiz)
		api.PATCH("/quizzes/:id", cfg.QuizHandler.UpdateQuiz)
		api.DELETE("/quizzes/:id", cfg.QuizHandler.DeleteQuiz)
		api.POST("/quizzes/:id/attempts", cfg.QuizHandler.RecordAttempt)
		api.GET("/quizzes/:id/analytics", cfg.QuizHandler.GetQuizAnalytics)

		// Users
		api.POST("/users", cfg.UserHandler.CreateUser)
		api.GET("/users", cfg.UserHandler.SearchUsers)
		api.GET("/users/:id", cfg.UserHandler.GetUser)
		api.PATCH("/users/:id", cfg.UserHandler.UpdateUser)
		api.DELETE("/users/:id", cfg.UserHandler.DeleteUser)
		api.POST("/users/:id/suspend", cfg.UserHandler.SuspendUser)
		api.POST("/users/:id/activate", cfg.UserHandler.ActivateUser)
		api.POST("/users/bulk", cfg.UserHandler.BulkAdminAction)
		api.GET("/users/:id/attempts", cfg.QuizHandler.GetUserAttempts)

		// AI
		api.GET("/ai/recommendations/:id", cfg.AIHandler.GetRecommendations)
		api.POST("/ai/recommendations", cfg.AIHandler.RecordRecommendation)
		api.GET("/ai/stats", cfg.AIHandler.GetAIStats)

		// Activity
		api.POST("/activity", cfg.ActivityHandler.RecordActivity)
		api.GET("/activity", cfg.ActivityHandler.GetRecentActivity)
		api.GET("/stats/dashboard", cfg.ActivityHandler.GetDashboardStats)
	}

	return router
}
