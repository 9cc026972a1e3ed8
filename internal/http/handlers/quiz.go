package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/oumacavin/smartlearn-backend/internal/admin"
	"github.com/oumacavin/smartlearn-backend/internal/data/repos"
	"github.com/oumacavin/smartlearn-backend/internal/http/response"
	"github.com/oumacavin/smartlearn-backend/internal/platform/logger"
)

type QuizHandler struct {
	log     *logger.Logger
	quizzes *admin.QuizStore
}

func NewQuizHandler(log *logger.Logger, quizzes *admin.QuizStore) *QuizHandler {
	return &QuizHandler{
		log:     log.With("handler", "QuizHandler"),
		quizzes: quizzes,
	}
}

func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var in admin.CreateQuizInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	response.FromResult(c, h.quizzes.CreateQuiz(c.Request.Context(), in))
}

func (h *QuizHandler) GetQuiz(c *gin.Context) {
	response.FromResult(c, h.quizzes.GetQuiz(c.Request.Context(), c.Param("id")))
}

func (h *QuizHandler) SearchQuizzes(c *gin.Context) {
	filter := repos.QuizSearch{
		Query:     c.Query("q"),
		ConceptID: c.Query("concept_id"),
		Limit:     intQuery(c, "limit"),
	}
	if lessonID, err := uuid.Parse(c.Query("lesson_id")); err == nil {
		filter.LessonID = &lessonID
	}
	if published, ok := boolQuery(c, "published"); ok {
		filter.Published = &published
	}
	response.FromResult(c, h.quizzes.SearchQuizzes(c.Request.Context(), filter))
}

func (h *QuizHandler) UpdateQuiz(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	response.FromResult(c, h.quizzes.UpdateQuiz(c.Request.Context(), c.Param("id"), fields))
}

func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	response.FromResult(c, h.quizzes.DeleteQuiz(c.Request.Context(), c.Param("id")))
}

func (h *QuizHandler) RecordAttempt(c *gin.Context) {
	var in admin.RecordAttemptInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	in.QuizID = c.Param("id")
	response.FromResult(c, h.quizzes.RecordAttempt(c.Request.Context(), in))
}

func (h *QuizHandler) GetUserAttempts(c *gin.Context) {
	response.FromResult(c, h.quizzes.GetUserAttempts(c.Request.Context(), c.Param("id"), intQuery(c, "limit")))
}

func (h *QuizHandler) GetQuizAnalytics(c *gin.Context) {
	response.FromResult(c, h.quizzes.GetQuizAnalytics(c.Request.Context(), c.Param("id")))
}
