package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oumacavin/smartlearn-backend/internal/admin"
	"github.com/oumacavin/smartlearn-backend/internal/data/repos"
	"github.com/oumacavin/smartlearn-backend/internal/domain"
	"github.com/oumacavin/smartlearn-backend/internal/http/response"
	"github.com/oumacavin/smartlearn-backend/internal/platform/logger"
)

type ContentHandler struct {
	log     *logger.Logger
	content *admin.ContentStore
}

func NewContentHandler(log *logger.Logger, content *admin.ContentStore) *ContentHandler {
	return &ContentHandler{
		log:     log.With("handler", "ContentHandler"),
		content: content,
	}
}

func (h *ContentHandler) CreateCourse(c *gin.Context) {
	var in admin.CreateCourseInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	response.FromResult(c, h.content.CreateCourse(c.Request.Context(), in))
}

func (h *ContentHandler) GetCourse(c *gin.Context) {
	response.FromResult(c, h.content.GetCourse(c.Request.Context(), c.Param("id")))
}

func (h *ContentHandler) SearchCourses(c *gin.Context) {
	filter := repos.CourseSearch{
		Query: c.Query("q"),
		Limit: intQuery(c, "limit"),
	}
	if published, ok := boolQuery(c, "published"); ok {
		filter.Published = &published
	}
	response.FromResult(c, h.content.SearchCourses(c.Request.Context(), filter))
}

func (h *ContentHandler) UpdateCourse(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	response.FromResult(c, h.content.UpdateCourse(c.Request.Context(), c.Param("id"), fields))
}

func (h *ContentHandler) DeleteCourse(c *gin.Context) {
	response.FromResult(c, h.content.DeleteCourse(c.Request.Context(), c.Param("id")))
}

func (h *ContentHandler) PublishCourse(c *gin.Context) {
	response.FromResult(c, h.content.PublishCourse(c.Request.Context(), c.Param("id")))
}

func (h *ContentHandler) CreateLesson(c *gin.Context) {
	var in admin.CreateLessonInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	response.FromResult(c, h.content.CreateLesson(c.Request.Context(), in))
}

func (h *ContentHandler) GetCourseLessons(c *gin.Context) {
	response.FromResult(c, h.content.GetCourseLessons(c.Request.Context(), c.Param("id")))
}

func (h *ContentHandler) CreateConcept(c *gin.Context) {
	var in admin.CreateConceptInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	response.FromResult(c, h.content.CreateConcept(c.Request.Context(), in))
}

func (h *ContentHandler) GetConcept(c *gin.Context) {
	response.FromResult(c, h.content.GetConcept(c.Request.Context(), c.Param("id")))
}

func (h *ContentHandler) LinkConcepts(c *gin.Context) {
	var rel domain.ConceptRelationship
	if err := c.ShouldBindJSON(&rel); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	response.FromResult(c, h.content.LinkConcepts(c.Request.Context(), rel))
}

func (h *ContentHandler) GetConceptRelationships(c *gin.Context) {
	response.FromResult(c, h.content.GetConceptRelationships(c.Request.Context(), c.Param("id")))
}

func (h *ContentHandler) DeleteConcept(c *gin.Context) {
	response.FromResult(c, h.content.DeleteConcept(c.Request.Context(), c.Param("id")))
}

func intQuery(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}

func boolQuery(c *gin.Context, key string) (bool, bool) {
	raw := c.Query(key)
	if raw == "" {
		return false, false
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return b, true
}
