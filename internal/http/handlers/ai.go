package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oumacavin/smartlearn-backend/internal/admin"
	"github.com/oumacavin/smartlearn-backend/internal/http/response"
	"github.com/oumacavin/smartlearn-backend/internal/platform/logger"
)

type AIHandler struct {
	log *logger.Logger
	ai  *admin.AIStore
}

func NewAIHandler(log *logger.Logger, ai *admin.AIStore) *AIHandler {
	return &AIHandler{
		log: log.With("handler", "AIHandler"),
		ai:  ai,
	}
}

func (h *AIHandler) GetRecommendations(c *gin.Context) {
	response.FromResult(c, h.ai.GetRecommendations(c.Request.Context(), c.Param("id"), intQuery(c, "limit")))
}

type recordRecommendationRequest struct {
	UserID    string `json:"user_id"`
	ConceptID string `json:"concept_id"`
}

func (h *AIHandler) RecordRecommendation(c *gin.Context) {
	var req recordRecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	response.FromResult(c, h.ai.RecordRecommendation(c.Request.Context(), req.UserID, req.ConceptID))
}

func (h *AIHandler) GetAIStats(c *gin.Context) {
	response.FromResult(c, h.ai.GetAIStats(c.Request.Context()))
}
