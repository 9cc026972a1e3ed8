package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oumacavin/smartlearn-backend/internal/admin"
	"github.com/oumacavin/smartlearn-backend/internal/http/response"
	"github.com/oumacavin/smartlearn-backend/internal/platform/logger"
)

type ActivityHandler struct {
	log      *logger.Logger
	activity *admin.ActivityStore
}

func NewActivityHandler(log *logger.Logger, activity *admin.ActivityStore) *ActivityHandler {
	return &ActivityHandler{
		log:      log.With("handler", "ActivityHandler"),
		activity: activity,
	}
}

func (h *ActivityHandler) RecordActivity(c *gin.Context) {
	var in admin.RecordActivityInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	response.FromResult(c, h.activity.RecordActivity(c.Request.Context(), in))
}

func (h *ActivityHandler) GetDashboardStats(c *gin.Context) {
	response.FromResult(c, h.activity.GetDashboardStats(c.Request.Context()))
}

func (h *ActivityHandler) GetRecentActivity(c *gin.Context) {
	response.FromResult(c, h.activity.GetRecentActivity(c.Request.Context(), intQuery(c, "limit")))
}
