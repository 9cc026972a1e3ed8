package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oumacavin/smartlearn-backend/internal/admin"
	"github.com/oumacavin/smartlearn-backend/internal/data/repos"
	"github.com/oumacavin/smartlearn-backend/internal/http/response"
	"github.com/oumacavin/smartlearn-backend/internal/platform/logger"
)

type UserHandler struct {
	log   *logger.Logger
	users *admin.UserStore
}

func NewUserHandler(log *logger.Logger, users *admin.UserStore) *UserHandler {
	return &UserHandler{
		log:   log.With("handler", "UserHandler"),
		users: users,
	}
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var in admin.CreateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	response.FromResult(c, h.users.CreateUser(c.Request.Context(), in))
}

func (h *UserHandler) GetUser(c *gin.Context) {
	response.FromResult(c, h.users.GetUser(c.Request.Context(), c.Param("id")))
}

func (h *UserHandler) SearchUsers(c *gin.Context) {
	filter := repos.UserSearch{
		Query: c.Query("q"),
		Role:  c.Query("role"),
		Limit: intQuery(c, "limit"),
	}
	if active, ok := boolQuery(c, "is_active"); ok {
		filter.IsActive = &active
	}
	response.FromResult(c, h.users.SearchUsers(c.Request.Context(), filter))
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	response.FromResult(c, h.users.UpdateUser(c.Request.Context(), c.Param("id"), fields))
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	response.FromResult(c, h.users.DeleteUser(c.Request.Context(), c.Param("id")))
}

func (h *UserHandler) SuspendUser(c *gin.Context) {
	response.FromResult(c, h.users.SuspendUser(c.Request.Context(), c.Param("id")))
}

func (h *UserHandler) ActivateUser(c *gin.Context) {
	response.FromResult(c, h.users.ActivateUser(c.Request.Context(), c.Param("id")))
}

type bulkActionRequest struct {
	Action  string   `json:"action"`
	UserIDs []string `json:"user_ids"`
}

func (h *UserHandler) BulkAdminAction(c *gin.Context) {
	var req bulkActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	response.FromResult(c, h.users.BulkAdminAction(c.Request.Context(), req.Action, req.UserIDs))
}
