package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/oumacavin/smartlearn-backend/internal/data/repos"
	"github.com/oumacavin/smartlearn-backend/internal/http/middleware"
	"github.com/oumacavin/smartlearn-backend/internal/http/response"
	"github.com/oumacavin/smartlearn-backend/internal/pkg/storeerr"
	"github.com/oumacavin/smartlearn-backend/internal/platform/logger"
)

type AuthHandler struct {
	log      *logger.Logger
	users    repos.UserRepo
	auth     *middleware.AuthMiddleware
	tokenTTL time.Duration
}

func NewAuthHandler(log *logger.Logger, users repos.UserRepo, auth *middleware.AuthMiddleware, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		log:      log.With("handler", "AuthHandler"),
		users:    users,
		auth:     auth,
		tokenTTL: tokenTTL,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	user, err := h.users.GetByUsername(c.Request.Context(), nil, req.Username)
	if err != nil {
		if !storeerr.IsNotFound(err) {
			h.log.Error("Login lookup failed", "username", req.Username, "error", err)
		}
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	if !user.IsActive {
		response.RespondError(c, http.StatusForbidden, "forbidden", nil)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	token, err := h.auth.IssueToken(user.ID.String(), user.Role, h.tokenTTL)
	if err != nil {
		h.log.Error("Login token issue failed", "username", req.Username, "error", err)
		response.RespondError(c, http.StatusInternalServerError, "token_issue_failed", err)
		return
	}
	response.RespondOK(c, gin.H{
		"access_token": token,
		"expires_in":   int(h.tokenTTL.Seconds()),
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
		},
	})
}
