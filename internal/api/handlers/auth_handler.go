package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/campushire/campushire/internal/services"
	"github.com/campushire/campushire/internal/utils"
)

type AuthHandler struct {
	svc services.AuthService
}

func NewAuthHandler(svc services.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type TokenRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Token is called by the OAuth gateway after it has verified the identity
// with the external provider; the shared gateway key keeps the endpoint off
// the public surface.
func (h *AuthHandler) Token(c *gin.Context) {
	if key := os.Getenv("AUTH_GATEWAY_KEY"); key == "" || c.GetHeader("X-Auth-Gateway-Key") != key {
		writeError(c, utils.E(utils.CodeUnauthorized, "AuthHandler.Token", "invalid gateway key", nil))
		return
	}

	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AuthHandler.Token", "invalid request body", err))
		return
	}

	pair, err := h.svc.IssueTokens(c.Request.Context(), req.Email)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

type RefreshRequest struct {
	UserID       uint   `json:"user_id" binding:"required"`
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AuthHandler.Refresh", "invalid request body", err))
		return
	}

	pair, err := h.svc.Refresh(c.Request.Context(), req.UserID, req.RefreshToken)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}
