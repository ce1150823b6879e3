package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campushire/campushire/internal/models"
	"github.com/campushire/campushire/internal/services"
	"github.com/campushire/campushire/internal/utils"
)

type SessionHandler struct {
	svc services.SessionService
}

func NewSessionHandler(svc services.SessionService) *SessionHandler {
	return &SessionHandler{svc: svc}
}

type CreateSessionRequest struct {
	Name        string     `json:"name" binding:"required"`
	Location    string     `json:"location"`
	ScheduledAt *time.Time `json:"scheduled_at"`
}

func (h *SessionHandler) Create(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "SessionHandler.Create", "invalid request body", err))
		return
	}

	sess := &models.InterviewSession{
		Name:        req.Name,
		Location:    req.Location,
		ScheduledAt: req.ScheduledAt,
	}
	if err := h.svc.Create(c.Request.Context(), sess); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sess)
}

func (h *SessionHandler) List(c *gin.Context) {
	rows, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

type SetSessionStatusRequest struct {
	Status models.SessionStatus `json:"status" binding:"required"`
}

func (h *SessionHandler) SetStatus(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var req SetSessionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "SessionHandler.SetStatus", "invalid request body", err))
		return
	}

	if err := h.svc.SetStatus(c.Request.Context(), id, req.Status); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": req.Status})
}
