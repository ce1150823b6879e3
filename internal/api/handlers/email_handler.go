package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campushire/campushire/internal/services"
	"github.com/campushire/campushire/internal/utils"
)

type EmailHandler struct {
	svc services.EmailService
}

func NewEmailHandler(svc services.EmailService) *EmailHandler {
	return &EmailHandler{svc: svc}
}

type RecordEmailRequest struct {
	ConsolidationID uint       `json:"consolidation_id" binding:"required"`
	Recipient       string     `json:"recipient" binding:"required,email"`
	Subject         string     `json:"subject"`
	Body            string     `json:"body"`
	SentAt          *time.Time `json:"sent_at"`
}

func (h *EmailHandler) Record(c *gin.Context) {
	var req RecordEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "EmailHandler.Record", "invalid request body", err))
		return
	}

	entry, err := h.svc.Record(c.Request.Context(), req.ConsolidationID, req.Recipient, req.Subject, req.Body, req.SentAt)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *EmailHandler) ListByConsolidation(c *gin.Context) {
	id, err := strconv.ParseUint(c.Query("consolidation_id"), 10, 64)
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "EmailHandler.ListByConsolidation", "consolidation_id query param is required", err))
		return
	}

	rows, err := h.svc.ListByConsolidation(c.Request.Context(), uint(id))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
