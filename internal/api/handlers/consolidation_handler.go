package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campushire/campushire/internal/services"
	"github.com/campushire/campushire/internal/utils"
)

type ConsolidationHandler struct {
	svc      services.ConsolidationService
	backfill services.BackfillService
}

func NewConsolidationHandler(svc services.ConsolidationService, backfill services.BackfillService) *ConsolidationHandler {
	return &ConsolidationHandler{svc: svc, backfill: backfill}
}

func (h *ConsolidationHandler) Recompute(c *gin.Context) {
	count, err := h.svc.Recompute(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"upserted": count})
}

func (h *ConsolidationHandler) Board(c *gin.Context) {
	sessionID, err := strconv.ParseUint(c.Query("session_id"), 10, 64)
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ConsolidationHandler.Board", "session_id query parameter is required", err))
		return
	}

	rows, err := h.svc.Board(c.Request.Context(), uint(sessionID))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *ConsolidationHandler) Get(c *gin.Context) {
	studentID, ok := paramUint(c, "student_id")
	if !ok {
		return
	}
	sessionID, ok := paramUint(c, "session_id")
	if !ok {
		return
	}

	rec, err := h.svc.Get(c.Request.Context(), studentID, sessionID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *ConsolidationHandler) Backfill(c *gin.Context) {
	res, err := h.backfill.Backfill(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
