package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	mongorepo "github.com/campushire/campushire/internal/repositories/mongo"
	"github.com/campushire/campushire/internal/utils"
)

type AuditHandler struct {
	repo mongorepo.AuditRepository
}

func NewAuditHandler(repo mongorepo.AuditRepository) *AuditHandler {
	return &AuditHandler{repo: repo}
}

// ListByActor browses the audit trail for one staff member, newest first.
func (h *AuditHandler) ListByActor(c *gin.Context) {
	actorID, err := strconv.ParseUint(c.Query("actor_id"), 10, 64)
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AuditHandler.ListByActor", "actor_id query param is required", err))
		return
	}
	limit, _ := strconv.ParseInt(c.Query("limit"), 10, 64)

	rows, err := h.repo.ListByActor(c.Request.Context(), uint(actorID), limit)
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, "AuditHandler.ListByActor", "failed to list audit entries", err))
		return
	}
	c.JSON(http.StatusOK, rows)
}
