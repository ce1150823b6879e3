package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushire/campushire/internal/services"
)

type ActivityHandler struct {
	svc services.ActivityService
}

func NewActivityHandler(svc services.ActivityService) *ActivityHandler {
	return &ActivityHandler{svc: svc}
}

func (h *ActivityHandler) ListByStudent(c *gin.Context) {
	studentID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	rows, err := h.svc.ListByStudent(c.Request.Context(), studentID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
