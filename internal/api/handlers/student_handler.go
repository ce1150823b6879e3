package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campushire/campushire/internal/models"
	"github.com/campushire/campushire/internal/services"
	"github.com/campushire/campushire/internal/utils"
)

type StudentHandler struct {
	svc services.StudentService
}

func NewStudentHandler(svc services.StudentService) *StudentHandler {
	return &StudentHandler{svc: svc}
}

type RegisterStudentRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	ZetaID  string `json:"zeta_id"`
	College string `json:"college"`
}

func (h *StudentHandler) Register(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req RegisterStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "StudentHandler.Register", "invalid request body", err))
		return
	}

	student := &models.Student{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		ZetaID:       req.ZetaID,
		College:      req.College,
		RegisteredBy: &userID,
	}
	if err := h.svc.Register(c.Request.Context(), student); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, student)
}

func (h *StudentHandler) Get(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	student, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, student)
}

func (h *StudentHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	rows, err := h.svc.List(c.Request.Context(), c.Query("search"), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
