package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushire/campushire/internal/models"
	"github.com/campushire/campushire/internal/services"
	"github.com/campushire/campushire/internal/utils"
)

type QuestionHandler struct {
	svc services.QuestionService
}

func NewQuestionHandler(svc services.QuestionService) *QuestionHandler {
	return &QuestionHandler{svc: svc}
}

type CreateQuestionRequest struct {
	Text       string `json:"text" binding:"required"`
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
	MaxScore   int    `json:"max_score"`
}

func (h *QuestionHandler) Create(c *gin.Context) {
	var req CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "QuestionHandler.Create", "invalid request body", err))
		return
	}

	q := &models.QuestionBankItem{
		Text:       req.Text,
		Category:   req.Category,
		Difficulty: req.Difficulty,
		MaxScore:   req.MaxScore,
		Active:     true,
	}
	if err := h.svc.Create(c.Request.Context(), q); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, q)
}

func (h *QuestionHandler) List(c *gin.Context) {
	activeOnly := c.Query("all") == ""

	rows, err := h.svc.List(c.Request.Context(), c.Query("category"), activeOnly)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
