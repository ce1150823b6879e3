package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushire/campushire/internal/services"
	"github.com/campushire/campushire/internal/utils"
)

type InterviewHandler struct {
	svc services.InterviewService
}

func NewInterviewHandler(svc services.InterviewService) *InterviewHandler {
	return &InterviewHandler{svc: svc}
}

type StartInterviewRequest struct {
	StudentID uint  `json:"student_id" binding:"required"`
	SessionID *uint `json:"session_id"`
}

func (h *InterviewHandler) Start(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req StartInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "InterviewHandler.Start", "invalid request body", err))
		return
	}

	iv, err := h.svc.Start(c.Request.Context(), req.StudentID, userID, req.SessionID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, iv)
}

func (h *InterviewHandler) Get(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	iv, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, iv)
}

func (h *InterviewHandler) ListByStudent(c *gin.Context) {
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

type AddAnswerRequest struct {
	QuestionID   *uint  `json:"question_id"`
	QuestionText string `json:"question_text"`
	Score        int    `json:"score"`
	Remarks      string `json:"remarks"`
}

func (h *InterviewHandler) AddAnswer(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var req AddAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "InterviewHandler.AddAnswer", "invalid request body", err))
		return
	}

	answer, err := h.svc.AddAnswer(c.Request.Context(), id, req.QuestionID, req.QuestionText, req.Score, req.Remarks)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, answer)
}

func (h *InterviewHandler) ListAnswers(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	rows, err := h.svc.ListAnswers(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

type CompleteInterviewRequest struct {
	Verdict *string `json:"verdict"`
}

func (h *InterviewHandler) Complete(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var req CompleteInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		writeError(c, utils.E(utils.CodeInvalidArgument, "InterviewHandler.Complete", "invalid request body", err))
		return
	}

	iv, err := h.svc.Complete(c.Request.Context(), id, req.Verdict)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, iv)
}

func (h *InterviewHandler) Cancel(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	iv, err := h.svc.Cancel(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, iv)
}

type SetVerdictRequest struct {
	Verdict string `json:"verdict" binding:"required"`
}

func (h *InterviewHandler) SetVerdict(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var req SetVerdictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "InterviewHandler.SetVerdict", "invalid request body", err))
		return
	}

	iv, err := h.svc.SetVerdict(c.Request.Context(), id, req.Verdict)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, iv)
}
