package services

import (
	"context"
	"strings"

	"github.com/campushire/campushire/internal/models"
	pgrepo "github.com/campushire/campushire/internal/repositories/postgres"
	"github.com/campushire/campushire/internal/utils"
)

type QuestionService interface {
	Create(ctx context.Context, q *models.QuestionBankItem) error
	List(ctx context.Context, category string, activeOnly bool) ([]models.QuestionBankItem, error)
}

type questionService struct {
	questions pgrepo.QuestionRepository
}

func NewQuestionService(questions pgrepo.QuestionRepository) QuestionService {
	return &questionService{questions: questions}
}

func (s *questionService) Create(ctx context.Context, q *models.QuestionBankItem) error {
	const op = "QuestionService.Create"

	if q == nil || strings.TrimSpace(q.Text) == "" {
		return utils.E(utils.CodeInvalidArgument, op, "text is required", nil)
	}
	q.Text = strings.TrimSpace(q.Text)
	if q.MaxScore <= 0 {
		q.MaxScore = 10
	}

	if err := s.questions.Create(ctx, q); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to create question", err)
	}
	return nil
}

func (s *questionService) List(ctx context.Context, category string, activeOnly bool) ([]models.QuestionBankItem, error) {
	const op = "QuestionService.List"

	rows, err := s.questions.List(ctx, strings.TrimSpace(category), activeOnly)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list questions", err)
	}
	return rows, nil
}
