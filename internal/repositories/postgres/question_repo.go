package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/campushire/campushire/internal/models"
	"github.com/campushire/campushire/internal/utils"
)

type QuestionRepository interface {
	Create(ctx context.Context, q *models.QuestionBankItem) error
	GetByID(ctx context.Context, id uint) (*models.QuestionBankItem, error)
	List(ctx context.Context, category string, activeOnly bool) ([]models.QuestionBankItem, error)
}

type questionRepo struct {
	db *gorm.DB
}

func NewQuestionRepo(db *gorm.DB) QuestionRepository {
	return &questionRepo{db: db}
}

func (r *questionRepo) Create(ctx context.Context, q *models.QuestionBankItem) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *questionRepo) GetByID(ctx context.Context, id uint) (*models.QuestionBankItem, error) {
	var q models.QuestionBankItem
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&q).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &q, err
}

func (r *questionRepo) List(ctx context.Context, category string, activeOnly bool) ([]models.QuestionBankItem, error) {
	q := r.db.WithContext(ctx).Model(&models.QuestionBankItem{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if activeOnly {
		q = q.Where("active = ?", true)
	}

	var rows []models.QuestionBankItem
	err := q.Order("id ASC").Find(&rows).Error
	return rows, err
}
