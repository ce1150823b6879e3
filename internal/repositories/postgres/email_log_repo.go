package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/campushire/campushire/internal/models"
)

type EmailLogRepository interface {
	Create(ctx context.Context, e *models.EmailLog) error
	ListByConsolidation(ctx context.Context, consolidationID uint) ([]models.EmailLog, error)
}

type emailLogRepo struct {
	db *gorm.DB
}

func NewEmailLogRepo(db *gorm.DB) EmailLogRepository {
	return &emailLogRepo{db: db}
}

func (r *emailLogRepo) Create(ctx context.Context, e *models.EmailLog) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *emailLogRepo) ListByConsolidation(ctx context.Context, consolidationID uint) ([]models.EmailLog, error) {
	var rows []models.EmailLog
	err := r.db.WithContext(ctx).
		Where("consolidation_id = ?", consolidationID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}
