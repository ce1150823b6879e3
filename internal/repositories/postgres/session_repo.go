package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/campushire/campushire/internal/models"
	"github.com/campushire/campushire/internal/utils"
)

type SessionRepository interface {
	Create(ctx context.Context, s *models.InterviewSession) error
	GetByID(ctx context.Context, id uint) (*models.InterviewSession, error)
	List(ctx context.Context) ([]models.InterviewSession, error)
	SetStatus(ctx context.Context, id uint, status models.SessionStatus) error
}

type sessionRepo struct {
	db *gorm.DB
}

func NewSessionRepo(db *gorm.DB) SessionRepository {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) Create(ctx context.Context, s *models.InterviewSession) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *sessionRepo) GetByID(ctx context.Context, id uint) (*models.InterviewSession, error) {
	var s models.InterviewSession
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &s, err
}

func (r *sessionRepo) List(ctx context.Context) ([]models.InterviewSession, error) {
	var rows []models.InterviewSession
	err := r.db.WithContext(ctx).Order("scheduled_at DESC, id DESC").Find(&rows).Error
	return rows, err
}

func (r *sessionRepo) SetStatus(ctx context.Context, id uint, status models.SessionStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.InterviewSession{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}
