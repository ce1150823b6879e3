package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/campushire/campushire/internal/models"
)

type RefreshTokenRepository interface {
	Create(ctx context.Context, t *models.RefreshToken) error
	ActiveByUser(ctx context.Context, userID uint) ([]models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
}

type refreshTokenRepo struct {
	db *gorm.DB
}

func NewRefreshTokenRepo(db *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepo{db: db}
}

func (r *refreshTokenRepo) Create(ctx context.Context, t *models.RefreshToken) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *refreshTokenRepo) ActiveByUser(ctx context.Context, userID uint) ([]models.RefreshToken, error) {
	var rows []models.RefreshToken
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND revoked = ? AND expires_at > ?", userID, false, time.Now().UTC()).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *refreshTokenRepo) Revoke(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.RefreshToken{}).
		Where("id = ?", id).
		Update("revoked", true).Error
}
