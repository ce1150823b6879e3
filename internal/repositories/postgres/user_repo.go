package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/campushire/campushire/internal/models"
	"github.com/campushire/campushire/internal/utils"
)

type AuthorizedUserRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.AuthorizedUser, error)
	GetByID(ctx context.Context, id uint) (*models.AuthorizedUser, error)
}

type authorizedUserRepo struct {
	db *gorm.DB
}

func NewAuthorizedUserRepo(db *gorm.DB) AuthorizedUserRepository {
	return &authorizedUserRepo{db: db}
}

func (r *authorizedUserRepo) GetByEmail(ctx context.Context, email string) (*models.AuthorizedUser, error) {
	var u models.AuthorizedUser
	err := r.db.WithContext(ctx).Where("email = ?", email).Take(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &u, err
}

func (r *authorizedUserRepo) GetByID(ctx context.Context, id uint) (*models.AuthorizedUser, error) {
	var u models.AuthorizedUser
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &u, err
}
