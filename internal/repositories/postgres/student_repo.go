package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/campushire/campushire/internal/models"
	"github.com/campushire/campushire/internal/utils"
)

type StudentRepository interface {
	Create(ctx context.Context, s *models.Student) error
	GetByID(ctx context.Context, id uint) (*models.Student, error)
	List(ctx context.Context, search string, limit int) ([]models.Student, error)
}

type studentRepo struct {
	db *gorm.DB
}

func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

func (r *studentRepo) Create(ctx context.Context, s *models.Student) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *studentRepo) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	var s models.Student
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &s, err
}

func (r *studentRepo) List(ctx context.Context, search string, limit int) ([]models.Student, error) {
	if limit <= 0 {
		limit = 100
	}

	q := r.db.WithContext(ctx).Model(&models.Student{})
	if search != "" {
		pat := "%" + search + "%"
		q = q.Where("name LIKE ? OR email LIKE ? OR zeta_id LIKE ?", pat, pat, pat)
	}

	var rows []models.Student
	err := q.Order("created_at DESC").Limit(limit).Find(&rows).Error
	return rows, err
}
