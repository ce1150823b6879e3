package postgres

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/campushire/campushire/internal/models"
)

type ActivityLogRepository interface {
	// InsertIfAbsent adds the entry unless one with the same
	// (student, session, type, discriminator) already exists. Returns true
	// when a row was written. A concurrent duplicate that slips past the
	// existence check is absorbed by the unique index and reported as
	// not-inserted rather than an error.
	InsertIfAbsent(ctx context.Context, e *models.StudentActivityLog) (bool, error)
	ListByStudent(ctx context.Context, studentID uint) ([]models.StudentActivityLog, error)
}

type activityLogRepo struct {
	db *gorm.DB
}

func NewActivityLogRepo(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepo{db: db}
}

func (r *activityLogRepo) InsertIfAbsent(ctx context.Context, e *models.StudentActivityLog) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.StudentActivityLog{}).
		Where("student_id = ? AND session_id = ? AND activity_type = ? AND discriminator = ?",
			e.StudentID, e.SessionID, e.ActivityType, e.Discriminator).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *activityLogRepo) ListByStudent(ctx context.Context, studentID uint) ([]models.StudentActivityLog, error) {
	var rows []models.StudentActivityLog
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
