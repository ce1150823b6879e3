package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/campushire/campushire/internal/models"
	"github.com/campushire/campushire/internal/utils"
)

type ConsolidationRepository interface {
	// EnsureSchema makes sure the consolidation table and its unique index
	// exist. Idempotent; the aggregator calls it before every run.
	EnsureSchema(ctx context.Context) error
	Upsert(ctx context.Context, rec *models.ConsolidationRecord) error
	Get(ctx context.Context, studentID, sessionID uint) (*models.ConsolidationRecord, error)
	GetByID(ctx context.Context, id uint) (*models.ConsolidationRecord, error)
	ListBySession(ctx context.Context, sessionID uint) ([]models.ConsolidationRecord, error)
	ListAll(ctx context.Context) ([]models.ConsolidationRecord, error)
}

type consolidationRepo struct {
	db *gorm.DB
}

func NewConsolidationRepo(db *gorm.DB) ConsolidationRepository {
	return &consolidationRepo{db: db}
}

func (r *consolidationRepo) EnsureSchema(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&models.ConsolidationRecord{})
}

func (r *consolidationRepo) Upsert(ctx context.Context, rec *models.ConsolidationRecord) error {
	// Keyed on (student_id, session_id): collisions update every derived
	// column and bump updated_at, never insert a duplicate. created_at is
	// deliberately left out of the update set.
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "student_id"}, {Name: "session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"student_name", "student_email", "zeta_id", "session_name",
				"interview_ids", "interviewer_ids", "interviewer_names", "verdicts",
				"status", "last_interview_at", "updated_at",
			}),
		}).
		Create(rec).Error
}

func (r *consolidationRepo) Get(ctx context.Context, studentID, sessionID uint) (*models.ConsolidationRecord, error) {
	var rec models.ConsolidationRecord
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND session_id = ?", studentID, sessionID).
		Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &rec, err
}

func (r *consolidationRepo) GetByID(ctx context.Context, id uint) (*models.ConsolidationRecord, error) {
	var rec models.ConsolidationRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &rec, err
}

func (r *consolidationRepo) ListBySession(ctx context.Context, sessionID uint) ([]models.ConsolidationRecord, error) {
	var rows []models.ConsolidationRecord
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("student_id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *consolidationRepo) ListAll(ctx context.Context) ([]models.ConsolidationRecord, error) {
	var rows []models.ConsolidationRecord
	err := r.db.WithContext(ctx).
		Order("session_id ASC, student_id ASC").
		Find(&rows).Error
	return rows, err
}
