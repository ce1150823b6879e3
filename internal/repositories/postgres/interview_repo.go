package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/campushire/campushire/internal/models"
	"github.com/campushire/campushire/internal/utils"
)

// ConsolidationSource is one interview row joined with its student,
// interviewer and session, in the shape the aggregator consumes. Left joins
// keep the row even when a reference is dangling; the nullable fields record
// that.
type ConsolidationSource struct {
	InterviewID     uint
	StudentID       uint
	SessionID       *uint
	InterviewerID   uint
	InterviewerName *string
	Verdict         *string
	StudentName     *string
	StudentEmail    *string
	ZetaID          *string
	SessionName     *string
	CreatedAt       time.Time
}

type InterviewRepository interface {
	Create(ctx context.Context, iv *models.Interview) error
	GetByID(ctx context.Context, id uint) (*models.Interview, error)
	ListByStudent(ctx context.Context, studentID uint) ([]models.Interview, error)
	// Transition moves an in_progress interview to a terminal status,
	// optionally setting the verdict in the same statement. Returns false when
	// the row was not in_progress anymore (or does not exist).
	Transition(ctx context.Context, id uint, to models.InterviewStatus, verdict *string) (bool, error)
	SetVerdict(ctx context.Context, id uint, verdict string) error
	// RoundNumber ranks an interview within its (student, session) group by
	// (created_at, id). Concurrent starts can race a plain row count; ranking
	// the row itself keeps the number stable and matches how the backfill
	// numbers rounds.
	RoundNumber(ctx context.Context, iv *models.Interview) (int64, error)
	AddAnswer(ctx context.Context, q *models.InterviewQuestion) error
	ListAnswers(ctx context.Context, interviewID uint) ([]models.InterviewQuestion, error)
	ListConsolidationSource(ctx context.Context) ([]ConsolidationSource, error)
}

type interviewRepo struct {
	db *gorm.DB
}

func NewInterviewRepo(db *gorm.DB) InterviewRepository {
	return &interviewRepo{db: db}
}

func (r *interviewRepo) Create(ctx context.Context, iv *models.Interview) error {
	return r.db.WithContext(ctx).Create(iv).Error
}

func (r *interviewRepo) GetByID(ctx context.Context, id uint) (*models.Interview, error) {
	var iv models.Interview
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&iv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &iv, err
}

func (r *interviewRepo) ListByStudent(ctx context.Context, studentID uint) ([]models.Interview, error) {
	var rows []models.Interview
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *interviewRepo) Transition(ctx context.Context, id uint, to models.InterviewStatus, verdict *string) (bool, error) {
	updates := map[string]any{"status": to, "updated_at": time.Now().UTC()}
	if verdict != nil {
		updates["verdict"] = *verdict
	}

	// Guarding on the current status makes the transition race-safe: two
	// concurrent completes can't both win.
	res := r.db.WithContext(ctx).
		Model(&models.Interview{}).
		Where("id = ? AND status = ?", id, models.InterviewInProgress).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *interviewRepo) SetVerdict(ctx context.Context, id uint, verdict string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Interview{}).
		Where("id = ?", id).
		Updates(map[string]any{"verdict": verdict, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *interviewRepo) RoundNumber(ctx context.Context, iv *models.Interview) (int64, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Interview{}).
		Where("student_id = ?", iv.StudentID)
	if iv.SessionID == nil {
		q = q.Where("session_id IS NULL")
	} else {
		q = q.Where("session_id = ?", *iv.SessionID)
	}
	q = q.Where("created_at < ? OR (created_at = ? AND id <= ?)", iv.CreatedAt, iv.CreatedAt, iv.ID)

	var count int64
	err := q.Count(&count).Error
	return count, err
}

func (r *interviewRepo) AddAnswer(ctx context.Context, q *models.InterviewQuestion) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(q).Error; err != nil {
			return err
		}
		return tx.Model(&models.Interview{}).
			Where("id = ?", q.InterviewID).
			Updates(map[string]any{
				"total_score": gorm.Expr("total_score + ?", q.Score),
				"updated_at":  time.Now().UTC(),
			}).Error
	})
}

func (r *interviewRepo) ListAnswers(ctx context.Context, interviewID uint) ([]models.InterviewQuestion, error) {
	var rows []models.InterviewQuestion
	err := r.db.WithContext(ctx).
		Where("interview_id = ?", interviewID).
		Order("answered_at ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *interviewRepo) ListConsolidationSource(ctx context.Context) ([]ConsolidationSource, error) {
	var rows []ConsolidationSource
	err := r.db.WithContext(ctx).
		Table("interviews AS i").
		Select(`i.id AS interview_id,
			i.student_id,
			i.session_id,
			i.interviewer_id,
			u.name AS interviewer_name,
			i.verdict,
			s.name AS student_name,
			s.email AS student_email,
			s.zeta_id,
			x.name AS session_name,
			i.created_at`).
		Joins("LEFT JOIN authorized_users AS u ON u.id = i.interviewer_id").
		Joins("LEFT JOIN students AS s ON s.id = i.student_id").
		Joins("LEFT JOIN interview_sessions AS x ON x.id = i.session_id").
		Order("i.created_at ASC, i.id ASC").
		Scan(&rows).Error
	return rows, err
}
