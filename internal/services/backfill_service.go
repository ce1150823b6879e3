package services

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/campushire/campushire/internal/models"
	pgrepo "github.com/campushire/campushire/internal/repositories/postgres"
	"github.com/campushire/campushire/internal/utils"
)

// BackfillResult reports rows inserted per activity type for one run.
type BackfillResult struct {
	RoundStarted       int `json:"round_started"`
	InterviewCompleted int `json:"interview_completed"`
	InterviewCancelled int `json:"interview_cancelled"`
	VerdictGiven       int `json:"verdict_given"`
	EmailSent          int `json:"email_sent"`
	StatusUpdated      int `json:"status_updated"`
}

func (r BackfillResult) Total() int {
	return r.RoundStarted + r.InterviewCompleted + r.InterviewCancelled +
		r.VerdictGiven + r.EmailSent + r.StatusUpdated
}

type BackfillService interface {
	// Backfill derives activity log entries from interviews, consolidation
	// records and email logs. Safe to run any number of times against any
	// database state; a second consecutive run inserts zero rows.
	Backfill(ctx context.Context) (BackfillResult, error)
}

// backfillService works on the raw *gorm.DB rather than the repositories: the
// six rules must commit or roll back as one transaction across four tables,
// and that boundary belongs to the engine, not to any single repository.
type backfillService struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewBackfillService(db *gorm.DB, log *logrus.Logger) BackfillService {
	if log == nil {
		log = logrus.New()
	}
	return &backfillService{db: db, log: log}
}

func (s *backfillService) Backfill(ctx context.Context) (BackfillResult, error) {
	const op = "BackfillService.Backfill"

	var res BackfillResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := pgrepo.NewActivityLogRepo(tx)

		var interviews []models.Interview
		if err := tx.Order("created_at ASC, id ASC").Find(&interviews).Error; err != nil {
			return err
		}

		if err := s.backfillRounds(ctx, repo, interviews, &res); err != nil {
			return err
		}
		if err := s.backfillTerminal(ctx, repo, interviews, &res); err != nil {
			return err
		}
		if err := s.backfillVerdicts(ctx, repo, interviews, &res); err != nil {
			return err
		}
		if err := s.backfillEmails(ctx, tx, repo, &res); err != nil {
			return err
		}
		return s.backfillStatuses(ctx, tx, repo, &res)
	})
	if err != nil {
		return BackfillResult{}, utils.E(utils.CodeInternal, op, "backfill rolled back", err)
	}

	s.log.WithFields(logrus.Fields{
		"round_started":       res.RoundStarted,
		"interview_completed": res.InterviewCompleted,
		"interview_cancelled": res.InterviewCancelled,
		"verdict_given":       res.VerdictGiven,
		"email_sent":          res.EmailSent,
		"status_updated":      res.StatusUpdated,
	}).Info("activity backfill finished")
	return res, nil
}

// backfillRounds numbers every started interview 1..N within its
// (student, session) group, in creation order.
func (s *backfillService) backfillRounds(ctx context.Context, repo pgrepo.ActivityLogRepository, interviews []models.Interview, res *BackfillResult) error {
	rounds := make(map[groupKey]int)
	for i := range interviews {
		iv := &interviews[i]
		switch iv.Status {
		case models.InterviewInProgress, models.InterviewCompleted, models.InterviewCancelled:
		default:
			continue
		}

		key := groupKey{studentID: iv.StudentID, sessionID: sessionOrZero(iv.SessionID)}
		rounds[key]++

		inserted, err := repo.InsertIfAbsent(ctx, roundStartedEntry(iv, rounds[key]))
		if err != nil {
			return err
		}
		if inserted {
			res.RoundStarted++
		}
	}
	return nil
}

func (s *backfillService) backfillTerminal(ctx context.Context, repo pgrepo.ActivityLogRepository, interviews []models.Interview, res *BackfillResult) error {
	for i := range interviews {
		iv := &interviews[i]

		var entry *models.StudentActivityLog
		switch iv.Status {
		case models.InterviewCompleted:
			entry = interviewCompletedEntry(iv)
		case models.InterviewCancelled:
			entry = interviewCancelledEntry(iv)
		default:
			continue
		}

		inserted, err := repo.InsertIfAbsent(ctx, entry)
		if err != nil {
			return err
		}
		if inserted {
			switch iv.Status {
			case models.InterviewCompleted:
				res.InterviewCompleted++
			case models.InterviewCancelled:
				res.InterviewCancelled++
			}
		}
	}
	return nil
}

// backfillVerdicts keeps one entry per distinct verdict text per group,
// taking the most recent interview that carries that text. Iterating in
// creation order and overwriting leaves exactly that occurrence.
func (s *backfillService) backfillVerdicts(ctx context.Context, repo pgrepo.ActivityLogRepository, interviews []models.Interview, res *BackfillResult) error {
	type verdictKey struct {
		group   groupKey
		verdict string
	}
	latest := make(map[verdictKey]*models.Interview)
	order := make([]verdictKey, 0)

	for i := range interviews {
		iv := &interviews[i]
		entry := verdictGivenEntry(iv)
		if entry == nil {
			continue
		}
		key := verdictKey{
			group:   groupKey{studentID: iv.StudentID, sessionID: sessionOrZero(iv.SessionID)},
			verdict: entry.Discriminator,
		}
		if _, ok := latest[key]; !ok {
			order = append(order, key)
		}
		latest[key] = iv
	}

	for _, key := range order {
		inserted, err := repo.InsertIfAbsent(ctx, verdictGivenEntry(latest[key]))
		if err != nil {
			return err
		}
		if inserted {
			res.VerdictGiven++
		}
	}
	return nil
}

func (s *backfillService) backfillEmails(ctx context.Context, tx *gorm.DB, repo pgrepo.ActivityLogRepository, res *BackfillResult) error {
	type emailRow struct {
		models.EmailLog
		StudentID uint
		SessionID uint
	}

	var rows []emailRow
	err := tx.Table("email_logs AS e").
		Select("e.*, c.student_id, c.session_id").
		Joins("JOIN interview_consolidation AS c ON c.id = e.consolidation_id").
		Order("e.created_at ASC, e.id ASC").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	for i := range rows {
		row := &rows[i]
		inserted, err := repo.InsertIfAbsent(ctx, emailSentEntry(&row.EmailLog, row.StudentID, row.SessionID))
		if err != nil {
			return err
		}
		if inserted {
			res.EmailSent++
		}
	}
	return nil
}

func (s *backfillService) backfillStatuses(ctx context.Context, tx *gorm.DB, repo pgrepo.ActivityLogRepository, res *BackfillResult) error {
	var recs []models.ConsolidationRecord
	if err := tx.Order("session_id ASC, student_id ASC").Find(&recs).Error; err != nil {
		return err
	}

	for i := range recs {
		entry := statusUpdatedEntry(&recs[i])
		if entry == nil {
			continue
		}
		inserted, err := repo.InsertIfAbsent(ctx, entry)
		if err != nil {
			return err
		}
		if inserted {
			res.StatusUpdated++
		}
	}
	return nil
}
