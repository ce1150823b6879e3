package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/campushire/campushire/internal/cache"
	"github.com/campushire/campushire/internal/models"
	pgrepo "github.com/campushire/campushire/internal/repositories/postgres"
	"github.com/campushire/campushire/internal/utils"
)

const boardCacheTTL = 60 * time.Second

type ConsolidationService interface {
	// Recompute rebuilds every consolidation row from the interviews table.
	// Full recompute each run, no delta mode; returns rows upserted.
	Recompute(ctx context.Context) (int, error)
	Board(ctx context.Context, sessionID uint) ([]models.ConsolidationRecord, error)
	Get(ctx context.Context, studentID, sessionID uint) (*models.ConsolidationRecord, error)
	GetByID(ctx context.Context, id uint) (*models.ConsolidationRecord, error)
}

type consolidationService struct {
	db         *gorm.DB
	interviews pgrepo.InterviewRepository
	records    pgrepo.ConsolidationRepository
	activities pgrepo.ActivityLogRepository
	cache      cache.Cache
	log        *logrus.Logger

	// atomic flips the failure policy: false (default) upserts best-effort,
	// logging and skipping a failed group; true wraps the run in one
	// transaction and aborts on the first failed group.
	atomic bool
}

func NewConsolidationService(
	db *gorm.DB,
	interviews pgrepo.InterviewRepository,
	records pgrepo.ConsolidationRepository,
	activities pgrepo.ActivityLogRepository,
	c cache.Cache,
	log *logrus.Logger,
	atomic bool,
) ConsolidationService {
	if log == nil {
		log = logrus.New()
	}
	return &consolidationService{
		db:         db,
		interviews: interviews,
		records:    records,
		activities: activities,
		cache:      c,
		log:        log,
		atomic:     atomic,
	}
}

type groupKey struct {
	studentID uint
	sessionID uint
}

func (s *consolidationService) Recompute(ctx context.Context) (int, error) {
	const op = "ConsolidationService.Recompute"

	if err := s.records.EnsureSchema(ctx); err != nil {
		return 0, utils.E(utils.CodeInternal, op, "failed to ensure consolidation schema", err)
	}

	src, err := s.interviews.ListConsolidationSource(ctx)
	if err != nil {
		return 0, utils.E(utils.CodeInternal, op, "failed to read interviews", err)
	}

	recs := buildConsolidationRecords(src)

	var count int
	if s.atomic {
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			repo := pgrepo.NewConsolidationRepo(tx)
			for _, rec := range recs {
				if err := repo.Upsert(ctx, rec); err != nil {
					return fmt.Errorf("group student=%d session=%d: %w", rec.StudentID, rec.SessionID, err)
				}
				count++
			}
			return nil
		})
		if err != nil {
			return 0, utils.E(utils.CodeInternal, op, "recompute aborted", err)
		}
	} else {
		for _, rec := range recs {
			if err := s.records.Upsert(ctx, rec); err != nil {
				s.log.WithError(err).WithFields(logrus.Fields{
					"student_id": rec.StudentID,
					"session_id": rec.SessionID,
				}).Error("consolidation upsert failed, skipping group")
				continue
			}
			count++
		}
	}

	s.recordStatusActivity(ctx, recs)
	s.invalidateBoards(ctx, recs)

	return count, nil
}

// buildConsolidationRecords does the grouped scan: one pass over interview
// rows already ordered by creation time, producing the parallel-array
// aggregate per (student, session). Interviews without a session group under
// session id 0.
func buildConsolidationRecords(src []pgrepo.ConsolidationSource) []*models.ConsolidationRecord {
	order := make([]groupKey, 0)
	groups := make(map[groupKey]*models.ConsolidationRecord)

	for i := range src {
		row := &src[i]
		key := groupKey{studentID: row.StudentID, sessionID: derefOrZero(row.SessionID)}

		rec, ok := groups[key]
		if !ok {
			rec = &models.ConsolidationRecord{
				StudentID:    key.studentID,
				SessionID:    key.sessionID,
				StudentName:  cleanSnapshot(row.StudentName),
				StudentEmail: cleanSnapshot(row.StudentEmail),
				ZetaID:       cleanSnapshot(row.ZetaID),
				SessionName:  cleanSnapshot(row.SessionName),
			}
			groups[key] = rec
			order = append(order, key)
		}

		rec.InterviewIDs = append(rec.InterviewIDs, int64(row.InterviewID))
		rec.InterviewerIDs = append(rec.InterviewerIDs, int64(row.InterviewerID))
		// Missing interviewer keeps its position as an empty placeholder so
		// the arrays never go out of step.
		if row.InterviewerName != nil {
			rec.InterviewerNames = append(rec.InterviewerNames, *row.InterviewerName)
		} else {
			rec.InterviewerNames = append(rec.InterviewerNames, "")
		}
		if row.Verdict != nil && strings.TrimSpace(*row.Verdict) != "" {
			rec.Verdicts = append(rec.Verdicts, *row.Verdict)
		}
		if rec.LastInterviewAt == nil || row.CreatedAt.After(*rec.LastInterviewAt) {
			at := row.CreatedAt
			rec.LastInterviewAt = &at
		}
	}

	out := make([]*models.ConsolidationRecord, 0, len(order))
	now := time.Now().UTC()
	for _, key := range order {
		rec := groups[key]
		if st := ClassifyVerdicts(rec.Verdicts); st != StatusNone {
			v := string(st)
			rec.Status = &v
		}
		if rec.Verdicts == nil {
			rec.Verdicts = pq.StringArray{}
		}
		rec.UpdatedAt = now
		out = append(out, rec)
	}
	return out
}

func derefOrZero(id *uint) uint {
	if id == nil {
		return 0
	}
	return *id
}

func cleanSnapshot(v *string) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}

// recordStatusActivity writes the live-path status_updated entries. Keyed on
// the status text, so repeated recomputes with an unchanged status insert
// nothing.
func (s *consolidationService) recordStatusActivity(ctx context.Context, recs []*models.ConsolidationRecord) {
	if s.activities == nil {
		return
	}
	for _, rec := range recs {
		entry := statusUpdatedEntry(rec)
		if entry == nil {
			continue
		}
		if _, err := s.activities.InsertIfAbsent(ctx, entry); err != nil {
			s.log.WithError(err).WithField("student_id", rec.StudentID).
				Warn("failed to record status_updated activity")
		}
	}
}

func (s *consolidationService) invalidateBoards(ctx context.Context, recs []*models.ConsolidationRecord) {
	if s.cache == nil || len(recs) == 0 {
		return
	}
	seen := make(map[uint]struct{})
	keys := make([]string, 0)
	for _, rec := range recs {
		if _, ok := seen[rec.SessionID]; ok {
			continue
		}
		seen[rec.SessionID] = struct{}{}
		keys = append(keys, boardCacheKey(rec.SessionID))
	}
	if err := s.cache.Del(ctx, keys...); err != nil {
		s.log.WithError(err).Warn("failed to invalidate consolidation board cache")
	}
}

func boardCacheKey(sessionID uint) string {
	return fmt.Sprintf("consolidation:board:%d", sessionID)
}

func (s *consolidationService) Board(ctx context.Context, sessionID uint) ([]models.ConsolidationRecord, error) {
	const op = "ConsolidationService.Board"

	key := boardCacheKey(sessionID)
	if s.cache != nil {
		var cached []models.ConsolidationRecord
		if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	rows, err := s.records.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list consolidation records", err)
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, rows, boardCacheTTL); err != nil {
			s.log.WithError(err).Warn("failed to cache consolidation board")
		}
	}
	return rows, nil
}

func (s *consolidationService) Get(ctx context.Context, studentID, sessionID uint) (*models.ConsolidationRecord, error) {
	const op = "ConsolidationService.Get"

	rec, err := s.records.Get(ctx, studentID, sessionID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "consolidation record not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get consolidation record", err)
	}
	return rec, nil
}

func (s *consolidationService) GetByID(ctx context.Context, id uint) (*models.ConsolidationRecord, error) {
	const op = "ConsolidationService.GetByID"

	rec, err := s.records.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "consolidation record not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get consolidation record", err)
	}
	return rec, nil
}
