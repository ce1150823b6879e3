package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/campushire/campushire/internal/models"
	pgrepo "github.com/campushire/campushire/internal/repositories/postgres"
	"github.com/campushire/campushire/internal/utils"
)

// RecomputeNotifier signals that a (student, session) group changed and the
// consolidation should be refreshed. Implemented over a Redis stream; a nil
// notifier is allowed (batch-only deployments).
type RecomputeNotifier interface {
	NotifyRecompute(ctx context.Context, studentID, sessionID uint) error
}

type InterviewService interface {
	Start(ctx context.Context, studentID, interviewerID uint, sessionID *uint) (*models.Interview, error)
	Get(ctx context.Context, id uint) (*models.Interview, error)
	ListByStudent(ctx context.Context, studentID uint) ([]models.Interview, error)
	AddAnswer(ctx context.Context, interviewID uint, questionID *uint, questionText string, score int, remarks string) (*models.InterviewQuestion, error)
	ListAnswers(ctx context.Context, interviewID uint) ([]models.InterviewQuestion, error)
	Complete(ctx context.Context, id uint, verdict *string) (*models.Interview, error)
	Cancel(ctx context.Context, id uint) (*models.Interview, error)
	SetVerdict(ctx context.Context, id uint, verdict string) (*models.Interview, error)
}

type interviewService struct {
	interviews pgrepo.InterviewRepository
	students   pgrepo.StudentRepository
	questions  pgrepo.QuestionRepository
	activities pgrepo.ActivityLogRepository
	notifier   RecomputeNotifier
	log        *logrus.Logger
}

func NewInterviewService(
	interviews pgrepo.InterviewRepository,
	students pgrepo.StudentRepository,
	questions pgrepo.QuestionRepository,
	activities pgrepo.ActivityLogRepository,
	notifier RecomputeNotifier,
	log *logrus.Logger,
) InterviewService {
	if log == nil {
		log = logrus.New()
	}
	return &interviewService{
		interviews: interviews,
		students:   students,
		questions:  questions,
		activities: activities,
		notifier:   notifier,
		log:        log,
	}
}

func (s *interviewService) Start(ctx context.Context, studentID, interviewerID uint, sessionID *uint) (*models.Interview, error) {
	const op = "InterviewService.Start"

	if studentID == 0 || interviewerID == 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "student_id and interviewer_id are required", nil)
	}
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "student not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to check student", err)
	}

	iv := &models.Interview{
		StudentID:     studentID,
		InterviewerID: interviewerID,
		SessionID:     sessionID,
		Status:        models.InterviewInProgress,
	}
	if err := s.interviews.Create(ctx, iv); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create interview", err)
	}

	round, err := s.interviews.RoundNumber(ctx, iv)
	if err != nil {
		s.log.WithError(err).Warn("failed to rank round for activity entry")
		round = 0
	}
	if round > 0 {
		s.recordActivity(ctx, roundStartedEntry(iv, int(round)))
	}
	return iv, nil
}

func (s *interviewService) Get(ctx context.Context, id uint) (*models.Interview, error) {
	const op = "InterviewService.Get"

	iv, err := s.interviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "interview not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get interview", err)
	}
	return iv, nil
}

func (s *interviewService) ListByStudent(ctx context.Context, studentID uint) ([]models.Interview, error) {
	const op = "InterviewService.ListByStudent"

	if studentID == 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "student_id is required", nil)
	}
	rows, err := s.interviews.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list interviews", err)
	}
	return rows, nil
}

func (s *interviewService) AddAnswer(ctx context.Context, interviewID uint, questionID *uint, questionText string, score int, remarks string) (*models.InterviewQuestion, error) {
	const op = "InterviewService.AddAnswer"

	iv, err := s.Get(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	if iv.Status != models.InterviewInProgress {
		return nil, utils.E(utils.CodeConflict, op, "interview is not in progress", nil)
	}
	if score < 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "score must be non-negative", nil)
	}

	questionText = strings.TrimSpace(questionText)
	if questionID != nil && questionText == "" {
		q, err := s.questions.GetByID(ctx, *questionID)
		if err != nil {
			if errors.Is(err, utils.ErrNotFound) {
				return nil, utils.E(utils.CodeNotFound, op, "question not found", err)
			}
			return nil, utils.E(utils.CodeInternal, op, "failed to load question", err)
		}
		questionText = q.Text
	}
	if questionText == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "question_text or question_id is required", nil)
	}

	answer := &models.InterviewQuestion{
		InterviewID:  interviewID,
		QuestionID:   questionID,
		QuestionText: questionText,
		Score:        score,
		Remarks:      remarks,
		AnsweredAt:   time.Now().UTC(),
	}
	if err := s.interviews.AddAnswer(ctx, answer); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to record answer", err)
	}
	return answer, nil
}

func (s *interviewService) ListAnswers(ctx context.Context, interviewID uint) ([]models.InterviewQuestion, error) {
	const op = "InterviewService.ListAnswers"

	rows, err := s.interviews.ListAnswers(ctx, interviewID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list answers", err)
	}
	return rows, nil
}

func (s *interviewService) Complete(ctx context.Context, id uint, verdict *string) (*models.Interview, error) {
	const op = "InterviewService.Complete"

	iv, err := s.transition(ctx, op, id, models.InterviewCompleted, verdict)
	if err != nil {
		return nil, err
	}

	s.recordActivity(ctx, interviewCompletedEntry(iv))
	if entry := verdictGivenEntry(iv); entry != nil {
		s.recordActivity(ctx, entry)
	}
	s.notify(ctx, iv)
	return iv, nil
}

func (s *interviewService) Cancel(ctx context.Context, id uint) (*models.Interview, error) {
	const op = "InterviewService.Cancel"

	iv, err := s.transition(ctx, op, id, models.InterviewCancelled, nil)
	if err != nil {
		return nil, err
	}

	s.recordActivity(ctx, interviewCancelledEntry(iv))
	s.notify(ctx, iv)
	return iv, nil
}

// SetVerdict changes the verdict on an existing interview, including after
// completion: verdict corrections are allowed, and the consolidation is
// recomputed from whatever the interviews say.
func (s *interviewService) SetVerdict(ctx context.Context, id uint, verdict string) (*models.Interview, error) {
	const op = "InterviewService.SetVerdict"

	verdict = strings.TrimSpace(verdict)
	if verdict == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "verdict is required", nil)
	}

	iv, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.interviews.SetVerdict(ctx, id, verdict); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to set verdict", err)
	}
	iv.Verdict = &verdict
	iv.UpdatedAt = time.Now().UTC()

	if entry := verdictGivenEntry(iv); entry != nil {
		s.recordActivity(ctx, entry)
	}
	s.notify(ctx, iv)
	return iv, nil
}

func (s *interviewService) transition(ctx context.Context, op string, id uint, to models.InterviewStatus, verdict *string) (*models.Interview, error) {
	iv, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if iv.Status != models.InterviewInProgress {
		return nil, utils.E(utils.CodeConflict, op, "interview already "+string(iv.Status), nil)
	}

	ok, err := s.interviews.Transition(ctx, id, to, verdict)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update interview", err)
	}
	if !ok {
		return nil, utils.E(utils.CodeConflict, op, "interview was updated concurrently", nil)
	}

	iv.Status = to
	if verdict != nil {
		iv.Verdict = verdict
	}
	iv.UpdatedAt = time.Now().UTC()
	return iv, nil
}

func (s *interviewService) recordActivity(ctx context.Context, entry *models.StudentActivityLog) {
	if s.activities == nil || entry == nil {
		return
	}
	if _, err := s.activities.InsertIfAbsent(ctx, entry); err != nil {
		s.log.WithError(err).WithField("activity_type", entry.ActivityType).
			Warn("failed to record activity entry")
	}
}

func (s *interviewService) notify(ctx context.Context, iv *models.Interview) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyRecompute(ctx, iv.StudentID, sessionOrZero(iv.SessionID)); err != nil {
		s.log.WithError(err).Warn("failed to publish recompute event")
	}
}
