package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/campushire/campushire/internal/models"
	pgrepo "github.com/campushire/campushire/internal/repositories/postgres"
	"github.com/campushire/campushire/internal/testhelpers"
	"github.com/campushire/campushire/internal/utils"
)

type recordingNotifier struct {
	calls [][2]uint
}

func (n *recordingNotifier) NotifyRecompute(_ context.Context, studentID, sessionID uint) error {
	n.calls = append(n.calls, [2]uint{studentID, sessionID})
	return nil
}

func newInterviewFixture(t *testing.T) (*gorm.DB, InterviewService, *recordingNotifier) {
	t.Helper()
	db := testhelpers.SetupTestDB(t)
	notifier := &recordingNotifier{}
	svc := NewInterviewService(
		pgrepo.NewInterviewRepo(db),
		pgrepo.NewStudentRepo(db),
		pgrepo.NewQuestionRepo(db),
		pgrepo.NewActivityLogRepo(db),
		notifier,
		nil,
	)
	return db, svc, notifier
}

func TestStartInterview(t *testing.T) {
	db, svc, _ := newInterviewFixture(t)
	ctx := context.Background()

	student := seedStudent(t, db, "Mira")
	ivr := seedInterviewer(t, db, "noor")
	session := seedSession(t, db, "Drive M")

	iv, err := svc.Start(ctx, student.ID, ivr.ID, &session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InterviewInProgress, iv.Status)

	rounds := activityLogs(t, db, student.ID, models.ActivityRoundStarted)
	require.Len(t, rounds, 1)
	assert.Equal(t, "Round 1 started", rounds[0].ActivityDescription)

	// Second round for the same group numbers itself 2.
	_, err = svc.Start(ctx, student.ID, ivr.ID, &session.ID)
	require.NoError(t, err)
	rounds = activityLogs(t, db, student.ID, models.ActivityRoundStarted)
	require.Len(t, rounds, 2)
	assert.Equal(t, "Round 2 started", rounds[1].ActivityDescription)
}

func TestStartInterviewUnknownStudent(t *testing.T) {
	_, svc, _ := newInterviewFixture(t)

	_, err := svc.Start(context.Background(), 999, 1, nil)
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestCompleteTransitionsExactlyOnce(t *testing.T) {
	db, svc, notifier := newInterviewFixture(t)
	ctx := context.Background()

	student := seedStudent(t, db, "Nadi")
	ivr := seedInterviewer(t, db, "puja")
	session := seedSession(t, db, "Drive N")

	iv, err := svc.Start(ctx, student.ID, ivr.ID, &session.ID)
	require.NoError(t, err)

	done, err := svc.Complete(ctx, iv.ID, strptr("Selected"))
	require.NoError(t, err)
	assert.Equal(t, models.InterviewCompleted, done.Status)
	require.NotNil(t, done.Verdict)
	assert.Equal(t, "Selected", *done.Verdict)

	// Completing again is a conflict, not a second transition.
	_, err = svc.Complete(ctx, iv.ID, strptr("Rejected"))
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeConflict))

	// Cancelling a completed interview is also rejected.
	_, err = svc.Cancel(ctx, iv.ID)
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeConflict))

	stored, err := svc.Get(ctx, iv.ID)
	require.NoError(t, err)
	assert.Equal(t, "Selected", *stored.Verdict)

	require.Len(t, notifier.calls, 1)
	assert.Equal(t, [2]uint{student.ID, session.ID}, notifier.calls[0])

	completed := activityLogs(t, db, student.ID, models.ActivityInterviewCompleted)
	assert.Len(t, completed, 1)
	verdicts := activityLogs(t, db, student.ID, models.ActivityVerdictGiven)
	assert.Len(t, verdicts, 1)
}

func TestSetVerdictAfterCompletion(t *testing.T) {
	db, svc, notifier := newInterviewFixture(t)
	ctx := context.Background()

	student := seedStudent(t, db, "Omi")
	ivr := seedInterviewer(t, db, "devi")

	iv, err := svc.Start(ctx, student.ID, ivr.ID, nil)
	require.NoError(t, err)
	_, err = svc.Complete(ctx, iv.ID, strptr("Hold"))
	require.NoError(t, err)

	// Corrections stay possible after completion.
	updated, err := svc.SetVerdict(ctx, iv.ID, "Selected")
	require.NoError(t, err)
	assert.Equal(t, "Selected", *updated.Verdict)

	stored, err := svc.Get(ctx, iv.ID)
	require.NoError(t, err)
	assert.Equal(t, "Selected", *stored.Verdict)

	verdicts := activityLogs(t, db, student.ID, models.ActivityVerdictGiven)
	assert.Len(t, verdicts, 2)

	// No session: the notifier sees group 0.
	require.NotEmpty(t, notifier.calls)
	assert.Equal(t, [2]uint{student.ID, 0}, notifier.calls[len(notifier.calls)-1])
}

func TestSetVerdictRequiresText(t *testing.T) {
	db, svc, _ := newInterviewFixture(t)
	ctx := context.Background()

	student := seedStudent(t, db, "Pia")
	ivr := seedInterviewer(t, db, "gus")
	iv, err := svc.Start(ctx, student.ID, ivr.ID, nil)
	require.NoError(t, err)

	_, err = svc.SetVerdict(ctx, iv.ID, "   ")
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestAddAnswerScoresInterview(t *testing.T) {
	db, svc, _ := newInterviewFixture(t)
	ctx := context.Background()

	student := seedStudent(t, db, "Qamar")
	ivr := seedInterviewer(t, db, "ines")
	iv, err := svc.Start(ctx, student.ID, ivr.ID, nil)
	require.NoError(t, err)

	q := &models.QuestionBankItem{Text: "Explain indexes", Category: "db", MaxScore: 10, Active: true}
	require.NoError(t, db.Create(q).Error)

	// Text from the bank is snapshotted when only the id is sent.
	ans, err := svc.AddAnswer(ctx, iv.ID, &q.ID, "", 7, "solid")
	require.NoError(t, err)
	assert.Equal(t, "Explain indexes", ans.QuestionText)

	_, err = svc.AddAnswer(ctx, iv.ID, nil, "Ad-hoc followup", 3, "")
	require.NoError(t, err)

	stored, err := svc.Get(ctx, iv.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, stored.TotalScore)

	answers, err := svc.ListAnswers(ctx, iv.ID)
	require.NoError(t, err)
	assert.Len(t, answers, 2)

	// Closed interviews stop accepting answers.
	_, err = svc.Complete(ctx, iv.ID, nil)
	require.NoError(t, err)
	_, err = svc.AddAnswer(ctx, iv.ID, nil, "late", 1, "")
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeConflict))
}

func TestAddAnswerRequiresQuestion(t *testing.T) {
	db, svc, _ := newInterviewFixture(t)
	ctx := context.Background()

	student := seedStudent(t, db, "Rhea")
	ivr := seedInterviewer(t, db, "tom")
	iv, err := svc.Start(ctx, student.ID, ivr.ID, nil)
	require.NoError(t, err)

	_, err = svc.AddAnswer(ctx, iv.ID, nil, "   ", 5, "")
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}
