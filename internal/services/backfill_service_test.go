package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/campushire/campushire/internal/models"
	pgrepo "github.com/campushire/campushire/internal/repositories/postgres"
	"github.com/campushire/campushire/internal/testhelpers"
)

func newBackfillFixture(t *testing.T) (*gorm.DB, BackfillService) {
	t.Helper()
	db := testhelpers.SetupTestDB(t)
	return db, NewBackfillService(db, nil)
}

func activityLogs(t *testing.T, db *gorm.DB, studentID uint, typ models.ActivityType) []models.StudentActivityLog {
	t.Helper()
	var logs []models.StudentActivityLog
	require.NoError(t, db.
		Where("student_id = ? AND activity_type = ?", studentID, typ).
		Order("created_at ASC, id ASC").
		Find(&logs).Error)
	return logs
}

func TestBackfillDerivesAllTypes(t *testing.T) {
	db, svc := newBackfillFixture(t)
	ctx := context.Background()

	student := seedStudent(t, db, "Gita")
	ivr := seedInterviewer(t, db, "anil")
	session := seedSession(t, db, "Drive G")

	base := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	seedInterview(t, db, student.ID, ivr.ID, &session.ID, strptr("Hold"), base)
	seedInterview(t, db, student.ID, ivr.ID, &session.ID, strptr("Selected"), base.Add(time.Hour))

	cancelled := seedInterview(t, db, student.ID, ivr.ID, &session.ID, nil, base.Add(2*time.Hour))
	require.NoError(t, db.Model(cancelled).UpdateColumn("status", models.InterviewCancelled).Error)

	rec := &models.ConsolidationRecord{
		StudentID: student.ID,
		SessionID: session.ID,
		Status:    strptr("selected"),
	}
	require.NoError(t, db.Create(rec).Error)
	email := &models.EmailLog{
		ConsolidationID: rec.ID,
		Recipient:       "gita@example.com",
		Subject:         "Offer details",
	}
	require.NoError(t, db.Create(email).Error)

	res, err := svc.Backfill(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, res.RoundStarted)
	assert.Equal(t, 2, res.InterviewCompleted)
	assert.Equal(t, 1, res.InterviewCancelled)
	assert.Equal(t, 2, res.VerdictGiven)
	assert.Equal(t, 1, res.EmailSent)
	assert.Equal(t, 1, res.StatusUpdated)
	assert.Equal(t, 10, res.Total())

	rounds := activityLogs(t, db, student.ID, models.ActivityRoundStarted)
	require.Len(t, rounds, 3)
	assert.Equal(t, "Round 1 started", rounds[0].ActivityDescription)
	assert.Equal(t, "Round 2 started", rounds[1].ActivityDescription)
	assert.Equal(t, "Round 3 started", rounds[2].ActivityDescription)
	// created_at carries the interview's own timestamp.
	assert.True(t, rounds[0].CreatedAt.Equal(base))

	completed := activityLogs(t, db, student.ID, models.ActivityInterviewCompleted)
	require.Len(t, completed, 2)
	assert.Equal(t, "Interview completed - Verdict: Hold", completed[0].ActivityDescription)

	emails := activityLogs(t, db, student.ID, models.ActivityEmailSent)
	require.Len(t, emails, 1)
	assert.Equal(t, "Email sent: Offer details", emails[0].ActivityDescription)

	statuses := activityLogs(t, db, student.ID, models.ActivityStatusUpdated)
	require.Len(t, statuses, 1)
	assert.Equal(t, "Status updated to: selected", statuses[0].ActivityDescription)
}

func TestBackfillSecondRunInsertsNothing(t *testing.T) {
	db, svc := newBackfillFixture(t)
	ctx := context.Background()

	student := seedStudent(t, db, "Hari")
	ivr := seedInterviewer(t, db, "nila")
	session := seedSession(t, db, "Drive H")

	base := time.Date(2026, 2, 11, 9, 0, 0, 0, time.UTC)
	seedInterview(t, db, student.ID, ivr.ID, &session.ID, strptr("Selected"), base)

	first, err := svc.Backfill(ctx)
	require.NoError(t, err)
	assert.Positive(t, first.Total())

	second, err := svc.Backfill(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Total())

	var total int64
	require.NoError(t, db.Model(&models.StudentActivityLog{}).Count(&total).Error)
	assert.EqualValues(t, first.Total(), total)
}

func TestBackfillVerdictChangeAddsOneEntry(t *testing.T) {
	db, svc := newBackfillFixture(t)
	ctx := context.Background()

	student := seedStudent(t, db, "Indu")
	ivr := seedInterviewer(t, db, "raj")
	session := seedSession(t, db, "Drive I")

	base := time.Date(2026, 2, 12, 9, 0, 0, 0, time.UTC)
	iv := seedInterview(t, db, student.ID, ivr.ID, &session.ID, strptr("Hold"), base)

	_, err := svc.Backfill(ctx)
	require.NoError(t, err)

	// Interviewer corrects the verdict after the first backfill run.
	require.NoError(t, db.Model(iv).UpdateColumn("verdict", "Selected").Error)

	res, err := svc.Backfill(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.VerdictGiven)
	assert.Equal(t, 1, res.Total())

	verdicts := activityLogs(t, db, student.ID, models.ActivityVerdictGiven)
	require.Len(t, verdicts, 2)
	assert.Equal(t, "Verdict given: Hold", verdicts[0].ActivityDescription)
	assert.Equal(t, "Verdict given: Selected", verdicts[1].ActivityDescription)
}

func TestBackfillSameVerdictTextAcrossRoundsDeduplicates(t *testing.T) {
	db, svc := newBackfillFixture(t)
	ctx := context.Background()

	student := seedStudent(t, db, "Joys")
	ivr := seedInterviewer(t, db, "tara")
	session := seedSession(t, db, "Drive J")

	base := time.Date(2026, 2, 13, 9, 0, 0, 0, time.UTC)
	seedInterview(t, db, student.ID, ivr.ID, &session.ID, strptr("Selected"), base)
	// Different casing, same normalized text: one verdict_given entry.
	seedInterview(t, db, student.ID, ivr.ID, &session.ID, strptr("SELECTED"), base.Add(time.Hour))

	res, err := svc.Backfill(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.VerdictGiven)

	verdicts := activityLogs(t, db, student.ID, models.ActivityVerdictGiven)
	require.Len(t, verdicts, 1)
	// Most recent occurrence of the text wins.
	assert.Equal(t, "Verdict given: SELECTED", verdicts[0].ActivityDescription)
}

func TestBackfillRoundNumbersPerGroup(t *testing.T) {
	db, svc := newBackfillFixture(t)
	ctx := context.Background()

	student := seedStudent(t, db, "Kavi")
	ivr := seedInterviewer(t, db, "omar")
	sessionA := seedSession(t, db, "Drive K-A")
	sessionB := seedSession(t, db, "Drive K-B")

	base := time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC)
	seedInterview(t, db, student.ID, ivr.ID, &sessionA.ID, nil, base)
	seedInterview(t, db, student.ID, ivr.ID, &sessionB.ID, nil, base.Add(time.Minute))
	seedInterview(t, db, student.ID, ivr.ID, &sessionA.ID, nil, base.Add(2*time.Minute))

	_, err := svc.Backfill(ctx)
	require.NoError(t, err)

	rounds := activityLogs(t, db, student.ID, models.ActivityRoundStarted)
	require.Len(t, rounds, 3)
	bySession := make(map[uint][]string)
	for _, r := range rounds {
		bySession[r.SessionID] = append(bySession[r.SessionID], r.ActivityDescription)
	}
	assert.Equal(t, []string{"Round 1 started", "Round 2 started"}, bySession[sessionA.ID])
	assert.Equal(t, []string{"Round 1 started"}, bySession[sessionB.ID])
}

func TestBackfillRoundNumbersFollowTimestamps(t *testing.T) {
	db, svc := newBackfillFixture(t)
	ctx := context.Background()

	student := seedStudent(t, db, "Mira")
	ivr := seedInterviewer(t, db, "sana")
	session := seedSession(t, db, "Drive M")

	// Rows arrive out of chronological order; numbering must follow
	// created_at, not insertion order.
	base := time.Date(2026, 2, 16, 9, 0, 0, 0, time.UTC)
	later := seedInterview(t, db, student.ID, ivr.ID, &session.ID, nil, base.Add(time.Hour))
	earlier := seedInterview(t, db, student.ID, ivr.ID, &session.ID, nil, base)

	_, err := svc.Backfill(ctx)
	require.NoError(t, err)

	rounds := activityLogs(t, db, student.ID, models.ActivityRoundStarted)
	require.Len(t, rounds, 2)
	assert.Equal(t, "Round 1 started", rounds[0].ActivityDescription)
	assert.True(t, rounds[0].CreatedAt.Equal(earlier.CreatedAt))
	assert.Equal(t, "Round 2 started", rounds[1].ActivityDescription)
	assert.True(t, rounds[1].CreatedAt.Equal(later.CreatedAt))
}

func TestBackfillLiveEntriesAreNotDuplicated(t *testing.T) {
	db, svc := newBackfillFixture(t)
	ctx := context.Background()

	student := seedStudent(t, db, "Lena")
	ivr := seedInterviewer(t, db, "vik")
	session := seedSession(t, db, "Drive L")

	base := time.Date(2026, 2, 15, 9, 0, 0, 0, time.UTC)
	iv := seedInterview(t, db, student.ID, ivr.ID, &session.ID, strptr("Selected"), base)

	// The live path already recorded the completion with the same
	// discriminator the backfill derives.
	repo := pgrepo.NewActivityLogRepo(db)
	inserted, err := repo.InsertIfAbsent(ctx, interviewCompletedEntry(iv))
	require.NoError(t, err)
	require.True(t, inserted)

	res, err := svc.Backfill(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, res.InterviewCompleted)

	completed := activityLogs(t, db, student.ID, models.ActivityInterviewCompleted)
	assert.Len(t, completed, 1)
}
