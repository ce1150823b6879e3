package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/campushire/campushire/internal/models"
)

// Builders for activity log entries. The live write path and the backfill
// engine both go through these, so an event gets the same discriminator no
// matter which path created it first.
//
// created_at is always the source event's own timestamp, never "now".

func sessionOrZero(id *uint) uint {
	if id == nil {
		return 0
	}
	return *id
}

func metaJSON(v map[string]any) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}

func roundStartedEntry(iv *models.Interview, round int) *models.StudentActivityLog {
	return &models.StudentActivityLog{
		StudentID:           iv.StudentID,
		SessionID:           sessionOrZero(iv.SessionID),
		ActivityType:        models.ActivityRoundStarted,
		Discriminator:       fmt.Sprintf("%d:%d", iv.ID, round),
		ActivityDescription: fmt.Sprintf("Round %d started", round),
		Metadata:            metaJSON(map[string]any{"interview_id": iv.ID, "round": round}),
		PerformedBy:         &iv.InterviewerID,
		CreatedAt:           iv.CreatedAt,
	}
}

func interviewCompletedEntry(iv *models.Interview) *models.StudentActivityLog {
	desc := "Interview completed"
	meta := map[string]any{"interview_id": iv.ID, "total_score": iv.TotalScore}
	if iv.Verdict != nil && strings.TrimSpace(*iv.Verdict) != "" {
		desc = fmt.Sprintf("Interview completed - Verdict: %s", *iv.Verdict)
		meta["verdict"] = *iv.Verdict
	}
	return &models.StudentActivityLog{
		StudentID:           iv.StudentID,
		SessionID:           sessionOrZero(iv.SessionID),
		ActivityType:        models.ActivityInterviewCompleted,
		Discriminator:       strconv.FormatUint(uint64(iv.ID), 10),
		ActivityDescription: desc,
		Metadata:            metaJSON(meta),
		PerformedBy:         &iv.InterviewerID,
		CreatedAt:           iv.UpdatedAt,
	}
}

func interviewCancelledEntry(iv *models.Interview) *models.StudentActivityLog {
	return &models.StudentActivityLog{
		StudentID:           iv.StudentID,
		SessionID:           sessionOrZero(iv.SessionID),
		ActivityType:        models.ActivityInterviewCancelled,
		Discriminator:       strconv.FormatUint(uint64(iv.ID), 10),
		ActivityDescription: "Interview cancelled",
		Metadata:            metaJSON(map[string]any{"interview_id": iv.ID}),
		PerformedBy:         &iv.InterviewerID,
		CreatedAt:           iv.UpdatedAt,
	}
}

// verdictGivenEntry keys on the normalized verdict text: re-affirming the same
// verdict twice doesn't duplicate, a changed verdict text is a new event.
func verdictGivenEntry(iv *models.Interview) *models.StudentActivityLog {
	if iv.Verdict == nil {
		return nil
	}
	raw := strings.TrimSpace(*iv.Verdict)
	if raw == "" {
		return nil
	}
	return &models.StudentActivityLog{
		StudentID:           iv.StudentID,
		SessionID:           sessionOrZero(iv.SessionID),
		ActivityType:        models.ActivityVerdictGiven,
		Discriminator:       strings.ToLower(raw),
		ActivityDescription: fmt.Sprintf("Verdict given: %s", raw),
		Metadata:            metaJSON(map[string]any{"interview_id": iv.ID, "verdict": raw}),
		PerformedBy:         &iv.InterviewerID,
		CreatedAt:           iv.UpdatedAt,
	}
}

func emailSentEntry(e *models.EmailLog, studentID, sessionID uint) *models.StudentActivityLog {
	subject := strings.TrimSpace(e.Subject)
	if subject == "" {
		subject = "No subject"
	}
	at := e.CreatedAt
	if e.SentAt != nil {
		at = *e.SentAt
	}
	return &models.StudentActivityLog{
		StudentID:           studentID,
		SessionID:           sessionID,
		ActivityType:        models.ActivityEmailSent,
		Discriminator:       strconv.FormatUint(uint64(e.ID), 10),
		ActivityDescription: fmt.Sprintf("Email sent: %s", subject),
		Metadata:            metaJSON(map[string]any{"email_log_id": e.ID, "recipient": e.Recipient}),
		CreatedAt:           at,
	}
}

func statusUpdatedEntry(rec *models.ConsolidationRecord) *models.StudentActivityLog {
	if rec.Status == nil || *rec.Status == "" || Status(*rec.Status) == StatusNone {
		return nil
	}
	at := rec.UpdatedAt
	if at.IsZero() && rec.LastInterviewAt != nil {
		at = *rec.LastInterviewAt
	}
	if at.IsZero() {
		at = time.Now().UTC()
	}
	return &models.StudentActivityLog{
		StudentID:           rec.StudentID,
		SessionID:           rec.SessionID,
		ActivityType:        models.ActivityStatusUpdated,
		Discriminator:       *rec.Status,
		ActivityDescription: fmt.Sprintf("Status updated to: %s", *rec.Status),
		Metadata:            metaJSON(map[string]any{"consolidation_id": rec.ID, "status": *rec.Status}),
		CreatedAt:           at,
	}
}
