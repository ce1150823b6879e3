package models

import (
	"time"

	"gorm.io/datatypes"
)

type ActivityType string

const (
	ActivityRoundStarted       ActivityType = "round_started"
	ActivityInterviewCompleted ActivityType = "interview_completed"
	ActivityInterviewCancelled ActivityType = "interview_cancelled"
	ActivityVerdictGiven       ActivityType = "verdict_given"
	ActivityEmailSent          ActivityType = "email_sent"
	ActivityStatusUpdated      ActivityType = "status_updated"
)

// StudentActivityLog is an append-only derived event. Rows are written once,
// by the live path or the backfill engine, and never mutated.
//
// Discriminator makes "the same event" explicit per activity type (interview
// id, verdict text, email log id, ...). The composite unique index is the
// backstop against the check-then-insert race: a concurrent duplicate insert
// fails on the constraint instead of landing twice.
//
// CreatedAt carries the source event's own timestamp, not insertion time, so
// backfilled history sorts chronologically.
type StudentActivityLog struct {
	ID                  uint           `gorm:"primaryKey" json:"id"`
	StudentID           uint           `gorm:"not null;uniqueIndex:uniq_activity_event,priority:1;index" json:"student_id"`
	SessionID           uint           `gorm:"not null;default:0;uniqueIndex:uniq_activity_event,priority:2" json:"session_id"`
	ActivityType        ActivityType   `gorm:"type:text;not null;uniqueIndex:uniq_activity_event,priority:3" json:"activity_type"`
	Discriminator       string         `gorm:"type:text;not null;uniqueIndex:uniq_activity_event,priority:4" json:"-"`
	ActivityDescription string         `gorm:"type:text;not null" json:"activity_description"`
	Metadata            datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`
	PerformedBy         *uint          `json:"performed_by,omitempty"`
	CreatedAt           time.Time      `gorm:"index" json:"created_at"`
}

func (StudentActivityLog) TableName() string { return "student_activity_logs" }
