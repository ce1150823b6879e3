package models

import (
	"time"

	"github.com/lib/pq"
)

// ConsolidationRecord is the materialized aggregate: one row per
// (student, session) pair. It is a cache, not a ledger: safe to drop and
// rebuild from interviews at any time.
//
// SessionID 0 groups interviews that were taken outside any session.
// The parallel arrays are index-aligned:
// InterviewIDs[i] was run by InterviewerIDs[i] / InterviewerNames[i].
// Verdicts keeps only non-empty verdicts, in interview creation order.
type ConsolidationRecord struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	StudentID    uint   `gorm:"not null;uniqueIndex:uniq_consolidation_student_session,priority:1" json:"student_id"`
	SessionID    uint   `gorm:"not null;default:0;uniqueIndex:uniq_consolidation_student_session,priority:2" json:"session_id"`
	StudentName  string `gorm:"type:text" json:"student_name"`
	StudentEmail string `gorm:"type:text" json:"student_email"`
	ZetaID       string `gorm:"column:zeta_id;type:text" json:"zeta_id"`
	SessionName  string `gorm:"type:text" json:"session_name"`

	InterviewIDs     pq.Int64Array  `gorm:"type:bigint[]" json:"interview_ids"`
	InterviewerIDs   pq.Int64Array  `gorm:"type:bigint[]" json:"interviewer_ids"`
	InterviewerNames pq.StringArray `gorm:"type:text[]" json:"interviewer_names"`
	Verdicts         pq.StringArray `gorm:"type:text[]" json:"verdicts"`

	Status          *string    `gorm:"type:text" json:"status,omitempty"`
	LastInterviewAt *time.Time `json:"last_interview_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (ConsolidationRecord) TableName() string { return "interview_consolidation" }
