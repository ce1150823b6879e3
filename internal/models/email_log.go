package models

import "time"

// EmailLog records an outbound email tied to a consolidation record. Sending
// itself happens outside this service; we keep the log for the activity trail.
type EmailLog struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	ConsolidationID uint       `gorm:"not null;index" json:"consolidation_id"`
	Recipient       string     `gorm:"type:text;not null" json:"recipient"`
	Subject         string     `gorm:"type:text" json:"subject"`
	Body            string     `gorm:"type:text" json:"body"`
	Status          string     `gorm:"type:text;not null;default:sent" json:"status"`
	SentAt          *time.Time `json:"sent_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func (EmailLog) TableName() string { return "email_logs" }
