package models

import "time"

type SessionStatus string

const (
	SessionScheduled SessionStatus = "scheduled"
	SessionActive    SessionStatus = "active"
	SessionClosed    SessionStatus = "closed"
)

// InterviewSession is one walk-in drive/event (e.g. a campus visit).
type InterviewSession struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Name        string        `gorm:"type:text;not null" json:"name"`
	Location    string        `gorm:"type:text" json:"location"`
	ScheduledAt *time.Time    `json:"scheduled_at,omitempty"`
	Status      SessionStatus `gorm:"type:text;not null;default:scheduled" json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (InterviewSession) TableName() string { return "interview_sessions" }
