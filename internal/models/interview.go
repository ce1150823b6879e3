package models

import "time"

type InterviewStatus string

const (
	InterviewInProgress InterviewStatus = "in_progress"
	InterviewCompleted  InterviewStatus = "completed"
	InterviewCancelled  InterviewStatus = "cancelled"
)

// Interview is one interviewer's round with one student, optionally tied to a
// session. Verdict stays free text ("Selected", "On Hold", ...); the derived
// consolidation status is computed from it, the raw string is what we store.
type Interview struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	StudentID     uint            `gorm:"not null;index" json:"student_id"`
	InterviewerID uint            `gorm:"not null;index" json:"interviewer_id"`
	SessionID     *uint           `gorm:"index" json:"session_id,omitempty"`
	Status        InterviewStatus `gorm:"type:text;not null;default:in_progress" json:"status"`
	Verdict       *string         `gorm:"type:text" json:"verdict,omitempty"`
	TotalScore    int             `gorm:"not null;default:0" json:"total_score"`
	CreatedAt     time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (Interview) TableName() string { return "interviews" }

// InterviewQuestion is one scored answer within an interview. QuestionText is
// snapshotted so edits to the bank don't rewrite history.
type InterviewQuestion struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	InterviewID  uint      `gorm:"not null;index" json:"interview_id"`
	QuestionID   *uint     `json:"question_id,omitempty"` // nil for ad-hoc questions
	QuestionText string    `gorm:"type:text;not null" json:"question_text"`
	Score        int       `gorm:"not null;default:0" json:"score"`
	Remarks      string    `gorm:"type:text" json:"remarks"`
	AnsweredAt   time.Time `json:"answered_at"`
}

func (InterviewQuestion) TableName() string { return "interview_questions" }
