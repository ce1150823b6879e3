package models

import "time"

type QuestionBankItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Text       string    `gorm:"type:text;not null" json:"text"`
	Category   string    `gorm:"type:text;index" json:"category"`
	Difficulty string    `gorm:"type:text" json:"difficulty"` // easy|medium|hard
	MaxScore   int       `gorm:"not null;default:10" json:"max_score"`
	Active     bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (QuestionBankItem) TableName() string { return "question_bank" }
