package models

import "time"

type Student struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"type:text;not null" json:"name"`
	Email        string    `gorm:"type:text;index" json:"email"`
	Phone        string    `gorm:"type:text" json:"phone"`
	ZetaID       string    `gorm:"column:zeta_id;type:text;index" json:"zeta_id"`
	College      string    `gorm:"type:text" json:"college"`
	RegisteredBy *uint     `gorm:"column:registered_by" json:"registered_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Student) TableName() string { return "students" }
