package config

import (
	"errors"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/campushire/campushire/internal/models"
)

var PostgresDB *gorm.DB

func InitPostgres() error {
	uri := os.Getenv("POSTGRES_URI")
	if uri == "" {
		return errors.New("POSTGRES_URI environment variable is not set")
	}
	db, err := gorm.Open(postgres.Open(uri), &gorm.Config{})
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	// Connection Pooling settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	PostgresDB = db
	return nil
}

// MigratePostgres creates/updates the schema. AutoMigrate is idempotent, so
// this is safe on every boot.
func MigratePostgres(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.AuthorizedUser{},
		&models.RefreshToken{},
		&models.Student{},
		&models.InterviewSession{},
		&models.QuestionBankItem{},
		&models.Interview{},
		&models.InterviewQuestion{},
		&models.ConsolidationRecord{},
		&models.EmailLog{},
		&models.StudentActivityLog{},
	)
}
