package testhelpers

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"github.com/campushire/campushire/internal/models"
)

// SetupTestDB opens a per-test in-memory sqlite database and migrates the
// full schema. The DSN is keyed on the test name so parallel tests don't
// share state.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Student{},
		&models.AuthorizedUser{},
		&models.RefreshToken{},
		&models.InterviewSession{},
		&models.QuestionBankItem{},
		&models.Interview{},
		&models.InterviewQuestion{},
		&models.ConsolidationRecord{},
		&models.EmailLog{},
		&models.StudentActivityLog{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}
