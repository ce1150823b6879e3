package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushire/campushire/internal/models"
	"github.com/campushire/campushire/internal/testhelpers"
)

func sampleEntry(disc string) *models.StudentActivityLog {
	return &models.StudentActivityLog{
		StudentID:           1,
		SessionID:           2,
		ActivityType:        models.ActivityVerdictGiven,
		Discriminator:       disc,
		ActivityDescription: "Verdict given: " + disc,
		CreatedAt:           time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestInsertIfAbsent(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	repo := NewActivityLogRepo(db)
	ctx := context.Background()

	inserted, err := repo.InsertIfAbsent(ctx, sampleEntry("selected"))
	require.NoError(t, err)
	assert.True(t, inserted)

	// Same discriminating key: no second row, no error.
	inserted, err = repo.InsertIfAbsent(ctx, sampleEntry("selected"))
	require.NoError(t, err)
	assert.False(t, inserted)

	// Different discriminator is a distinct event.
	inserted, err = repo.InsertIfAbsent(ctx, sampleEntry("rejected"))
	require.NoError(t, err)
	assert.True(t, inserted)

	rows, err := repo.ListByStudent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestInsertIfAbsentAbsorbsUniqueViolation(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	repo := NewActivityLogRepo(db)
	ctx := context.Background()

	require.NoError(t, db.Create(sampleEntry("hold")).Error)

	// A direct duplicate insert trips the index.
	err := db.Create(sampleEntry("hold")).Error
	require.Error(t, err)
	assert.True(t, isUniqueViolation(err))

	// The repo reports the race as not-inserted, not as a failure.
	inserted, err := repo.InsertIfAbsent(ctx, sampleEntry("hold"))
	require.NoError(t, err)
	assert.False(t, inserted)
}

func TestListByStudentOrdersBySourceTime(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	repo := NewActivityLogRepo(db)
	ctx := context.Background()

	late := sampleEntry("selected")
	late.CreatedAt = time.Date(2026, 1, 20, 10, 0, 0, 0, time.UTC)
	early := sampleEntry("hold")
	early.CreatedAt = time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC)

	// Inserted out of order; reads come back chronological.
	_, err := repo.InsertIfAbsent(ctx, late)
	require.NoError(t, err)
	_, err = repo.InsertIfAbsent(ctx, early)
	require.NoError(t, err)

	rows, err := repo.ListByStudent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "hold", rows[0].Discriminator)
	assert.Equal(t, "selected", rows[1].Discriminator)
}
