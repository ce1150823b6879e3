package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/campushire/campushire/internal/models"
	pgrepo "github.com/campushire/campushire/internal/repositories/postgres"
	"github.com/campushire/campushire/internal/services"
	"github.com/campushire/campushire/internal/testhelpers"
)

func newConsolidationRouter(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDB(t)
	svc := services.NewConsolidationService(
		db,
		pgrepo.NewInterviewRepo(db),
		pgrepo.NewConsolidationRepo(db),
		pgrepo.NewActivityLogRepo(db),
		nil,
		nil,
		false,
	)
	h := NewConsolidationHandler(svc, services.NewBackfillService(db, nil))

	r := gin.New()
	r.POST("/consolidation/recompute", h.Recompute)
	r.GET("/consolidation", h.Board)
	r.GET("/consolidation/:student_id/:session_id", h.Get)
	r.POST("/activity/backfill", h.Backfill)
	return db, r
}

func seedCompletedInterview(t *testing.T, db *gorm.DB, verdict string) (studentID, sessionID uint) {
	t.Helper()

	student := &models.Student{Name: "Asha", Email: "asha@example.com"}
	require.NoError(t, db.Create(student).Error)
	ivr := &models.AuthorizedUser{Email: "ravi@corp.example.com", Name: "ravi", Role: models.RoleInterviewer, Active: true}
	require.NoError(t, db.Create(ivr).Error)
	session := &models.InterviewSession{Name: "Drive", Status: models.SessionActive}
	require.NoError(t, db.Create(session).Error)

	iv := &models.Interview{
		StudentID:     student.ID,
		InterviewerID: ivr.ID,
		SessionID:     &session.ID,
		Status:        models.InterviewCompleted,
		Verdict:       &verdict,
		CreatedAt:     time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(iv).Error)
	return student.ID, session.ID
}

func uitoa(v uint) string { return strconv.FormatUint(uint64(v), 10) }

func do(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRecomputeEndpoint(t *testing.T) {
	db, r := newConsolidationRouter(t)
	studentID, sessionID := seedCompletedInterview(t, db, "Selected")

	rec := do(r, http.MethodPost, "/consolidation/recompute")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body["upserted"])

	rec = do(r, http.MethodGet, "/consolidation/"+uitoa(studentID)+"/"+uitoa(sessionID))
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.ConsolidationRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.NotNil(t, got.Status)
	assert.Equal(t, "selected", *got.Status)
	assert.Equal(t, []string{"Selected"}, []string(got.Verdicts))
}

func TestBoardEndpointRequiresSession(t *testing.T) {
	_, r := newConsolidationRouter(t)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/consolidation").Code)
}

func TestBoardEndpoint(t *testing.T) {
	db, r := newConsolidationRouter(t)
	_, sessionID := seedCompletedInterview(t, db, "Hold")

	require.Equal(t, http.StatusOK, do(r, http.MethodPost, "/consolidation/recompute").Code)

	rec := do(r, http.MethodGet, "/consolidation?session_id="+uitoa(sessionID))
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []models.ConsolidationRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].Status)
	assert.Equal(t, "waitlisted", *rows[0].Status)
}

func TestGetEndpointUnknownGroup(t *testing.T) {
	_, r := newConsolidationRouter(t)

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/consolidation/999/1").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/consolidation/abc/1").Code)
}

func TestBackfillEndpoint(t *testing.T) {
	db, r := newConsolidationRouter(t)
	seedCompletedInterview(t, db, "Selected")

	rec := do(r, http.MethodPost, "/activity/backfill")
	require.Equal(t, http.StatusOK, rec.Code)

	var res services.BackfillResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 1, res.RoundStarted)
	assert.Equal(t, 1, res.InterviewCompleted)
	assert.Equal(t, 1, res.VerdictGiven)

	// Idempotent: a second call reports zero new rows.
	rec = do(r, http.MethodPost, "/activity/backfill")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 0, res.Total())
}
