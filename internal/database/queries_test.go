package database

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*Queries, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db), mock
}

func TestGetResumesBySession(t *testing.T) {
	q, mock := newMock(t)
	sessionID := uuid.New()
	resumeID := uuid.New()
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "original_filename", "mime", "size_bytes", "object_key", "upload_status", "created_at", "session_id"}).
		AddRow(resumeID.String(), "cv.tex", "application/x-tex", int64(2048), "resumes/cv.tex", "uploaded", now, sessionID.String())
	mock.ExpectQuery(regexp.QuoteMeta("FROM resumes")).WithArgs(sessionID).WillReturnRows(rows)

	resumes, err := q.GetResumesBySession(context.Background(), sessionID)
	require.NoError(t, err)
	require.Len(t, resumes, 1)
	assert.Equal(t, resumeID, resumes[0].ID)
	assert.Equal(t, "resumes/cv.tex", resumes[0].ObjectKey)
	assert.Equal(t, sessionID, resumes[0].SessionID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSessionStatus(t *testing.T) {
	q, mock := newMock(t)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE tailor_sessions")).
		WithArgs("failed", "missing job description", id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := q.UpdateSessionStatus(context.Background(), UpdateSessionStatusParams{
		Status:        "failed",
		StatusMessage: "missing job description",
		ID:            id,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrUpdateTailoredResults(t *testing.T) {
	q, mock := newMock(t)
	sessionID := uuid.New()
	results := json.RawMessage(`[{"resume_id":"x"}]`)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO tailored_results")).
		WithArgs(results, sessionID).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := q.CreateOrUpdateTailoredResults(context.Background(), CreateOrUpdateTailoredResultsParams{
		Results:   results,
		SessionID: sessionID,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTailoredResultsBySession(t *testing.T) {
	q, mock := newMock(t)
	sessionID := uuid.New()
	id := uuid.New()
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "results", "created_at", "updated_at", "session_id"}).
		AddRow(id.String(), []byte(`[]`), now, now, sessionID.String())
	mock.ExpectQuery(regexp.QuoteMeta("FROM tailored_results")).WithArgs(sessionID).WillReturnRows(rows)

	got, err := q.GetTailoredResultsBySession(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.JSONEq(t, `[]`, string(got.Results))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTailorSession(t *testing.T) {
	q, mock := newMock(t)
	id := uuid.New()
	userID := uuid.New()
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at", "name", "user_id", "status", "status_message", "job_title", "job_description"}).
		AddRow(id.String(), now, now, "backend roles", userID.String(), "completed", "tailoring completed", "Backend Engineer", "Go, Postgres")
	mock.ExpectQuery(regexp.QuoteMeta("FROM tailor_sessions")).WithArgs(id).WillReturnRows(rows)

	s, err := q.GetTailorSession(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "completed", s.Status)
	assert.Equal(t, "Backend Engineer", s.JobTitle)
	assert.NoError(t, mock.ExpectationsWereMet())
}
