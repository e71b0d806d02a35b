package assessments

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aerogap-backend/internal/assessment"
)

func TestPGRepoUpsertWithoutResult(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	at := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO assessment_sessions").
		WithArgs("user-1", []byte(`{"companyName":"Acme MRO"}`), 2, nil, at).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = (&PGRepo{DB: db}).Upsert(context.Background(), Session{
		UserID:      "user-1",
		Data:        assessment.Data{CompanyName: "Acme MRO"},
		CurrentStep: 2,
		UpdatedAt:   at,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepoGetDecodesPayloads(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	at := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"user_id", "assessment_data", "current_step", "analysis_result", "updated_at"}).
		AddRow("user-1", []byte(`{"companyName":"Acme MRO","jobMargin":"12%"}`), 4,
			[]byte(`{"companyName":"Acme MRO","overallScore":63,"gaps":[],"recommendations":[],"summaryInsights":[]}`), at)
	mock.ExpectQuery(regexp.QuoteMeta("FROM assessment_sessions")).
		WithArgs("user-1").
		WillReturnRows(rows)

	sess, err := (&PGRepo{DB: db}).Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "12%", sess.Data.JobMargin)
	assert.Equal(t, 4, sess.CurrentStep)
	require.NotNil(t, sess.Result)
	assert.Equal(t, 63, sess.Result.OverallScore)
	assert.Equal(t, at, sess.UpdatedAt)
}

func TestPGRepoGetWithoutResult(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows := sqlmock.NewRows([]string{"user_id", "assessment_data", "current_step", "analysis_result", "updated_at"}).
		AddRow("user-1", []byte(`{}`), 0, nil, time.Now())
	mock.ExpectQuery("FROM assessment_sessions").WillReturnRows(rows)

	sess, err := (&PGRepo{DB: db}).Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Nil(t, sess.Result)
}

func TestPGRepoGetNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("FROM assessment_sessions").WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	_, err = (&PGRepo{DB: db}).Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPGRepoSaveResultMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec("UPDATE assessment_sessions SET analysis_result").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = (&PGRepo{DB: db}).SaveResult(context.Background(), "missing", assessment.Result{}, time.Now())
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepoDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM assessment_sessions WHERE user_id = $1")).
		WithArgs("user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, (&PGRepo{DB: db}).Delete(context.Background(), "user-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
