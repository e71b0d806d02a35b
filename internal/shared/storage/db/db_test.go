package db

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	prev := openDB
	openDB = func(driverName, dsn string) (*sql.DB, error) {
		return mockDB, nil
	}
	t.Cleanup(func() {
		openDB = prev
		_ = mockDB.Close()
	})
	return mock
}

func TestOptionsFromLookup(t *testing.T) {
	env := map[string]string{
		"DB_MAX_OPEN_CONNS":     "7",
		"DB_MAX_IDLE_CONNS":     "3",
		"DB_CONN_MAX_LIFETIME":  "20m",
		"DB_CONN_MAX_IDLE_TIME": "45s",
		"DB_PING_TIMEOUT":       "1s",
		"DB_PING_ATTEMPTS":      "oops",
	}
	opts := optionsFrom(DefaultServerOptions(), func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})

	assert.Equal(t, 7, opts.MaxOpenConns)
	assert.Equal(t, 3, opts.MaxIdleConns)
	assert.Equal(t, 20*time.Minute, opts.ConnMaxLifetime)
	assert.Equal(t, 45*time.Second, opts.ConnMaxIdleTime)
	assert.Equal(t, time.Second, opts.PingTimeout)
	assert.Equal(t, DefaultServerOptions().PingAttempts, opts.PingAttempts)
}

func TestOptionsFromEnv(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "4")
	opts := OptionsFromEnv(DefaultMigrateOptions())
	assert.Equal(t, 4, opts.MaxOpenConns)
	assert.Equal(t, 5, opts.PingAttempts)
}

func TestConnectRejectsEmptyURL(t *testing.T) {
	_, err := Connect(context.Background(), "  ", DefaultServerOptions())
	assert.Error(t, err)
}

func TestConnectRetriesPing(t *testing.T) {
	mock := withMockDB(t)
	mock.ExpectPing().WillReturnError(errors.New("the database system is starting up"))
	mock.ExpectPing()

	opts := DefaultServerOptions()
	opts.MaxOpenConns = 3
	opts.RetryDelay = time.Millisecond

	db, err := Connect(context.Background(), "postgres://ignored", opts)
	require.NoError(t, err)
	assert.Equal(t, 3, db.Stats().MaxOpenConnections)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConnectGivesUp(t *testing.T) {
	mock := withMockDB(t)
	mock.ExpectPing().WillReturnError(errors.New("refused"))
	mock.ExpectPing().WillReturnError(errors.New("refused"))
	mock.ExpectClose()

	opts := DefaultWorkerOptions()
	opts.PingAttempts = 2
	opts.RetryDelay = time.Millisecond

	_, err := Connect(context.Background(), "postgres://ignored", opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 attempt")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckNilDatabase(t *testing.T) {
	assert.Error(t, Check(context.Background(), nil, time.Second))
}
