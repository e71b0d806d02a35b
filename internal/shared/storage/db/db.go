package db

import (
	"context"
	"database/sql"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as database/sql driver
	"github.com/rotisserie/eris"

	"aerogap-backend/internal/shared/telemetry"
)

// Options controls the connection pool and startup checks.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
	// PingAttempts is how many times Connect pings before giving up.
	PingAttempts int
	RetryDelay   time.Duration
}

var openDB = sql.Open

// DefaultWorkerOptions suits the report worker, which touches the database
// once per job.
func DefaultWorkerOptions() Options {
	return Options{
		MaxOpenConns:    2,
		MaxIdleConns:    1,
		ConnMaxIdleTime: 30 * time.Second,
		ConnMaxLifetime: 15 * time.Minute,
		PingTimeout:     3 * time.Second,
		PingAttempts:    3,
		RetryDelay:      time.Second,
	}
}

// DefaultServerOptions suits the API server.
func DefaultServerOptions() Options {
	return Options{
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxIdleTime: 2 * time.Minute,
		ConnMaxLifetime: time.Hour,
		PingTimeout:     5 * time.Second,
		PingAttempts:    3,
		RetryDelay:      2 * time.Second,
	}
}

// DefaultMigrateOptions suits one-shot migration runs.
func DefaultMigrateOptions() Options {
	return Options{
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		PingTimeout:  5 * time.Second,
		PingAttempts: 5,
		RetryDelay:   2 * time.Second,
	}
}

// OptionsFromEnv overrides defaults with DB_* environment variables.
func OptionsFromEnv(defaults Options) Options {
	return optionsFrom(defaults, os.LookupEnv)
}

func optionsFrom(opts Options, lookup func(string) (string, bool)) Options {
	ints := map[string]*int{
		"DB_MAX_OPEN_CONNS": &opts.MaxOpenConns,
		"DB_MAX_IDLE_CONNS": &opts.MaxIdleConns,
		"DB_PING_ATTEMPTS":  &opts.PingAttempts,
	}
	for key, dst := range ints {
		raw, ok := lookup(key)
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			telemetry.Warn("db.env_invalid", map[string]any{"key": key, "error": err.Error()})
			continue
		}
		*dst = v
	}

	durations := map[string]*time.Duration{
		"DB_CONN_MAX_LIFETIME":  &opts.ConnMaxLifetime,
		"DB_CONN_MAX_IDLE_TIME": &opts.ConnMaxIdleTime,
		"DB_PING_TIMEOUT":       &opts.PingTimeout,
		"DB_RETRY_DELAY":        &opts.RetryDelay,
	}
	for key, dst := range durations {
		raw, ok := lookup(key)
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		v, err := time.ParseDuration(strings.TrimSpace(raw))
		if err != nil {
			telemetry.Warn("db.env_invalid", map[string]any{"key": key, "error": err.Error()})
			continue
		}
		*dst = v
	}
	return opts
}

// Connect opens a Postgres pool and pings it, retrying while the database
// is still starting. Callers share the returned pool.
func Connect(ctx context.Context, databaseURL string, opts Options) (*sql.DB, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, eris.New("DATABASE_URL is empty")
	}

	db, err := openDB("pgx", databaseURL)
	if err != nil {
		return nil, eris.Wrap(err, "open database")
	}
	applyOptions(db, opts)

	attempts := max(opts.PingAttempts, 1)
	for attempt := 1; ; attempt++ {
		err = Check(ctx, db, opts.PingTimeout)
		if err == nil {
			break
		}
		if attempt >= attempts || ctx.Err() != nil {
			db.Close()
			return nil, eris.Wrapf(err, "ping database after %d attempt(s)", attempt)
		}
		telemetry.Warn("db.ping_retry", map[string]any{"attempt": attempt, "error": err.Error()})
		select {
		case <-ctx.Done():
			db.Close()
			return nil, eris.Wrap(ctx.Err(), "ping database")
		case <-time.After(opts.RetryDelay):
		}
	}

	stats := db.Stats()
	telemetry.Info("db.connected", map[string]any{
		"max_open": stats.MaxOpenConnections,
		"open":     stats.OpenConnections,
	})
	return db, nil
}

// Check pings db within timeout (5s when unset).
func Check(ctx context.Context, db *sql.DB, timeout time.Duration) error {
	if db == nil {
		return eris.New("database not configured")
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return db.PingContext(pingCtx)
}

func applyOptions(db *sql.DB, opts Options) {
	if opts.MaxOpenConns <= 0 {
		opts.MaxOpenConns = 10
	}
	if opts.MaxIdleConns <= 0 {
		opts.MaxIdleConns = 5
	}
	if opts.ConnMaxLifetime <= 0 {
		opts.ConnMaxLifetime = time.Hour
	}
	db.SetMaxOpenConns(opts.MaxOpenConns)
	db.SetMaxIdleConns(opts.MaxIdleConns)
	db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	if opts.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(opts.ConnMaxIdleTime)
	}
}
