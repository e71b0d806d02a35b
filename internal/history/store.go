// Package history keeps a local SQLite log of gapcheck runs.
package history

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// Run is one recorded analysis.
type Run struct {
	ID           string    `json:"id"`
	Source       string    `json:"source"`
	CompanyName  string    `json:"companyName"`
	OverallScore int       `json:"overallScore"`
	GapCount     int       `json:"gapCount"`
	HighGaps     int       `json:"highGaps"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Store is a SQLite-backed run log.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id            TEXT PRIMARY KEY,
	source        TEXT NOT NULL,
	company_name  TEXT NOT NULL DEFAULT '',
	overall_score INTEGER NOT NULL,
	gap_count     INTEGER NOT NULL,
	high_gaps     INTEGER NOT NULL DEFAULT 0,
	created_at    TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

// timeLayout is fixed width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// DefaultPath is ~/.gapcheck/history.db.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", eris.Wrap(err, "history: home dir")
	}
	return filepath.Join(home, ".gapcheck", "history.db"), nil
}

// Open opens (creating if needed) the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, eris.Wrap(err, "history: create dir")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "history: open")
	}
	db.SetMaxOpenConns(1)
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "history: exec %s", pragma)
		}
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "history: migrate")
	}
	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores run, filling in the ID and timestamp when empty.
func (s *Store) Record(ctx context.Context, run Run) (Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = s.now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, source, company_name, overall_score, gap_count, high_gaps, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Source, run.CompanyName, run.OverallScore, run.GapCount, run.HighGaps,
		run.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return Run{}, eris.Wrap(err, "history: insert run")
	}
	return run, nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, company_name, overall_score, gap_count, high_gaps, created_at
		 FROM runs ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "history: query runs")
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			run     Run
			created string
		)
		if err := rows.Scan(&run.ID, &run.Source, &run.CompanyName, &run.OverallScore, &run.GapCount, &run.HighGaps, &created); err != nil {
			return nil, eris.Wrap(err, "history: scan run")
		}
		run.CreatedAt, err = time.Parse(timeLayout, created)
		if err != nil {
			return nil, eris.Wrapf(err, "history: parse created_at for %s", run.ID)
		}
		out = append(out, run)
	}
	return out, eris.Wrap(rows.Err(), "history: iterate runs")
}
