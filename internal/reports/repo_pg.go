package reports

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rotisserie/eris"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const reportColumns = `id, user_id, company_name, overall_score, file_name, storage_key, email_sent, created_at`

func (r *PGRepo) Create(ctx context.Context, rep Report) error {
	const query = `
INSERT INTO reports (id, user_id, company_name, overall_score, file_name, storage_key, email_sent, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO NOTHING`

	res, err := r.DB.ExecContext(ctx, query,
		rep.ID,
		rep.UserID,
		rep.CompanyName,
		rep.OverallScore,
		rep.FileName,
		rep.StorageKey,
		rep.EmailSent,
		rep.CreatedAt,
	)
	if err != nil {
		return eris.Wrap(err, "insert report")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "insert report rows affected")
	}
	if n == 0 {
		return ErrAlreadyExists
	}
	return nil
}

func (r *PGRepo) MarkEmailSent(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE reports SET email_sent = TRUE WHERE id = $1`, id)
	if err != nil {
		return eris.Wrap(err, "mark report emailed")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1`
	rep, err := scanReport(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Report{}, ErrNotFound
	}
	if err != nil {
		return Report{}, eris.Wrap(err, "select report")
	}
	return rep, nil
}

// ListAll returns reports newest first.
func (r *PGRepo) ListAll(ctx context.Context, limit, offset int) ([]Report, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + reportColumns + ` FROM reports ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, eris.Wrap(err, "list reports")
	}
	return collect(rows)
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, eris.Wrap(err, "list user reports")
	}
	return collect(rows)
}

func collect(rows *sql.Rows) ([]Report, error) {
	defer rows.Close()
	out := []Report{}
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, eris.Wrap(err, "scan report")
		}
		out = append(out, rep)
	}
	return out, eris.Wrap(rows.Err(), "iterate reports")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (Report, error) {
	var rep Report
	err := row.Scan(
		&rep.ID,
		&rep.UserID,
		&rep.CompanyName,
		&rep.OverallScore,
		&rep.FileName,
		&rep.StorageKey,
		&rep.EmailSent,
		&rep.CreatedAt,
	)
	rep.CreatedAt = rep.CreatedAt.UTC()
	return rep, err
}
