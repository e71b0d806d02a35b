package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/rotisserie/eris"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const submissionColumns = `id, email, company_name, contact_name, phone, consent_to_contact, quiz_answers, flagged_areas, requested_full_review, created_at`

func (r *PGRepo) Create(ctx context.Context, sub Submission) error {
	const query = `
INSERT INTO quiz_submissions (` + submissionColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	answers, err := json.Marshal(sub.QuizAnswers)
	if err != nil {
		return eris.Wrap(err, "marshal quiz answers")
	}
	flagged := sub.FlaggedAreas
	if flagged == nil {
		flagged = []string{}
	}
	areas, err := json.Marshal(flagged)
	if err != nil {
		return eris.Wrap(err, "marshal flagged areas")
	}

	var phone sql.NullString
	if sub.Phone != "" {
		phone = sql.NullString{String: sub.Phone, Valid: true}
	}

	_, err = r.DB.ExecContext(ctx, query,
		sub.ID,
		sub.Email,
		sub.CompanyName,
		sub.ContactName,
		phone,
		sub.ConsentToContact,
		answers,
		areas,
		sub.RequestedFullReview,
		sub.CreatedAt,
	)
	if err != nil {
		return eris.Wrap(err, "insert quiz submission")
	}
	return nil
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM quiz_submissions WHERE id = $1`
	sub, err := scanSubmission(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Submission{}, ErrNotFound
		}
		return Submission{}, err
	}
	return sub, nil
}

func (r *PGRepo) MarkFullReview(ctx context.Context, id string) error {
	const query = `UPDATE quiz_submissions SET requested_full_review = TRUE WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return eris.Wrap(err, "mark full review")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns submissions newest first.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Submission, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + submissionColumns + ` FROM quiz_submissions ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, eris.Wrap(err, "list quiz submissions")
	}
	defer rows.Close()

	out := []Submission{}
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row rowScanner) (Submission, error) {
	var (
		sub     Submission
		phone   sql.NullString
		answers []byte
		areas   []byte
	)
	if err := row.Scan(
		&sub.ID,
		&sub.Email,
		&sub.CompanyName,
		&sub.ContactName,
		&phone,
		&sub.ConsentToContact,
		&answers,
		&areas,
		&sub.RequestedFullReview,
		&sub.CreatedAt,
	); err != nil {
		return Submission{}, err
	}
	if phone.Valid {
		sub.Phone = phone.String
	}
	if len(answers) > 0 {
		if err := json.Unmarshal(answers, &sub.QuizAnswers); err != nil {
			return Submission{}, eris.Wrap(err, "decode quiz answers")
		}
	}
	if len(areas) > 0 {
		if err := json.Unmarshal(areas, &sub.FlaggedAreas); err != nil {
			return Submission{}, eris.Wrap(err, "decode flagged areas")
		}
	}
	return sub, nil
}

var _ Repo = (*PGRepo)(nil)
