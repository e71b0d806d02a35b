package assessments

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/rotisserie/eris"

	"aerogap-backend/internal/assessment"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Get(ctx context.Context, userID string) (Session, error) {
	const query = `
SELECT user_id, assessment_data, current_step, analysis_result, updated_at
FROM assessment_sessions
WHERE user_id = $1`

	var (
		s         Session
		dataRaw   []byte
		resultRaw []byte
		updatedAt time.Time
	)
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(&s.UserID, &dataRaw, &s.CurrentStep, &resultRaw, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, eris.Wrap(err, "select assessment session")
	}
	if len(dataRaw) > 0 {
		if err := json.Unmarshal(dataRaw, &s.Data); err != nil {
			return Session{}, eris.Wrap(err, "decode assessment data")
		}
	}
	if len(resultRaw) > 0 {
		var result assessment.Result
		if err := json.Unmarshal(resultRaw, &result); err != nil {
			return Session{}, eris.Wrap(err, "decode analysis result")
		}
		s.Result = &result
	}
	s.UpdatedAt = updatedAt.UTC()
	return s, nil
}

func (r *PGRepo) Upsert(ctx context.Context, s Session) error {
	const query = `
INSERT INTO assessment_sessions (user_id, assessment_data, current_step, analysis_result, updated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (user_id) DO UPDATE SET
	assessment_data = EXCLUDED.assessment_data,
	current_step = EXCLUDED.current_step,
	analysis_result = EXCLUDED.analysis_result,
	updated_at = EXCLUDED.updated_at`

	data, err := json.Marshal(s.Data)
	if err != nil {
		return eris.Wrap(err, "marshal assessment data")
	}
	var result []byte
	if s.Result != nil {
		if result, err = json.Marshal(s.Result); err != nil {
			return eris.Wrap(err, "marshal analysis result")
		}
	}
	if _, err := r.DB.ExecContext(ctx, query, s.UserID, data, s.CurrentStep, nullJSON(result), s.UpdatedAt); err != nil {
		return eris.Wrap(err, "upsert assessment session")
	}
	return nil
}

func (r *PGRepo) SaveResult(ctx context.Context, userID string, result assessment.Result, at time.Time) error {
	const query = `UPDATE assessment_sessions SET analysis_result = $2, updated_at = $3 WHERE user_id = $1`

	payload, err := json.Marshal(result)
	if err != nil {
		return eris.Wrap(err, "marshal analysis result")
	}
	res, err := r.DB.ExecContext(ctx, query, userID, payload, at)
	if err != nil {
		return eris.Wrap(err, "update analysis result")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Delete(ctx context.Context, userID string) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM assessment_sessions WHERE user_id = $1`, userID); err != nil {
		return eris.Wrap(err, "delete assessment session")
	}
	return nil
}

func nullJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return b
}
