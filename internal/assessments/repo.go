package assessments

import (
	"context"
	"time"

	"aerogap-backend/internal/assessment"
)

// Repo persists assessment sessions keyed by user.
type Repo interface {
	Get(ctx context.Context, userID string) (Session, error)
	Upsert(ctx context.Context, s Session) error
	SaveResult(ctx context.Context, userID string, result assessment.Result, at time.Time) error
	Delete(ctx context.Context, userID string) error
}
