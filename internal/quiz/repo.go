package quiz

import "context"

// Repo persists quiz submissions.
type Repo interface {
	Create(ctx context.Context, sub Submission) error
	GetByID(ctx context.Context, id string) (Submission, error)
	MarkFullReview(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]Submission, error)
}
