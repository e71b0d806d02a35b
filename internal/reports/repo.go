package reports

import "context"

// Repo defines persistence operations for report records.
type Repo interface {
	// Create inserts r, returning ErrAlreadyExists when the id is taken.
	Create(ctx context.Context, r Report) error
	MarkEmailSent(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Report, error)
	ListAll(ctx context.Context, limit, offset int) ([]Report, error)
	ListByUser(ctx context.Context, userID string) ([]Report, error)
}
