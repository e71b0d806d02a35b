package documents

import "context"

// Repo defines persistence operations for documents.
type Repo interface {
	Create(ctx context.Context, doc Document) error
	Get(ctx context.Context, userID, documentID string) (Document, error)
	ListByUser(ctx context.Context, userID string) ([]Document, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	Delete(ctx context.Context, userID, documentID string) error
}
