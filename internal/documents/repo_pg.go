package documents

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

const documentColumns = `id, user_id, file_name, mime_type, size_bytes, storage_key, created_at`

func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (id, user_id, file_name, mime_type, size_bytes, storage_key, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.DB.ExecContext(ctx, query,
		doc.ID,
		doc.UserID,
		doc.FileName,
		doc.MimeType,
		doc.SizeBytes,
		doc.StorageKey,
		doc.CreatedAt,
	)
	return eris.Wrap(err, "insert document")
}

func (r *PGRepo) Get(ctx context.Context, userID, documentID string) (Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE user_id = $1 AND id = $2`

	doc, err := scanDocument(r.DB.QueryRowContext(ctx, query, userID, documentID))
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, eris.Wrap(err, "select document")
	}
	return doc, nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, eris.Wrap(err, "list documents")
	}
	defer rows.Close()

	docs := []Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, eris.Wrap(err, "scan document")
		}
		docs = append(docs, doc)
	}
	return docs, eris.Wrap(rows.Err(), "iterate documents")
}

func (r *PGRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents WHERE user_id = $1`, userID).Scan(&n)
	if err != nil {
		return 0, eris.Wrap(err, "count documents")
	}
	return n, nil
}

func (r *PGRepo) Delete(ctx context.Context, userID, documentID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM documents WHERE user_id = $1 AND id = $2`, userID, documentID)
	if err != nil {
		return eris.Wrap(err, "delete document")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "delete document rows affected")
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (Document, error) {
	var doc Document
	err := row.Scan(
		&doc.ID,
		&doc.UserID,
		&doc.FileName,
		&doc.MimeType,
		&doc.SizeBytes,
		&doc.StorageKey,
		&doc.CreatedAt,
	)
	doc.CreatedAt = doc.CreatedAt.UTC()
	return doc, err
}
