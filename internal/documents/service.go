package documents

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"aerogap-backend/internal/assessment"
	"aerogap-backend/internal/extract"
	"aerogap-backend/internal/shared/storage/object"
	"aerogap-backend/internal/shared/telemetry"
)

const (
	MaxDocumentsPerUser = 20
	MaxFileSize         = 25 << 20

	excerptChars = 1500
)

// AllowedExtensions lists the accepted upload file types.
var AllowedExtensions = []string{".pdf", ".doc", ".docx", ".xls", ".xlsx", ".txt", ".csv", ".png", ".jpg", ".jpeg"}

// Service contains business logic for documents.
type Service struct {
	Store object.ObjectStore
	Repo  Repo
	Now   func() time.Time
}

// Upload stores the file and records it for the user.
func (s *Service) Upload(ctx context.Context, userID, fileName string, r io.Reader) (Document, error) {
	fileName = strings.TrimSpace(fileName)
	if userID == "" || fileName == "" {
		return Document{}, ErrInvalidInput
	}
	if !allowedExtension(fileName) {
		return Document{}, fmt.Errorf("%w: %s", ErrUnsupportedExt, filepath.Ext(fileName))
	}

	count, err := s.Repo.CountByUser(ctx, userID)
	if err != nil {
		return Document{}, err
	}
	if count >= MaxDocumentsPerUser {
		return Document{}, ErrLimitReached
	}

	stored, err := s.Store.Save(ctx, userID, fileName, io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return Document{}, eris.Wrap(err, "save document")
	}
	if stored.SizeBytes > MaxFileSize {
		_ = s.Store.Delete(ctx, stored.Key)
		return Document{}, ErrTooLarge
	}

	doc := Document{
		ID:         uuid.NewString(),
		UserID:     userID,
		FileName:   fileName,
		MimeType:   stored.MimeType,
		SizeBytes:  stored.SizeBytes,
		StorageKey: stored.Key,
		CreatedAt:  s.now(),
	}
	if err := s.Repo.Create(ctx, doc); err != nil {
		_ = s.Store.Delete(ctx, stored.Key)
		return Document{}, err
	}
	return doc, nil
}

// List returns the user's documents newest first.
func (s *Service) List(ctx context.Context, userID string) ([]Document, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID)
}

// Delete removes the record and its stored object.
func (s *Service) Delete(ctx context.Context, userID, documentID string) error {
	if userID == "" || documentID == "" {
		return ErrInvalidInput
	}
	doc, err := s.Repo.Get(ctx, userID, documentID)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, userID, documentID); err != nil {
		return err
	}
	for _, key := range []string{doc.StorageKey, doc.StorageKey + ".extracted.txt"} {
		if err := s.Store.Delete(ctx, key); err != nil {
			telemetry.Warn("documents.delete_object_failed", map[string]any{
				"document_id": documentID,
				"error":       err.Error(),
			})
		}
	}
	return nil
}

// Excerpts returns the leading text of each readable document. Documents
// that cannot be read or extracted are skipped.
func (s *Service) Excerpts(ctx context.Context, docs []assessment.UploadedDocument) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		if d.StorageKey == "" {
			continue
		}
		text, err := extract.ExtractText(ctx, s.Store, d.StorageKey, "", d.FileName)
		if err != nil {
			telemetry.Info("documents.extract_skipped", map[string]any{
				"file_name": d.FileName,
				"error":     err.Error(),
			})
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if r := []rune(text); len(r) > excerptChars {
			text = string(r[:excerptChars])
		}
		out = append(out, fmt.Sprintf("%s:\n%s", d.FileName, text))
	}
	return out
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func allowedExtension(fileName string) bool {
	ext := strings.ToLower(filepath.Ext(fileName))
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
