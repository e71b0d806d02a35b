package local

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"aerogap-backend/internal/shared/storage/object"
)

// Store implements ObjectStore using the local filesystem.
type Store struct {
	baseDir string
}

// New creates a new local object store rooted at baseDir.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Save writes the reader to disk under the owner's namespace with a random prefix.
func (s *Store) Save(ctx context.Context, ownerID string, fileName string, r io.Reader) (object.Stored, error) {
	key, err := object.NewKey(ownerID, fileName)
	if err != nil {
		return object.Stored{}, eris.Wrap(err, "storage key")
	}
	if err := ctx.Err(); err != nil {
		return object.Stored{}, err
	}
	size, mimeType, err := s.write(key, r, true)
	if err != nil {
		return object.Stored{}, err
	}
	return object.Stored{
		Key:       key,
		SizeBytes: size,
		MimeType:  mimeType,
	}, nil
}

// Open opens a stored object for reading.
func (s *Store) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fullPath, err := s.resolve(storageKey)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(fullPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, object.ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "open object")
	}
	return f, nil
}

// SaveWithKey writes the reader to disk at a specific storage key. The
// content type is only meaningful to remote stores.
func (s *Store) SaveWithKey(ctx context.Context, storageKey string, _ string, r io.Reader) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	size, _, err := s.write(storageKey, r, false)
	return size, err
}

// write streams r to the file for key. A failed write removes the file so
// no partial object is left behind.
func (s *Store) write(key string, r io.Reader, sniff bool) (size int64, mimeType string, err error) {
	fullPath, err := s.resolve(key)
	if err != nil {
		return 0, "", err
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return 0, "", eris.Wrap(err, "mkdir")
	}
	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, "", eris.Wrap(err, "open file")
	}
	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = eris.Wrap(closeErr, "close file")
		}
		if err != nil {
			_ = os.Remove(fullPath)
		}
	}()

	if sniff {
		var head [512]byte
		n, readErr := io.ReadFull(r, head[:])
		if readErr != nil && readErr != io.EOF && readErr != io.ErrUnexpectedEOF {
			return 0, "", eris.Wrap(readErr, "read sniff")
		}
		mimeType = http.DetectContentType(head[:n])
		if n > 0 {
			if _, err := f.Write(head[:n]); err != nil {
				return 0, "", eris.Wrap(err, "write sniff")
			}
			size = int64(n)
		}
	}

	written, err := io.Copy(f, r)
	if err != nil {
		return 0, "", eris.Wrap(err, "write body")
	}
	return size + written, mimeType, nil
}

// Delete removes a stored object. Missing objects are not an error.
func (s *Store) Delete(ctx context.Context, storageKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fullPath, err := s.resolve(storageKey)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return eris.Wrap(err, "remove object")
	}
	return nil
}

func (s *Store) resolve(storageKey string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(storageKey))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", eris.New("invalid storage key")
	}
	return filepath.Join(s.baseDir, clean), nil
}

var _ object.ObjectStore = (*Store)(nil)
