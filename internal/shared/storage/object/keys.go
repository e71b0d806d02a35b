package object

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"path"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// ErrInvalidName is returned for file names that cannot be stored.
var ErrInvalidName = errors.New("invalid file name")

const maxFileNameLen = 180

// OwnerPrefix maps an owner ID (user or guest) to a stable, path-safe key
// segment so raw identifiers never appear in storage keys.
func OwnerPrefix(ownerID string) string {
	sum := sha256.Sum256([]byte(ownerID))
	return hex.EncodeToString(sum[:])
}

// CleanFileName reduces an uploaded name to a single safe path segment.
// Directory parts and control characters are dropped, and long names are
// shortened with the extension kept.
func CleanFileName(name string) (string, error) {
	name = strings.ReplaceAll(name, `\`, "/")
	name = path.Base(strings.TrimSpace(name))
	if name == "." || name == "/" || name == ".." || strings.HasPrefix(name, "..") {
		return "", ErrInvalidName
	}
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, name)
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrInvalidName
	}
	if len(name) > maxFileNameLen {
		ext := path.Ext(name)
		if len(ext) > 16 {
			ext = ""
		}
		stem := strings.TrimSuffix(name, ext)
		cut := maxFileNameLen - len(ext)
		for cut > 0 && !utf8Start(stem[cut]) {
			cut--
		}
		name = stem[:cut] + ext
	}
	return name, nil
}

func utf8Start(b byte) bool { return b&0xC0 != 0x80 }

// NewKey builds "<owner prefix>/<uuid>_<clean name>" for a new upload.
func NewKey(ownerID, fileName string) (string, error) {
	clean, err := CleanFileName(fileName)
	if err != nil {
		return "", err
	}
	return OwnerPrefix(ownerID) + "/" + uuid.NewString() + "_" + clean, nil
}
