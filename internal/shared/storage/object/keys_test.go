package object

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanFileName(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "manual.pdf", want: "manual.pdf"},
		{in: "  qa/manual.pdf ", want: "manual.pdf"},
		{in: `c:\docs\rsm.docx`, want: "rsm.docx"},
		{in: "cal\x00ibration\n.xlsx", want: "calibration.xlsx"},
		{in: "../etc/passwd", want: "passwd"},
		{in: "..", wantErr: true},
		{in: "..hidden", wantErr: true},
		{in: "   ", wantErr: true},
		{in: "docs/", want: "docs"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := CleanFileName(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidName)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCleanFileNameShortensKeepingExtension(t *testing.T) {
	got, err := CleanFileName(strings.Repeat("é", 150) + ".pdf")
	require.NoError(t, err)
	assert.LessOrEqual(t, len(got), maxFileNameLen)
	assert.True(t, strings.HasSuffix(got, ".pdf"))
	assert.True(t, utf8.ValidString(got))
}

func TestOwnerPrefixStableHex(t *testing.T) {
	a := OwnerPrefix("guest:3f2a")
	assert.Equal(t, a, OwnerPrefix("guest:3f2a"))
	assert.NotEqual(t, a, OwnerPrefix("guest:3f2b"))
	assert.Len(t, a, 64)
	assert.Equal(t, strings.ToLower(a), a)
}

func TestNewKey(t *testing.T) {
	key, err := NewKey("user-1", "qa/RSM rev4.pdf")
	require.NoError(t, err)
	owner, rest, ok := strings.Cut(key, "/")
	require.True(t, ok)
	assert.Equal(t, OwnerPrefix("user-1"), owner)
	assert.True(t, strings.HasSuffix(rest, "_RSM rev4.pdf"))
	assert.Len(t, rest, 36+1+len("RSM rev4.pdf"))

	_, err = NewKey("user-1", "..")
	assert.ErrorIs(t, err, ErrInvalidName)
}
