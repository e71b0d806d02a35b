package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRecordFillsIDAndTimestamp(t *testing.T) {
	s := openTestStore(t)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	run, err := s.Record(context.Background(), Run{Source: "acme.yaml", CompanyName: "Acme MRO", OverallScore: 72, GapCount: 3, HighGaps: 1})
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, fixed, run.CreatedAt)
}

func TestRecentNewestFirstWithLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, name := range []string{"first", "second", "third"} {
		_, err := s.Record(ctx, Run{Source: name + ".yaml", CompanyName: name, OverallScore: 50 + i, CreatedAt: base.Add(time.Duration(i) * time.Hour)})
		require.NoError(t, err)
	}

	runs, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "third", runs[0].CompanyName)
	assert.Equal(t, "second", runs[1].CompanyName)
	assert.Equal(t, 52, runs[0].OverallScore)
	assert.True(t, runs[0].CreatedAt.Equal(base.Add(2*time.Hour)))
}

func TestRecentEmpty(t *testing.T) {
	s := openTestStore(t)
	runs, err := s.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
