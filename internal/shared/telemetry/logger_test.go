package telemetry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestEventsCarryFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	Use(zap.New(core))
	t.Cleanup(func() { Use(nil) })

	Info("request.complete", map[string]any{"status": 200, "path": "/healthz"})
	Warn("gapanalysis.summary_failed", map[string]any{"error": errors.New("boom")})
	Error("report.email_failed", nil)

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "request.complete", entries[0].Message)
	assert.Equal(t, int64(200), entries[0].ContextMap()["status"])
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
	assert.Equal(t, zap.ErrorLevel, entries[2].Level)
}

func TestInitRejectsBadLevel(t *testing.T) {
	assert.Error(t, Init("json", "loud"))
	require.NoError(t, Init("console", "debug"))
	t.Cleanup(func() { Use(nil) })
}
