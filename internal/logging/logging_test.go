package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVerbosity(t *testing.T) {
	tests := []struct {
		raw  string
		want Verbosity
	}{
		{"silent", VerbositySilent},
		{"ERRORS", VerbosityErrors},
		{" warn ", VerbosityWarn},
		{"info", VerbosityInfo},
		{"verbose", VerbosityVerbose},
		{"trace", VerbosityTrace},
		{"debug", VerbosityTrace},
	}
	for _, tt := range tests {
		got, err := ParseVerbosity(tt.raw)
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}

	_, err := ParseVerbosity("loud")
	require.Error(t, err)
}

func TestVerbosityLevels(t *testing.T) {
	assert.Equal(t, slog.LevelError, VerbosityErrors.Level())
	assert.Equal(t, slog.LevelWarn, VerbosityWarn.Level())
	assert.Equal(t, slog.LevelInfo, VerbosityInfo.Level())
	assert.Equal(t, slog.LevelDebug, VerbosityVerbose.Level())
	assert.Equal(t, LevelTrace, VerbosityTrace.Level())
	assert.True(t, VerbositySilent.IsSilent())
}

func TestNewFiltersByVerbosity(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, VerbosityWarn, FormatText)

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "msg=shown")
}

func TestNewTraceLevelName(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, VerbosityTrace, FormatJSON)

	logger.Log(context.Background(), LevelTrace, "valid link", slog.String("target", "a.md"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "TRACE", entry["level"])
	assert.Equal(t, "a.md", entry["target"])
}

func TestNewSilentDiscards(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, VerbositySilent, FormatText)
	logger.Error("nothing")
	assert.Empty(t, buf.String())
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatText, ParseFormat("text"))
	assert.Equal(t, FormatText, ParseFormat("yaml"))
}
