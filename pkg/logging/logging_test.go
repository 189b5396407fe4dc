package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONWithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := Component(New("debug", FormatJSON, &buf), "ingest")

	l.Info().Str("id", "42").Msg("ingest.job.completed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "ingest", entry["component"])
	assert.Equal(t, "42", entry["id"])
	assert.Equal(t, "ingest.job.completed", entry["message"])
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := New("warn", FormatJSON, &buf)

	l.Info().Msg("dropped")
	assert.Zero(t, buf.Len())

	l.Warn().Msg("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestComponent_DoesNotLeakIntoParent(t *testing.T) {
	var buf bytes.Buffer
	parent := New("info", FormatJSON, &buf)
	_ = Component(parent, "http")

	parent.Info().Msg("plain")
	assert.NotContains(t, buf.String(), "component")
}

func TestNop(t *testing.T) {
	Nop().Error().Msg("nothing happens")
}
