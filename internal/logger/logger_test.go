package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesServiceAndLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn")

	log.Info().Msg("dropped")
	assert.Zero(t, buf.Len())

	log.Warn().Str("query_id", "abc").Msg("kept")
	var ev map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &ev))
	assert.Equal(t, ServiceName, ev["service"])
	assert.Equal(t, "abc", ev["query_id"])
	assert.Equal(t, "warn", ev["level"])
	assert.Contains(t, ev, "time")
}

func TestErrorEventsCarryStack(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "debug")

	log.Error().Stack().Err(errors.New("boom")).Msg("failed")
	var ev map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &ev))
	assert.Equal(t, "boom", ev["error"])
	assert.NotEmpty(t, ev["stack"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel(" error "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("chatty"))
}

func TestOpenFileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	f, err := OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	log := New(f, "info")
	log.Info().Msg("hello")
	assert.FileExists(t, path)
}
