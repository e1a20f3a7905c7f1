package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTagsSession(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, zerolog.DebugLevel, "abc-123")
	log.Info().Str("area", "Bridge").Msg("moved")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "abc-123", line["session"])
	assert.Equal(t, "Bridge", line["area"])
	assert.Equal(t, "moved", line["message"])
	assert.Contains(t, line, "time")
}

func TestNewHonorsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, zerolog.WarnLevel, "")
	log.Info().Msg("hidden")
	assert.Empty(t, buf.String())
}

func TestSetupFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.log")
	log, closer, err := Setup("debug", path, "s1")
	require.NoError(t, err)
	log.Debug().Msg("hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"hello"`)
	assert.Contains(t, string(data), `"session":"s1"`)
}

func TestSetupRejectsBadLevel(t *testing.T) {
	_, _, err := Setup("loud", "", "")
	assert.Error(t, err)
}

func TestSetupDisabled(t *testing.T) {
	log, closer, err := Setup("info", "", "")
	require.NoError(t, err)
	assert.Equal(t, zerolog.Disabled, log.GetLevel())
	assert.NoError(t, closer.Close())
}
