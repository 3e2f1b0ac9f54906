package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"":         zerolog.InfoLevel,
		"debug":    zerolog.DebugLevel,
		" INFO ":   zerolog.InfoLevel,
		"warn":     zerolog.WarnLevel,
		"error":    zerolog.ErrorLevel,
		"trace":    zerolog.TraceLevel,
		"disabled": zerolog.Disabled,
	}
	for input, want := range tests {
		got, err := ParseLevel(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatConsole, f)

	_, err = ParseFormat("logfmt")
	assert.Error(t, err)
}

func decode(t *testing.T, line []byte) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(line, &entry))
	return entry
}

func TestZerologAdapterFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, zerolog.DebugLevel)

	log.Info("ImageService", "image loaded", map[string]interface{}{"width": 400})
	entry := decode(t, buf.Bytes())
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "ImageService", entry["component"])
	assert.Equal(t, "image loaded", entry["message"])
	assert.Equal(t, float64(400), entry["width"])

	buf.Reset()
	log.Error("Pipeline", errors.New("boom"), nil)
	entry = decode(t, buf.Bytes())
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "boom", entry["error"])
}

func TestZerologAdapterLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, zerolog.WarnLevel)

	log.Debug("c", "hidden", nil)
	log.Info("c", "hidden", nil)
	assert.Zero(t, buf.Len())

	log.Warning("c", "shown", nil)
	assert.Equal(t, "warn", decode(t, buf.Bytes())["level"])
}

func TestNopLogger(t *testing.T) {
	var l Logger = NewNop()
	assert.NotPanics(t, func() {
		l.Info("c", "m", map[string]interface{}{"k": 1})
		l.Error("c", errors.New("e"), nil)
	})
}
