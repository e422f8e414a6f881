package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("qualquer"))
}

func TestSlogLogger_WritesJSONWithFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "info")

	l.Info("filme criado", map[string]interface{}{"id": 7})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "filme criado", entry["msg"])
	assert.EqualValues(t, 7, entry["id"])
}

func TestSlogLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "error")

	l.Debug("ignorado", nil)
	l.Info("ignorado", nil)
	assert.Empty(t, buf.String())

	l.Error("falha", errors.New("db fora"))
	assert.Contains(t, buf.String(), "db fora")
}

func TestSlogLogger_FatalExits(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "info")
	code := -1
	l.exit = func(c int) { code = c }

	l.Fatal("não foi possível iniciar", errors.New("porta em uso"))

	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "porta em uso")
}
