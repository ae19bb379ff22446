package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithFormat_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithFormat(&buf, int(slog.LevelInfo), "json")

	l.Info("Post service: created", "post_id", "p1")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "Post service: created", rec["msg"])
	assert.Equal(t, "p1", rec["post_id"])
}

func TestNewWithFormat_TextRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithFormat(&buf, int(slog.LevelWarn), "text")

	l.Info("hidden")
	assert.Empty(t, buf.String())

	l.Warn("shown", "k", "v")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "k=v")
}
