package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_LevelFiltering(t *testing.T) {
	tests := []struct {
		level     string
		wantDebug bool
		wantInfo  bool
		wantWarn  bool
	}{
		{"debug", true, true, true},
		{"info", false, true, true},
		{"warn", false, false, true},
		{"error", false, false, false},
		{"bogus", false, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			l := New(tt.level, "text", &buf)
			l.Debug("d-msg")
			l.Info("i-msg")
			l.Warn("w-msg")

			out := buf.String()
			assert.Equal(t, tt.wantDebug, strings.Contains(out, "d-msg"))
			assert.Equal(t, tt.wantInfo, strings.Contains(out, "i-msg"))
			assert.Equal(t, tt.wantWarn, strings.Contains(out, "w-msg"))
		})
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	New("info", "json", &buf).Info("drew tree", "node_id", 1, "edges", 3)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "drew tree", rec["msg"])
	assert.Equal(t, float64(3), rec["edges"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}

func TestOpenFile(t *testing.T) {
	l, c, err := OpenFile("", "info", "text")
	require.NoError(t, err)
	assert.False(t, l.Enabled(t.Context(), slog.LevelError))
	assert.NoError(t, c.Close())

	path := filepath.Join(t.TempDir(), "logs", "view.log")
	l, c, err = OpenFile(path, "debug", "text")
	require.NoError(t, err)
	l.Debug("hello", "k", "v")
	require.NoError(t, c.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=hello k=v")
}
