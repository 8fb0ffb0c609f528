package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	require.Equal(t, slog.LevelError, ParseLevel(" error "))
	require.Equal(t, slog.LevelInfo, ParseLevel(""))
	require.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNewLogger_JSONByDefault(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, "", slog.LevelInfo).Info("order placed", slog.String("order.number", "ORD000001"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "order placed", entry["msg"])
	require.Equal(t, "ORD000001", entry["order.number"])
	require.Contains(t, entry, "source")
}

func TestNewLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, "text", slog.LevelWarn).Info("hidden")
	require.Empty(t, buf.String())
	NewLogger(&buf, "text", slog.LevelWarn).Warn("shown")
	require.Contains(t, buf.String(), "msg=shown")
}
