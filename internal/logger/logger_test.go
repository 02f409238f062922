package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNewLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("task-manager-server")
	l.Logger = l.Output(&buf)

	l.Info().Msg("hello")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "task-manager-server", entry["role"])
	assert.Contains(t, entry, zerolog.TimestampFieldName)
	assert.Contains(t, entry, "func")
	assert.Equal(t, "hello", entry["message"])
}

func TestNewLogger_Globals(t *testing.T) {
	NewLogger("first")
	NewLogger("second")

	assert.Equal(t, "func", zerolog.CallerFieldName)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestNewClientLogger_SkipsDebug(t *testing.T) {
	var buf bytes.Buffer
	l := NewClientLogger("cli")
	l.Logger = l.Output(&buf)

	l.Debug().Msg("hidden")
	assert.Empty(t, buf.String())

	l.Info().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Error().Msg("should be discarded")

	assert.Empty(t, buf.String())
}

func TestGetChildLogger_InheritsFields(t *testing.T) {
	var buf bytes.Buffer
	parent := &Logger{zerolog.New(&buf).With().Str("role", "parent").Logger()}

	child := parent.GetChildLogger()
	assert.NotSame(t, parent, child)

	child.Info().Msg("child message")
	assert.Equal(t, "parent", decodeEntry(t, &buf)["role"])
}

func TestWithTraceID(t *testing.T) {
	var buf bytes.Buffer
	base := &Logger{zerolog.New(&buf).With().Str("role", "api").Logger()}

	ctx := base.WithTraceID(context.Background(), "trace-123")
	FromContext(ctx).Info().Msg("inside request")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "trace-123", entry[TraceIDField])
	assert.Equal(t, "api", entry["role"])

	buf.Reset()
	base.Info().Msg("outside request")
	assert.NotContains(t, decodeEntry(t, &buf), TraceIDField, "parent logger must stay untagged")
}

func TestFromContext_WithoutLogger(t *testing.T) {
	l := FromContext(context.Background())
	require.NotNil(t, l)

	// must not panic
	l.Info().Msg("dropped")
}

func TestFromRequest_ReturnsAttachedLogger(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("req-key", "req-value").Logger()

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req = req.WithContext(zl.WithContext(req.Context()))

	FromRequest(req).Info().Msg("from request")

	assert.Equal(t, "req-value", decodeEntry(t, &buf)["req-key"])
}
