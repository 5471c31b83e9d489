package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedLogger(severity Severity) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := NewLogger(Config{
		Severity: severity,
		Outputs:  []Output{&ConsoleOutput{writer: &buf}},
	})
	return logger, &buf
}

func TestSeverity(t *testing.T) {
	t.Run("string round trip", func(t *testing.T) {
		for _, s := range []Severity{DEBUG, INFO, WARN, ERROR, FATAL} {
			assert.Equal(t, s, ParseSeverity(s.String()))
		}
	})

	t.Run("unknown level defaults to INFO", func(t *testing.T) {
		assert.Equal(t, INFO, ParseSeverity("VERBOSE"))
		assert.Equal(t, INFO, ParseSeverity(""))
	})
}

func TestLoggerFiltering(t *testing.T) {
	logger, buf := newBufferedLogger(WARN)
	ctx := context.Background()

	logger.Debug(ctx, "invisible")
	logger.Info(ctx, "also invisible")
	logger.Warn(ctx, "visible warning")
	logger.Error(ctx, "visible error")

	out := buf.String()
	assert.NotContains(t, out, "invisible")
	assert.Contains(t, out, "visible warning")
	assert.Contains(t, out, "visible error")
}

func TestLoggerFormatting(t *testing.T) {
	logger, buf := newBufferedLogger(DEBUG)

	logger.Info(context.Background(), "generation %d scored %.2f", 3, 1.25)

	out := buf.String()
	assert.Contains(t, out, "generation 3 scored 1.25")
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "logger_test.go")
}

func TestContextCorrelation(t *testing.T) {
	logger, buf := newBufferedLogger(DEBUG)

	ctx := WithRunID(context.Background(), "run-abc")
	ctx = WithGeneration(ctx, 4)
	logger.Info(ctx, "evaluating")

	out := buf.String()
	assert.Contains(t, out, "[run=run-abc]")
	assert.Contains(t, out, "[gen=4]")
}

func TestContextAccessors(t *testing.T) {
	ctx := context.Background()

	_, ok := GetRunID(ctx)
	assert.False(t, ok)
	_, ok = GetGeneration(ctx)
	assert.False(t, ok)

	ctx = WithRunID(ctx, "run-1")
	ctx = WithGeneration(ctx, 0)

	runID, ok := GetRunID(ctx)
	require.True(t, ok)
	assert.Equal(t, "run-1", runID)

	generation, ok := GetGeneration(ctx)
	require.True(t, ok)
	assert.Equal(t, 0, generation)
}

func TestFormatFields(t *testing.T) {
	t.Run("long configurations are truncated", func(t *testing.T) {
		out := formatFields(map[string]interface{}{
			"configuration": strings.Repeat("1 0 ", 100),
		})
		assert.Contains(t, out, "...")
		assert.Less(t, len(out), 150)
	})

	t.Run("ordinary fields print in full", func(t *testing.T) {
		out := formatFields(map[string]interface{}{"expected": 25})
		assert.Contains(t, out, "expected=25")
	})

	t.Run("empty fields produce nothing", func(t *testing.T) {
		assert.Empty(t, formatFields(nil))
	})
}

func TestGlobalLogger(t *testing.T) {
	original := GetLogger()
	defer SetLogger(original)

	custom, buf := newBufferedLogger(DEBUG)
	SetLogger(custom)

	GetLogger().Info(context.Background(), "through the singleton")
	assert.Contains(t, buf.String(), "through the singleton")
}
