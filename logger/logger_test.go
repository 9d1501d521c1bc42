package logger

import (
	"bytes"
	"encoding/json"
	"log"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var out []map[string]any

	for line := range strings.SplitSeq(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}

		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))

		out = append(out, m)
	}

	return out
}

func TestConfigureLogging(t *testing.T) { //nolint:paralleltest
	var buf bytes.Buffer

	ConfigureLoggingWithOptions(Options{
		Subsystem:   "soak",
		JSON:        true,
		MinLevel:    slog.LevelInfo,
		LegacyLevel: slog.LevelWarn,
		Output:      &buf,
	})

	slog.Debug("hidden")
	Get().Info("visible")
	log.Println("legacy")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)

	assert.Equal(t, "visible", lines[0]["msg"])
	assert.Equal(t, "soak", lines[0]["subsystem"])
	assert.Equal(t, "WARN", lines[1]["level"])

	buf.Reset()

	ConfigureLoggingWithOptions(Options{Subsystem: "soak", Output: &buf})
	slog.Info("plain")

	assert.Contains(t, buf.String(), "msg=plain")
	assert.Equal(t, "soak", GetSubsystem(t.Context()))
}

func TestContextLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	base := slog.New(slog.NewJSONHandler(&buf, nil))

	ctx := WithLogger(t.Context(), base)
	ctx = WithSubsystem(ctx, "trial")
	ctx = With(ctx, "trial", 3)
	sibling := With(ctx, "op", "add")
	ctx = With(ctx, "op", "remove")

	Get(ctx).Info("one")
	Get(sibling).Info("two")
	Get(WithMuted(ctx, true)).Error("muted")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)

	assert.Equal(t, "trial", lines[0]["subsystem"])
	assert.InDelta(t, 3, lines[0]["trial"], 0)
	assert.Equal(t, "remove", lines[0]["op"])
	assert.Equal(t, "add", lines[1]["op"])
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{" error ", slog.LevelError},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}

	_, err := ParseLevel("loud")
	require.ErrorIs(t, err, ErrInvalidLogLevel)
}

func TestFanOut(t *testing.T) {
	t.Parallel()

	var all, warn bytes.Buffer

	primary := slog.NewJSONHandler(&all, &slog.HandlerOptions{Level: slog.LevelDebug})
	extra := slog.NewJSONHandler(&warn, &slog.HandlerOptions{Level: slog.LevelWarn})

	assert.Equal(t, primary, fanOut(primary, nil))

	log := slog.New(fanOut(primary, extra, nil)).With("run", "r1")
	log.Debug("step")
	log.WithGroup("trial").Warn("mismatch", "op", "add")

	allLines := decodeLines(t, &all)
	warnLines := decodeLines(t, &warn)

	require.Len(t, allLines, 2)
	require.Len(t, warnLines, 1)
	assert.Equal(t, "r1", warnLines[0]["run"])
	assert.Equal(t, map[string]any{"op": "add"}, warnLines[0]["trial"])
}
