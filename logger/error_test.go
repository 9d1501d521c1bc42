//nolint:err113 // Test file uses errors.New() for creating test errors
package logger

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnotateError(t *testing.T) {
	t.Parallel()

	t.Run("nil stays nil", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, AnnotateError(nil, "key", "value"))
	})

	t.Run("keeps the message and the chain", func(t *testing.T) {
		t.Parallel()

		baseErr := errors.New("base error")
		annotated := AnnotateError(baseErr, "trial", 4, "seed", uint64(9))

		assert.Equal(t, "base error", annotated.Error())
		require.ErrorIs(t, annotated, baseErr)

		var se *slogError
		require.ErrorAs(t, annotated, &se)
		require.Len(t, se.attrs, 2)
		assert.Equal(t, "trial", se.attrs[0].Key)
		assert.Equal(t, "seed", se.attrs[1].Key)
	})
}

func TestErrorAttrsHandler(t *testing.T) {
	t.Parallel()

	t.Run("expands annotated errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		log := slog.New(ErrorAttrsHandler(slog.NewJSONHandler(&buf, nil)))

		err := fmt.Errorf("trial failed: %w", AnnotateError(errors.New("bad tree"), "trial", 7))
		log.Error("soak", "error", err, "op", "remove")

		lines := decodeLines(t, &buf)
		require.Len(t, lines, 1)
		assert.Equal(t, "trial failed: bad tree", lines[0]["error"])
		assert.Equal(t, "remove", lines[0]["op"])
		assert.InDelta(t, 7, lines[0]["trial"], 0)
	})

	t.Run("leaves plain errors alone", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		log := slog.New(ErrorAttrsHandler(slog.NewJSONHandler(&buf, nil))).With("run", "r1")
		log.WithGroup("g").Warn("plain", "error", errors.New("boom"))

		lines := decodeLines(t, &buf)
		require.Len(t, lines, 1)
		assert.Equal(t, "r1", lines[0]["run"])
		assert.Equal(t, map[string]any{"error": "boom"}, lines[0]["g"])
	})
}
