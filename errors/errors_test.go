package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinels(t *testing.T) {
	t.Parallel()

	sentinels := []error{
		ErrNotImplemented,
		ErrWrongType,
		ErrIndexOutOfRange,
		ErrConcurrentModification,
		ErrUnsupported,
		ErrNoSuchElement,
		ErrIllegalState,
		ErrNilComparator,
		ErrInvariant,
		ErrValidation,
	}

	t.Run("sentinels are distinct", func(t *testing.T) {
		t.Parallel()

		for i, a := range sentinels {
			for j, b := range sentinels {
				if i != j {
					assert.NotErrorIs(t, a, b)
				}
			}
		}
	})

	t.Run("sentinels survive wrapping", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("%w: index 7, size 3", ErrIndexOutOfRange)

		require.ErrorIs(t, err, ErrIndexOutOfRange)
		assert.Equal(t, "index out of range: index 7, size 3", err.Error())
	})
}

func TestCollection_Add(t *testing.T) {
	t.Parallel()

	t.Run("adds non-nil errors", func(t *testing.T) {
		t.Parallel()

		c := &Collection{}
		c.Add(errors.New("error 1")) //nolint:err113
		c.Add(errors.New("error 2")) //nolint:err113

		assert.True(t, c.HasError())
		assert.Equal(t, 2, c.Len())
	})

	t.Run("ignores nil errors", func(t *testing.T) {
		t.Parallel()

		c := &Collection{}
		c.Add(nil)

		assert.False(t, c.HasError())
		assert.Zero(t, c.Len())
	})
}

func TestCollection_GetError(t *testing.T) {
	t.Parallel()

	t.Run("returns nil when empty", func(t *testing.T) {
		t.Parallel()

		c := &Collection{}

		assert.NoError(t, c.GetError())
	})

	t.Run("returns single error unchanged", func(t *testing.T) {
		t.Parallel()

		c := &Collection{}
		err1 := errors.New("error 1") //nolint:err113
		c.Add(err1)

		assert.Equal(t, err1, c.GetError())
	})

	t.Run("returns joined errors for multiple errors", func(t *testing.T) {
		t.Parallel()

		c := &Collection{}
		err1 := fmt.Errorf("%w: node 3", ErrInvariant)
		err2 := errors.New("error 2") //nolint:err113

		c.Add(err1)
		c.Add(err2)

		err := c.GetError()
		require.Error(t, err)
		require.ErrorIs(t, err, ErrInvariant)
		require.ErrorIs(t, err, err2)
	})

	t.Run("returns nil after clear", func(t *testing.T) {
		t.Parallel()

		c := &Collection{}
		c.Add(errors.New("error")) //nolint:err113
		c.Clear()

		assert.NoError(t, c.GetError())
		assert.False(t, c.HasError())
	})
}
