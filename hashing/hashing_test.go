package hashing

import (
	"errors"
	"hash"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnownDigests(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		fn    HashFunc
		empty string
		hello string
	}{
		{
			name:  "sha256",
			fn:    Sha256,
			empty: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
			hello: "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cases := []struct {
				input    Hashable
				expected string
			}{
				{HashableString(""), tt.empty},
				{HashableString("hello"), tt.hello},
				{HashableBytes("hello"), tt.hello},
				{HashableBytes(nil), tt.empty},
				{HashableBytes{}, tt.empty},
			}

			for _, c := range cases {
				result, err := tt.fn(c.input)
				require.NoError(t, err)
				assert.Equal(t, c.expected, result, "input %v", c.input)
			}
		})
	}
}

func TestFastHashes(t *testing.T) {
	t.Parallel()

	for name, fn := range map[string]HashFunc{"xxh3": Xxh3, "xxhash64": Xxhash64} {
		t.Run(name+" is a stable 64-bit digest", func(t *testing.T) {
			t.Parallel()

			first, err := fn(HashableString("consistency test"))
			require.NoError(t, err)
			assert.Len(t, first, 16)

			again, err := fn(HashableBytes("consistency test"))
			require.NoError(t, err)
			assert.Equal(t, first, again)

			other, err := fn(HashableString("consistency tesT"))
			require.NoError(t, err)
			assert.NotEqual(t, first, other)
		})
	}

	t.Run("the two families disagree", func(t *testing.T) {
		t.Parallel()

		a, err := Xxh3(HashableString("hello"))
		require.NoError(t, err)

		b, err := Xxhash64(HashableString("hello"))
		require.NoError(t, err)

		assert.NotEqual(t, a, b)
	})
}

// failingHashable is a Hashable that cannot write itself.
type failingHashable struct {
	err error
}

func (f failingHashable) UpdateHash(hash.Hash) error {
	return f.err
}

var errHashTest = errors.New("hash error")

func TestErrorsArePropagated(t *testing.T) {
	t.Parallel()

	for name, fn := range map[string]HashFunc{
		"sha256": Sha256, "xxh3": Xxh3, "xxhash64": Xxhash64,
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			result, err := fn(failingHashable{err: errHashTest})
			require.ErrorIs(t, err, errHashTest)
			assert.Empty(t, result)
		})
	}
}

// recordingHash is a hash.Hash that keeps everything written to it.
type recordingHash struct {
	data []byte
}

func (m *recordingHash) Write(p []byte) (int, error) {
	m.data = append(m.data, p...)

	return len(p), nil
}

func (m *recordingHash) Sum(b []byte) []byte { return append(b, m.data...) }
func (m *recordingHash) Reset()              { m.data = nil }
func (m *recordingHash) Size() int           { return len(m.data) }
func (m *recordingHash) BlockSize() int      { return 64 }

func TestHashableValues(t *testing.T) {
	t.Parallel()

	t.Run("strings write their bytes", func(t *testing.T) {
		t.Parallel()

		h := &recordingHash{}
		require.NoError(t, HashableString("hello").UpdateHash(h))
		assert.Equal(t, []byte("hello"), h.data)
		assert.Equal(t, "hello", HashableString("hello").String())
	})

	t.Run("bytes write themselves", func(t *testing.T) {
		t.Parallel()

		h := &recordingHash{}
		require.NoError(t, HashableBytes("hello").UpdateHash(h))
		assert.Equal(t, []byte("hello"), h.data)
	})

	t.Run("equality", func(t *testing.T) {
		t.Parallel()

		assert.True(t, HashableString("a").Equals("a"))
		assert.False(t, HashableString("a").Equals("b"))
		assert.True(t, HashableBytes(nil).Equals(HashableBytes{}))
		assert.False(t, HashableBytes("a").Equals(HashableBytes("b")))
	})
}
