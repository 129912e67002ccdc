package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIdentifierPool(t *testing.T) {
	t.Run("zero identifier is never valid", func(t *testing.T) {
		p := NewIdentifierPool(4)
		require.False(t, p.IsValid(Identifier{}))
		_, ok := p.Lookup(Identifier{})
		require.False(t, ok)
	})

	t.Run("acquire fills lowest free slot", func(t *testing.T) {
		p := NewIdentifierPool(4)
		a := p.Acquire("a")
		b := p.Acquire("b")
		require.Equal(t, uint32(0), a.Index)
		require.Equal(t, uint32(1), b.Index)

		require.NoError(t, p.Release(a))
		c := p.Acquire("c")
		require.Equal(t, uint32(0), c.Index)
		require.NotEqual(t, a.Generation, c.Generation)
	})

	t.Run("released identifiers go stale", func(t *testing.T) {
		p := NewIdentifierPool(4)
		a := p.Acquire("a")
		require.NoError(t, p.Release(a))
		require.False(t, p.IsValid(a))

		_ = p.Acquire("reuse")
		err := p.Release(a)
		require.True(t, errors.Is(err, ErrStaleIdentifier))

		owner, ok := p.Lookup(a)
		require.False(t, ok)
		require.Nil(t, owner)
	})

	t.Run("out of range release", func(t *testing.T) {
		p := NewIdentifierPool(0)
		err := p.Release(Identifier{Index: 7, Generation: 1})
		require.True(t, errors.Is(err, ErrInvalidIdentifier))
	})

	t.Run("reset invalidates everything", func(t *testing.T) {
		p := NewIdentifierPool(2)
		a := p.Acquire(1)
		b := p.Acquire(2)
		p.Reset()
		require.False(t, p.IsValid(a))
		require.False(t, p.IsValid(b))
		c := p.Acquire(3)
		require.Equal(t, uint32(0), c.Index)
		require.True(t, p.IsValid(c))
	})
}
