package containers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRingQueue(t *testing.T) {
	t.Run("fifo order with wrap around", func(t *testing.T) {
		q := NewRingQueue[int](3)
		require.NoError(t, q.Enqueue(1))
		require.NoError(t, q.Enqueue(2))
		v, err := q.Dequeue()
		require.NoError(t, err)
		require.Equal(t, 1, v)

		require.NoError(t, q.Enqueue(3))
		require.NoError(t, q.Enqueue(4))
		require.True(t, q.IsFull())
		require.ErrorIs(t, q.Enqueue(5), ErrQueueFull)

		for _, want := range []int{2, 3, 4} {
			v, err := q.Dequeue()
			require.NoError(t, err)
			require.Equal(t, want, v)
		}
		require.True(t, q.IsEmpty())
	})

	t.Run("empty queue errors", func(t *testing.T) {
		q := NewRingQueue[string](1)
		_, err := q.Dequeue()
		require.ErrorIs(t, err, ErrQueueEmpty)
		_, err = q.Peek()
		require.ErrorIs(t, err, ErrQueueEmpty)
	})

	t.Run("peek does not consume", func(t *testing.T) {
		q := NewRingQueue[string](2)
		require.NoError(t, q.Enqueue("a"))
		v, err := q.Peek()
		require.NoError(t, err)
		require.Equal(t, "a", v)
		require.Equal(t, 1, q.Len())
	})
}
