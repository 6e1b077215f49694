package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushPopFIFOOrder(t *testing.T) {
	r := New[int]()
	r.Push(1)
	r.Push(2)
	r.Push(3)

	for _, want := range []int{1, 2, 3} {
		got, ok := r.Pop()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
	_, ok := r.Pop()
	assert.False(t, ok)
}

func TestPopOnEmptyReturnsFalse(t *testing.T) {
	r := New[string]()
	_, ok := r.Pop()
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())
}

func TestGrowsAcrossWraparound(t *testing.T) {
	r := New[int]()
	for i := 0; i < 3; i++ {
		r.Push(i)
	}
	r.Pop()
	r.Pop()
	// head has advanced past the start of the backing array; pushing past
	// the original capacity exercises the wraparound-aware grow() copy.
	for i := 3; i < 10; i++ {
		r.Push(i)
	}
	assert.Equal(t, 8, r.Len())
	got, ok := r.Pop()
	require.True(t, ok)
	assert.Equal(t, 2, got)
}

func TestLenTracksPushesAndPops(t *testing.T) {
	r := New[int]()
	assert.Equal(t, 0, r.Len())
	r.Push(1)
	r.Push(2)
	assert.Equal(t, 2, r.Len())
	r.Pop()
	assert.Equal(t, 1, r.Len())
}
