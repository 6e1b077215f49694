package ontology

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPairStoreAddContains(t *testing.T) {
	s := NewPairStore[int]()
	assert.True(t, s.Add(1, 2))
	assert.False(t, s.Add(1, 2), "re-adding an existing pair reports no change")
	assert.True(t, s.Contains(1, 2))
	assert.False(t, s.Contains(2, 1))
	assert.Equal(t, 1, s.Len())
}

func TestPairStoreContainsAll(t *testing.T) {
	s := NewPairStore[int]()
	s.Add(1, 2)
	s.Add(1, 3)
	assert.True(t, s.ContainsAll(1, []int{2, 3}))
	assert.False(t, s.ContainsAll(1, []int{2, 3, 4}))
	assert.True(t, s.ContainsAll(1, nil))
	assert.True(t, s.ContainsAll(99, nil))
	assert.False(t, s.ContainsAll(99, []int{1}))
}

func TestPairStoreIteration(t *testing.T) {
	s := NewPairStore[int]()
	s.Add(1, 2)
	s.Add(1, 3)
	s.Add(1, 4)
	got := map[int]bool{}
	for b := range s.PairsWithFirst(1) {
		got[b] = true
	}
	assert.Equal(t, map[int]bool{2: true, 3: true, 4: true}, got)
	assert.ElementsMatch(t, []int{2, 3, 4}, s.SecondsOf(1))
}

func TestPairStoreAll(t *testing.T) {
	s := NewPairStore[int]()
	s.Add(1, 2)
	s.Add(3, 4)
	got := map[[2]int]bool{}
	for pair := range s.All() {
		got[pair] = true
	}
	assert.Equal(t, map[[2]int]bool{{1, 2}: true, {3, 4}: true}, got)
}

func TestTripletStoreAll(t *testing.T) {
	s := NewTripletStore[int]()
	s.Add(1, 2, 3)
	s.Add(4, 5, 6)
	got := map[[3]int]bool{}
	for triple := range s.All() {
		got[triple] = true
	}
	assert.Equal(t, map[[3]int]bool{{1, 2, 3}: true, {4, 5, 6}: true}, got)
}

func TestTripletStoreAddContains(t *testing.T) {
	s := NewTripletStore[int]()
	assert.True(t, s.Add(1, 2, 3))
	assert.False(t, s.Add(1, 2, 3))
	assert.True(t, s.Contains(1, 2, 3))
	assert.False(t, s.Contains(1, 3, 2))
	assert.Equal(t, 1, s.Len())
}

func TestTripletStoreIteration(t *testing.T) {
	s := NewTripletStore[int]()
	s.Add(1, 2, 3)
	s.Add(1, 2, 4)
	s.Add(1, 5, 6)

	gotTwo := map[int]bool{}
	for c := range s.TriplesWithFirstTwo(1, 2) {
		gotTwo[c] = true
	}
	assert.Equal(t, map[int]bool{3: true, 4: true}, gotTwo)
	assert.ElementsMatch(t, []int{3, 4}, s.ThirdsOf(1, 2))

	gotAll := map[[2]int]bool{}
	for b, c := range s.TriplesWithFirst(1) {
		gotAll[[2]int{b, c}] = true
	}
	assert.Len(t, gotAll, 3)
}
