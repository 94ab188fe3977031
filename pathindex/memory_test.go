package pathindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoPathIndex() *MemoryIndex {
	n1 := NewHandle(1, false)
	n2 := NewHandle(2, false)
	n3 := NewHandle(3, false)
	lengths := map[Handle]uint64{n1: 10, n2: 10, n3: 10}
	edges := map[Handle][]Edge{
		n1: {{To: n2, Weight: 1}},
		n2: {{To: n3, Weight: 1}},
	}
	haplotypes := [][]Handle{
		{n1, n2, n3}, // path 0
		{n1, n2, n3}, // path 1, identical topology but a distinct haplotype id
	}
	return NewMemoryIndex(lengths, edges, haplotypes, false)
}

func TestFindAndExtend(t *testing.T) {
	idx := twoPathIndex()
	n1 := NewHandle(1, false)
	n2 := NewHandle(2, false)

	s := idx.Find(n1)
	require.False(t, s.Empty())
	assert.EqualValues(t, 2, s.Size())

	s = idx.Extend(s, n2)
	require.False(t, s.Empty())
	assert.EqualValues(t, 2, s.Size())

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, n2, cur)
}

func TestExtendToDeadEndIsEmpty(t *testing.T) {
	idx := twoPathIndex()
	n1 := NewHandle(1, false)
	n4 := NewHandle(4, false)

	s := idx.Find(n1)
	s = idx.Extend(s, n4)
	assert.True(t, s.Empty())
}

func TestLocatePathIDs(t *testing.T) {
	idx := twoPathIndex()
	n1 := NewHandle(1, false)
	ids := idx.LocatePathIDs(idx.Find(n1))
	assert.ElementsMatch(t, []PathID{0, 1}, ids)
}

func TestCycleRevisit(t *testing.T) {
	n1 := NewHandle(1, false)
	n2 := NewHandle(2, false)
	lengths := map[Handle]uint64{n1: 5, n2: 5}
	edges := map[Handle][]Edge{
		n1: {{To: n2, Weight: 1}},
		n2: {{To: n1, Weight: 1}},
	}
	// A single haplotype that loops through n1, n2, n1 again.
	haplotypes := [][]Handle{{n1, n2, n1}}
	idx := NewMemoryIndex(lengths, edges, haplotypes, false)

	s := idx.Find(n1)
	require.False(t, s.Empty())
	s = idx.Extend(s, n2)
	require.False(t, s.Empty())
	s = idx.Extend(s, n1)
	require.False(t, s.Empty())
	assert.EqualValues(t, 1, s.Size())
}

func TestHandleOrientation(t *testing.T) {
	f := NewHandle(7, false)
	r := NewHandle(7, true)
	assert.NotEqual(t, f, r)
	assert.Equal(t, int64(7), f.ID())
	assert.Equal(t, int64(7), r.ID())
	assert.False(t, f.IsReverse())
	assert.True(t, r.IsReverse())
	assert.Equal(t, r, f.Flip())
}
