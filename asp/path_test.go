package asp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonassibbesen/vgprob/pathindex"
)

func TestEmptyWithNoPath(t *testing.T) {
	p := New()
	assert.True(t, p.Empty())
}

func TestConsistentInvariant(t *testing.T) {
	idx := pathindex.NewMemoryIndex(
		map[pathindex.Handle]uint64{pathindex.NewHandle(1, false): 10},
		nil,
		[][]pathindex.Handle{{pathindex.NewHandle(1, false)}},
		false,
	)
	n1 := pathindex.NewHandle(1, false)
	p := New()
	p.Path = []pathindex.Handle{n1}
	p.Search = idx.Find(n1)
	assert.True(t, p.Consistent())
	require.NoError(t, p.CheckInvariant())

	p.Path = append(p.Path, pathindex.NewHandle(2, false))
	assert.False(t, p.Consistent())
	require.Error(t, p.CheckInvariant())
}

func TestCloneIsDeep(t *testing.T) {
	p := New()
	p.Path = []pathindex.Handle{pathindex.NewHandle(1, false)}
	c := p.Clone()
	c.Path[0] = pathindex.NewHandle(9, false)
	assert.NotEqual(t, p.Path[0], c.Path[0])
}

func TestStateMachineTransitions(t *testing.T) {
	p := New()
	assert.Equal(t, Fresh, p.State)

	idx := pathindex.NewMemoryIndex(
		map[pathindex.Handle]uint64{pathindex.NewHandle(1, false): 10},
		nil,
		[][]pathindex.Handle{{pathindex.NewHandle(1, false)}},
		false,
	)
	n1 := pathindex.NewHandle(1, false)
	p.Path = []pathindex.Handle{n1}
	p.Search = idx.Find(n1)
	p.State = Extending
	require.NoError(t, p.MarkComplete())
	assert.Equal(t, Complete, p.State)

	p2 := New()
	p2.Clear()
	assert.Equal(t, Cleared, p2.State)
	assert.True(t, p2.Empty())
}
