package align

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonassibbesen/vgprob/pathindex"
)

func TestSingleStartNodes(t *testing.T) {
	n1 := pathindex.NewHandle(1, false)
	s := &Single{
		SeqLength: 30,
		Mappings:  []Mapping{{Node: n1, FromLength: 30, ToLength: 30}},
	}
	require.Len(t, s.StartNodes(), 1)
	assert.Equal(t, n1, s.StartNodes()[0])
	assert.False(t, s.IsDisconnected())
}

func TestMultipathSoftclipAggregation(t *testing.T) {
	n1 := pathindex.NewHandle(1, false)
	n2 := pathindex.NewHandle(2, false)
	m := &Multipath{
		SeqLength: 60,
		Subpaths: []Subpath{
			{Mappings: []Mapping{{Node: n1, FromLength: 20, ToLength: 20}}, Next: []int{1}, LeftSoftclip: 5},
			{Mappings: []Mapping{{Node: n2, FromLength: 20, ToLength: 20}}, RightSoftclip: 15, Disconnected: true},
		},
		Starts: []int{0},
	}
	assert.Equal(t, 5, m.MaxStartSoftclip())
	assert.Equal(t, 15, m.MaxEndSoftclip())
	assert.True(t, m.IsDisconnected())
}

func TestReverseComplementSingle(t *testing.T) {
	n1 := pathindex.NewHandle(1, false)
	n2 := pathindex.NewHandle(2, false)
	lengths := map[pathindex.Handle]uint64{n1: 10, n2: 10}
	idx := pathindex.NewMemoryIndex(lengths, nil, nil, false)

	s := &Single{
		SeqLength:     20,
		Mappings:      []Mapping{{Node: n1, Offset: 0, FromLength: 10, ToLength: 10}, {Node: n2, Offset: 0, FromLength: 10, ToLength: 10}},
		LeftSoftclip:  2,
		RightSoftclip: 3,
	}
	rc := ReverseComplement(s, idx).(*Single)
	require.Len(t, rc.Mappings, 2)
	assert.Equal(t, n2.Flip(), rc.Mappings[0].Node)
	assert.Equal(t, n1.Flip(), rc.Mappings[1].Node)
	assert.Equal(t, 3, rc.LeftSoftclip)
	assert.Equal(t, 2, rc.RightSoftclip)
}
