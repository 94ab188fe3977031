package pathfinder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonassibbesen/vgprob/align"
	"github.com/jonassibbesen/vgprob/pathindex"
)

// linearIndex builds a 4-node single-haplotype chain 1->2->3->4, with its
// reverse strand also indexed (bidirectional), matching the simplest
// fixture spec.md §8 scenario 1 needs plus what reverse-complemented mate
// extension requires.
func linearIndex() *pathindex.MemoryIndex {
	f := func(id int64) pathindex.Handle { return pathindex.NewHandle(id, false) }
	r := func(id int64) pathindex.Handle { return pathindex.NewHandle(id, true) }
	lengths := map[pathindex.Handle]uint64{
		f(1): 10, f(2): 10, f(3): 10, f(4): 10,
	}
	edges := map[pathindex.Handle][]pathindex.Edge{
		f(1): {{To: f(2), Weight: 1}},
		f(2): {{To: f(3), Weight: 1}},
		f(3): {{To: f(4), Weight: 1}},
		r(4): {{To: r(3), Weight: 1}},
		r(3): {{To: r(2), Weight: 1}},
		r(2): {{To: r(1), Weight: 1}},
	}
	// One haplotype traversed forward, then the same nodes traversed in
	// reverse orientation, so LocatePathIDs agrees across both strands.
	haps := [][]pathindex.Handle{{f(1), f(2), f(3), f(4), r(4), r(3), r(2), r(1)}}
	return pathindex.NewMemoryIndex(lengths, edges, haps, true)
}

func TestFindAlignmentPathsSingleLinear(t *testing.T) {
	idx := linearIndex()
	f := New(idx, Default)

	a := &align.Single{
		SeqLength: 20,
		Mapq:      60,
		Mappings: []align.Mapping{
			{Node: pathindex.NewHandle(2, false), Offset: 0, FromLength: 10, ToLength: 10},
			{Node: pathindex.NewHandle(3, false), Offset: 0, FromLength: 10, ToLength: 10},
		},
	}

	paths, err := f.FindAlignmentPaths(a)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, 20, paths[0].SeqLength)
	assert.Len(t, paths[0].IDs, 1)
}

func TestFindAlignmentPathsRejectsEmpty(t *testing.T) {
	idx := linearIndex()
	f := New(idx, Default)
	_, err := f.FindAlignmentPaths(&align.Single{SeqLength: 10})
	assert.Error(t, err)
}

func TestFindAlignmentPathsRejectsAbsentStart(t *testing.T) {
	idx := linearIndex()
	f := New(idx, Default)
	a := &align.Single{
		SeqLength: 10,
		Mappings: []align.Mapping{
			{Node: pathindex.NewHandle(99, false), Offset: 0, FromLength: 10, ToLength: 10},
		},
	}
	_, err := f.FindAlignmentPaths(a)
	assert.Error(t, err)
}

func TestFindPairedAlignmentPathsMerges(t *testing.T) {
	idx := linearIndex()
	f := New(idx, Default)

	mate1 := &align.Single{
		SeqLength: 10,
		Mapq:      60,
		Mappings: []align.Mapping{
			{Node: pathindex.NewHandle(1, false), Offset: 0, FromLength: 10, ToLength: 10},
		},
	}
	// mate2 aligns to node 3 on the reverse strand, as the downstream mate
	// of an FR pair does; pairOneOrientation reverse-complements it back
	// onto the forward strand, landing on node 3 forward.
	mate2 := &align.Single{
		SeqLength: 10,
		Mapq:      60,
		Mappings: []align.Mapping{
			{Node: pathindex.NewHandle(3, true), Offset: 0, FromLength: 10, ToLength: 10},
		},
	}

	paths, err := f.FindPairedAlignmentPaths(mate1, mate2)
	require.NoError(t, err)
	assert.NotEmpty(t, paths)
}

func TestMaxInternalOffsetKeepsOrdinaryExtension(t *testing.T) {
	idx := linearIndex()
	cfg := Default
	cfg.MaxInternalOffset = 5
	f := New(idx, cfg)

	a := &align.Single{
		SeqLength: 10,
		Mapq:      60,
		Mappings: []align.Mapping{
			{Node: pathindex.NewHandle(2, false), Offset: 0, FromLength: 10, ToLength: 10},
		},
	}
	paths, err := f.FindAlignmentPaths(a)
	require.NoError(t, err)
	assert.NotEmpty(t, paths)
}
