package pathindex

import "sort"

// occurrence pins one haplotype at one position along its own sequence.
type occurrence struct {
	hap PathID
	pos int
}

// MemoryIndex is a small in-memory reference implementation of Index,
// built directly from a list of haplotype sequences. It exists for tests
// and for cmd/vgprob-quant's demo wiring; a production deployment would
// back Index with a real on-disk GBWT/xg-style index (an external
// collaborator, out of scope for this module per spec.md §6).
type MemoryIndex struct {
	nodeLengths   map[Handle]uint64
	edges         map[Handle][]Edge
	haplotypes    [][]Handle
	occurrencesBy map[Handle][]occurrence
	bidirectional bool
}

// NewMemoryIndex builds an index from explicit haplotype sequences.
// nodeLengths is keyed by forward-orientation handles and must cover every
// node that appears in haplotypes or edges; NodeLength and HasNode look up
// either orientation of a node under its forward handle. bidirectional
// controls the answer to Index.Bidirectional.
func NewMemoryIndex(nodeLengths map[Handle]uint64, edges map[Handle][]Edge, haplotypes [][]Handle, bidirectional bool) *MemoryIndex {
	idx := &MemoryIndex{
		nodeLengths:   nodeLengths,
		edges:         edges,
		haplotypes:    haplotypes,
		occurrencesBy: map[Handle][]occurrence{},
		bidirectional: bidirectional,
	}
	for hapIdx, seq := range haplotypes {
		for pos, h := range seq {
			idx.occurrencesBy[h] = append(idx.occurrencesBy[h], occurrence{hap: PathID(hapIdx), pos: pos})
		}
	}
	return idx
}

func (idx *MemoryIndex) NodeLength(h Handle) uint64 {
	return idx.nodeLengths[Handle(h.ID()<<1)]
}

func (idx *MemoryIndex) HasNode(h Handle) bool {
	_, ok := idx.nodeLengths[Handle(h.ID()<<1)]
	return ok
}

func (idx *MemoryIndex) Bidirectional() bool {
	return idx.bidirectional
}

func (idx *MemoryIndex) Find(node Handle) SearchState {
	occs := idx.occurrencesBy[node]
	if len(occs) == 0 {
		return SearchState{}
	}
	return SearchState{size: uint64(len(occs)), current: node, ok: true, state: occs}
}

func (idx *MemoryIndex) Extend(state SearchState, node Handle) SearchState {
	if state.Empty() {
		return SearchState{}
	}
	occs, ok := state.state.([]occurrence)
	if !ok {
		return SearchState{}
	}
	next := make([]occurrence, 0, len(occs))
	for _, o := range occs {
		seq := idx.haplotypes[o.hap]
		newPos := o.pos + 1
		if newPos < len(seq) && seq[newPos] == node {
			next = append(next, occurrence{hap: o.hap, pos: newPos})
		}
	}
	if len(next) == 0 {
		return SearchState{size: 0, current: node, ok: true, state: next}
	}
	return SearchState{size: uint64(len(next)), current: node, ok: true, state: next}
}

func (idx *MemoryIndex) Edges(node Handle) []Edge {
	return idx.edges[node]
}

func (idx *MemoryIndex) LocatePathIDs(state SearchState) []PathID {
	occs, ok := state.state.([]occurrence)
	if !ok {
		return nil
	}
	seen := map[PathID]bool{}
	ids := make([]PathID, 0, len(occs))
	for _, o := range occs {
		if !seen[o.hap] {
			seen[o.hap] = true
			ids = append(ids, o.hap)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
