package align

import "github.com/jonassibbesen/vgprob/pathindex"

// ReverseComplement returns the alignment that results from walking a's
// path in the opposite direction on the opposite strand of every node,
// used by pathfinder to implement the "rf" and unstranded library-type
// rules of spec.md §4.2. idx supplies node lengths needed to convert a
// forward-strand offset into its reverse-strand equivalent.
func ReverseComplement(a Alignment, idx pathindex.Index) Alignment {
	switch v := a.(type) {
	case *Single:
		return &Single{
			SeqLength:     v.SeqLength,
			Mapq:          v.Mapq,
			Qual:          reverseBytes(v.Qual),
			Annots:        v.Annots,
			Mappings:      reverseComplementMappings(v.Mappings, idx),
			LeftSoftclip:  v.RightSoftclip,
			RightSoftclip: v.LeftSoftclip,
		}
	case *Multipath:
		return reverseComplementMultipath(v, idx)
	default:
		return a
	}
}

func reverseBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

func reverseComplementMappings(mappings []Mapping, idx pathindex.Index) []Mapping {
	out := make([]Mapping, len(mappings))
	for i, m := range mappings {
		flipped := m.Node.Flip()
		nodeLen := int(idx.NodeLength(m.Node))
		newOffset := nodeLen - m.Offset - m.FromLength
		out[len(mappings)-1-i] = Mapping{
			Node:       flipped,
			Offset:     newOffset,
			FromLength: m.FromLength,
			ToLength:   m.ToLength,
		}
	}
	return out
}

// reverseComplementMultipath flips every subpath's mapping list and
// reverses the DAG's edge direction: Next/Connection edges in the forward
// alignment become "previous" edges in the flipped one, so former sinks
// become the new Starts and vice versa.
func reverseComplementMultipath(m *Multipath, idx pathindex.Index) *Multipath {
	n := len(m.Subpaths)
	flippedSubpaths := make([]Subpath, n)
	newNext := make([][]int, n)
	newConn := make([][]int, n)
	disconnectedInto := make([]bool, n)

	for i, sp := range m.Subpaths {
		flippedSubpaths[i] = Subpath{
			Mappings: reverseComplementMappings(sp.Mappings, idx),
			Score:    sp.Score,
		}
		for _, to := range sp.Next {
			newNext[to] = append(newNext[to], i)
		}
		for _, to := range sp.Connection {
			newConn[to] = append(newConn[to], i)
			if sp.Disconnected {
				disconnectedInto[to] = true
			}
		}
	}
	for i := range flippedSubpaths {
		flippedSubpaths[i].Next = newNext[i]
		flippedSubpaths[i].Connection = newConn[i]
		flippedSubpaths[i].Disconnected = disconnectedInto[i]
	}

	var starts []int
	for i, sp := range m.Subpaths {
		if sp.IsEnd() {
			starts = append(starts, i)
		}
	}
	for _, idxStart := range starts {
		sp := &flippedSubpaths[idxStart]
		if len(sp.Mappings) > 0 {
			sp.LeftSoftclip = m.Subpaths[idxStart].RightSoftclip
		}
	}
	for _, idxOldStart := range m.Starts {
		sp := &flippedSubpaths[idxOldStart]
		if len(sp.Mappings) > 0 {
			sp.RightSoftclip = m.Subpaths[idxOldStart].LeftSoftclip
		}
	}

	return &Multipath{
		SeqLength: m.SeqLength,
		Mapq:      m.Mapq,
		Qual:      reverseBytes(m.Qual),
		Annots:    m.Annots,
		Subpaths:  flippedSubpaths,
		Starts:    starts,
	}
}
