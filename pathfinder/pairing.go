package pathfinder

import "github.com/jonassibbesen/vgprob/asp"

// pairASPs implements spec.md §4.2's pairing algorithm: for each unique
// start ASP (left mate) it indexes end-ASP (right mate, already
// reverse-complemented) start nodes, sweeps the start ASP's path looking
// for overlaps, and falls back to a bounded forward DFS along index edges
// when no direct overlap exists.
func (f *Finder) pairASPs(starts, ends []*asp.SearchPath) []*asp.SearchPath {
	endsByStartNode := make(map[int][]*asp.SearchPath)
	for _, e := range ends {
		if len(e.Path) == 0 {
			continue
		}
		key := int(e.Path[0])
		endsByStartNode[key] = append(endsByStartNode[key], e)
	}

	var merged []*asp.SearchPath
	for _, start := range starts {
		for k, node := range start.Path {
			for _, end := range endsByStartNode[int(node)] {
				if m := f.merge(start, k, end); m != nil {
					merged = append(merged, m)
				}
			}
		}
		merged = append(merged, f.extendPairForward(start, ends)...)
	}
	return merged
}

// extendPairForward performs the bounded forward DFS of spec.md §4.2 when
// no direct node overlap was found between a start ASP and any end ASP:
// it walks index edges past the end of start, accumulating InsertLength
// by full node lengths, until the end-node set is exhausted, the fragment
// length budget is spent, or the edge set runs dry.
func (f *Finder) extendPairForward(start *asp.SearchPath, ends []*asp.SearchPath) []*asp.SearchPath {
	if len(start.Path) == 0 {
		return nil
	}
	endStartNodes := make(map[int]bool, len(ends))
	maxLeftSoftclipEnd := 0
	maxEndLen := 0
	for _, e := range ends {
		if len(e.Path) == 0 {
			continue
		}
		endStartNodes[int(e.Path[0])] = true
		if e.ReadStats[0].LeftSoftclipLength.Set {
			if v := e.ReadStats[0].LeftSoftclipLength.Value; v > maxLeftSoftclipEnd {
				maxLeftSoftclipEnd = v
			}
		}
		if v := f.alignedLength(e); v > maxEndLen {
			maxEndLen = v
		}
	}

	type branch struct {
		path      *asp.SearchPath
		visited   map[int]bool
		remaining map[int]bool
	}
	remaining := make(map[int]bool, len(endStartNodes))
	for k := range endStartNodes {
		remaining[k] = true
	}
	queue := []branch{{path: start.Clone(), visited: map[int]bool{}, remaining: remaining}}

	var results []*asp.SearchPath
	for len(queue) > 0 {
		b := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		if len(b.remaining) == 0 {
			continue
		}
		last := b.path.Path[len(b.path.Path)-1]
		edges := f.Index.Edges(last)
		if len(edges) == 0 {
			continue
		}
		base := b.path
		if len(edges) > 1 {
			base = b.path.Clone()
		}
		for i, e := range edges {
			nodeLen := int(f.Index.NodeLength(last))
			projected := b.path.InsertLength + nodeLen
			if projected > f.Cfg.MaxPairFragLength-(maxEndLen-maxLeftSoftclipEnd) {
				continue
			}
			next := b.path
			if i > 0 {
				next = base.Clone()
			}
			next.Path = append(next.Path, e.To)
			next.Search = f.Index.Extend(next.Search, e.To)
			next.InsertLength = projected
			if next.Search.Empty() {
				continue
			}
			nr := make(map[int]bool, len(b.remaining))
			for k := range b.remaining {
				nr[k] = true
			}
			if nr[int(e.To)] {
				delete(nr, int(e.To))
				for _, end := range ends {
					if len(end.Path) > 0 && end.Path[0] == e.To {
						if m := f.merge(next, len(next.Path)-1, end); m != nil {
							results = append(results, m)
						}
					}
				}
			}
			if len(nr) > 0 {
				nv := make(map[int]bool, len(b.visited)+1)
				for k := range b.visited {
					nv[k] = true
				}
				visits := nv[int(e.To)]
				nv[int(e.To)] = true
				// Cycle pruning: when locate()'s id count equals
				// search.Size() (no cycle through this node), a branch
				// that revisits the node is dropped on its first revisit.
				if !visits || len(f.Index.LocatePathIDs(next.Search)) < int(next.Search.Size()) {
					queue = append(queue, branch{path: next, visited: nv, remaining: nr})
				}
			}
		}
	}
	return results
}

// alignedLength sums an ASP's path node lengths, the graph-space span
// spec.md §4.2's fragment-length cap calls `end_length` when bounding the
// forward pairing DFS.
func (f *Finder) alignedLength(p *asp.SearchPath) int {
	total := 0
	for _, node := range p.Path {
		total += int(f.Index.NodeLength(node))
	}
	return total
}

// merge implements spec.md §4.2's merge semantics: main (index k is where
// the shared node appears in main.Path) absorbs second's suffix past the
// overlap, accumulating insert length and the second mate's read stats.
func (f *Finder) merge(main *asp.SearchPath, k int, second *asp.SearchPath) *asp.SearchPath {
	if len(second.Path) < len(main.Path)-k {
		return nil
	}
	if k == 0 {
		mainStart := main.StartOffset
		if main.ReadStats[0].LeftSoftclipLength.Set {
			mainStart += 0 // soft-clip lengths are not subtracted: both StartOffsets are compared as recorded by the extension walk
		}
		secondStart := second.StartOffset
		if secondStart < mainStart {
			return nil
		}
	}
	for i := 0; k+i < len(main.Path); i++ {
		if i >= len(second.Path) || main.Path[k+i] != second.Path[i] {
			return nil
		}
	}
	overlapLen := len(main.Path) - k
	endToEnd := overlapLen == len(second.Path)
	if endToEnd && second.EndOffset < main.EndOffset {
		return nil
	}

	merged := main.Clone()
	// The shared node is the first node of main's own path only when
	// k==0; since second's overlap always begins at its own first node
	// by construction, k==0 is exactly the "first node of both ASPs"
	// case of spec.md §4.2 / the scenario in spec.md §8 (6): main has not
	// yet been extended by the pairing DFS, so its accumulated
	// InsertLength is still zero and can be set directly.
	if k == 0 {
		maxStart := main.StartOffset
		if second.StartOffset > maxStart {
			maxStart = second.StartOffset
		}
		minEnd := main.EndOffset
		if second.EndOffset < minEnd {
			minEnd = second.EndOffset
		}
		merged.InsertLength = maxStart - minEnd
	} else {
		// The shared node is an interior/last node of main's existing
		// path, reached by the forward-DFS of extendPairForward, which
		// has already added its full length to InsertLength; correct
		// that to the bases actually spanned by the two mates.
		merged.InsertLength -= int(f.Index.NodeLength(main.Path[k]))
	}
	for i := 1; i < overlapLen; i++ {
		merged.InsertLength -= int(f.Index.NodeLength(main.Path[k+i]))
	}

	for i := overlapLen; i < len(second.Path); i++ {
		node := second.Path[i]
		merged.Path = append(merged.Path, node)
		merged.Search = f.Index.Extend(merged.Search, node)
		if merged.Search.Empty() {
			return nil
		}
	}
	merged.ReadStats = append(merged.ReadStats, second.ReadStats[0].Clone())
	merged.EndOffset = second.EndOffset
	return merged
}
