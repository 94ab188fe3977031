package pathfinder

import (
	"github.com/jonassibbesen/vgprob/align"
	"github.com/jonassibbesen/vgprob/asp"
)

// dfsTask pairs an in-progress ASP with the subpath index it is about to
// traverse, per spec.md §4.2 "Extension algorithm (multipath)": "A
// depth-first queue over (ASP, subpath_index) expanding along next
// edges".
type dfsTask struct {
	path       *asp.SearchPath
	subpathIdx int
}

// extendMultipath runs the DFS of spec.md §4.2 over a multipath
// alignment's subpath DAG. Connection edges terminate a traversal without
// emitting an AlignmentPath (they mark a deliberate disconnection, not a
// continuation); Next edges continue it, forking a new ASP for every
// successor past the first.
func (f *Finder) extendMultipath(a *align.Multipath) []*asp.SearchPath {
	isStart := make(map[int]bool, len(a.Starts))
	for _, s := range a.Starts {
		isStart[s] = true
	}

	queue := make([]dfsTask, 0, len(a.Starts))
	for _, s := range a.Starts {
		root := asp.New()
		root.ReadStats[0].Mapq = a.Mapq
		root.State = asp.Extending
		queue = append(queue, dfsTask{path: root, subpathIdx: s})
	}

	var completed []*asp.SearchPath
	for len(queue) > 0 {
		task := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		sp := a.Subpaths[task.subpathIdx]
		p := task.path
		ok := f.walkSubpathMappings(p, sp, isStart[task.subpathIdx])
		if !ok {
			p.Clear()
			continue
		}
		p.CurrentReadStats().Score += sp.Score

		if len(sp.Next) == 0 {
			if len(sp.Connection) == 0 {
				if err := p.MarkComplete(); err == nil && p.State == asp.Complete {
					completed = append(completed, p)
				}
			}
			// A subpath with only Connection edges ends this traversal
			// without emission.
			continue
		}
		for i, nextIdx := range sp.Next {
			child := p
			if i < len(sp.Next)-1 {
				child = p.Clone()
			}
			queue = append(queue, dfsTask{path: child, subpathIdx: nextIdx})
		}
	}
	return completed
}

// walkSubpathMappings extends p through every mapping of sp in order,
// setting soft-clip flags on the first mapping of a start subpath and the
// last mapping of an end subpath (spec.md §4.2: "Soft-clip flags are set
// on the first and last subpaths of a traversal"). Returns false if the
// search state goes empty mid-subpath.
func (f *Finder) walkSubpathMappings(p *asp.SearchPath, sp align.Subpath, isStartSubpath bool) bool {
	isEndSubpath := sp.IsEnd()
	for mi, m := range sp.Mappings {
		extendOrdinary(p, f.Index, m)
		rs := p.CurrentReadStats()
		rs.Length += m.ToLength
		if isStartSubpath && mi == 0 {
			rs.SetLeftSoftclip(sp.LeftSoftclip)
		}
		if isEndSubpath && mi == len(sp.Mappings)-1 {
			rs.SetRightSoftclip(sp.RightSoftclip)
		}
		if p.Search.Empty() {
			return false
		}
	}
	return true
}
