// Package asp implements C4: the Alignment Search Path, the mutable
// candidate record pathfinder extends mapping-by-mapping, and the state
// machine of spec.md §4.4.7.
package asp

import (
	"github.com/jonassibbesen/vgprob/pathindex"
	"github.com/jonassibbesen/vgprob/qerrors"
	"github.com/jonassibbesen/vgprob/readstats"
)

// State is one node of the ASP lifecycle state machine (spec.md §4.4.7):
//
//	Fresh --first mapping--> Extending
//	Extending --mapping consumed--> Extending
//	Extending --internal offset exceeded | search empty | merge mismatch--> Cleared (terminal)
//	Extending --last mapping consumed AND search non-empty--> Complete (terminal)
type State int

const (
	Fresh State = iota
	Extending
	Complete
	Cleared
)

func (s State) String() string {
	switch s {
	case Fresh:
		return "Fresh"
	case Extending:
		return "Extending"
	case Complete:
		return "Complete"
	case Cleared:
		return "Cleared"
	default:
		return "Unknown"
	}
}

// SearchPath is the ASP of spec.md §3/§4.2: a mutable candidate record
// carrying the node sequence visited so far, its offsets into the first
// and last node, the running fragment insert length, per-read stats (one
// entry for a single read, two once a pair has been merged), and the
// current haplotype search state.
type SearchPath struct {
	Path        []pathindex.Handle
	StartOffset int
	EndOffset   int
	Search      pathindex.SearchState
	InsertLength int
	ReadStats   []readstats.Stats
	State       State
}

// New starts a Fresh ASP for a single read.
func New() *SearchPath {
	return &SearchPath{State: Fresh, ReadStats: []readstats.Stats{{}}}
}

// Empty reports whether the ASP has no path, or its search state is
// empty, per spec.md §3.
func (p *SearchPath) Empty() bool {
	return len(p.Path) == 0 || p.Search.Empty()
}

// Consistent checks the invariant "after any extension, path non-empty
// iff search.current_node == path.back()" (spec.md §3). It is consulted
// by pathfinder before emitting an ASP downstream; a violation indicates
// a bug upstream in the extension algorithm, not bad input.
func (p *SearchPath) Consistent() bool {
	if len(p.Path) == 0 {
		return true
	}
	cur, ok := p.Search.Current()
	if !ok {
		return false
	}
	return cur == p.Path[len(p.Path)-1]
}

// CheckInvariant returns a non-nil error (via qerrors.Invariant) if
// Consistent fails, for call sites that want to surface the violation
// through the error-handling taxonomy instead of silently proceeding.
func (p *SearchPath) CheckInvariant() error {
	if !p.Consistent() {
		return qerrors.Invariant("asp path.back()=%v disagrees with search.current()", lastOrZero(p.Path))
	}
	return nil
}

func lastOrZero(path []pathindex.Handle) pathindex.Handle {
	if len(path) == 0 {
		return 0
	}
	return path[len(path)-1]
}

// Clone returns an independent deep copy, used whenever the extension
// algorithm forks concurrent branches (spec.md §4.2 internal-offset
// branching, §4.2 multipath DFS).
func (p *SearchPath) Clone() *SearchPath {
	clone := &SearchPath{
		Path:         append([]pathindex.Handle(nil), p.Path...),
		StartOffset:  p.StartOffset,
		EndOffset:    p.EndOffset,
		Search:       p.Search,
		InsertLength: p.InsertLength,
		ReadStats:    make([]readstats.Stats, len(p.ReadStats)),
		State:        p.State,
	}
	for i, rs := range p.ReadStats {
		clone.ReadStats[i] = rs.Clone()
	}
	return clone
}

// Clear transitions the ASP to Cleared, the terminal failure state
// (spec.md §4.4.7); cleared ASPs are eligible for deletion and must never
// be emitted downstream.
func (p *SearchPath) Clear() {
	p.Path = nil
	p.Search = pathindex.SearchState{}
	p.State = Cleared
}

// MarkComplete transitions to the terminal success state, asserting the
// path/search consistency invariant on the way.
func (p *SearchPath) MarkComplete() error {
	if err := p.CheckInvariant(); err != nil {
		p.Clear()
		return err
	}
	if p.Search.Empty() {
		p.Clear()
		return nil
	}
	p.State = Complete
	return nil
}

// CurrentReadStats returns the stats entry being actively extended: the
// last one, since a merged pair appends the end mate's stats after the
// start mate's (spec.md §3 "read_stats: 1 entry for single, 2 for
// paired (end mate appended after merge)").
func (p *SearchPath) CurrentReadStats() *readstats.Stats {
	return &p.ReadStats[len(p.ReadStats)-1]
}
