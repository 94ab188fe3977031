// Package pathfinder implements C5, the Alignment Path Finder: the
// search-state expansion, multipath DFS, and mate pairing/reconciliation
// of spec.md §4.2. It is the largest and most intricate component of the
// core, so this package splits the algorithm across several files:
// extend.go/extend_multipath.go (walking an alignment into ASPs),
// pairing.go (merging mate ASPs), filters.go (dropping and grouping ASPs
// into AlignmentPaths).
package pathfinder

import (
	"github.com/jonassibbesen/vgprob/align"
	"github.com/jonassibbesen/vgprob/asp"
	"github.com/jonassibbesen/vgprob/pathindex"
	"github.com/jonassibbesen/vgprob/qerrors"
	"github.com/jonassibbesen/vgprob/qlog"
)

// Finder is the per-cluster, single-threaded entry point for C5. It holds
// a read-only reference to the shared Index (safe for concurrent use
// across clusters, spec.md §5) and this cluster's filter configuration.
type Finder struct {
	Index pathindex.Index
	Cfg   Config
}

// New builds a Finder for one cluster's worth of alignments.
func New(idx pathindex.Index, cfg Config) *Finder {
	return &Finder{Index: idx, Cfg: cfg}
}

// FindAlignmentPaths implements spec.md §4.2's single-read entry point:
// reject degenerate input, extend per the configured library type, and
// convert the resulting ASPs into AlignmentPaths.
func (f *Finder) FindAlignmentPaths(a align.Alignment) ([]AlignmentPath, error) {
	if a.SequenceLength() <= 0 {
		return nil, qerrors.ErrNonPositiveLen
	}
	starts := a.StartNodes()
	if len(starts) == 0 {
		return nil, qerrors.ErrEmptyAlignment
	}
	for _, h := range starts {
		if !f.Index.HasNode(h) {
			return nil, qerrors.ErrStartNodeAbsent
		}
	}

	var asps []*asp.SearchPath
	switch f.Cfg.LibraryType {
	case RF:
		asps = f.extendOne(align.ReverseComplement(a, f.Index))
	case Unstranded:
		asps = f.extendOne(a)
		if !f.Index.Bidirectional() {
			asps = append(asps, f.extendOne(align.ReverseComplement(a, f.Index))...)
		}
	default: // FR
		asps = f.extendOne(a)
	}

	return f.toAlignmentPaths(asps, a.SequenceLength(), a.IsDisconnected()), nil
}

// FindPairedAlignmentPaths implements spec.md §4.2's paired entry point:
// pair one forward mate with the reverse complement of the other, per the
// same strand rules as the single-read case, doubling into the swapped
// orientation for unstranded non-bidirectional indices.
func (f *Finder) FindPairedAlignmentPaths(a1, a2 align.Alignment) ([]AlignmentPath, error) {
	if a1.SequenceLength() <= 0 || a2.SequenceLength() <= 0 {
		return nil, qerrors.ErrNonPositiveLen
	}
	if len(a1.StartNodes()) == 0 || len(a2.StartNodes()) == 0 {
		return nil, qerrors.ErrEmptyAlignment
	}

	var merged []*asp.SearchPath
	switch f.Cfg.LibraryType {
	case RF:
		merged = f.pairOneOrientation(align.ReverseComplement(a1, f.Index), a2)
	case Unstranded:
		merged = f.pairOneOrientation(a1, a2)
		if !f.Index.Bidirectional() {
			merged = append(merged, f.pairOneOrientation(a2, a1)...)
		}
	default: // FR
		merged = f.pairOneOrientation(a1, a2)
	}

	seqLength := a1.SequenceLength() + a2.SequenceLength()
	isDisconnected := a1.IsDisconnected() || a2.IsDisconnected()
	return f.toAlignmentPaths(merged, seqLength, isDisconnected), nil
}

// pairOneOrientation extends the left mate forward and the right mate's
// reverse complement, then runs the pairing sweep/DFS over both ASP sets.
func (f *Finder) pairOneOrientation(left, right align.Alignment) []*asp.SearchPath {
	starts := f.extendOne(left)
	ends := f.extendOne(align.ReverseComplement(right, f.Index))
	if len(starts) == 0 || len(ends) == 0 {
		return nil
	}
	return f.pairASPs(starts, ends)
}

// extendOne dispatches to the single- or multipath-specific extension
// walk and logs (without aborting the cluster) any invariant violation an
// emitted ASP would carry.
func (f *Finder) extendOne(a align.Alignment) []*asp.SearchPath {
	var completed []*asp.SearchPath
	switch v := a.(type) {
	case *align.Single:
		completed = f.extendSingleMappings(v.Mappings, v.LeftSoftclip, v.RightSoftclip, v.Mapq, 0)
	case *align.Multipath:
		completed = f.extendMultipath(v)
	default:
		qlog.Recoverablef("pathfinder: unknown alignment type %T", a)
		return nil
	}
	kept := completed[:0]
	for _, p := range completed {
		if !p.Consistent() {
			qerrors.Invariant("emitted ASP inconsistent: path.back()=%v search.current mismatch", p.Path)
			continue
		}
		kept = append(kept, p)
	}
	return kept
}
