// Package align provides a uniform view over single-path and multipath
// alignments (spec.md §3 "Alignment", §9 design note "Polymorphism over
// alignment variants"). The source system used C++ template specialization
// to treat the two shapes uniformly; here that becomes one Alignment
// interface implemented by two concrete types, each able to answer the
// four dispatch questions pathfinder needs before it commits to a full
// per-mapping walk.
package align

import "github.com/jonassibbesen/vgprob/pathindex"

// Mapping is one (node, position, consumed-length) record along an
// alignment's path, per spec.md §3.
type Mapping struct {
	Node       pathindex.Handle
	Offset     int // position.offset: offset into Node where this mapping starts
	FromLength int // graph bases consumed
	ToLength   int // read bases consumed
}

// Alignment is the uniform view pathfinder walks. Soft-clip lengths are
// reported by the aligner (glossary: "Soft-clip — unaligned prefix/suffix
// of the read reported by the aligner"), not re-derived from Mapping
// internals, since the aligner is the only party that knows where in the
// read an alignment's mapped span begins and ends.
type Alignment interface {
	SequenceLength() int
	MappingQuality() int
	Quality() []byte
	Annotations() map[string]interface{}

	// StartNodes returns every node handle an extension of this
	// alignment could begin from (one for Single, one per start subpath
	// for Multipath).
	StartNodes() []pathindex.Handle

	// MaxStartSoftclip/MaxEndSoftclip return the largest soft-clip
	// reported across every possible start/end of this alignment.
	// pathfinder does not call them: its fragment-length bound reads the
	// soft-clips recorded in each ASP's read stats.
	MaxStartSoftclip() int
	MaxEndSoftclip() int

	// IsDisconnected reports whether any subpath of this alignment
	// carries a deliberate "disconnected": true annotation (multipath
	// only; always false for Single). See SPEC_FULL.md §4.8 for the
	// resolution of the corresponding open question.
	IsDisconnected() bool
}

// Single is a conventional single-path alignment: one ordered sequence of
// mappings.
type Single struct {
	SeqLength     int
	Mapq          int
	Qual          []byte
	Annots        map[string]interface{}
	Mappings      []Mapping
	LeftSoftclip  int
	RightSoftclip int
}

func (s *Single) SequenceLength() int                 { return s.SeqLength }
func (s *Single) MappingQuality() int                 { return s.Mapq }
func (s *Single) Quality() []byte                     { return s.Qual }
func (s *Single) Annotations() map[string]interface{} { return s.Annots }
func (s *Single) MaxStartSoftclip() int               { return s.LeftSoftclip }
func (s *Single) MaxEndSoftclip() int                 { return s.RightSoftclip }
func (s *Single) IsDisconnected() bool                { return false }

func (s *Single) StartNodes() []pathindex.Handle {
	if len(s.Mappings) == 0 {
		return nil
	}
	return []pathindex.Handle{s.Mappings[0].Node}
}
