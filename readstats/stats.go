// Package readstats implements C3: per-read bookkeeping carried alongside
// an alignment search path as it is extended (spec.md §3 "Read
// statistics").
package readstats

import "math"

// OptionalInt is a (value, set?) pair, used for fields that only become
// meaningful once a particular branch of the extension algorithm fires
// (soft-clip lengths are unknown until the first/last mapping is
// consumed; internal offsets only exist on branches that actually hit the
// internal-offset logic of spec.md §4.2).
type OptionalInt struct {
	Value int
	Set   bool
}

// Stats is one read's (or one mate's) running bookkeeping.
type Stats struct {
	Mapq   int
	Score  int
	Length int // running read bases consumed so far

	LeftSoftclipLength  OptionalInt
	RightSoftclipLength OptionalInt
	InternalStartOffset OptionalInt
	InternalEndOffset   OptionalInt
}

// SetLeftSoftclip records the soft-clip length reported by the aligner for
// this read's first mapping. Both soft-clip lengths must be set before an
// ASP is emitted to downstream stages (spec.md §3 invariants).
func (s *Stats) SetLeftSoftclip(length int) {
	s.LeftSoftclipLength = OptionalInt{Value: length, Set: true}
}

// SetRightSoftclip records the soft-clip length reported by the aligner
// for this read's last mapping.
func (s *Stats) SetRightSoftclip(length int) {
	s.RightSoftclipLength = OptionalInt{Value: length, Set: true}
}

// ActivateInternalStartOffset switches on internal_start_offset when a
// "restarted-start" branch (spec.md §4.2) discards accumulated path and
// restarts mid-alignment; offset is the unaligned interior read length
// tolerated by that restart.
func (s *Stats) ActivateInternalStartOffset(offset int) {
	s.InternalStartOffset = OptionalInt{Value: offset, Set: true}
}

// ActivateInternalEndOffset switches on internal_end_offset when a
// "delayed-end" branch stops consuming the graph and merely accumulates
// unaligned read length.
func (s *Stats) ActivateInternalEndOffset(offset int) {
	s.InternalEndOffset = OptionalInt{Value: offset, Set: true}
}

// ExceedsMaxInternalOffset reports whether either active internal offset
// is beyond maxInternalOffset, per the invariant in spec.md §3.
func (s Stats) ExceedsMaxInternalOffset(maxInternalOffset int) bool {
	if s.InternalStartOffset.Set && s.InternalStartOffset.Value > maxInternalOffset {
		return true
	}
	if s.InternalEndOffset.Set && s.InternalEndOffset.Value > maxInternalOffset {
		return true
	}
	return false
}

// Clone returns an independent copy, used when pathfinder forks a branch
// during extension.
func (s Stats) Clone() Stats {
	return s
}

// MapqProb converts a phred-scaled mapping quality into an error
// probability: 10^(-mapq/10). A mapq of 0 is treated as "unknown" and
// maps to probability 1, matching the mapq_prob rule in spec.md §4.2.
func MapqProb(mapq int) float64 {
	if mapq <= 0 {
		return 1
	}
	return math.Pow(10, -float64(mapq)/10)
}
