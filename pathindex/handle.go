// Package pathindex defines the C1 contract: an opaque, read-only adapter
// over a haplotype/path index (a GBWT-style bidirectional graph index).
// The core never mutates the index and never needs to know its on-disk
// representation; pathindex.Index is satisfied either by a real index
// loader (an external collaborator, out of scope for this module) or by
// the small in-memory reference implementation in memory.go used by tests
// and the cmd demo.
package pathindex

import "fmt"

// Handle is an opaque node handle: a signed node id packed with an
// orientation bit, per spec.md §3 ("Node handle"). Two handles are equal
// only if both id and orientation match, which plain integer equality
// gives us for free.
type Handle int64

// NewHandle packs a node id and orientation into a Handle. id must be > 0;
// reverse selects the node's reverse-complement strand.
func NewHandle(id int64, reverse bool) Handle {
	h := Handle(id << 1)
	if reverse {
		h |= 1
	}
	return h
}

// ID returns the underlying node id, stripped of orientation.
func (h Handle) ID() int64 {
	return int64(h) >> 1
}

// IsReverse reports whether h addresses the node's reverse-complement
// strand.
func (h Handle) IsReverse() bool {
	return h&1 == 1
}

// Flip returns the handle for the opposite strand of the same node.
func (h Handle) Flip() Handle {
	return h ^ 1
}

func (h Handle) String() string {
	strand := "+"
	if h.IsReverse() {
		strand = "-"
	}
	return fmt.Sprintf("%d%s", h.ID(), strand)
}

// Edge is one successor of a node, in the index's own enumeration order.
// Callers treat Edges()[0] as the primary continuation used by the
// iterative tail of DFS traversal and the rest as branches that fork new
// search tasks (spec.md §4.1).
type Edge struct {
	To     Handle
	Weight int
}

// PathID identifies one haplotype/reference path stored in the index.
type PathID int64
