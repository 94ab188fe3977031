package pathindex

// Index is the C1 contract. Implementations must be safe for concurrent
// read access from multiple cluster goroutines (spec.md §5): the core
// never calls a mutating method.
type Index interface {
	// NodeLength returns the node's length in bases. Deterministic, pure.
	NodeLength(h Handle) uint64

	// HasNode reports whether id exists in the index, for either
	// orientation.
	HasNode(h Handle) bool

	// Bidirectional reports whether the index already stores both
	// strands of every haplotype. When true, callers must not also
	// extend the reverse complement of an "unstranded" alignment -
	// that would double-count the same haplotype from both directions.
	Bidirectional() bool

	// Find starts a fresh search state anchored at node.
	Find(node Handle) SearchState

	// Extend continues state by one more node, keeping only the
	// haplotypes for which node is the longest-prefix continuation. The
	// result may be Empty.
	Extend(state SearchState, node Handle) SearchState

	// Edges enumerates node's successors in the index's own order; the
	// first entry is the primary continuation (spec.md §4.1).
	Edges(node Handle) []Edge

	// LocatePathIDs returns the set of path/haplotype ids consistent
	// with state. Its length may be less than state.Size() if the index
	// stores a subset of ids for some haplotypes (used by pathfinder's
	// cycle detection, spec.md §4.2).
	LocatePathIDs(state SearchState) []PathID
}
