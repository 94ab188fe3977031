package pathindex

// SearchState represents the set of haplotypes currently consistent with a
// sequence of node handles walked so far (spec.md §3, "Search state
// (opaque)"). It is produced by Index.Find and threaded through
// Index.Extend; callers never peek inside state beyond the accessors
// below.
type SearchState struct {
	size    uint64
	current Handle
	ok      bool
	// state is index-private continuation data (e.g. occurrence lists for
	// MemoryIndex, or a BWT range for a real GBWT-backed index). Opaque to
	// every caller outside this package's Index implementations.
	state interface{}
}

// Empty reports whether state represents zero consistent haplotypes, or is
// otherwise invalid (e.g. the result of extending past the end of every
// haplotype). An ASP whose search state is Empty is itself empty per
// spec.md §3.
func (s SearchState) Empty() bool {
	return !s.ok || s.size == 0
}

// Size returns the number of haplotypes consistent with the walked
// sequence, i.e. state.size() in spec.md §4.1.
func (s SearchState) Size() uint64 {
	return s.size
}

// Current returns the node handle the state was last extended with, and
// whether the state holds any node at all (the zero SearchState returns
// ok=false; states returned by Find and Extend return ok=true).
func (s SearchState) Current() (h Handle, ok bool) {
	return s.current, s.ok
}
