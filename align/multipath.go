package align

import "github.com/jonassibbesen/vgprob/pathindex"

// Subpath is one linear run of mappings in a multipath alignment's DAG.
// Next edges continue the alignment into another subpath; Connection
// edges mark a deliberate disconnection (spec.md §3) - the subpath after a
// Connection edge starts a new, independently-scored run rather than a
// continuation of this one.
type Subpath struct {
	Mappings   []Mapping
	Score      int
	Next       []int
	Connection []int

	// Disconnected is set on a subpath whose outgoing Connection edges
	// were marked "disconnected": true by the aligner. See
	// SPEC_FULL.md §4.8 for how this feeds IsDisconnected.
	Disconnected bool

	// LeftSoftclip/RightSoftclip are populated only for subpaths that
	// start (resp. end) a traversal, i.e. members of Multipath.Starts
	// (resp. subpaths with no outgoing Next/Connection edges).
	LeftSoftclip, RightSoftclip int
}

func (sp Subpath) IsEnd() bool {
	return len(sp.Next) == 0 && len(sp.Connection) == 0
}

// Multipath is a DAG of subpaths, each holding its own mapping sequence
// and score, per spec.md §3.
type Multipath struct {
	SeqLength int
	Mapq      int
	Qual      []byte
	Annots    map[string]interface{}
	Subpaths  []Subpath
	// Starts lists the indices of subpaths with no incoming edge; a DFS
	// over the alignment's DAG begins from each of them.
	Starts []int
}

func (m *Multipath) SequenceLength() int                 { return m.SeqLength }
func (m *Multipath) MappingQuality() int                 { return m.Mapq }
func (m *Multipath) Quality() []byte                     { return m.Qual }
func (m *Multipath) Annotations() map[string]interface{} { return m.Annots }

func (m *Multipath) StartNodes() []pathindex.Handle {
	nodes := make([]pathindex.Handle, 0, len(m.Starts))
	for _, idx := range m.Starts {
		sp := m.Subpaths[idx]
		if len(sp.Mappings) > 0 {
			nodes = append(nodes, sp.Mappings[0].Node)
		}
	}
	return nodes
}

func (m *Multipath) MaxStartSoftclip() int {
	max := 0
	for _, idx := range m.Starts {
		if sc := m.Subpaths[idx].LeftSoftclip; sc > max {
			max = sc
		}
	}
	return max
}

func (m *Multipath) MaxEndSoftclip() int {
	max := 0
	for _, sp := range m.Subpaths {
		if sp.IsEnd() {
			if sc := sp.RightSoftclip; sc > max {
				max = sc
			}
		}
	}
	return max
}

func (m *Multipath) IsDisconnected() bool {
	for _, sp := range m.Subpaths {
		if sp.Disconnected {
			return true
		}
	}
	return false
}
