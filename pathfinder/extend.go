package pathfinder

import (
	"github.com/jonassibbesen/vgprob/align"
	"github.com/jonassibbesen/vgprob/asp"
	"github.com/jonassibbesen/vgprob/pathindex"
)

// extendOrdinary advances p by one mapping, implementing the "Advance the
// ASP" rule of spec.md §4.2: a same-node/non-zero-offset mapping
// continues the current node without touching path/search; a same-node/
// zero-offset mapping is a cycle revisit and appends the node again;
// anything else appends the node and extends the search state.
func extendOrdinary(p *asp.SearchPath, idx pathindex.Index, m align.Mapping) {
	sameNodeContinuation := len(p.Path) > 0 && p.Path[len(p.Path)-1] == m.Node && m.Offset != 0
	if !sameNodeContinuation {
		if len(p.Path) == 0 {
			p.Search = idx.Find(m.Node)
		} else {
			p.Search = idx.Extend(p.Search, m.Node)
		}
		p.Path = append(p.Path, m.Node)
	}
	if len(p.Path) == 1 {
		p.StartOffset = m.Offset
	}
	p.EndOffset = m.Offset + m.FromLength
}

// extendSingleMappings walks a linear mapping list (spec.md §4.2
// "Extension algorithm (single)"), maintaining up to three concurrent
// ASPs per mapping whenever MaxInternalOffset > 0.
func (f *Finder) extendSingleMappings(mappings []align.Mapping, leftClip, rightClip, mapq, score int) []*asp.SearchPath {
	root := asp.New()
	root.ReadStats[0].Mapq = mapq
	root.ReadStats[0].Score = score
	root.State = asp.Extending
	active := []*asp.SearchPath{root}

	for mi, m := range mappings {
		var next []*asp.SearchPath
		for _, p := range active {
			next = append(next, f.extendOneMapping(p, mi, len(mappings), m, leftClip, rightClip)...)
		}
		active = next
		if len(active) == 0 {
			break
		}
	}

	completed := make([]*asp.SearchPath, 0, len(active))
	for _, p := range active {
		if p.State == asp.Cleared {
			continue
		}
		if err := p.MarkComplete(); err != nil {
			continue
		}
		if p.State == asp.Complete {
			completed = append(completed, p)
		}
	}
	return completed
}

// extendOneMapping produces the ordinary extension of p by m, plus the
// delayed-end and restarted-start branches spec.md §4.2 describes,
// dropping any branch that does not strictly increase haplotype
// diversity over the ordinary extension.
func (f *Finder) extendOneMapping(p *asp.SearchPath, mi, total int, m align.Mapping, leftClip, rightClip int) []*asp.SearchPath {
	ordinary := p.Clone()
	extendOrdinary(ordinary, f.Index, m)
	ors := ordinary.CurrentReadStats()
	ors.Length += m.ToLength
	if mi == 0 {
		ors.SetLeftSoftclip(leftClip)
	}
	if mi == total-1 {
		ors.SetRightSoftclip(rightClip)
	}

	branches := []*asp.SearchPath{ordinary}

	if f.Cfg.MaxInternalOffset > 0 && !p.Search.Empty() {
		if delayed := f.tryDelayedEnd(p, ordinary, mi, total, m, rightClip); delayed != nil {
			branches = append(branches, delayed)
		}
		if mi > 0 {
			if restarted := f.tryRestartedStart(p, ordinary, m, leftClip); restarted != nil {
				branches = append(branches, restarted)
			}
		}
	}

	return f.clearOverextendedBranches(branches)
}

// tryDelayedEnd stops consuming the graph at m, instead accumulating m's
// read bases as tolerated unaligned interior (spec.md §4.2 branch 2). It
// is accepted only if its deficit fits the budget and it keeps a larger
// haplotype set than the ordinary extension.
func (f *Finder) tryDelayedEnd(p, ordinary *asp.SearchPath, mi, total int, m align.Mapping, rightClip int) *asp.SearchPath {
	deficit := m.ToLength
	if deficit > f.Cfg.MaxInternalOffset {
		return nil
	}
	if p.Search.Size() <= ordinary.Search.Size() {
		return nil
	}
	delayed := p.Clone()
	drs := delayed.CurrentReadStats()
	drs.Length += m.ToLength
	drs.ActivateInternalEndOffset(deficit)
	if mi == total-1 {
		drs.SetRightSoftclip(rightClip)
	}
	return delayed
}

// tryRestartedStart discards the path accumulated so far and restarts the
// search fresh at m (spec.md §4.2 branch 3), tolerating the discarded
// prefix as internal_start_offset.
func (f *Finder) tryRestartedStart(p, ordinary *asp.SearchPath, m align.Mapping, leftClip int) *asp.SearchPath {
	deficit := p.CurrentReadStats().Length
	if deficit > f.Cfg.MaxInternalOffset {
		return nil
	}
	restarted := asp.New()
	restarted.ReadStats[0] = p.ReadStats[0].Clone()
	extendOrdinary(restarted, f.Index, m)
	if restarted.Search.Empty() || restarted.Search.Size() <= ordinary.Search.Size() {
		return nil
	}
	rrs := restarted.CurrentReadStats()
	rrs.Length = m.ToLength
	rrs.ActivateInternalStartOffset(deficit)
	rrs.SetLeftSoftclip(leftClip)
	return restarted
}

// clearOverextendedBranches implements spec.md §4.2's final rule: "An ASP
// whose search state becomes empty and whose aligned length minus left
// soft-clip exceeds max_internal_offset is cleared."
func (f *Finder) clearOverextendedBranches(branches []*asp.SearchPath) []*asp.SearchPath {
	kept := make([]*asp.SearchPath, 0, len(branches))
	for _, b := range branches {
		if b.Search.Empty() {
			rs := b.CurrentReadStats()
			leftClip := 0
			if rs.LeftSoftclipLength.Set {
				leftClip = rs.LeftSoftclipLength.Value
			}
			if rs.Length-leftClip > f.Cfg.MaxInternalOffset {
				b.Clear()
				continue
			}
		}
		kept = append(kept, b)
	}
	return kept
}
