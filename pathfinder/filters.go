package pathfinder

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jonassibbesen/vgprob/asp"
	"github.com/jonassibbesen/vgprob/pathindex"
	"github.com/jonassibbesen/vgprob/readstats"
)

// pathIDSetKey canonicalizes a path-id set into a map key so ASPs with
// the same located haplotypes group together regardless of the order
// Index.LocatePathIDs happened to return them in.
func pathIDSetKey(ids []pathindex.PathID) string {
	sorted := append([]pathindex.PathID(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	parts := make([]string, len(sorted))
	for i, id := range sorted {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, ",")
}

// passesFilters implements spec.md §4.2 "Filters": drop every ASP whose
// mate statistics fall outside the configured bounds. The fragment-length
// cap is enforced during the pairing DFS itself (extendPairForward), not
// here.
func (f *Finder) passesFilters(p *asp.SearchPath) bool {
	minMapq, maxBestScoreFraction, maxSoftclipFraction := summarizeReadStats(p.ReadStats)
	if minMapq < f.Cfg.MinMapqFilter {
		return false
	}
	if maxBestScoreFraction < f.Cfg.MinBestScoreFilter {
		return false
	}
	if maxSoftclipFraction > f.Cfg.MaxSoftclipFilter {
		return false
	}
	return true
}

// summarizeReadStats reduces a (possibly paired) ASP's per-mate stats to
// the three scalars passesFilters checks: the minimum mapq across mates,
// the largest "my score divided by my own best-possible score" fraction
// (approximated here as score over aligned length, since the true
// best-possible per-read score is an aligner-side concept outside this
// core), and the largest soft-clip-to-length fraction.
func summarizeReadStats(stats []readstats.Stats) (minMapq int, maxBestScoreFraction, maxSoftclipFraction float64) {
	minMapq = math.MaxInt32
	for _, rs := range stats {
		if rs.Mapq < minMapq {
			minMapq = rs.Mapq
		}
		if rs.Length > 0 {
			if frac := float64(rs.Score) / float64(rs.Length); frac > maxBestScoreFraction {
				maxBestScoreFraction = frac
			}
			clip := 0
			if rs.LeftSoftclipLength.Set {
				clip += rs.LeftSoftclipLength.Value
			}
			if rs.RightSoftclipLength.Set {
				clip += rs.RightSoftclipLength.Value
			}
			if frac := float64(clip) / float64(rs.Length); frac > maxSoftclipFraction {
				maxSoftclipFraction = frac
			}
		}
	}
	if minMapq == math.MaxInt32 {
		minMapq = 0
	}
	return
}

// toAlignmentPaths implements spec.md §4.2 "ASP→AlignmentPath
// conversion": group completed ASPs by their located path-id set, keep
// only the ones within maxScoreDiff of the group's best score sum, and
// summarize each surviving group into one AlignmentPath.
func (f *Finder) toAlignmentPaths(paths []*asp.SearchPath, seqLength int, isDisconnected bool) []AlignmentPath {
	type group struct {
		asps []*asp.SearchPath
		best int
	}
	groups := map[string]*group{}
	var order []string
	for _, p := range paths {
		if !f.passesFilters(p) {
			continue
		}
		ids := f.Index.LocatePathIDs(p.Search)
		key := pathIDSetKey(ids)
		g, ok := groups[key]
		scoreSum := scoreSumOf(p.ReadStats)
		if !ok {
			g = &group{best: scoreSum}
			groups[key] = g
			order = append(order, key)
		} else if scoreSum > g.best {
			g.best = scoreSum
		}
		g.asps = append(g.asps, p)
	}

	maxDiff := f.Cfg.MaxScoreDiff
	if isDisconnected && f.Cfg.DisconnectedScoreDiffMultiplier > 0 {
		maxDiff *= f.Cfg.DisconnectedScoreDiffMultiplier
	}

	results := make([]AlignmentPath, 0, len(order))
	for _, key := range order {
		g := groups[key]
		var survivors []*asp.SearchPath
		for _, p := range g.asps {
			if float64(g.best-scoreSumOf(p.ReadStats)) <= maxDiff {
				survivors = append(survivors, p)
			}
		}
		if len(survivors) == 0 {
			continue
		}
		results = append(results, summarizeGroup(survivors, f.Index.LocatePathIDs(survivors[0].Search), seqLength, isDisconnected))
	}
	return results
}

func scoreSumOf(stats []readstats.Stats) int {
	total := 0
	for _, rs := range stats {
		total += rs.Score
	}
	return total
}

func summarizeGroup(asps []*asp.SearchPath, ids []pathindex.PathID, seqLength int, isDisconnected bool) AlignmentPath {
	bestScore := asps[0].ReadStats[0].Score
	mapqProd := 1.0
	anyZero := false
	for _, p := range asps {
		s := scoreSumOf(p.ReadStats)
		if s > bestScore {
			bestScore = s
		}
		for _, rs := range p.ReadStats {
			if rs.Mapq == 0 {
				anyZero = true
			}
			mapqProd *= 1 - readstats.MapqProb(rs.Mapq)
		}
	}
	mapqProb := 1 - mapqProd
	if anyZero {
		mapqProb = 1
	}
	return AlignmentPath{
		SeqLength:      seqLength,
		MapqProb:       mapqProb,
		ScoreSum:       bestScore,
		IDs:            ids,
		IsDisconnected: isDisconnected,
	}
}
