package cluster

import (
	"math/rand"
	"sort"
)

// NestedEstimator implements the nested/grouped abundance inference of
// spec.md §4.4.6. SPEC_FULL.md §4.8 supplements the spec's single
// boolean-flag description with two concrete strategies, mirroring
// original_source/src/path_posterior_estimator.cpp's two estimator
// classes.
type NestedEstimator interface {
	Estimate(m *Matrix, groupSize int, minHapProb float64, emCfg EMConfig, rng *rand.Rand) NestedResult
}

// NestedResult aggregates weighted per-path abundances across sampled
// diplotype-style subsets, keyed by the path's column in the input
// Matrix. Abundances are not summed per PathInfo.GroupID.
type NestedResult struct {
	Abundances map[int]float64 // path column -> aggregated abundance
	Subsets    [][]int         // the distinct path-column subsets sampled
}

// IndependentGroups partitions paths by GroupID, computes a group
// posterior within each group independently, and forms
// floor(1/min_hap_prob) full-genome samples by sampling groups
// independently (spec.md §4.4.6 "Independent groups").
type IndependentGroups struct{}

func (IndependentGroups) Estimate(m *Matrix, groupSize int, minHapProb float64, emCfg EMConfig, rng *rand.Rand) NestedResult {
	byGroup := map[int][]int{}
	for i, p := range m.Paths {
		byGroup[p.GroupID] = append(byGroup[p.GroupID], i)
	}
	var groupIDs []int
	for gid := range byGroup {
		groupIDs = append(groupIDs, gid)
	}
	sort.Ints(groupIDs)

	type groupChoice struct {
		subsets     []Group
		posteriors  []float64
	}
	choices := make(map[int]groupChoice, len(groupIDs))
	for _, gid := range groupIDs {
		cols := byGroup[gid]
		sub := subMatrix(m, cols)
		groups, posts := ExactPosteriors(sub, sub.Paths, groupSize, minHapProb)
		// Remap local (within-group) column indices back to m's columns.
		remapped := make([]Group, len(groups))
		for i, g := range groups {
			rg := make(Group, len(g))
			for j, c := range g {
				rg[j] = cols[c]
			}
			remapped[i] = rg
		}
		choices[gid] = groupChoice{subsets: remapped, posteriors: posts}
	}

	numSamples := 1
	if minHapProb > 0 {
		numSamples = int(1.0 / minHapProb)
	}
	if numSamples < 1 {
		numSamples = 1
	}

	agg := map[int]float64{}
	var subsets [][]int
	for s := 0; s < numSamples; s++ {
		var fullSubset []int
		for _, gid := range groupIDs {
			c := choices[gid]
			if len(c.subsets) == 0 {
				continue
			}
			idx := sampleIndex(c.posteriors, rng)
			fullSubset = append(fullSubset, c.subsets[idx]...)
		}
		subsets = append(subsets, fullSubset)
		sub := subMatrix(m, dedupInts(fullSubset))
		res := EM(sub, emCfg)
		for i, col := range dedupInts(fullSubset) {
			agg[col] += res.Abundances.AtVec(i) / float64(numSamples)
		}
	}
	return NestedResult{Abundances: agg, Subsets: subsets}
}

// CollapsedGroups identifies maximal sets of paths sharing an identical
// source-id set, computes posteriors over those collapsed groups,
// enumerates subsets with posterior >= min_hap_prob, runs EM per subset,
// and redistributes abundance equally among duplicate path ids within a
// subset (spec.md §4.4.6 "Collapsed groups").
type CollapsedGroups struct{}

func (CollapsedGroups) Estimate(m *Matrix, groupSize int, minHapProb float64, emCfg EMConfig, rng *rand.Rand) NestedResult {
	bySourceKey := map[string][]int{}
	var order []string
	for i, p := range m.Paths {
		key := sourceSetKey(p.SourceIDs)
		if _, ok := bySourceKey[key]; !ok {
			order = append(order, key)
		}
		bySourceKey[key] = append(bySourceKey[key], i)
	}

	collapsedPaths := make([]PathInfo, len(order))
	collapsedCols := make([][]int, len(order))
	for gi, key := range order {
		cols := bySourceKey[key]
		collapsedCols[gi] = cols
		collapsedPaths[gi] = m.Paths[cols[0]]
	}
	collapsedMatrix := collapseColumns(m, collapsedCols)

	groups, posts := ExactPosteriors(collapsedMatrix, collapsedPaths, groupSize, minHapProb)

	agg := map[int]float64{}
	var subsets [][]int
	for gi, g := range groups {
		if posts[gi] < minHapProb {
			continue
		}
		var expanded []int
		for _, collapsedCol := range g {
			expanded = append(expanded, collapsedCols[collapsedCol]...)
		}
		expanded = dedupInts(expanded)
		subsets = append(subsets, expanded)
		sub := subMatrix(m, expanded)
		res := EM(sub, emCfg)
		// Redistribute each collapsed group's abundance equally among its
		// duplicate path ids, per spec.md §4.4.6.
		countByGroup := map[int]int{}
		for _, col := range expanded {
			countByGroup[pathGroupOf(m, col, collapsedCols)]++
		}
		for i, col := range expanded {
			share := res.Abundances.AtVec(i) * posts[gi]
			members := countByGroup[pathGroupOf(m, col, collapsedCols)]
			if members > 1 {
				share /= float64(members)
			}
			agg[col] += share
		}
	}
	return NestedResult{Abundances: agg, Subsets: subsets}
}

func pathGroupOf(m *Matrix, col int, collapsedCols [][]int) int {
	for gi, cols := range collapsedCols {
		for _, c := range cols {
			if c == col {
				return gi
			}
		}
	}
	return -1
}

func sourceSetKey(ids []string) string {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	out := ""
	for _, id := range sorted {
		out += id + ","
	}
	return out
}

// subMatrix restricts m to the given path columns, remapping row entries
// to local column indices and dropping rows left with no entries.
func subMatrix(m *Matrix, cols []int) *Matrix {
	localCol := map[int]int{}
	paths := make([]PathInfo, len(cols))
	for i, c := range cols {
		localCol[c] = i
		paths[i] = m.Paths[c]
	}
	sub := &Matrix{Paths: paths}
	for i, row := range m.Rows {
		lr := map[int]float64{}
		for c, v := range row {
			if lc, ok := localCol[c]; ok {
				lr[lc] = v
			}
		}
		if len(lr) == 0 {
			continue
		}
		sub.Rows = append(sub.Rows, lr)
		sub.Noise = append(sub.Noise, m.Noise[i])
		sub.Count = append(sub.Count, m.Count[i])
	}
	return sub
}

// collapseColumns builds a matrix with one column per group in groups,
// whose per-row probability is the max over the group's member columns
// (mirroring Assemble's Grouped mode, spec.md §4.4.1).
func collapseColumns(m *Matrix, groups [][]int) *Matrix {
	paths := make([]PathInfo, len(groups))
	for gi, cols := range groups {
		paths[gi] = m.Paths[cols[0]]
	}
	out := &Matrix{Paths: paths}
	for i, row := range m.Rows {
		nr := map[int]float64{}
		for gi, cols := range groups {
			best := 0.0
			for _, c := range cols {
				if v := row[c]; v > best {
					best = v
				}
			}
			if best > 0 {
				nr[gi] = best
			}
		}
		out.Rows = append(out.Rows, nr)
		out.Noise = append(out.Noise, m.Noise[i])
		out.Count = append(out.Count, m.Count[i])
	}
	return out
}

func dedupInts(s []int) []int {
	seen := map[int]bool{}
	var out []int
	for _, v := range s {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Ints(out)
	return out
}

// sampleIndex draws an index from a categorical distribution over
// weights (not necessarily normalized), using the caller-supplied
// per-cluster PRNG (spec.md §5).
func sampleIndex(weights []float64, rng *rand.Rand) int {
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	if sum <= 0 {
		return 0
	}
	r := rng.Float64() * sum
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r <= acc {
			return i
		}
	}
	return len(weights) - 1
}
