package cluster

import "math"

// Group is an unordered multiset of path column indices of size
// group_size (ploidy), per the glossary. Indices may repeat (homozygous
// groups).
type Group []int

// rowLikelihood evaluates Π_i (n_i + (1/k)Σ_{col∈g} P_ic)^{count_i} in
// log space for one candidate group, the mixture spec.md §4.4.4 defines
// for k=2 generalized to arbitrary k.
func rowLikelihood(m *Matrix, g Group) float64 {
	k := float64(len(g))
	logLik := 0.0
	for i, row := range m.Rows {
		p := m.Noise[i]
		for _, col := range g {
			p += row[col] / k
		}
		if p <= 0 {
			if m.Count[i] > 0 {
				return math.Inf(-1)
			}
			continue
		}
		logLik += float64(m.Count[i]) * math.Log(p)
	}
	return logLik
}

// sourceWeight implements the "weight by source counts" clause of
// spec.md §4.4.4: a group is weighted by the product of its members'
// SourceCount (paths whose source is shared by more candidate paths are
// a priori more likely to co-occur), falling back to 1 for unset counts.
func sourceWeight(paths []PathInfo, g Group) float64 {
	w := 1.0
	for _, col := range g {
		sc := paths[col].SourceCount
		if sc > 0 {
			w *= float64(sc)
		}
	}
	return w
}

// enumerateMultisets returns every multiset of size k drawn from
// {0,...,n-1} (combinations with replacement), matching spec.md §8
// scenario 6's requirement of exactly C(n+k-1,k) groups for n paths.
func enumerateMultisets(n, k int) []Group {
	if k == 0 {
		return []Group{{}}
	}
	var out []Group
	var rec func(start int, cur Group)
	rec = func(start int, cur Group) {
		if len(cur) == k {
			out = append(out, append(Group(nil), cur...))
			return
		}
		for v := start; v < n; v++ {
			rec(v, append(cur, v))
		}
	}
	rec(0, nil)
	return out
}

// ExactPosteriors implements spec.md §4.4.4's exact calculators: bounded
// enumeration for k=2 and full enumeration for k>=3 share the same
// multiset-enumeration/log-likelihood machinery, since the only
// difference the spec calls out is which regime is tractable to
// enumerate exhaustively (both are, for the group sizes §6 exposes:
// ploidy is typically 2-4).
func ExactPosteriors(m *Matrix, paths []PathInfo, groupSize int, minHapProb float64) (groups []Group, posteriors []float64) {
	n := len(paths)
	candidates := enumerateMultisets(n, groupSize)
	logLiks := make([]float64, len(candidates))
	maxLL := math.Inf(-1)
	for i, g := range candidates {
		ll := rowLikelihood(m, g) + math.Log(sourceWeight(paths, g))
		logLiks[i] = ll
		if ll > maxLL {
			maxLL = ll
		}
	}
	sum := 0.0
	unnorm := make([]float64, len(candidates))
	for i, ll := range logLiks {
		v := math.Exp(ll - maxLL)
		unnorm[i] = v
		sum += v
	}
	for i, g := range candidates {
		post := 0.0
		if sum > 0 {
			post = unnorm[i] / sum
		}
		if post >= minHapProb {
			groups = append(groups, g)
			posteriors = append(posteriors, post)
		}
	}
	return groups, posteriors
}
