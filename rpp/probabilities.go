// Package rpp implements C6, Read Path Probabilities: a collapsing
// container over one read's sparse distribution across candidate paths
// plus a noise scalar, keyed for duplicate-read merging within a cluster.
package rpp

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	farm "github.com/dgryski/go-farm"

	"github.com/jonassibbesen/vgprob/pathindex"
)

// Probabilities is one (possibly duplicate-collapsed) read's distribution
// over candidate paths, per spec.md §4.3/§3.
type Probabilities struct {
	ReadCount int
	NoiseProb float64
	PathProbs map[float64][]pathindex.PathID

	precision float64
}

// New builds an RPP from a probability -> path-ids map and a noise
// probability, rounding every probability value to prob_precision so that equal-up-to-
// tolerance values share a map key (spec.md §4.3 "dedup-keyed").
func New(noiseProb float64, pathProbs map[float64][]pathindex.PathID, precision float64) *Probabilities {
	rounded := map[float64][]pathindex.PathID{}
	for p, ids := range pathProbs {
		key := roundTo(p, precision)
		sorted := append([]pathindex.PathID(nil), ids...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
		rounded[key] = append(rounded[key], sorted...)
	}
	return &Probabilities{
		ReadCount: 1,
		NoiseProb: roundTo(noiseProb, precision),
		PathProbs: rounded,
		precision: precision,
	}
}

func roundTo(v, precision float64) float64 {
	if precision <= 0 {
		return v
	}
	return math.Round(v/precision) * precision
}

// Sum is noise_prob + Σ path_probs, used by callers to check the §8 invariant
// noise_prob + Σ path_probs ≤ 1 + prob_precision.
func (p *Probabilities) Sum() float64 {
	total := p.NoiseProb
	for v, ids := range p.PathProbs {
		total += v * float64(len(ids))
	}
	return total
}

// Equal reports whether two RPPs carry the same noise probability and
// path-probability mapping, which is what Fingerprint approximates in
// O(1) amortized instead of this O(p log p) direct comparison.
func (p *Probabilities) Equal(o *Probabilities) bool {
	if p.NoiseProb != o.NoiseProb || len(p.PathProbs) != len(o.PathProbs) {
		return false
	}
	for v, ids := range p.PathProbs {
		oids, ok := o.PathProbs[v]
		if !ok || len(ids) != len(oids) {
			return false
		}
		for i := range ids {
			if ids[i] != oids[i] {
				return false
			}
		}
	}
	return true
}

// Fingerprint serializes (noise_prob, sorted (prob, pathIDs) pairs) and
// hashes it with farm.Hash64WithSeed, per SPEC_FULL.md §3's "Canonical
// fingerprint" note. Collisions are possible and must be resolved by the
// caller with Equal before merging two RPPs sharing a fingerprint.
func (p *Probabilities) Fingerprint() uint64 {
	keys := make([]float64, 0, len(p.PathProbs))
	for k := range p.PathProbs {
		keys = append(keys, k)
	}
	sort.Float64s(keys)

	var b strings.Builder
	b.WriteString(strconv.FormatFloat(p.NoiseProb, 'g', -1, 64))
	for _, k := range keys {
		ids := append([]pathindex.PathID(nil), p.PathProbs[k]...)
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		b.WriteByte(';')
		b.WriteString(strconv.FormatFloat(k, 'g', -1, 64))
		b.WriteByte(':')
		for i, id := range ids {
			if i > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, "%d", id)
		}
	}
	return farm.Hash64WithSeed([]byte(b.String()), 0)
}

// Collapser merges duplicate reads within one cluster by fingerprint,
// resolving hash collisions with a direct Equal comparison (spec.md §4.3).
type Collapser struct {
	byFingerprint map[uint64][]*Probabilities
	order         []uint64
}

// NewCollapser returns an empty collapsing container.
func NewCollapser() *Collapser {
	return &Collapser{byFingerprint: map[uint64][]*Probabilities{}}
}

// Add folds p into the collapser, summing ReadCount into an existing entry
// when one with the same fingerprint and contents already exists.
func (c *Collapser) Add(p *Probabilities) {
	fp := p.Fingerprint()
	bucket, ok := c.byFingerprint[fp]
	if !ok {
		c.byFingerprint[fp] = []*Probabilities{p}
		c.order = append(c.order, fp)
		return
	}
	for _, existing := range bucket {
		if existing.Equal(p) {
			existing.ReadCount += p.ReadCount
			return
		}
	}
	c.byFingerprint[fp] = append(bucket, p)
}

// Collapsed returns the deduplicated RPPs in first-seen order, stable
// across runs with identical input ordering (spec.md §5 reproducibility).
func (c *Collapser) Collapsed() []*Probabilities {
	out := make([]*Probabilities, 0, len(c.order))
	for _, fp := range c.order {
		out = append(out, c.byFingerprint[fp]...)
	}
	return out
}
