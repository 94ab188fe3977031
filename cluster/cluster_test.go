package cluster

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonassibbesen/vgprob/pathindex"
	"github.com/jonassibbesen/vgprob/rpp"
)

func onePathPaths() []PathInfo {
	return []PathInfo{{Name: "42", Length: 100, EffectiveLength: 80, SourceCount: 1}}
}

// TestSingleMappingSinglePath is spec.md §8 scenario 1.
func TestSingleMappingSinglePath(t *testing.T) {
	paths := onePathPaths()
	idToCol := map[pathindex.PathID]int{42: 0}
	r := rpp.New(0, map[float64][]pathindex.PathID{1.0: {42}}, 1e-8)

	m := Assemble([]*rpp.Probabilities{r}, paths, idToCol, Full, nil, false)
	m.NoiseSubtractAndNormalize()
	em := EM(m, EMConfig{MaxIts: 100, MaxRelConv: 1e-6})

	require.Equal(t, 1, em.Abundances.Len())
	assert.InDelta(t, 1.0, em.Abundances.AtVec(0), 1e-6)

	groups, posts := ExactPosteriors(m, m.Paths, 1, 0)
	require.Len(t, groups, 1)
	assert.InDelta(t, 1.0, posts[0], 1e-9)
}

// TestTwoEquallyLikelyPaths is spec.md §8 scenario 2.
func TestTwoEquallyLikelyPaths(t *testing.T) {
	paths := []PathInfo{{Name: "a"}, {Name: "b"}}
	idToCol := map[pathindex.PathID]int{1: 0, 2: 1}
	r := rpp.New(0, map[float64][]pathindex.PathID{0.5: {1, 2}}, 1e-8)

	m := Assemble([]*rpp.Probabilities{r}, paths, idToCol, Full, nil, false)
	m.NoiseSubtractAndNormalize()
	em := EM(m, EMConfig{MaxIts: 200, MaxRelConv: 1e-9})

	assert.InDelta(t, 0.5, em.Abundances.AtVec(0), 1e-3)
	assert.InDelta(t, 0.5, em.Abundances.AtVec(1), 1e-3)
}

// TestNoiseOnlyReadDropped is spec.md §8 scenario 3.
func TestNoiseOnlyReadDropped(t *testing.T) {
	paths := []PathInfo{{Name: "a"}}
	idToCol := map[pathindex.PathID]int{1: 0}
	r := rpp.New(1.0, map[float64][]pathindex.PathID{0: {1}}, 1e-8)

	m := Assemble([]*rpp.Probabilities{r}, paths, idToCol, Full, nil, false)
	m.NoiseSubtractAndNormalize()
	assert.Empty(t, m.Rows)
}

// TestDiplotypeEnumeration is spec.md §8 scenario 6.
func TestDiplotypeEnumeration(t *testing.T) {
	paths := []PathInfo{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	idToCol := map[pathindex.PathID]int{1: 0, 2: 1, 3: 2}
	r := rpp.New(0, map[float64][]pathindex.PathID{0.5: {1}, 0.3: {2}, 0.2: {3}}, 1e-8)

	m := Assemble([]*rpp.Probabilities{r}, paths, idToCol, Full, nil, false)
	groups, posts := ExactPosteriors(m, m.Paths, 2, 0)

	require.Len(t, groups, 6)
	sum := 0.0
	for _, p := range posts {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestEMAbundancesSumToTotalCount(t *testing.T) {
	paths := []PathInfo{{Name: "a"}, {Name: "b"}}
	idToCol := map[pathindex.PathID]int{1: 0, 2: 1}
	r1 := rpp.New(0, map[float64][]pathindex.PathID{0.5: {1, 2}}, 1e-8)
	r1.ReadCount = 3
	r2 := rpp.New(0, map[float64][]pathindex.PathID{1.0: {1}}, 1e-8)
	r2.ReadCount = 2

	m := Assemble([]*rpp.Probabilities{r1, r2}, paths, idToCol, Full, nil, false)
	m.NoiseSubtractAndNormalize()
	em := EM(m, EMConfig{MaxIts: 200, MaxRelConv: 1e-9})

	total := 0.0
	for j := 0; j < em.Abundances.Len(); j++ {
		total += em.Abundances.AtVec(j)
		assert.GreaterOrEqual(t, em.Abundances.AtVec(j), 0.0)
	}
	assert.InDelta(t, 5.0, total, 1e-6)
}

func TestMinCoverChoosesDominantPath(t *testing.T) {
	paths := []PathInfo{{Name: "a"}, {Name: "b"}}
	idToCol := map[pathindex.PathID]int{1: 0, 2: 1}
	r := rpp.New(0, map[float64][]pathindex.PathID{0.9: {1}, 0.1: {2}}, 1e-8)
	r.ReadCount = 5

	m := Assemble([]*rpp.Probabilities{r}, paths, idToCol, Full, nil, false)
	chosen := MinCover(m, []float64{1, 1})
	assert.Contains(t, chosen, 0)
}

func TestReadCountSamplesRowSumsMatchTotal(t *testing.T) {
	paths := []PathInfo{{Name: "a"}, {Name: "b"}}
	idToCol := map[pathindex.PathID]int{1: 0, 2: 1}
	r := rpp.New(0, map[float64][]pathindex.PathID{0.5: {1, 2}}, 1e-8)
	r.ReadCount = 10

	m := Assemble([]*rpp.Probabilities{r}, paths, idToCol, Full, nil, false)
	m.NoiseSubtractAndNormalize()
	em := EM(m, EMConfig{MaxIts: 100, MaxRelConv: 1e-6})

	rng := rand.New(rand.NewSource(1))
	samples := ReadCountSamples(m, em, GibbsConfig{NumSamples: 3, ThinIts: 2}, rng)
	require.Len(t, samples, 3)
	for _, s := range samples {
		sum := 0.0
		for _, c := range s.Counts {
			assert.GreaterOrEqual(t, c, 0.0)
			sum += c
		}
		assert.InDelta(t, 10.0, sum, 1e-6)
	}
}

func TestReproducibleGivenSameSeed(t *testing.T) {
	paths := []PathInfo{{Name: "a"}, {Name: "b"}}
	idToCol := map[pathindex.PathID]int{1: 0, 2: 1}
	build := func() *Matrix {
		r := rpp.New(0, map[float64][]pathindex.PathID{0.5: {1, 2}}, 1e-8)
		r.ReadCount = 10
		m := Assemble([]*rpp.Probabilities{r}, paths, idToCol, Full, nil, false)
		m.NoiseSubtractAndNormalize()
		return m
	}

	m1, m2 := build(), build()
	em1 := EM(m1, EMConfig{MaxIts: 100, MaxRelConv: 1e-6})
	em2 := EM(m2, EMConfig{MaxIts: 100, MaxRelConv: 1e-6})

	rng1 := rand.New(rand.NewSource(42))
	rng2 := rand.New(rand.NewSource(42))
	s1 := ReadCountSamples(m1, em1, GibbsConfig{NumSamples: 2, ThinIts: 2}, rng1)
	s2 := ReadCountSamples(m2, em2, GibbsConfig{NumSamples: 2, ThinIts: 2}, rng2)

	require.Len(t, s1, len(s2))
	for i := range s1 {
		for j := range s1[i].Counts {
			assert.InDelta(t, s1[i].Counts[j], s2[i].Counts[j], 1e-9)
		}
	}
}
