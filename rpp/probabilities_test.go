package rpp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonassibbesen/vgprob/pathindex"
)

func TestFingerprintStableUnderKeyOrder(t *testing.T) {
	a := New(0.1, map[float64][]pathindex.PathID{0.9: {1, 2}}, 1e-8)
	b := New(0.1, map[float64][]pathindex.PathID{0.9: {2, 1}}, 1e-8)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.True(t, a.Equal(b))
}

func TestFingerprintDiffersOnNoise(t *testing.T) {
	a := New(0.1, map[float64][]pathindex.PathID{0.9: {1}}, 1e-8)
	b := New(0.2, map[float64][]pathindex.PathID{0.8: {1}}, 1e-8)
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestSumInvariant(t *testing.T) {
	p := New(0.2, map[float64][]pathindex.PathID{0.4: {1, 2}}, 1e-8)
	assert.InDelta(t, 1.0, p.Sum(), 1e-6)
}

func TestCollapserMergesDuplicates(t *testing.T) {
	c := NewCollapser()
	c.Add(New(0.1, map[float64][]pathindex.PathID{0.9: {1}}, 1e-8))
	c.Add(New(0.1, map[float64][]pathindex.PathID{0.9: {1}}, 1e-8))
	c.Add(New(0.3, map[float64][]pathindex.PathID{0.7: {2}}, 1e-8))

	collapsed := c.Collapsed()
	assert.Len(t, collapsed, 2)
	total := 0
	for _, p := range collapsed {
		total += p.ReadCount
	}
	assert.Equal(t, 3, total)
}

func TestRoundToCollapsesNearEqualProbabilities(t *testing.T) {
	p := New(0, map[float64][]pathindex.PathID{0.500000001: {1}, 0.5: {2}}, 1e-6)
	assert.Len(t, p.PathProbs, 1)
}
