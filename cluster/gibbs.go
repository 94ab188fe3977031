package cluster

import (
	"math/rand"
	"sort"

	xrand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// gibbsGamma is the Gibbs read-count sampler's fixed Dirichlet-proposal
// shape offset (spec.md §4.4.5 "Constant γ = 1").
const gibbsGamma = 1.0

// GibbsConfig holds the two caller-tunable Gibbs knobs of spec.md §6.
type GibbsConfig struct {
	NumSamples int
	ThinIts    int
}

// GibbsSample is one recorded sample of spec.md §3's
// gibbs_read_count_samples: a snapshot of per-path read counts.
type GibbsSample struct {
	Counts []float64 // length len(Matrix.Paths), scaled by total_count
}

// ReadCountSamples implements spec.md §4.4.5: starting from EM
// abundances normalized to a simplex, alternately draw per-read path
// assignments (sequential conditional binomials) and per-path abundances
// (Gamma draws), recording a thinned sample every ThinIts iterations.
func ReadCountSamples(m *Matrix, em EMResult, cfg GibbsConfig, rng *rand.Rand) []GibbsSample {
	p := len(m.Paths)
	if p == 0 || len(m.Rows) == 0 {
		return nil
	}
	totalCount := 0
	for _, c := range m.Count {
		totalCount += c
	}
	if totalCount == 0 {
		return nil
	}

	x := make([]float64, p)
	sum := 0.0
	for j := 0; j < p; j++ {
		x[j] = em.Abundances.AtVec(j)
		sum += x[j]
	}
	if sum > 0 {
		for j := range x {
			x[j] /= sum
		}
	} else {
		for j := range x {
			x[j] = 1.0 / float64(p)
		}
	}

	samples := make([]GibbsSample, 0, cfg.NumSamples)
	k := make([]float64, p)
	totalIts := cfg.NumSamples * cfg.ThinIts
	for it := 1; it <= totalIts; it++ {
		for j := range k {
			k[j] = 0
		}
		for i, row := range m.Rows {
			rowSum := 0.0
			cols := make([]int, 0, len(row))
			for col, pij := range row {
				rowSum += pij * x[col]
				cols = append(cols, col)
			}
			if rowSum == 0 {
				continue
			}
			// Columns are visited in a fixed order so the same PRNG
			// stream yields the same draws on every run (spec.md §5).
			sort.Ints(cols)

			remainingCount := m.Count[i]
			remainingProb := 1.0
			for ci, col := range cols {
				if ci == len(cols)-1 {
					// The last column absorbs whatever remains, so every
					// row's assigned counts sum exactly to its total
					// (spec.md §8: "every row sum equals total_count").
					k[col] += float64(remainingCount)
					break
				}
				pij := row[col]
				condP := (pij * x[col] / rowSum) / remainingProb
				if condP > 1 {
					condP = 1
				}
				if condP < 0 {
					condP = 0
				}
				binom := distuv.Binomial{N: float64(remainingCount), P: condP, Src: rngSource(rng)}
				drawn := int(binom.Rand())
				if drawn > remainingCount {
					drawn = remainingCount
				}
				k[col] += float64(drawn)
				remainingCount -= drawn
				remainingProb -= pij * x[col] / rowSum
			}
		}

		newSum := 0.0
		for j := 0; j < p; j++ {
			g := distuv.Gamma{Alpha: k[j] + gibbsGamma, Beta: 1, Src: rngSource(rng)}
			x[j] = g.Rand()
			newSum += x[j]
		}
		if newSum > 0 {
			for j := range x {
				x[j] /= newSum
			}
		}

		if it%cfg.ThinIts == 0 {
			counts := make([]float64, p)
			for j := 0; j < p; j++ {
				counts[j] = x[j] * float64(totalCount)
			}
			samples = append(samples, GibbsSample{Counts: counts})
		}
	}
	return samples
}

// rngSource adapts a *rand.Rand (the per-cluster PRNG spec.md §5
// requires callers to supply, never consuming global RNG state) to
// gonum distuv's x/exp/rand.Source interface.
func rngSource(r *rand.Rand) xrand.Source {
	return rngAdapter{r}
}

type rngAdapter struct{ r *rand.Rand }

func (a rngAdapter) Uint64() uint64 {
	return a.r.Uint64()
}

func (a rngAdapter) Seed(uint64) {}
