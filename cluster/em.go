package cluster

import (
	"gonum.org/v1/gonum/mat"
)

// EMResult is the EM abundance estimator's output (spec.md §4.4.2).
// Converged is surfaced rather than treated as fatal, per SPEC_FULL.md
// §7's "numerical fallback" resolution: non-convergence within
// MaxIts is accepted as a best-effort estimate.
type EMResult struct {
	Abundances *mat.VecDense
	Converged  bool
	Iterations int
}

const (
	minEMConvIts   = 10
	minEMAbundance = 1e-8
)

// EMConfig holds the two caller-tunable EM knobs of spec.md §6.
type EMConfig struct {
	MaxIts      int
	MaxRelConv  float64
}

// EM runs the expectation-maximization abundance estimator of spec.md
// §4.4.2 over m's rows. The total count it normalizes to is the sum of
// m.Count, computed here.
func EM(m *Matrix, cfg EMConfig) EMResult {
	p := len(m.Paths)
	x := mat.NewVecDense(p, nil)
	if p == 0 || len(m.Rows) == 0 {
		return EMResult{Abundances: x, Converged: true}
	}
	for j := 0; j < p; j++ {
		x.SetVec(j, 1.0/float64(p))
	}

	totalCount := 0
	for _, c := range m.Count {
		totalCount += c
	}
	if totalCount == 0 {
		return EMResult{Abundances: x, Converged: true}
	}

	prev := mat.NewVecDense(p, nil)
	convergedStreak := 0
	converged := false
	it := 0
	for ; it < cfg.MaxIts; it++ {
		prev.CopyVec(x)
		next := mat.NewVecDense(p, nil)
		for i, row := range m.Rows {
			rowSum := 0.0
			for col, pij := range row {
				rowSum += pij * x.AtVec(col)
			}
			if rowSum == 0 {
				continue
			}
			weight := float64(m.Count[i]) / rowSum
			for col, pij := range row {
				next.SetVec(col, next.AtVec(col)+pij*x.AtVec(col)*weight)
			}
		}
		for j := 0; j < p; j++ {
			next.SetVec(j, next.AtVec(j)/float64(totalCount))
		}
		x = next

		allConverged := true
		for j := 0; j < p; j++ {
			xj := x.AtVec(j)
			if xj < minEMAbundance {
				continue
			}
			if diff := abs(xj-prev.AtVec(j)) / xj; diff > cfg.MaxRelConv {
				allConverged = false
				break
			}
		}
		if allConverged {
			convergedStreak++
			if convergedStreak >= minEMConvIts {
				converged = true
				it++
				break
			}
		} else {
			convergedStreak = 0
		}
	}

	sum := 0.0
	for j := 0; j < p; j++ {
		v := x.AtVec(j)
		if v < minEMAbundance {
			x.SetVec(j, 0)
			continue
		}
		sum += v
	}
	if sum > 0 {
		scale := float64(totalCount) / sum
		for j := 0; j < p; j++ {
			x.SetVec(j, x.AtVec(j)*scale)
		}
	}

	return EMResult{Abundances: x, Converged: converged, Iterations: it}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
