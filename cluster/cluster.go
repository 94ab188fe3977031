package cluster

import (
	"math/rand"

	"github.com/jonassibbesen/vgprob/pathindex"
	"github.com/jonassibbesen/vgprob/rpp"
)

// Run assembles the full matrix for one cluster, runs EM, and (when
// groupSize > 0) the exact grouped posterior calculator, producing the
// Estimate spec.md §3 describes as the unit handed to C9 writers.
func Run(rpps []*rpp.Probabilities, paths []PathInfo, pathIDToCol map[pathindex.PathID]int, cfg Config, rng *rand.Rand) Estimate {
	m := Assemble(rpps, paths, pathIDToCol, Full, nil, false)
	m.NoiseSubtractAndNormalize()
	m.CollapseRows(cfg.ProbPrecision)

	emResult := EM(m, cfg.EM)

	est := Estimate{
		Paths:       m.Paths,
		Abundances:  emResult.Abundances,
		EMConverged: emResult.Converged,
	}

	if cfg.GroupSize > 0 {
		groups, posts := ExactPosteriors(m, m.Paths, cfg.GroupSize, cfg.MinHapProb)
		est.PathGroupSets = groups
		est.Posteriors = posts
	}

	if cfg.Gibbs.NumSamples > 0 {
		est.GibbsReadCountSamples = ReadCountSamples(m, emResult, cfg.Gibbs, rng)
	}

	return est
}
