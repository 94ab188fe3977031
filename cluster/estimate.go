package cluster

import "gonum.org/v1/gonum/mat"

// Estimate is the PCE (Path Cluster Estimate) of spec.md §3: one
// cluster's inferred abundances, optional grouped posteriors, and
// optional Gibbs read-count samples.
type Estimate struct {
	Paths                 []PathInfo
	Abundances            *mat.VecDense
	EMConverged           bool
	PathGroupSets         []Group
	Posteriors            []float64
	GibbsReadCountSamples []GibbsSample
}

// Config bundles every knob spec.md §6 lists for C7.
type Config struct {
	EM                EMConfig
	Gibbs             GibbsConfig
	ProbPrecision     float64
	GroupSize         int
	MinHapProb        float64
	InferCollapsed    bool
	UseGroupPostGibbs bool
}
