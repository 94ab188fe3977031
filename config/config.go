// Package config bundles every per-run knob the vgprob pipeline exposes,
// mirroring fusion.Opts's style: one flat struct, a package-level
// default, no builder layer.
package config

import (
	"github.com/jonassibbesen/vgprob/cluster"
	"github.com/jonassibbesen/vgprob/pathfinder"
)

// Config is the top-level run configuration threaded through APM, PIE
// and C9, per spec.md §6.
type Config struct {
	// APM (pathfinder) knobs.
	LibraryType                     pathfinder.LibraryType
	MaxPairFragLength               int
	MaxInternalOffset               int
	MinMapqFilter                   int
	MinBestScoreFilter              float64
	MaxSoftclipFilter               float64
	MaxScoreDiff                    float64
	DisconnectedScoreDiffMultiplier float64

	// PIE (cluster) knobs.
	MaxEMIts          int
	MaxRelEMConv      float64
	NumGibbsSamples   int
	GibbsThinIts      int
	ProbPrecision     float64
	GroupSize         int
	MinHapProb        float64
	InferCollapsed    bool
	UseGroupPostGibbs bool

	// RandomSeed seeds the per-cluster PRNG spec.md §5 requires every
	// Gibbs run to receive explicitly (never the global rand source), so
	// that a fixed seed plus fixed inputs reproduces bitwise-identical
	// output across runs.
	RandomSeed int64
}

// Default mirrors the numeric defaults spec.md §9 and SPEC_FULL.md §4.8
// settle on for every knob not pinned by the caller.
var Default = Config{
	LibraryType:                     pathfinder.Unstranded,
	MaxPairFragLength:               1000,
	MaxInternalOffset:               0,
	MinMapqFilter:                   0,
	MinBestScoreFilter:              0,
	MaxSoftclipFilter:               1,
	MaxScoreDiff:                    1e-8,
	DisconnectedScoreDiffMultiplier: 10,

	MaxEMIts:          1000,
	MaxRelEMConv:      1e-9,
	NumGibbsSamples:   0,
	GibbsThinIts:      10,
	ProbPrecision:     1e-8,
	GroupSize:         0,
	MinHapProb:        0,
	InferCollapsed:    false,
	UseGroupPostGibbs: false,

	RandomSeed: 1,
}

// PathfinderConfig projects the APM-relevant fields into a
// pathfinder.Config, the shape that package's Finder actually consumes.
func (c Config) PathfinderConfig() pathfinder.Config {
	return pathfinder.Config{
		LibraryType:                     c.LibraryType,
		MaxPairFragLength:               c.MaxPairFragLength,
		MaxInternalOffset:               c.MaxInternalOffset,
		MinMapqFilter:                   c.MinMapqFilter,
		MinBestScoreFilter:              c.MinBestScoreFilter,
		MaxSoftclipFilter:               c.MaxSoftclipFilter,
		MaxScoreDiff:                    c.MaxScoreDiff,
		DisconnectedScoreDiffMultiplier: c.DisconnectedScoreDiffMultiplier,
	}
}

// ClusterConfig projects the PIE-relevant fields into a cluster.Config.
func (c Config) ClusterConfig() cluster.Config {
	return cluster.Config{
		EM: cluster.EMConfig{
			MaxIts:     c.MaxEMIts,
			MaxRelConv: c.MaxRelEMConv,
		},
		Gibbs: cluster.GibbsConfig{
			NumSamples: c.NumGibbsSamples,
			ThinIts:    c.GibbsThinIts,
		},
		ProbPrecision:     c.ProbPrecision,
		GroupSize:         c.GroupSize,
		MinHapProb:        c.MinHapProb,
		InferCollapsed:    c.InferCollapsed,
		UseGroupPostGibbs: c.UseGroupPostGibbs,
	}
}
