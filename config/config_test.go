package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonassibbesen/vgprob/pathfinder"
)

func TestDefaultMatchesPathfinderDefault(t *testing.T) {
	pc := Default.PathfinderConfig()
	assert.Equal(t, pathfinder.Default.LibraryType, pc.LibraryType)
	assert.Equal(t, pathfinder.Default.MaxPairFragLength, pc.MaxPairFragLength)
	assert.Equal(t, pathfinder.Default.MaxScoreDiff, pc.MaxScoreDiff)
	assert.Equal(t, pathfinder.Default.DisconnectedScoreDiffMultiplier, pc.DisconnectedScoreDiffMultiplier)
}

func TestClusterConfigProjection(t *testing.T) {
	cfg := Default
	cfg.NumGibbsSamples = 500
	cfg.GroupSize = 2
	cc := cfg.ClusterConfig()
	assert.Equal(t, 500, cc.Gibbs.NumSamples)
	assert.Equal(t, 2, cc.GroupSize)
	assert.Equal(t, cfg.ProbPrecision, cc.ProbPrecision)
	assert.Equal(t, cfg.MaxEMIts, cc.EM.MaxIts)
}
