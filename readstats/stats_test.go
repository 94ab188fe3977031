package readstats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSoftclipMustBeSetBeforeUse(t *testing.T) {
	var s Stats
	assert.False(t, s.LeftSoftclipLength.Set)
	s.SetLeftSoftclip(4)
	s.SetRightSoftclip(0)
	assert.True(t, s.LeftSoftclipLength.Set)
	assert.Equal(t, 4, s.LeftSoftclipLength.Value)
	assert.True(t, s.RightSoftclipLength.Set)
}

func TestExceedsMaxInternalOffset(t *testing.T) {
	var s Stats
	assert.False(t, s.ExceedsMaxInternalOffset(5))
	s.ActivateInternalStartOffset(3)
	assert.False(t, s.ExceedsMaxInternalOffset(5))
	s.ActivateInternalEndOffset(10)
	assert.True(t, s.ExceedsMaxInternalOffset(5))
}

func TestMapqProb(t *testing.T) {
	assert.InDelta(t, 1.0, MapqProb(0), 1e-9)
	assert.InDelta(t, 0.1, MapqProb(10), 1e-9)
	assert.InDelta(t, 0.01, MapqProb(20), 1e-9)
}

func TestCloneIsIndependent(t *testing.T) {
	s := Stats{Mapq: 30}
	c := s.Clone()
	c.Mapq = 10
	assert.Equal(t, 30, s.Mapq)
	assert.Equal(t, 10, c.Mapq)
}
