package owent

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTZeroAtAZero(t *testing.T) {
	assert.Equal(t, 0.0, T(1.23, 0))
	assert.Equal(t, 0.0, T(0, 0))
}

func TestTAtAOne(t *testing.T) {
	h := 0.8
	want := normalCDF(-h) * normalCDF(h) / 2
	assert.InDelta(t, want, T(h, 1), 1e-12)
}

func TestTOddSymmetryInA(t *testing.T) {
	h, a := 0.5, 0.3
	assert.InDelta(t, T(h, a), -T(h, -a), 1e-12)
}

func TestTEvenSymmetryInH(t *testing.T) {
	h, a := 0.5, 0.3
	assert.InDelta(t, T(h, a), T(-h, a), 1e-12)
}

func TestTMonotoneDecreasingInH(t *testing.T) {
	a := 0.6
	prev := T(0, a)
	for _, h := range []float64{0.2, 0.5, 1, 2, 3} {
		cur := T(h, a)
		assert.LessOrEqual(t, cur, prev+1e-12)
		prev = cur
	}
}

func TestTAgreesAcrossMethodBoundaries(t *testing.T) {
	// Values just inside/outside the a<=0.7 dispatch boundary should be
	// continuous to within quadrature/series tolerance: across the 0.002
	// step in a, T grows by the integrand at a=0.7 times the step.
	h := 1.1
	a1 := T(h, 0.699)
	a2 := T(h, 0.701)
	want := 0.002 * math.Exp(-h*h*(1+0.7*0.7)/2) / (1 + 0.7*0.7) / (2 * math.Pi)
	assert.InDelta(t, want, a2-a1, 1e-6)
}

func TestTPositiveForPositiveArgs(t *testing.T) {
	for _, h := range []float64{0, 0.1, 1, 2, 5} {
		for _, a := range []float64{0.01, 0.3, 0.7, 1, 2, 10} {
			v := T(h, a)
			assert.GreaterOrEqual(t, v, -1e-12, "h=%v a=%v", h, a)
			assert.LessOrEqual(t, v, 0.25+1e-9, "h=%v a=%v", h, a)
		}
	}
}

func TestTAtAOneClosedForm(t *testing.T) {
	// T(1,1) has the exact closed form of spec.md §4.5 since a=1.
	want := normalCDF(-1) * normalCDF(1) / 2
	assert.InDelta(t, want, T(1, 1), 1e-9)
}

func TestTApproachesZeroAsASmall(t *testing.T) {
	// As a -> 0, T(h,a) -> atan(a)/(2π) for the untilted integrand near
	// x=0, which itself -> 0; check the limit is small and matches the
	// first series term closely (the regime t1 is selected for).
	v := T(0.5, 1e-4)
	assert.InDelta(t, 0, v, 1e-4)
	assert.Greater(t, v, 0.0)
}

func TestNormalCDFSanity(t *testing.T) {
	assert.InDelta(t, 0.5, normalCDF(0), 1e-12)
	assert.InDelta(t, 1.0, normalCDF(8), 1e-9)
	assert.InDelta(t, 0.0, normalCDF(-8), 1e-9)
	assert.True(t, math.Abs(normalCDF(1)-0.8413447) < 1e-6)
}
