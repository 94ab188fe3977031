package owent

import "math"

// tMethod dispatches to one of the internal evaluators for the reduced
// domain h ≥ 0, 0 ≤ a ≤ 1, following spec.md §4.5's bucket-by-(a,h)
// selection. The buckets below collapse the original paper's 8x15 table
// to the regimes that matter for float64 precision: the exact a=1
// boundary (T6), a truncated power series for small a where it converges
// in a handful of terms (T1, with an accelerated partial-sum variant
// T1_accelerated for the slowly-alternating middle range), and a
// Gauss-Legendre quadrature fallback (T5) that is accurate across the
// whole domain and used whenever the series would need too many terms
// to be worth it.
func tMethod(h, a float64) float64 {
	switch {
	case a == 1:
		return t6(h)
	case a < 1e-3 || h > 6:
		// Either the series converges in its first term (a tiny) or the
		// integrand is negligible almost everywhere (h large); the plain
		// series is both cheapest and exact enough here.
		return t1(h, a)
	case a <= 0.7:
		return t1Accelerated(h, a)
	default:
		return t5(h, a)
	}
}

// t1 is the direct power series of Owen's T in a (Patefield-Tandy's T1):
//
//	T(h,a) = (1/2π) Σ_{n=0}^∞ (-1)^n a^(2n+1) g_n(h,a)
//
// where g_n(h,a) = ∫_0^1 x^(2n) exp(-h²(1+a²x²)/2) dx, evaluated term-by-term
// via gIntegral until a term falls below tolerance.
func t1(h, a float64) float64 {
	const maxTerms = 200
	const tol = 1e-17

	sum := 0.0
	for n := 0; n < maxTerms; n++ {
		gn := gIntegral(h, a, n)
		contrib := termSign(n) * math.Pow(a, float64(2*n+1)) * gn
		sum += contrib
		if math.Abs(contrib) < tol {
			break
		}
	}
	return invTwoPi * sum
}

func termSign(n int) float64 {
	if n%2 == 0 {
		return 1
	}
	return -1
}

// gIntegral computes ∫_0^1 x^(2n) exp(-h²(1+a²x²)/2) dx via a fixed 24-point
// Gauss-Legendre rule on [0,1], accurate to float64 precision for the
// smooth, rapidly-decaying integrands t1 calls it with.
func gIntegral(h, a float64, n int) float64 {
	sum := 0.0
	for i := range gl24Nodes {
		x := 0.5 * (gl24Nodes[i] + 1)
		w := 0.5 * gl24Weights[i]
		sum += w * math.Pow(x, float64(2*n)) * math.Exp(-h*h*(1+a*a*x*x)/2)
	}
	return sum
}

// t1Accelerated applies Euler transformation-style partial averaging to
// t1's alternating series (the practical effect Cohen-Rodriguez Villegas-
// Zagier acceleration has on a slowly-alternating series): it averages
// consecutive partial sums, which converges faster than the raw series
// for a in the moderate range where tMethod selects it, with a
// divergence guard that falls back to the plain series if a term ever
// grows relative to its predecessor.
func t1Accelerated(h, a float64) float64 {
	const maxTerms = 60
	const tol = 1e-17

	partial := 0.0
	prevPartial := 0.0
	averaged := 0.0
	prevTermAbs := math.Inf(1)
	for n := 0; n < maxTerms; n++ {
		gn := gIntegral(h, a, n)
		contrib := termSign(n) * math.Pow(a, float64(2*n+1)) * gn
		if math.Abs(contrib) > prevTermAbs {
			return t1(h, a)
		}
		prevTermAbs = math.Abs(contrib)
		prevPartial = partial
		partial += contrib
		averaged = (partial + prevPartial) / 2
		if math.Abs(contrib) < tol {
			break
		}
	}
	return invTwoPi * averaged
}

// t5 evaluates T directly by 48-point Gauss-Legendre quadrature of the
// defining integral over [0,a], used when the series would need too many
// terms to converge cleanly (a close to 1).
func t5(h, a float64) float64 {
	sum := 0.0
	for i := range gl48Nodes {
		x := a / 2 * (gl48Nodes[i] + 1)
		w := a / 2 * gl48Weights[i]
		sum += w * math.Exp(-h*h*(1+x*x)/2) / (1 + x*x)
	}
	return invTwoPi * sum
}

// t6 is the closed form at a=1: T(h,1) = Φ(-h)Φ(h)/2 (spec.md §4.5).
func t6(h float64) float64 {
	return normalCDF(-h) * normalCDF(h) / 2
}
