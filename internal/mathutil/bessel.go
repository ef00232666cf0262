// Package mathutil provides the small numeric helpers used by filter design
// and rate-ratio bookkeeping.
package mathutil

import (
	"math"
)

// BesselI0 computes the modified Bessel function of the first kind, order zero.
//
// The power series Σ ((x/2)^k / k!)² converges quickly for the β values used
// by Kaiser windows (0-15), so no asymptotic branch is needed.
func BesselI0(x float64) float64 {
	half := x / halfDivisor
	halfSq := half * half

	sum := 1.0
	term := 1.0
	for k := 1; k <= besselMaxTerms; k++ {
		fk := float64(k)
		term *= halfSq / (fk * fk)
		sum += term
		if term < besselSeriesEpsilon*sum {
			break
		}
	}
	return sum
}

// KaiserBeta returns the Kaiser window β that yields the requested stopband
// attenuation in dB. Attenuations below 21 dB need no window shaping (β = 0).
func KaiserBeta(attenuation float64) float64 {
	switch {
	case attenuation > kaiserAttHigh:
		return kaiserBetaHighCoeff1 * (attenuation - kaiserBetaHighOffset)
	case attenuation >= kaiserAttMedium:
		delta := attenuation - kaiserAttMedium
		return kaiserBetaMediumCoeff1*math.Pow(delta, kaiserBetaMediumPower) + kaiserBetaMediumCoeff2*delta
	default:
		return 0.0
	}
}
