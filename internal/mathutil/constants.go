package mathutil

// Bessel series constants
const (
	// besselSeriesEpsilon stops the I₀ power series once a term no longer
	// changes the sum at double precision.
	besselSeriesEpsilon = 1e-21

	// besselMaxTerms bounds the series for pathological inputs.
	besselMaxTerms = 500

	halfDivisor = 2.0
)

// Kaiser β formula constants (Kaiser & Schafer empirical fit)
const (
	kaiserAttHigh   = 50.0 // High attenuation threshold (dB)
	kaiserAttMedium = 21.0 // Medium attenuation threshold (dB)

	kaiserBetaHighCoeff1 = 0.1102
	kaiserBetaHighOffset = 8.7

	kaiserBetaMediumCoeff1 = 0.5842
	kaiserBetaMediumPower  = 0.4
	kaiserBetaMediumCoeff2 = 0.07886
)
