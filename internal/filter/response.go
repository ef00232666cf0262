package filter

import (
	"math"
)

// FilterResponse holds the frequency response of a filter.
type FilterResponse struct {
	// Frequencies at which response was calculated (normalized, 0 to 0.5)
	Frequencies []float64

	// Magnitude response at each frequency (linear scale)
	Magnitude []float64

	// Phase response at each frequency (radians)
	Phase []float64
}

// ComputeFrequencyResponse evaluates the DTFT of coeffs at numPoints
// frequencies from DC up to (but excluding) Nyquist.
func ComputeFrequencyResponse(coeffs []float32, numPoints int) FilterResponse {
	if numPoints <= 0 {
		numPoints = defaultResponsePoints
	}

	response := FilterResponse{
		Frequencies: make([]float64, numPoints),
		Magnitude:   make([]float64, numPoints),
		Phase:       make([]float64, numPoints),
	}

	for k := range numPoints {
		freq := float64(k) / (frequencyNyquistDivisor * float64(numPoints))
		response.Frequencies[k] = freq

		// H(e^jω) = Σ h[n]·e^(-jωn)
		var realPart, imagPart float64
		omega := 2.0 * math.Pi * freq
		for n, h := range coeffs {
			angle := omega * float64(n)
			realPart += float64(h) * math.Cos(angle)
			imagPart -= float64(h) * math.Sin(angle)
		}

		response.Magnitude[k] = math.Hypot(realPart, imagPart)
		response.Phase[k] = math.Atan2(imagPart, realPart)
	}

	return response
}

// PeakDB returns the highest magnitude, in dB, at normalized frequencies in [lo, hi].
func (r FilterResponse) PeakDB(lo, hi float64) float64 {
	peak := math.Inf(-1)
	for i, f := range r.Frequencies {
		if f < lo || f > hi {
			continue
		}
		peak = max(peak, MagnitudeDB(r.Magnitude[i]))
	}
	return peak
}

// MagnitudeDB converts linear magnitude to decibels.
func MagnitudeDB(magnitude float64) float64 {
	const (
		minMagnitude = 1e-10 // Avoid log(0)
		dbMultiplier = 20.0  // 20*log10 for magnitude
	)

	if magnitude < minMagnitude {
		magnitude = minMagnitude
	}
	return dbMultiplier * math.Log10(magnitude)
}
