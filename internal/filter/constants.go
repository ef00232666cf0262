package filter

import "math"

// MaxCoefficients bounds the size of any generated coefficient table.
const MaxCoefficients = 8 * 1024

// Tap count limits. Polyphase rows are processed four taps at a time.
const (
	MinTaps       = 4
	MaxTaps       = 64
	TapsAlignment = 4
)

const (
	// Hamming window shape: α + (1-α)·cos(θ)
	hammingAlpha = 0.54

	// sincZeroThreshold guards the removable singularity at x = 0.
	sincZeroThreshold = 1e-9

	// gainZeroThreshold skips row normalization for degenerate rows.
	gainZeroThreshold = 1e-12

	// defaultKaiserBeta corresponds to ~80 dB of stopband attenuation.
	defaultKaiserBeta = 7.857

	halfDivisor = 2

	sincPiMultiplier = math.Pi

	// Frequency response evaluation
	defaultResponsePoints   = 512
	frequencyNyquistDivisor = 2.0
)
