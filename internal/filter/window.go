// Package filter generates the windowed-sinc anti-aliasing filters used by
// the resamplers, laid out as polyphase coefficient tables.
package filter

import (
	"fmt"
	"math"

	"github.com/tphakala/go-frame-resampler/internal/mathutil"
)

// WindowType selects the taper applied to the ideal sinc.
type WindowType int

const (
	// WindowHamming is a raised cosine taper, ~53 dB of stopband rejection.
	WindowHamming WindowType = iota

	// WindowKaiser is a Bessel-based taper whose rejection is set by β.
	WindowKaiser
)

func (w WindowType) String() string {
	switch w {
	case WindowHamming:
		return "hamming"
	case WindowKaiser:
		return "kaiser"
	default:
		return fmt.Sprintf("window(%d)", int(w))
	}
}

// Sinc returns sin(x)/x, with the removable singularity at 0 evaluated as 1.
func Sinc(x float64) float64 {
	if math.Abs(x) < sincZeroThreshold {
		return 1.0
	}
	return math.Sin(x) / x
}

// HammingWindow returns the Hamming weight for a tap at angular position
// radians inside a window of half-width spread (in samples). The weight is
// 1.0 at the center and 0.08 at ±π·spread.
func HammingWindow(radians float64, spread int) float64 {
	windowPhase := radians / float64(spread)
	return hammingAlpha + (1.0-hammingAlpha)*math.Cos(windowPhase)
}

// KaiserWindow evaluates a Kaiser window at normalized position x ∈ [-1, 1].
// Positions outside the window return 0.
func KaiserWindow(x, beta float64) float64 {
	if x < -1 || x > 1 {
		return 0
	}
	return mathutil.BesselI0(beta*math.Sqrt(1.0-x*x)) / mathutil.BesselI0(beta)
}

// CalculateWindowedSinc returns the Hamming-windowed sinc at the given
// angular position; this is the per-tap coefficient before normalization.
func CalculateWindowedSinc(radians float64, spread int) float64 {
	return Sinc(radians) * HammingWindow(radians, spread)
}

// windowFunc evaluates a window at angular position radians for half-width spread.
type windowFunc func(radians float64, spread int) float64

func kaiserFunc(beta float64) windowFunc {
	return func(radians float64, spread int) float64 {
		return KaiserWindow(radians/(sincPiMultiplier*float64(spread)), beta)
	}
}
