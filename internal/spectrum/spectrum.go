// Package spectrum measures the frequency content of sample blocks with a
// Hann-windowed FFT. It backs the filter analysis tool and the spectral
// assertions in tests.
package spectrum

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/tphakala/go-frame-resampler/internal/simdops"
	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	minSize = 8

	// silenceDB is reported for bins with no energy.
	silenceDB = -300.0

	// peakSearchBins is the half-width of the search around a target bin,
	// covering the Hann main lobe.
	peakSearchBins = 2
)

// ErrInvalidSize is returned for transform sizes that are too small or odd.
var ErrInvalidSize = errors.New("invalid FFT size")

// Analyzer computes amplitude spectra of fixed-size blocks. It reuses its
// buffers, so an Analyzer is not safe for concurrent use.
type Analyzer struct {
	fft    *fourier.FFT
	size   int
	window []float64
	block  []float64
	coeffs []complex128
	mags   []float64
	norm   float64 // converts |X[k]| to sine amplitude
}

// NewAnalyzer creates an analyzer for blocks of size samples.
func NewAnalyzer(size int) (*Analyzer, error) {
	if size < minSize || size%2 != 0 {
		return nil, fmt.Errorf("%w: %d (must be even and at least %d)", ErrInvalidSize, size, minSize)
	}

	window := make([]float64, size)
	for i := range window {
		window[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(size))
	}

	return &Analyzer{
		fft:    fourier.NewFFT(size),
		size:   size,
		window: window,
		block:  make([]float64, size),
		mags:   make([]float64, size/2+1),
		norm:   2 / simdops.For[float64]().Sum(window),
	}, nil
}

// Size returns the transform length.
func (a *Analyzer) Size() int { return a.size }

// Magnitudes returns the amplitude spectrum of the first Size() samples,
// zero-padding shorter input. A sine of amplitude A centered on a bin reads
// as A. The returned slice is reused by the next call.
func (a *Analyzer) Magnitudes(samples []float32) []float64 {
	clear(a.block)
	for i, s := range samples[:min(len(samples), a.size)] {
		a.block[i] = float64(s) * a.window[i]
	}

	a.coeffs = a.fft.Coefficients(a.coeffs, a.block)
	for k, c := range a.coeffs {
		a.mags[k] = cmplx.Abs(c) * a.norm
	}
	return a.mags
}

// BinFrequency returns the center frequency of bin k.
func (a *Analyzer) BinFrequency(k int, sampleRate float64) float64 {
	return float64(k) * sampleRate / float64(a.size)
}

// LevelAt returns the peak amplitude in dB (relative to 1.0) within the
// main lobe around freq.
func (a *Analyzer) LevelAt(samples []float32, sampleRate, freq float64) float64 {
	mags := a.Magnitudes(samples)
	center := int(math.Round(freq * float64(a.size) / sampleRate))

	peak := 0.0
	for k := max(center-peakSearchBins, 0); k <= min(center+peakSearchBins, len(mags)-1); k++ {
		peak = max(peak, mags[k])
	}
	return ToDB(peak)
}

// PeakFrequency returns the frequency of the strongest non-DC bin.
func (a *Analyzer) PeakFrequency(samples []float32, sampleRate float64) float64 {
	mags := a.Magnitudes(samples)
	best := 1
	for k := 2; k < len(mags); k++ {
		if mags[k] > mags[best] {
			best = k
		}
	}
	return a.BinFrequency(best, sampleRate)
}

// ToDB converts an amplitude to decibels.
func ToDB(amplitude float64) float64 {
	if amplitude <= 0 {
		return silenceDB
	}
	return 20 * math.Log10(amplitude)
}
