package filter

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/go-frame-resampler/internal/simdops"
)

// Design errors. All of them are reported before a resampler exists.
var (
	ErrInvalidTaps   = errors.New("invalid tap count")
	ErrTableTooLarge = errors.New("coefficient table too large")
	ErrInvalidRate   = errors.New("invalid sample rate")
	ErrInvalidCutoff = errors.New("invalid normalized cutoff")
	ErrInvalidRows   = errors.New("invalid row layout")
	ErrInvalidWindow = errors.New("invalid window type")
)

// Params describes a polyphase coefficient table.
type Params struct {
	// InputRate and OutputRate set the cutoff: the filter passes
	// NormalizedCutoff × min(InputRate, OutputRate)/2.
	InputRate  int
	OutputRate int

	// NumTaps is the length of every row. Must be a multiple of 4 in [4, 64].
	NumTaps int

	// NumRows is the number of distinct sub-sample phases.
	NumRows int

	// PhaseIncrement is the fractional phase step between consecutive rows.
	// Row r sits at frac(r × PhaseIncrement).
	PhaseIncrement float64

	// NormalizedCutoff in (0, 1] relative to the lower Nyquist rate.
	NormalizedCutoff float64

	// Window selects the taper. Beta is only used by WindowKaiser;
	// zero selects an ~80 dB design.
	Window WindowType
	Beta   float64

	// GuardRow appends one extra row at phase exactly 1.0 so that readers
	// interpolating between row i and i+1 never wrap.
	GuardRow bool
}

// TotalRows returns the number of rows including the guard row.
func (p *Params) TotalRows() int {
	if p.GuardRow {
		return p.NumRows + 1
	}
	return p.NumRows
}

// Validate checks the table layout and the filter parameters.
func (p *Params) Validate() error {
	if p.NumTaps%TapsAlignment != 0 || p.NumTaps < MinTaps || p.NumTaps > MaxTaps {
		return fmt.Errorf("%w: %d (must be a multiple of %d in [%d, %d])",
			ErrInvalidTaps, p.NumTaps, TapsAlignment, MinTaps, MaxTaps)
	}

	if p.InputRate <= 0 || p.OutputRate <= 0 {
		return fmt.Errorf("%w: input=%d output=%d", ErrInvalidRate, p.InputRate, p.OutputRate)
	}

	if !(p.NormalizedCutoff > 0 && p.NormalizedCutoff <= 1) {
		return fmt.Errorf("%w: %v (must be in (0, 1])", ErrInvalidCutoff, p.NormalizedCutoff)
	}

	if p.NumRows < 1 || !(p.PhaseIncrement > 0) {
		return fmt.Errorf("%w: rows=%d increment=%v", ErrInvalidRows, p.NumRows, p.PhaseIncrement)
	}

	if size := p.TotalRows() * p.NumTaps; size > MaxCoefficients {
		return fmt.Errorf("%w: %d rows × %d taps = %d (max %d)",
			ErrTableTooLarge, p.TotalRows(), p.NumTaps, size, MaxCoefficients)
	}

	if p.Window != WindowHamming && p.Window != WindowKaiser {
		return fmt.Errorf("%w: %v", ErrInvalidWindow, p.Window)
	}

	return nil
}

// CutoffScaler returns the factor that stretches the sinc, expressed in input
// samples, so its cutoff lands at normalizedCutoff × min(in, out)/2.
func CutoffScaler(inputRate, outputRate int, normalizedCutoff float64) float64 {
	lower := min(inputRate, outputRate)
	return normalizedCutoff * float64(lower) / float64(inputRate)
}

// RowPhase returns the fractional sub-sample phase of row in [0, 1).
// The guard row, when present, is at exactly 1.0.
func (p *Params) RowPhase(row int) float64 {
	if p.GuardRow && row == p.NumRows {
		return 1.0
	}
	return math.Mod(float64(row)*p.PhaseIncrement, 1.0)
}

// GenerateCoefficients builds the flat row-major coefficient table.
//
// Tap k of a row at phase φ samples the windowed sinc at φ - NumTaps/2 + k,
// so tap 0 multiplies the newest frame of a newest-first history window.
// Every row is normalized to unity DC gain.
func GenerateCoefficients(p Params) ([]float32, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	window := HammingWindow
	if p.Window == WindowKaiser {
		beta := p.Beta
		if beta <= 0 {
			beta = defaultKaiserBeta
		}
		window = kaiserFunc(beta)
	}

	var (
		ops     = simdops.Float32Ops()
		rows    = p.TotalRows()
		coeffs  = make([]float32, rows*p.NumTaps)
		scaler  = CutoffScaler(p.InputRate, p.OutputRate, p.NormalizedCutoff)
		numHalf = p.NumTaps / halfDivisor
	)

	for row := range rows {
		dst := coeffs[row*p.NumTaps : (row+1)*p.NumTaps]
		tapPhase := p.RowPhase(row) - float64(numHalf)

		for tap := range dst {
			radians := tapPhase * sincPiMultiplier
			dst[tap] = float32(Sinc(radians*scaler) * window(radians, numHalf))
			tapPhase += 1.0
		}

		// Correct for gain variations between rows.
		if gain := ops.Sum(dst); math.Abs(float64(gain)) > gainZeroThreshold {
			ops.Scale(dst, dst, 1.0/gain)
		}
	}

	return coeffs, nil
}
