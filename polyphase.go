package resampler

import (
	"fmt"

	"github.com/tphakala/go-frame-resampler/internal/filter"
	"github.com/tphakala/go-frame-resampler/internal/simdops"
)

// PolyphaseResampler precomputes one filter row per output phase. With a
// reduced ratio of num:den there are exactly den distinct phases, visited
// in order, so each read uses the next row and wraps after den reads.
type PolyphaseResampler struct {
	base

	coefficientCursor int
	ops               *simdops.Ops[float32]
}

var _ MultiChannelResampler = (*PolyphaseResampler)(nil)

func newPolyphaseResampler(cfg Config) (*PolyphaseResampler, error) {
	ratio := cfg.ratio()
	if !fitsPolyphase(cfg.NumTaps, ratio) {
		return nil, fmt.Errorf("%w: %d taps × %d phases exceeds %d coefficients",
			ErrCoefficientOverflow, cfg.NumTaps, ratio.Denominator, MaxCoefficients)
	}

	coeffs, err := filter.GenerateCoefficients(filter.Params{
		InputRate:        cfg.InputRate,
		OutputRate:       cfg.OutputRate,
		NumTaps:          cfg.NumTaps,
		NumRows:          ratio.Denominator,
		PhaseIncrement:   ratio.Float64(),
		NormalizedCutoff: designCutoff(cfg),
		Window:           cfg.Window,
		Beta:             filterBeta(cfg.Window),
	})
	if err != nil {
		return nil, designError(err)
	}

	return &PolyphaseResampler{
		base: newBase(cfg, coeffs),
		ops:  simdops.Float32Ops(),
	}, nil
}

// IsWriteNeeded reports whether an input frame must be written before the
// next read.
func (r *PolyphaseResampler) IsWriteNeeded() bool {
	return r.isWriteNeeded()
}

// WriteNextFrame consumes one input frame.
func (r *PolyphaseResampler) WriteNextFrame(frame []float32) {
	writeNextFrame(r, frame)
}

// ReadNextFrame produces one output frame.
func (r *PolyphaseResampler) ReadNextFrame(frame []float32) {
	readNextFrame(r, frame)
}

// Reset clears the history and rewinds the phase and coefficient cursor.
func (r *PolyphaseResampler) Reset() {
	r.resetBase()
	r.coefficientCursor = 0
}

// NumRows returns the number of phases in the coefficient table.
func (r *PolyphaseResampler) NumRows() int {
	return len(r.coefficients) / r.numTaps
}

func (r *PolyphaseResampler) readFrame(frame []float32) {
	row := r.coefficients[r.coefficientCursor : r.coefficientCursor+r.numTaps]
	window := r.history.Window()

	switch r.channelCount {
	case monoChannels:
		frame[0] = r.ops.DotProductUnsafe(window, row)
	case stereoChannels:
		var left, right float32
		for tap, c := range row {
			left += window[2*tap] * c
			right += window[2*tap+1] * c
		}
		frame[0] = left
		frame[1] = right
	default:
		r.dotFrame(frame, window, row)
	}

	r.coefficientCursor += r.numTaps
	if r.coefficientCursor >= len(r.coefficients) {
		r.coefficientCursor = 0
	}
}

func (r *PolyphaseResampler) info() Info {
	return Info{
		Strategy:         StrategyPolyphase,
		NumTaps:          r.numTaps,
		NumRows:          r.NumRows(),
		ChannelCount:     r.channelCount,
		Numerator:        r.numerator,
		Denominator:      r.denominator,
		Latency:          r.Latency(),
		Window:           r.config.Window,
		CoefficientCount: len(r.coefficients),
		MemoryUsage:      r.memoryUsage(),
		SIMDEnabled:      r.channelCount == monoChannels,
	}
}
