package resampler

import (
	"github.com/tphakala/go-frame-resampler/internal/filter"
	"github.com/tphakala/go-frame-resampler/internal/simdops"
)

// SincResampler samples a fixed table of windowed-sinc rows and linearly
// interpolates between the two rows that bracket the current phase. It
// serves ratios whose polyphase table would not fit in MaxCoefficients.
// The phase is still tracked exactly as an integer fraction.
type SincResampler struct {
	base

	numRows     int     // rows excluding the guard row
	phaseScaler float64 // numRows / denominator

	// accumulatorHigh holds partial sums against the upper row.
	accumulatorHigh []float32
	ops             *simdops.Ops[float32]
}

var _ MultiChannelResampler = (*SincResampler)(nil)

func newSincResampler(cfg Config) (*SincResampler, error) {
	numRows := MaxCoefficients/cfg.NumTaps - 1

	coeffs, err := filter.GenerateCoefficients(filter.Params{
		InputRate:        cfg.InputRate,
		OutputRate:       cfg.OutputRate,
		NumTaps:          cfg.NumTaps,
		NumRows:          numRows,
		PhaseIncrement:   1.0 / float64(numRows),
		NormalizedCutoff: designCutoff(cfg),
		Window:           cfg.Window,
		Beta:             filterBeta(cfg.Window),
		GuardRow:         true,
	})
	if err != nil {
		return nil, designError(err)
	}

	b := newBase(cfg, coeffs)
	return &SincResampler{
		base:            b,
		numRows:         numRows,
		phaseScaler:     float64(numRows) / float64(b.denominator),
		accumulatorHigh: make([]float32, cfg.ChannelCount),
		ops:             simdops.Float32Ops(),
	}, nil
}

// IsWriteNeeded reports whether an input frame must be written before the
// next read.
func (r *SincResampler) IsWriteNeeded() bool {
	return r.isWriteNeeded()
}

// WriteNextFrame consumes one input frame.
func (r *SincResampler) WriteNextFrame(frame []float32) {
	writeNextFrame(r, frame)
}

// ReadNextFrame produces one output frame.
func (r *SincResampler) ReadNextFrame(frame []float32) {
	readNextFrame(r, frame)
}

// Reset clears the history and rewinds the phase.
func (r *SincResampler) Reset() {
	r.resetBase()
}

// NumRows returns the number of table rows, excluding the guard row.
func (r *SincResampler) NumRows() int {
	return r.numRows
}

func (r *SincResampler) readFrame(frame []float32) {
	tablePhase := float64(r.readPhase()) * r.phaseScaler
	index := int(tablePhase)
	fraction := float32(tablePhase - float64(index))

	n := r.numTaps
	low := r.coefficients[index*n : index*n+n]
	high := r.coefficients[index*n+n : index*n+2*n]
	window := r.history.Window()

	if r.channelCount == monoChannels {
		lo := r.ops.DotProductUnsafe(window, low)
		hi := r.ops.DotProductUnsafe(window, high)
		frame[0] = lo + fraction*(hi-lo)
		return
	}

	cc := r.channelCount
	r.dotFrame(r.accumulatorHigh, window, high)
	hiSums := r.accumulatorHigh
	r.dotFrame(frame, window, low)
	for ch := range cc {
		frame[ch] += fraction * (hiSums[ch] - frame[ch])
	}
}

func (r *SincResampler) info() Info {
	return Info{
		Strategy:         StrategySinc,
		NumTaps:          r.numTaps,
		NumRows:          r.numRows,
		ChannelCount:     r.channelCount,
		Numerator:        r.numerator,
		Denominator:      r.denominator,
		Latency:          r.Latency(),
		Window:           r.config.Window,
		CoefficientCount: len(r.coefficients),
		MemoryUsage:      r.memoryUsage() + int64(len(r.accumulatorHigh))*bytesPerFloat32,
		SIMDEnabled:      r.channelCount == monoChannels,
	}
}
