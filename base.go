package resampler

import (
	"github.com/tphakala/go-frame-resampler/internal/history"
	"github.com/tphakala/go-frame-resampler/internal/mathutil"
)

// phaseStepper is the per-strategy half of the frame protocol.
type phaseStepper interface {
	isWriteNeeded() bool
	writeFrame(frame []float32)
	readFrame(frame []float32)
	advanceWrite()
	advanceRead()
}

func writeNextFrame(s phaseStepper, frame []float32) {
	if protocolChecks && !s.isWriteNeeded() {
		panic("resampler: WriteNextFrame called while a read is pending")
	}
	s.writeFrame(frame)
	s.advanceWrite()
}

func readNextFrame(s phaseStepper, frame []float32) {
	if protocolChecks && s.isWriteNeeded() {
		panic("resampler: ReadNextFrame called while a write is pending")
	}
	s.readFrame(frame)
	s.advanceRead()
}

// rationalPhase tracks the position between input frames as an integer
// fraction integerPhase/denominator. Each write consumes one input frame
// (−denominator) and each read advances by one output frame (+numerator),
// so the phase never drifts.
type rationalPhase struct {
	integerPhase int
	numerator    int
	denominator  int
}

func newRationalPhase(r mathutil.Ratio) rationalPhase {
	return rationalPhase{
		integerPhase: r.Denominator, // first call needs a write
		numerator:    r.Numerator,
		denominator:  r.Denominator,
	}
}

func (p *rationalPhase) isWriteNeeded() bool {
	return p.integerPhase >= p.denominator
}

func (p *rationalPhase) advanceWrite() {
	p.integerPhase -= p.denominator
}

func (p *rationalPhase) advanceRead() {
	p.integerPhase += p.numerator
}

// readPhase returns integerPhase clamped to [0, denominator). Only
// out-of-protocol calls move it outside that range.
func (p *rationalPhase) readPhase() int {
	return min(max(p.integerPhase, 0), p.denominator-1)
}

func (p *rationalPhase) reset() {
	p.integerPhase = p.denominator
}

// base holds the state shared by every strategy.
type base struct {
	rationalPhase

	config       Config
	history      *history.FrameHistory
	coefficients []float32
	numTaps      int
	channelCount int

	// accumulator holds one frame of partial sums for the N-channel paths.
	accumulator []float32
}

func newBase(cfg Config, coefficients []float32) base {
	return base{
		rationalPhase: newRationalPhase(cfg.ratio()),
		config:        cfg,
		history:       history.New(cfg.ChannelCount, cfg.NumTaps),
		coefficients:  coefficients,
		numTaps:       cfg.NumTaps,
		channelCount:  cfg.ChannelCount,
		accumulator:   make([]float32, cfg.ChannelCount),
	}
}

func (b *base) writeFrame(frame []float32) {
	b.history.Write(frame)
}

// NumTaps returns the filter length per phase.
func (b *base) NumTaps() int { return b.history.NumTaps() }

// ChannelCount returns the number of samples per frame.
func (b *base) ChannelCount() int { return b.history.ChannelCount() }

// Config returns the configuration the resampler was built with, with
// defaults applied.
func (b *base) Config() Config { return b.config }

// Ratio returns the reduced input:output rate ratio.
func (b *base) Ratio() (numerator, denominator int) {
	return b.numerator, b.denominator
}

// Latency returns the filter delay in input frames.
func (b *base) Latency() int {
	return b.history.NumTaps() / latencyDivisor
}

// Coefficients returns the coefficient table. Callers must not modify it.
func (b *base) Coefficients() []float32 {
	return b.coefficients
}

func (b *base) resetBase() {
	b.history.Reset()
	b.rationalPhase.reset()
}

func (b *base) memoryUsage() int64 {
	floats := len(b.coefficients) + b.history.Capacity() + len(b.accumulator)
	return int64(floats)*bytesPerFloat32 + int64(bytesPerInt)*3
}

// dotFrame writes Σ window[tap]·row[tap] per channel into frame.
func (b *base) dotFrame(frame, window, row []float32) {
	acc := b.accumulator
	clear(acc)
	cc := b.channelCount
	for tap, c := range row {
		samples := window[tap*cc : tap*cc+cc]
		for ch, s := range samples {
			acc[ch] += s * c
		}
	}
	copy(frame[:cc], acc)
}
