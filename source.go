package resampler

import (
	"errors"
	"fmt"
	"io"
)

// Source is a pull-based stream of interleaved float32 samples.
type Source interface {
	// SampleRate returns the stream rate in Hz.
	SampleRate() int

	// Channels returns the number of interleaved channels.
	Channels() int

	// ReadSamples fills dst with interleaved samples and returns the number
	// of samples written. It returns io.EOF once the stream is exhausted.
	ReadSamples(dst []float32) (int, error)
}

// ResampledSource is a Source that converts an upstream Source to a new
// sample rate.
type ResampledSource struct {
	src        Source
	converter  *Converter
	outputRate int
	channels   int

	buf        []float32
	start, end int
	srcErr     error

	// Latency compensation state.
	compensate bool
	skip       int // leading output frames still to drop
	framesIn   int // upstream frames consumed
	emitted    int // output frames delivered
	drained    bool
}

var _ Source = (*ResampledSource)(nil)

// SourceOption configures a ResampledSource.
type SourceOption func(*ResampledSource)

// WithLatencyCompensation drops the filter delay from the start of the
// stream and flushes the filter once the upstream ends, so the output lines
// up with the upstream and has the same duration.
func WithLatencyCompensation() SourceOption {
	return func(s *ResampledSource) {
		s.compensate = true
	}
}

// NewSource wraps src so that it produces samples at outputRate.
func NewSource(src Source, outputRate int, quality Quality, opts ...SourceOption) (*ResampledSource, error) {
	channels := src.Channels()
	if channels < 1 {
		return nil, fmt.Errorf("%w: source reports %d channels", ErrChannelMismatch, channels)
	}

	r, err := Make(channels, src.SampleRate(), outputRate, quality)
	if err != nil {
		return nil, err
	}

	s := &ResampledSource{
		src:        src,
		converter:  NewConverter(r),
		outputRate: outputRate,
		channels:   channels,
		buf:        make([]float32, defaultSourceBufferFrames*channels),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.resetCompensation()
	return s, nil
}

// SampleRate returns the output rate.
func (s *ResampledSource) SampleRate() int { return s.outputRate }

// Channels returns the channel count, which is the same as upstream.
func (s *ResampledSource) Channels() int { return s.channels }

// Info returns information about the underlying resampler.
func (s *ResampledSource) Info() Info {
	return GetInfo(s.converter.Resampler())
}

// ReadSamples fills dst with whole output frames. A dst shorter than one
// frame reads nothing. With latency compensation the filter is flushed
// after upstream EOF. Once the upstream source is exhausted and every
// resampled frame has been delivered, it returns 0, io.EOF. Upstream errors
// are returned after any frames already produced.
func (s *ResampledSource) ReadSamples(dst []float32) (int, error) {
	cc := s.channels
	frames := len(dst) / cc
	written := 0
	emptyReads := 0

	for written < frames {
		out := dst[written*cc : frames*cc]
		read, wrote := s.converter.Process(s.buf[s.start:s.end], out)
		s.start += read * cc
		s.framesIn += read
		written += s.keep(out, wrote)
		if read > 0 || wrote > 0 {
			continue
		}

		// The resampler needs a frame that is not buffered yet.
		if s.srcErr != nil {
			if s.compensate && !s.drained && errors.Is(s.srcErr, io.EOF) {
				written += s.flush(out)
				continue
			}
			break
		}
		if s.fill() == 0 && s.srcErr == nil {
			emptyReads++
			if emptyReads >= maxEmptyReads {
				s.srcErr = io.ErrNoProgress
			}
		}
	}

	if written == 0 && s.srcErr != nil {
		return 0, s.srcErr
	}
	return written * cc, nil
}

// keep drops pending leading frames from the n frames at the start of out
// and returns how many remain.
func (s *ResampledSource) keep(out []float32, n int) int {
	if s.skip > 0 && n > 0 {
		cc := s.channels
		k := min(s.skip, n)
		copy(out, out[k*cc:n*cc])
		s.skip -= k
		n -= k
	}
	s.emitted += n
	return n
}

// flush drains the filter into out, stopping at the aligned stream length.
func (s *ResampledSource) flush(out []float32) int {
	limit := s.converter.AlignedFramesFor(s.framesIn) - s.emitted + s.skip
	limit = min(limit, len(out)/s.channels)
	if limit <= 0 {
		s.drained = true
		return 0
	}

	n := s.converter.Flush(out[:limit*s.channels])
	if n == 0 {
		s.drained = true
		return 0
	}
	return s.keep(out, n)
}

func (s *ResampledSource) resetCompensation() {
	s.skip, s.framesIn, s.emitted, s.drained = 0, 0, 0, false
	if s.compensate {
		s.skip = s.converter.DelayFrames()
	}
}

// fill moves any partial frame to the front of the buffer and reads more
// samples after it.
func (s *ResampledSource) fill() int {
	leftover := copy(s.buf, s.buf[s.start:s.end])
	s.start, s.end = 0, leftover

	n, err := s.src.ReadSamples(s.buf[leftover:])
	s.end += n
	if err != nil {
		s.srcErr = err
		if !errors.Is(err, io.EOF) {
			s.srcErr = fmt.Errorf("reading source: %w", err)
		}
	}
	return n
}

// Reset discards buffered input and resets the resampler. The upstream
// source is not rewound.
func (s *ResampledSource) Reset() {
	s.start, s.end = 0, 0
	s.srcErr = nil
	s.converter.Reset()
	s.resetCompensation()
}
