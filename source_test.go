package resampler

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-frame-resampler/internal/testutil"
)

// sliceSource serves samples in fixed-size reads that need not be whole frames.
type sliceSource struct {
	samples  []float32
	rate     int
	channels int
	chunk    int
	err      error // returned instead of io.EOF when set
}

func (s *sliceSource) SampleRate() int { return s.rate }
func (s *sliceSource) Channels() int   { return s.channels }

func (s *sliceSource) ReadSamples(dst []float32) (int, error) {
	if len(s.samples) == 0 {
		if s.err != nil {
			return 0, s.err
		}
		return 0, io.EOF
	}
	n := copy(dst[:min(len(dst), s.chunk)], s.samples)
	s.samples = s.samples[n:]
	return n, nil
}

type stalledSource struct{}

func (stalledSource) SampleRate() int                    { return 48000 }
func (stalledSource) Channels() int                      { return 1 }
func (stalledSource) ReadSamples([]float32) (int, error) { return 0, nil }

func readAll(t *testing.T, s Source, bufSize int) ([]float32, error) {
	t.Helper()
	var out []float32
	buf := make([]float32, bufSize)
	for range 100000 {
		n, err := s.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err != nil {
			return out, err
		}
	}
	t.Fatal("source never returned an error")
	return nil, nil
}

func TestResampledSource_MatchesOneShot(t *testing.T) {
	input := testutil.Interleave(
		testutil.Sine(440, 44100, 0.5, 5000),
		testutil.Sine(1200, 44100, 0.5, 5000),
	)
	want, err := ResampleInterleaved(input, 2, 44100, 48000, QualityHigh)
	require.NoError(t, err)

	tests := []struct {
		name           string
		chunk, bufSize int
	}{
		{"odd upstream reads", 101, 256},
		{"single samples", 1, 64},
		{"large reads", 8192, 10000},
		{"odd output buffer", 333, 77},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &sliceSource{samples: input, rate: 44100, channels: 2, chunk: tt.chunk}
			rs, err := NewSource(src, 48000, QualityHigh)
			require.NoError(t, err)
			assert.Equal(t, 48000, rs.SampleRate())
			assert.Equal(t, 2, rs.Channels())

			got, err := readAll(t, rs, tt.bufSize)
			require.ErrorIs(t, err, io.EOF)
			assert.Equal(t, want, got)

			n, err := rs.ReadSamples(make([]float32, 16))
			assert.Zero(t, n)
			assert.ErrorIs(t, err, io.EOF)
		})
	}
}

func TestResampledSource_UpstreamError(t *testing.T) {
	boom := errors.New("boom")
	src := &sliceSource{samples: make([]float32, 2000), rate: 48000, channels: 1, chunk: 500, err: boom}

	rs, err := NewSource(src, 16000, QualityMedium)
	require.NoError(t, err)

	got, err := readAll(t, rs, 128)
	require.ErrorIs(t, err, boom)
	assert.NotEmpty(t, got)
}

func TestResampledSource_NoProgress(t *testing.T) {
	rs, err := NewSource(stalledSource{}, 44100, QualityLow)
	require.NoError(t, err)

	n, err := rs.ReadSamples(make([]float32, 32))
	assert.Zero(t, n)
	assert.ErrorIs(t, err, io.ErrNoProgress)
}

func TestResampledSource_Reset(t *testing.T) {
	input := testutil.Sine(440, 48000, 0.5, 3000)
	src := &sliceSource{samples: input, rate: 48000, channels: 1, chunk: 1000}
	rs, err := NewSource(src, 44100, QualityMedium)
	require.NoError(t, err)

	first, err := readAll(t, rs, 512)
	require.ErrorIs(t, err, io.EOF)

	src.samples = input
	rs.Reset()
	second, err := readAll(t, rs, 512)
	require.ErrorIs(t, err, io.EOF)

	assert.Equal(t, first, second)
	assert.Equal(t, StrategyPolyphase, rs.Info().Strategy)
}

func TestNewSource_Invalid(t *testing.T) {
	_, err := NewSource(&sliceSource{rate: 48000, channels: 0}, 44100, QualityLow)
	require.ErrorIs(t, err, ErrChannelMismatch)

	_, err = NewSource(&sliceSource{rate: 0, channels: 2}, 44100, QualityLow)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestResampledSource_LatencyCompensation(t *testing.T) {
	input := testutil.Interleave(
		testutil.Sine(440, 48000, 0.5, 4800),
		testutil.Sine(1200, 48000, 0.5, 4800),
	)
	want, err := ResampleInterleavedAligned(input, 2, 48000, 44100, QualityHigh)
	require.NoError(t, err)
	require.Len(t, want, 4410*2)

	tests := []struct {
		name           string
		chunk, bufSize int
	}{
		{"odd upstream reads", 101, 256},
		{"single samples", 1, 64},
		{"output shorter than delay", 333, 6},
		{"large reads", 8192, 20000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &sliceSource{samples: input, rate: 48000, channels: 2, chunk: tt.chunk}
			rs, err := NewSource(src, 44100, QualityHigh, WithLatencyCompensation())
			require.NoError(t, err)

			got, err := readAll(t, rs, tt.bufSize)
			require.ErrorIs(t, err, io.EOF)
			assert.Equal(t, want, got)

			src.samples = input
			rs.Reset()
			again, err := readAll(t, rs, tt.bufSize)
			require.ErrorIs(t, err, io.EOF)
			assert.Equal(t, want, again)
		})
	}
}

func TestResampledSource_CompensationSkipsFlushOnError(t *testing.T) {
	boom := errors.New("boom")
	src := &sliceSource{samples: make([]float32, 2000), rate: 48000, channels: 1, chunk: 500, err: boom}

	rs, err := NewSource(src, 16000, QualityMedium, WithLatencyCompensation())
	require.NoError(t, err)

	_, err = readAll(t, rs, 128)
	require.ErrorIs(t, err, boom)
}
