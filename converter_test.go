package resampler

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-frame-resampler/internal/testutil"
)

func oneShot(t *testing.T, c *Converter, input []float32) []float32 {
	t.Helper()
	cc := c.Resampler().ChannelCount()
	output := make([]float32, c.OutputFramesFor(len(input)/cc)*cc)
	read, written := c.Process(input, output)
	require.Equal(t, len(input)/cc, read)
	return output[:written*cc]
}

func TestConverter_ChunkingMatchesOneShot(t *testing.T) {
	input := testutil.Interleave(
		testutil.Sine(440, 44100, 0.5, 4000),
		testutil.Sine(5000, 44100, 0.25, 4000),
	)

	tests := []struct {
		inChunk, outChunk int
	}{
		{1, 1}, {7, 13}, {64, 5}, {512, 4096}, {37, 37},
	}

	for _, q := range []Quality{QualityHigh, QualityBest} {
		ref, err := Make(2, 44100, 48000, q)
		require.NoError(t, err)
		want := oneShot(t, NewConverter(ref), input)

		for _, tt := range tests {
			t.Run(fmt.Sprintf("%s_in%d_out%d", q, tt.inChunk, tt.outChunk), func(t *testing.T) {
				r, err := Make(2, 44100, 48000, q)
				require.NoError(t, err)
				c := NewConverter(r)

				got := make([]float32, 0, len(want))
				outBuf := make([]float32, tt.outChunk*2)
				for pos := 0; pos < len(input); {
					end := min(pos+tt.inChunk*2, len(input))
					chunk := input[pos:end]
					for {
						read, wrote := c.Process(chunk, outBuf)
						got = append(got, outBuf[:wrote*2]...)
						chunk = chunk[read*2:]
						if read == 0 && wrote == 0 {
							break
						}
					}
					pos = end
				}

				assert.Equal(t, want, got)
			})
		}
	}
}

func TestConverter_FrameCounts(t *testing.T) {
	r, err := Make(2, 48000, 44100, QualityMedium)
	require.NoError(t, err)
	c := NewConverter(r)

	input := make([]float32, 48000*2)
	output := make([]float32, c.OutputFramesFor(48000)*2)
	read, written := c.Process(input, output)

	assert.Equal(t, 48000, read)
	assert.Equal(t, 44100, written)
	testutil.AssertAllZero(t, output[:written*2])
}

func TestConverter_OutputFull(t *testing.T) {
	r, err := Make(1, 8000, 48000, QualityLow)
	require.NoError(t, err)
	c := NewConverter(r)

	input := make([]float32, 100)
	output := make([]float32, 10)
	read, written := c.Process(input, output)

	assert.Equal(t, 10, written)
	assert.Equal(t, 2, read)
}

func TestConverter_IgnoresPartialFrames(t *testing.T) {
	r, err := Make(2, 48000, 48000, QualityLow)
	require.NoError(t, err)
	c := NewConverter(r)

	read, written := c.Process(make([]float32, 5), make([]float32, 7))
	assert.Equal(t, 2, read)
	assert.Equal(t, 2, written)
}

func TestConverter_OutputFramesFor(t *testing.T) {
	tests := []struct {
		in, out, frames, bound int
	}{
		{48000, 44100, 48000, 44101},
		{44100, 48000, 44100, 48001},
		{8000, 48000, 10, 61},
		{48000, 16000, 10, 5},
	}

	for _, tt := range tests {
		r, err := Make(1, tt.in, tt.out, QualityLow)
		require.NoError(t, err)
		assert.Equal(t, tt.bound, NewConverter(r).OutputFramesFor(tt.frames), "%d→%d", tt.in, tt.out)
	}
}

func TestConverter_ZeroAllocations(t *testing.T) {
	r, err := Make(2, 44100, 48000, QualityHigh)
	require.NoError(t, err)
	c := NewConverter(r)

	input := make([]float32, 256*2)
	output := make([]float32, 300*2)
	allocs := testing.AllocsPerRun(50, func() {
		c.Process(input, output)
	})
	assert.Zero(t, allocs)
}

func TestConverter_Flush(t *testing.T) {
	const frames = 4800

	r, err := Make(1, 48000, 44100, QualityHigh)
	require.NoError(t, err)
	c := NewConverter(r)

	run := func() []float32 {
		output := oneShot(t, c, testutil.Sine(440, 48000, 0.5, frames))
		buf := make([]float32, 3)
		for {
			n := c.Flush(buf)
			if n == 0 {
				break
			}
			output = append(output, buf[:n]...)
		}
		return output
	}

	first := run()
	// Reads from frames + numTaps/2 writes.
	assert.Len(t, first, ((frames+16)*147+159)/160)
	assert.Zero(t, c.Flush(make([]float32, 8)))

	c.Reset()
	assert.Equal(t, first, run())
}

func TestConverter_DelayFrames(t *testing.T) {
	tests := []struct {
		in, out  int
		quality  Quality
		expected int
	}{
		{48000, 48000, QualityHigh, 16},
		{48000, 44100, QualityHigh, 14},
		{44100, 48000, QualityHigh, 17},
		{8000, 48000, QualityLow, 24},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d-%d", tt.in, tt.out), func(t *testing.T) {
			r, err := Make(1, tt.in, tt.out, tt.quality)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, NewConverter(r).DelayFrames())
		})
	}
}

func TestConverter_AlignedFramesFor(t *testing.T) {
	r, err := Make(2, 48000, 44100, QualityMedium)
	require.NoError(t, err)
	c := NewConverter(r)

	assert.Equal(t, 44100, c.AlignedFramesFor(48000))
	assert.Equal(t, 3, c.AlignedFramesFor(3))
	assert.Zero(t, c.AlignedFramesFor(0))

	up, err := Make(1, 44100, 48000, QualityMedium)
	require.NoError(t, err)
	assert.Equal(t, 48000, NewConverter(up).AlignedFramesFor(44100))
}
