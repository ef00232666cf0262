package resampler

// Converter runs the write/read driving loop over blocks of interleaved
// frames. State carries over between calls, so a stream can be fed in
// chunks of any size.
type Converter struct {
	resampler MultiChannelResampler
	channels  int

	// silence is one zero frame fed by Flush; flushed counts those frames.
	silence []float32
	flushed int
}

// NewConverter wraps r.
func NewConverter(r MultiChannelResampler) *Converter {
	return &Converter{
		resampler: r,
		channels:  r.ChannelCount(),
		silence:   make([]float32, r.ChannelCount()),
	}
}

// Resampler returns the wrapped resampler.
func (c *Converter) Resampler() MultiChannelResampler {
	return c.resampler
}

// Process consumes whole frames from input and writes whole frames to
// output until input runs out or output is full. Trailing partial frames
// are ignored. It returns the number of frames consumed and produced;
// unconsumed input must be passed again on the next call.
func (c *Converter) Process(input, output []float32) (framesRead, framesWritten int) {
	cc := c.channels
	inputFrames := len(input) / cc
	outputFrames := len(output) / cc

	for framesWritten < outputFrames {
		if c.resampler.IsWriteNeeded() {
			if framesRead >= inputFrames {
				break
			}
			offset := framesRead * cc
			c.resampler.WriteNextFrame(input[offset : offset+cc])
			framesRead++
			continue
		}

		offset := framesWritten * cc
		c.resampler.ReadNextFrame(output[offset : offset+cc])
		framesWritten++
	}

	return framesRead, framesWritten
}

// OutputFramesFor returns an upper bound on the frames Process can produce
// from inputFrames new input frames, provided the previous call consumed all
// of its input.
func (c *Converter) OutputFramesFor(inputFrames int) int {
	num, den := ratioOf(c.resampler)
	return (inputFrames*den+num-1)/num + 1
}

// Flush ends the stream by writing numTaps/2 frames of silence, which
// brings out the frames that depend on the final input frames. It returns
// the number of frames written to output; while that fills output, call it
// again. Once the silence is consumed Flush returns 0. Reset starts a new
// stream.
func (c *Converter) Flush(output []float32) (framesWritten int) {
	cc := c.channels
	outputFrames := len(output) / cc
	latency := c.resampler.NumTaps() / latencyDivisor

	for framesWritten < outputFrames {
		if c.resampler.IsWriteNeeded() {
			if c.flushed >= latency {
				break
			}
			c.resampler.WriteNextFrame(c.silence)
			c.flushed++
			continue
		}

		offset := framesWritten * cc
		c.resampler.ReadNextFrame(output[offset : offset+cc])
		framesWritten++
	}

	return framesWritten
}

// DelayFrames returns the filter delay in whole output frames: the number
// of leading frames to drop so the output lines up with the input. The
// remaining fraction of a frame stays in the output.
func (c *Converter) DelayFrames() int {
	num, den := ratioOf(c.resampler)
	return c.resampler.NumTaps() / latencyDivisor * den / num
}

// AlignedFramesFor returns the duration of inputFrames input frames in
// output frames, rounded up. It is the length of a delay-compensated
// conversion: DelayFrames dropped at the start and Flush output trimmed at
// the end.
func (c *Converter) AlignedFramesFor(inputFrames int) int {
	num, den := ratioOf(c.resampler)
	return (inputFrames*den + num - 1) / num
}

// Reset resets the wrapped resampler and rearms Flush.
func (c *Converter) Reset() {
	c.resampler.Reset()
	c.flushed = 0
}

func ratioOf(r MultiChannelResampler) (num, den int) {
	info := GetInfo(r)
	if info.Numerator == 0 || info.Denominator == 0 {
		return 1, 1
	}
	return info.Numerator, info.Denominator
}
