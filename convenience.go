package resampler

import (
	"fmt"

	"github.com/tphakala/go-frame-resampler/internal/simdops"
)

// ResampleInterleaved converts a complete interleaved buffer in one call.
// The result holds every frame the resampler can produce from the input;
// the final numTaps/2 input frames remain in the filter history, as no
// padding is appended.
func ResampleInterleaved(input []float32, channels, inputRate, outputRate int, quality Quality) ([]float32, error) {
	return resampleBuffer(input, channels, inputRate, outputRate, quality, false)
}

// ResampleInterleavedAligned converts a complete interleaved buffer with the
// filter delay removed: the output starts at the first input frame, covers
// the final input frames and is as long as the input in output frames.
func ResampleInterleavedAligned(input []float32, channels, inputRate, outputRate int, quality Quality) ([]float32, error) {
	return resampleBuffer(input, channels, inputRate, outputRate, quality, true)
}

func resampleBuffer(input []float32, channels, inputRate, outputRate int, quality Quality, aligned bool) ([]float32, error) {
	if channels < 1 || len(input)%channels != 0 {
		return nil, fmt.Errorf("%w: %d samples is not a whole number of %d-channel frames",
			ErrChannelMismatch, len(input), channels)
	}

	r, err := Make(channels, inputRate, outputRate, quality)
	if err != nil {
		return nil, err
	}

	c := NewConverter(r)
	frames := len(input) / channels
	if !aligned {
		output := make([]float32, c.OutputFramesFor(frames)*channels)
		_, written := c.Process(input, output)
		return output[:written*channels], nil
	}

	output := make([]float32, c.OutputFramesFor(frames+r.NumTaps()/latencyDivisor)*channels)
	_, written := c.Process(input, output)
	written += c.Flush(output[written*channels:])

	delay := min(c.DelayFrames(), written)
	length := min(c.AlignedFramesFor(frames), written-delay)
	return output[delay*channels : (delay+length)*channels], nil
}

// ResampleMono is a convenience function for one-shot mono resampling.
func ResampleMono(input []float32, inputRate, outputRate int, quality Quality) ([]float32, error) {
	return ResampleInterleaved(input, monoChannels, inputRate, outputRate, quality)
}

// ResampleStereo is a convenience function for one-shot stereo resampling
// of two planar channels. Extra samples in the longer channel are dropped.
func ResampleStereo(left, right []float32, inputRate, outputRate int, quality Quality) (leftOut, rightOut []float32, err error) {
	output, err := ResampleInterleaved(InterleaveToStereo(left, right), stereoChannels, inputRate, outputRate, quality)
	if err != nil {
		return nil, nil, err
	}

	leftOut, rightOut = DeinterleaveFromStereo(output)
	return leftOut, rightOut, nil
}

// NewCDtoDAT creates a 44.1 kHz → 48 kHz resampler.
func NewCDtoDAT(channels int, quality Quality) (MultiChannelResampler, error) {
	return Make(channels, Rate44100, Rate48000, quality)
}

// NewDATtoCD creates a 48 kHz → 44.1 kHz resampler.
func NewDATtoCD(channels int, quality Quality) (MultiChannelResampler, error) {
	return Make(channels, Rate48000, Rate44100, quality)
}

// InterleaveToStereo converts two mono channels to interleaved stereo.
// Output format: [L0, R0, L1, R1, L2, R2, ...]
func InterleaveToStereo(left, right []float32) []float32 {
	minLen := min(len(left), len(right))
	result := make([]float32, minLen*stereoChannels)
	simdops.Float32Ops().Interleave2(result, left[:minLen], right[:minLen])
	return result
}

// DeinterleaveFromStereo converts interleaved stereo to two mono channels.
// Input format: [L0, R0, L1, R1, L2, R2, ...]
func DeinterleaveFromStereo(interleaved []float32) (left, right []float32) {
	numSamples := len(interleaved) / stereoChannels
	left = make([]float32, numSamples)
	right = make([]float32, numSamples)
	for i := range numSamples {
		left[i] = interleaved[i*stereoChannels]
		right[i] = interleaved[i*stereoChannels+1]
	}
	return left, right
}
