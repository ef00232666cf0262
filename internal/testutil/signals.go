package testutil

import (
	"math"
)

// Sine generates a mono sine tone as float32 samples.
func Sine(freqHz, sampleRate, amplitude float64, length int) []float32 {
	out := make([]float32, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = float32(amplitude * math.Sin(step*float64(i)))
	}
	return out
}

// Interleave packs equally long channel slices into a single interleaved slice.
func Interleave(channels ...[]float32) []float32 {
	if len(channels) == 0 {
		return nil
	}
	n := len(channels[0])
	out := make([]float32, n*len(channels))
	for i := range n {
		for ch, data := range channels {
			out[i*len(channels)+ch] = data[i]
		}
	}
	return out
}

// Channel extracts one channel from an interleaved buffer.
func Channel(interleaved []float32, channelCount, channel int) []float32 {
	out := make([]float32, len(interleaved)/channelCount)
	for i := range out {
		out[i] = interleaved[i*channelCount+channel]
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float32 {
	out := make([]float32, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// RMS returns the root-mean-square level of s.
func RMS(s []float32) float64 {
	if len(s) == 0 {
		return 0
	}
	var sum float64
	for _, v := range s {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum / float64(len(s)))
}

// ToFloat64 widens a float32 slice.
func ToFloat64(s []float32) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = float64(v)
	}
	return out
}
