// Package resampler provides real-time multichannel sample rate conversion
// in pure Go.
//
// A resampler converts interleaved float32 frames one at a time using a
// windowed-sinc FIR filter. The input:output rate ratio is reduced to an
// integer fraction and the sub-sample phase is tracked exactly, so the
// output never drifts relative to the input. After construction no method
// allocates, which makes the frame calls safe inside audio callbacks.
//
// # Quick Start
//
// For one-shot conversion of a whole buffer:
//
//	output, err := resampler.ResampleInterleaved(input, 2, 48000, 44100, resampler.QualityHigh)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For streaming, build a resampler and drive it frame by frame:
//
//	r, err := resampler.Make(2, 48000, 44100, resampler.QualityMedium)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for outputFrames < n {
//	    if r.IsWriteNeeded() {
//	        r.WriteNextFrame(input[inputFrames*2:])
//	        inputFrames++
//	    } else {
//	        r.ReadNextFrame(output[outputFrames*2:])
//	        outputFrames++
//	    }
//	}
//
// [Converter] runs the same loop over blocks, and [NewSource] wraps any
// pull-based [Source]. [WithLatencyCompensation], [Converter.Flush] and
// [ResampleInterleavedAligned] remove the filter delay for file work.
//
// # Quality Tiers
//
//   - [QualityLow]: 8 taps, cutoff 0.70, at least 20 dB stopband rejection.
//   - [QualityMedium]: 16 taps, cutoff 0.80, at least 30 dB.
//   - [QualityHigh]: 32 taps, cutoff 0.90, at least 40 dB.
//   - [QualityBest]: 64 taps, cutoff 0.90, Kaiser window, at least 60 dB.
//
// The rejection holds above [Quality.StopbandEdge], which depends on the
// conversion: the transition band spans a fixed number of input samples.
// Equal input and output rates bypass band limiting and only delay the
// signal by numTaps/2 frames.
//
// Custom filter lengths and cutoffs are set through [Config] and [New].
//
// # Strategies
//
// With a reduced ratio num:den a polyphase table holds den rows of numTaps
// coefficients. When that exceeds [MaxCoefficients] (for example 64 taps at
// 44.1 kHz ↔ 48 kHz) [StrategyAuto] switches to [SincResampler], which
// interpolates between rows of a fixed-size table instead.
//
// # Thread Safety
//
// Instances are not safe for concurrent use. Use one resampler per stream.
package resampler
