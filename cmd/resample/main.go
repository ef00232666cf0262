package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/spf13/pflag"
	resampler "github.com/tphakala/go-frame-resampler"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "resample:", err)
		os.Exit(1)
	}
}

func run(args []string, w io.Writer) error {
	fs := pflag.NewFlagSet("resample", pflag.ContinueOnError)
	inputRate := fs.Int("input-rate", defaultInputRate, "Input sample rate in Hz")
	outputRate := fs.Int("output-rate", defaultOutputRate, "Output sample rate in Hz")
	channels := fs.Int("channels", defaultChannels, "Number of audio channels")
	quality := fs.String("quality", "high", "Quality tier: low, medium, high, best")
	demo := fs.Bool("demo", false, "Run a demonstration")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *demo {
		runDemo(w)
		return nil
	}

	q, err := resampler.ParseQuality(*quality)
	if err != nil {
		return err
	}

	r, err := resampler.Make(*channels, *inputRate, *outputRate, q)
	if err != nil {
		return fmt.Errorf("creating resampler: %w", err)
	}

	info := resampler.GetInfo(r)
	fmt.Fprintf(w, "Resampler created:\n")
	fmt.Fprintf(w, "  Strategy: %s\n", info.Strategy)
	fmt.Fprintf(w, "  Ratio: %d:%d (%d Hz -> %d Hz)\n", info.Numerator, info.Denominator, *inputRate, *outputRate)
	fmt.Fprintf(w, "  Filter length: %d taps\n", info.NumTaps)
	fmt.Fprintf(w, "  Table rows: %d\n", info.NumRows)
	fmt.Fprintf(w, "  Latency: %d input frames\n", info.Latency)
	fmt.Fprintf(w, "  Memory usage: %.2f KB\n", float64(info.MemoryUsage)/bytesPerKilobyte)
	fmt.Fprintf(w, "  SIMD: %v\n", info.SIMDEnabled)

	fmt.Fprintln(w, "\nProcessing test signal...")
	input := generateTestSignal(testSignalFrames, *channels, float64(*inputRate))
	output := processChunked(resampler.NewConverter(r), input, *channels)

	fmt.Fprintf(w, "Input frames: %d\n", len(input) / *channels)
	fmt.Fprintf(w, "Output frames: %d\n", len(output) / *channels)
	fmt.Fprintf(w, "Expected output: %d\n",
		(testSignalFrames*info.Denominator+info.Numerator-1)/info.Numerator)
	return nil
}

// processChunked feeds input to c in chunkFrames pieces, as a streaming
// caller would.
func processChunked(c *resampler.Converter, input []float32, channels int) []float32 {
	chunk := make([]float32, c.OutputFramesFor(chunkFrames)*channels)
	var output []float32
	for {
		n := min(len(input), chunkFrames*channels)
		read, written := c.Process(input[:n], chunk)
		output = append(output, chunk[:written*channels]...)
		input = input[read*channels:]
		if len(input) == 0 && written*channels < len(chunk) {
			return output
		}
	}
}

// generateTestSignal returns an interleaved 1 kHz tone on every channel.
func generateTestSignal(frames, channels int, sampleRate float64) []float32 {
	signal := make([]float32, frames*channels)
	omega := 2 * math.Pi * testSignalFrequency / sampleRate

	for i := range frames {
		v := float32(testSignalAmplitude * math.Sin(omega*float64(i)))
		for ch := range channels {
			signal[i*channels+ch] = v
		}
	}

	return signal
}

func runDemo(w io.Writer) {
	fmt.Fprintln(w, "=== Go Frame Resampler Demo ===")

	fmt.Fprintln(w, "1. Comparing Quality Tiers")
	fmt.Fprintln(w, "--------------------------")

	testRatios := []struct {
		from, to int
		name     string
	}{
		{sampleRateCD, sampleRateDAT, "CD to DAT"},
		{sampleRateDAT, sampleRateCD, "DAT to CD"},
		{sampleRateCD, sampleRate2xCD, "CD to 2x"},
		{sampleRateHiRes, sampleRateCD, "Hi-res to CD"},
	}

	qualities := []resampler.Quality{
		resampler.QualityLow,
		resampler.QualityMedium,
		resampler.QualityHigh,
		resampler.QualityBest,
	}

	for _, ratio := range testRatios {
		fmt.Fprintf(w, "\n%s (%d Hz -> %d Hz, ratio: %.4f):\n",
			ratio.name, ratio.from, ratio.to, float64(ratio.to)/float64(ratio.from))

		for _, q := range qualities {
			r, err := resampler.Make(stereoChannels, ratio.from, ratio.to, q)
			if err != nil {
				fmt.Fprintf(w, "  %s: Error - %v\n", q, err)
				continue
			}
			fmt.Fprintf(w, "  %s: %s\n", q, resampler.GetInfo(r))
		}
	}

	fmt.Fprintln(w, "\n2. Frame Counts")
	fmt.Fprintln(w, "---------------")
	fmt.Fprintf(w, "Processing 1 second of stereo audio (%d Hz -> %d Hz):\n", sampleRateCD, sampleRateDAT)

	input := generateTestSignal(sampleRateCD, stereoChannels, sampleRateCD)
	for _, q := range qualities {
		r, err := resampler.Make(stereoChannels, sampleRateCD, sampleRateDAT, q)
		if err != nil {
			continue
		}
		output := processChunked(resampler.NewConverter(r), input, stereoChannels)
		fmt.Fprintf(w, "  %s: %d -> %d frames\n", q, sampleRateCD, len(output)/stereoChannels)
	}

	fmt.Fprintln(w, "\n3. Multi-channel Processing")
	fmt.Fprintln(w, "---------------------------")

	for _, ch := range []int{monoChannels, stereoChannels, surround5_1, surround7_1} {
		r, err := resampler.Make(ch, sampleRateDAT, sampleRateCD, resampler.QualityHigh)
		if err != nil {
			fmt.Fprintf(w, "  %d channels: Error - %v\n", ch, err)
			continue
		}

		info := resampler.GetInfo(r)
		fmt.Fprintf(w, "  %d channels: %.1f KB total memory\n",
			ch, float64(info.MemoryUsage)/bytesPerKilobyte)
	}

	fmt.Fprintln(w, "\n=== Demo Complete ===")
}
