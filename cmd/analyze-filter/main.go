// Command analyze-filter reports the filter each quality tier builds for a
// rate pair: table layout, per-row DC gain, the designed stopband, and the
// measured passband gain and alias rejection of real tones.
//
// Usage:
//
//	analyze-filter --in 48000 --out 16000
//	analyze-filter --in 44100 --out 48000 --quality best
package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"
	resampler "github.com/tphakala/go-frame-resampler"
	"github.com/tphakala/go-frame-resampler/internal/filter"
	"github.com/tphakala/go-frame-resampler/internal/simdops"
	"github.com/tphakala/go-frame-resampler/internal/spectrum"
)

const (
	responsePoints = 2048
	fftSize        = 8192

	// toneAmplitude is the level of the test tones.
	toneAmplitude = 0.5

	// settleFrames are dropped from the start of each measurement.
	settleFrames = 256

	// aliasPosition places the alias tone between the stopband edge and
	// the input Nyquist frequency.
	aliasPosition = 0.75

	// passbandPosition places the passband tone relative to the cutoff.
	passbandPosition = 0.5
)

type tierReport struct {
	quality resampler.Quality
	info    resampler.Info

	minRowGain, maxRowGain float64

	// stopbandEdge is the tier's guaranteed stopband edge in Hz.
	// stopbandDB is the designed peak response above it, NaN when the edge
	// lies beyond the input Nyquist frequency.
	stopbandEdge float64
	stopbandDB   float64

	// passbandDB and aliasDB are measured through the resampler. aliasDB
	// is NaN when upsampling or when no tone fits above the edge.
	passbandDB float64
	aliasDB    float64
}

type coefficientTable interface {
	Coefficients() []float32
}

func analyze(inRate, outRate int, q resampler.Quality) (tierReport, error) {
	r, err := resampler.Make(1, inRate, outRate, q)
	if err != nil {
		return tierReport{}, err
	}

	report := tierReport{
		quality:    q,
		info:       resampler.GetInfo(r),
		minRowGain: math.Inf(1),
		maxRowGain: math.Inf(-1),
		stopbandDB: math.NaN(),
		aliasDB:    math.NaN(),
	}

	table, ok := r.(coefficientTable)
	if !ok {
		return tierReport{}, errors.New("resampler does not expose its coefficients")
	}
	coeffs := table.Coefficients()
	taps := report.info.NumTaps
	for row := 0; row+taps <= len(coeffs); row += taps {
		var gain float64
		for _, c := range coeffs[row : row+taps] {
			gain += float64(c)
		}
		report.minRowGain = min(report.minRowGain, gain)
		report.maxRowGain = max(report.maxRowGain, gain)
	}

	inNyquist := float64(inRate) / 2
	report.stopbandEdge = q.StopbandEdge(inRate, outRate)
	if report.stopbandEdge < inNyquist {
		response := filter.ComputeFrequencyResponse(coeffs[:taps], responsePoints)
		report.stopbandDB = response.PeakDB(report.stopbandEdge/float64(inRate), 0.5)
	}

	analyzer, err := spectrum.NewAnalyzer(fftSize)
	if err != nil {
		return tierReport{}, err
	}

	// Snap the passband tone to an analysis bin.
	binWidth := float64(outRate) / fftSize
	passFreq := passbandPosition * q.NormalizedCutoff() * float64(min(inRate, outRate)) / 2
	passFreq = math.Round(passFreq/binWidth) * binWidth
	out := measure(r, inRate, passFreq)
	report.passbandDB = analyzer.LevelAt(out[settleFrames:], float64(outRate), passFreq) -
		spectrum.ToDB(toneAmplitude)

	if outRate < inRate && report.stopbandEdge < inNyquist {
		aliasFreq := report.stopbandEdge + aliasPosition*(inNyquist-report.stopbandEdge)
		out = measure(r, inRate, aliasFreq)
		rms := rmsLevel(out[settleFrames:])
		report.aliasDB = spectrum.ToDB(rms / (toneAmplitude / math.Sqrt2))
	}

	return report, nil
}

// measure resets r and runs a one-second tone through it.
func measure(r resampler.MultiChannelResampler, inRate int, freq float64) []float32 {
	r.Reset()
	c := resampler.NewConverter(r)
	input := tone(freq, float64(inRate), max(inRate, 2*fftSize))
	output := make([]float32, c.OutputFramesFor(len(input)))
	_, written := c.Process(input, output)
	return output[:written]
}

func tone(freq, rate float64, length int) []float32 {
	out := make([]float32, length)
	step := 2 * math.Pi * freq / rate
	for i := range out {
		out[i] = float32(toneAmplitude * math.Sin(step*float64(i)))
	}
	return out
}

func rmsLevel(s []float32) float64 {
	if len(s) == 0 {
		return 0
	}
	sum := float64(simdops.Float32Ops().DotProductUnsafe(s, s))
	return math.Sqrt(sum / float64(len(s)))
}

func printReports(w io.Writer, inRate, outRate int, reports []tierReport) error {
	fmt.Fprintf(w, "%d Hz -> %d Hz\n\n", inRate, outRate)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "quality\tstrategy\ttaps\trows\tlatency\trow gain\tedge\tstopband\tpassband\talias\tguaranteed")
	for _, r := range reports {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%.6f..%.6f\t%.0f Hz\t%s\t%.2f dB\t%s\t%.0f dB\n",
			r.quality, r.info.Strategy, r.info.NumTaps, r.info.NumRows, r.info.Latency,
			r.minRowGain, r.maxRowGain, r.stopbandEdge, formatDB(r.stopbandDB), r.passbandDB,
			formatDB(r.aliasDB), r.quality.StopbandAttenuation())
	}
	return tw.Flush()
}

func formatDB(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.1f dB", v)
}

func run(args []string, stdout io.Writer) error {
	fs := pflag.NewFlagSet("analyze-filter", pflag.ContinueOnError)
	inRate := fs.Int("in", resampler.Rate48000, "Input sample rate in Hz")
	outRate := fs.Int("out", resampler.Rate16000, "Output sample rate in Hz")
	quality := fs.String("quality", "", "Analyze a single tier (default: all)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tiers := []resampler.Quality{
		resampler.QualityLow, resampler.QualityMedium, resampler.QualityHigh, resampler.QualityBest,
	}
	if *quality != "" {
		q, err := resampler.ParseQuality(*quality)
		if err != nil {
			return err
		}
		tiers = []resampler.Quality{q}
	}

	reports := make([]tierReport, 0, len(tiers))
	for _, q := range tiers {
		report, err := analyze(*inRate, *outRate, q)
		if err != nil {
			return fmt.Errorf("%s: %w", q, err)
		}
		reports = append(reports, report)
	}
	return printReports(stdout, *inRate, *outRate, reports)
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "analyze-filter:", err)
		os.Exit(1)
	}
}
