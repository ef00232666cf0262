package resampler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tphakala/go-frame-resampler/internal/filter"
	"github.com/tphakala/go-frame-resampler/internal/mathutil"
)

// MultiChannelResampler converts interleaved frames from one sample rate to
// another, one frame at a time.
//
// The caller drives it with a loop like:
//
//	for outputFrames < n {
//	    if r.IsWriteNeeded() {
//	        r.WriteNextFrame(input[inputFrames*channels:])
//	        inputFrames++
//	    } else {
//	        r.ReadNextFrame(output[outputFrames*channels:])
//	        outputFrames++
//	    }
//	}
//
// None of the methods allocate or block. An instance is not safe for
// concurrent use.
type MultiChannelResampler interface {
	// IsWriteNeeded reports whether an input frame must be written before
	// the next output frame can be read.
	IsWriteNeeded() bool

	// WriteNextFrame consumes channelCount samples from frame.
	WriteNextFrame(frame []float32)

	// ReadNextFrame fills the first channelCount samples of frame.
	ReadNextFrame(frame []float32)

	// NumTaps returns the filter length per phase.
	NumTaps() int

	// ChannelCount returns the number of samples per frame.
	ChannelCount() int

	// Reset returns the resampler to its post-construction state.
	Reset()
}

// WindowType selects the taper applied to the windowed-sinc filter.
type WindowType = filter.WindowType

const (
	WindowHamming = filter.WindowHamming
	WindowKaiser  = filter.WindowKaiser
)

// Quality selects a canonical filter length and cutoff.
type Quality int

const (
	// QualityLow uses 8 taps. Cheapest, audible aliasing on bright material.
	QualityLow Quality = iota

	// QualityMedium uses 16 taps; suitable for speech and most playback.
	QualityMedium

	// QualityHigh uses 32 taps.
	QualityHigh

	// QualityBest uses 64 taps with a Kaiser window and guarantees 60 dB
	// of attenuation above its StopbandEdge.
	QualityBest
)

type qualityTier struct {
	numTaps    int
	cutoff     float64
	window     WindowType
	stopbandDB float64
}

var qualityTiers = [...]qualityTier{
	QualityLow:    {lowTaps, lowCutoff, WindowHamming, lowDB},
	QualityMedium: {mediumTaps, mediumCutoff, WindowHamming, mediumDB},
	QualityHigh:   {highTaps, highCutoff, WindowHamming, highDB},
	QualityBest:   {bestTaps, bestCutoff, WindowKaiser, bestDB},
}

func (q Quality) tier() (qualityTier, bool) {
	if q < QualityLow || q > QualityBest {
		return qualityTier{}, false
	}
	return qualityTiers[q], true
}

func (q Quality) String() string {
	switch q {
	case QualityLow:
		return "low"
	case QualityMedium:
		return "medium"
	case QualityHigh:
		return "high"
	case QualityBest:
		return "best"
	default:
		return fmt.Sprintf("quality(%d)", int(q))
	}
}

// NumTaps returns the tier's filter length, or 0 for an unknown tier.
func (q Quality) NumTaps() int {
	t, _ := q.tier()
	return t.numTaps
}

// NormalizedCutoff returns the tier's cutoff relative to the lower Nyquist rate.
func (q Quality) NormalizedCutoff() float64 {
	t, _ := q.tier()
	return t.cutoff
}

// StopbandAttenuation returns the attenuation in dB the tier guarantees for
// tones above StopbandEdge.
func (q Quality) StopbandAttenuation() float64 {
	t, _ := q.tier()
	return t.stopbandDB
}

// StopbandEdge returns the frequency in Hz above which the tier attenuates
// tones by at least StopbandAttenuation when converting inputRate to
// outputRate. The transition band has a fixed width in input samples, so
// the edge moves further past the output Nyquist frequency as the
// downsampling factor grows. It returns 0 for an unknown tier or rate.
func (q Quality) StopbandEdge(inputRate, outputRate int) float64 {
	t, ok := q.tier()
	if !ok || inputRate <= 0 || outputRate <= 0 {
		return 0
	}

	lowerNyquist := float64(min(inputRate, outputRate)) / 2
	width := hammingTransitionWidth
	if t.window == WindowKaiser {
		width = kaiserTransitionWidth
	}
	return t.cutoff*lowerNyquist + width*float64(inputRate)/float64(t.numTaps)
}

// ParseQuality converts a tier name ("low", "medium", "high", "best") to a Quality.
func ParseQuality(s string) (Quality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return QualityLow, nil
	case "medium", "med":
		return QualityMedium, nil
	case "high":
		return QualityHigh, nil
	case "best":
		return QualityBest, nil
	default:
		return 0, fmt.Errorf("%w: unknown quality %q", ErrInvalidConfig, s)
	}
}

// Strategy selects how fractional phases map to filter coefficients.
type Strategy int

const (
	// StrategyAuto uses a polyphase table when it fits in MaxCoefficients
	// and falls back to interpolated sinc otherwise.
	StrategyAuto Strategy = iota

	// StrategyPolyphase precomputes one row per output phase.
	StrategyPolyphase

	// StrategySinc interpolates between rows of a fixed-size sinc table.
	StrategySinc
)

func (s Strategy) String() string {
	switch s {
	case StrategyAuto:
		return "auto"
	case StrategyPolyphase:
		return "polyphase"
	case StrategySinc:
		return "sinc"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// Config holds resampler construction parameters.
type Config struct {
	// ChannelCount is the number of interleaved samples per frame.
	ChannelCount int

	// NumTaps is the filter length per phase. It must be a multiple of 4
	// in [4, 64]. Zero selects DefaultNumTaps.
	NumTaps int

	// InputRate and OutputRate are in Hz.
	InputRate  int
	OutputRate int

	// NormalizedCutoff is the passband edge relative to the lower of the two
	// Nyquist frequencies, in (0, 1]. Zero selects DefaultNormalizedCutoff.
	// It is ignored when InputRate equals OutputRate, where the filter
	// reduces to a pure numTaps/2 frame delay.
	NormalizedCutoff float64

	// Window selects the filter taper.
	Window WindowType

	// Strategy selects the coefficient layout.
	Strategy Strategy
}

// DefaultConfig returns a mono 48 kHz pass-through configuration with
// default filter parameters.
func DefaultConfig() Config {
	return Config{
		ChannelCount:     monoChannels,
		NumTaps:          DefaultNumTaps,
		InputRate:        Rate48000,
		OutputRate:       Rate48000,
		NormalizedCutoff: DefaultNormalizedCutoff,
		Window:           WindowHamming,
		Strategy:         StrategyAuto,
	}
}

func (c Config) withDefaults() Config {
	if c.NumTaps == 0 {
		c.NumTaps = DefaultNumTaps
	}
	if c.NormalizedCutoff == 0 {
		c.NormalizedCutoff = DefaultNormalizedCutoff
	}
	return c
}

// Errors returned by the resampler.
var (
	ErrInvalidConfig = errors.New("invalid resampler configuration")

	// ErrCoefficientOverflow is returned when StrategyPolyphase is forced
	// for a ratio whose table would exceed MaxCoefficients.
	ErrCoefficientOverflow = fmt.Errorf("%w: coefficient table overflow", ErrInvalidConfig)

	// ErrChannelMismatch is returned when a buffer or source does not hold
	// whole frames of the expected channel count.
	ErrChannelMismatch = errors.New("channel count mismatch")
)

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	if c.ChannelCount < 1 || c.ChannelCount > maxChannels {
		return fmt.Errorf("%w: channel count must be between 1 and %d, got %d",
			ErrInvalidConfig, maxChannels, c.ChannelCount)
	}

	if c.NumTaps%filter.TapsAlignment != 0 || c.NumTaps < filter.MinTaps || c.NumTaps > filter.MaxTaps {
		return fmt.Errorf("%w: numTaps must be a multiple of %d in [%d, %d], got %d",
			ErrInvalidConfig, filter.TapsAlignment, filter.MinTaps, filter.MaxTaps, c.NumTaps)
	}

	if c.InputRate <= 0 {
		return fmt.Errorf("%w: input rate must be positive, got %d", ErrInvalidConfig, c.InputRate)
	}
	if c.OutputRate <= 0 {
		return fmt.Errorf("%w: output rate must be positive, got %d", ErrInvalidConfig, c.OutputRate)
	}

	ratio := float64(c.OutputRate) / float64(c.InputRate)
	if ratio < minRatioFactor || ratio > maxRatioFactor {
		return fmt.Errorf("%w: ratio %v outside [%v, %v]",
			ErrInvalidConfig, ratio, minRatioFactor, maxRatioFactor)
	}

	if !(c.NormalizedCutoff > 0 && c.NormalizedCutoff <= 1) {
		return fmt.Errorf("%w: normalized cutoff must be in (0, 1], got %v",
			ErrInvalidConfig, c.NormalizedCutoff)
	}

	if c.Window != WindowHamming && c.Window != WindowKaiser {
		return fmt.Errorf("%w: unknown window %v", ErrInvalidConfig, c.Window)
	}

	if c.Strategy < StrategyAuto || c.Strategy > StrategySinc {
		return fmt.Errorf("%w: unknown strategy %v", ErrInvalidConfig, c.Strategy)
	}

	return nil
}

// ratio returns input:output reduced to lowest terms. Callers validate first.
func (c Config) ratio() mathutil.Ratio {
	r, err := mathutil.ReduceRatio(c.InputRate, c.OutputRate)
	if err != nil {
		panic(err)
	}
	return r
}

// fitsPolyphase reports whether a one-row-per-phase table fits.
func fitsPolyphase(numTaps int, r mathutil.Ratio) bool {
	return numTaps*r.Denominator <= MaxCoefficients
}

// New validates cfg and constructs a resampler for it. Zero NumTaps and
// NormalizedCutoff take their defaults.
func New(cfg Config) (MultiChannelResampler, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Strategy {
	case StrategyPolyphase:
		return newPolyphaseResampler(cfg)
	case StrategySinc:
		return newSincResampler(cfg)
	default:
		if fitsPolyphase(cfg.NumTaps, cfg.ratio()) {
			return newPolyphaseResampler(cfg)
		}
		return newSincResampler(cfg)
	}
}

// Make constructs a resampler from a quality tier.
func Make(channelCount, inputRate, outputRate int, quality Quality) (MultiChannelResampler, error) {
	tier, ok := quality.tier()
	if !ok {
		return nil, fmt.Errorf("%w: unknown quality %v", ErrInvalidConfig, quality)
	}

	return New(Config{
		ChannelCount:     channelCount,
		NumTaps:          tier.numTaps,
		InputRate:        inputRate,
		OutputRate:       outputRate,
		NormalizedCutoff: tier.cutoff,
		Window:           tier.window,
		Strategy:         StrategyAuto,
	})
}

// NewPolyphaseResampler constructs a polyphase resampler directly,
// regardless of cfg.Strategy.
func NewPolyphaseResampler(cfg Config) (*PolyphaseResampler, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newPolyphaseResampler(cfg)
}

// NewSincResampler constructs an interpolating sinc resampler directly,
// regardless of cfg.Strategy.
func NewSincResampler(cfg Config) (*SincResampler, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newSincResampler(cfg)
}

// designCutoff returns the cutoff the filter is built with. Equal rates
// need no band limiting, so the single row becomes a pure delay.
func designCutoff(cfg Config) float64 {
	if cfg.InputRate == cfg.OutputRate {
		return 1.0
	}
	return cfg.NormalizedCutoff
}

// designError maps a filter design failure onto the package sentinels.
func designError(err error) error {
	if errors.Is(err, filter.ErrTableTooLarge) {
		return fmt.Errorf("%w: %w", ErrCoefficientOverflow, err)
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
}

// filterBeta returns the Kaiser β for the window, or 0 for Hamming.
func filterBeta(w WindowType) float64 {
	if w == WindowKaiser {
		return mathutil.KaiserBeta(kaiserDesignDB)
	}
	return 0
}
