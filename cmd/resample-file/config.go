package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	resampler "github.com/tphakala/go-frame-resampler"
)

const (
	envPrefix = "resampler"

	defaultRate         = resampler.Rate48000
	defaultQuality      = "high"
	defaultBitDepth     = 16
	defaultBufferFrames = 4096
	defaultLogLevel     = "info"

	minRequiredArgs = 2
)

var errUsage = errors.New("usage: resample-file [options] input output.wav")

// config holds the command settings after flags, environment and the
// optional YAML file have been merged.
type config struct {
	Rate         int    `mapstructure:"rate"`
	Quality      string `mapstructure:"quality"`
	BitDepth     int    `mapstructure:"bit-depth"`
	BufferFrames int    `mapstructure:"buffer-frames"`
	LogLevel     string `mapstructure:"log-level"`
	Progress     bool   `mapstructure:"progress"`

	CompensateLatency bool `mapstructure:"compensate-latency"`

	Input  string `mapstructure:"-"`
	Output string `mapstructure:"-"`

	quality resampler.Quality
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("resample-file", pflag.ContinueOnError)
	fs.IntP("rate", "r", defaultRate, "Target sample rate in Hz")
	fs.StringP("quality", "q", defaultQuality, "Quality tier: low, medium, high, best")
	fs.Int("bit-depth", defaultBitDepth, "Output bit depth: 16, 24 or 32")
	fs.Int("buffer-frames", defaultBufferFrames, "Frames per processing block")
	fs.String("log-level", defaultLogLevel, "Log level: debug, info, warn, error")
	fs.Bool("progress", false, "Log progress while converting")
	fs.Bool("compensate-latency", true, "Remove the filter delay and flush the filter at the end")
	fs.StringP("config", "c", "", "Optional YAML config file")
	return fs
}

// loadConfig parses args and layers them over RESAMPLER_* environment
// variables and the config file. Flags set explicitly win.
func loadConfig(args []string) (config, error) {
	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return config{}, fmt.Errorf("binding flags: %w", err)
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return config{}, fmt.Errorf("decoding config: %w", err)
	}

	if fs.NArg() < minRequiredArgs {
		return config{}, errUsage
	}
	cfg.Input, cfg.Output = fs.Arg(0), fs.Arg(1)

	if err := cfg.validate(); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func (c *config) validate() error {
	q, err := resampler.ParseQuality(c.Quality)
	if err != nil {
		return err
	}
	c.quality = q

	if c.Rate <= 0 {
		return fmt.Errorf("rate must be positive, got %d", c.Rate)
	}
	if c.BufferFrames <= 0 {
		return fmt.Errorf("buffer-frames must be positive, got %d", c.BufferFrames)
	}
	switch c.BitDepth {
	case 16, 24, 32:
	default:
		return fmt.Errorf("bit-depth must be 16, 24 or 32, got %d", c.BitDepth)
	}
	return nil
}
