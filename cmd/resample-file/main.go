// Command resample-file converts WAV, MP3 or Ogg Vorbis files to a PCM WAV
// at a new sample rate.
//
// Usage:
//
//	resample-file --rate 48000 input.wav output.wav
//	resample-file -r 16000 -q best speech.mp3 speech_16k.wav
//	RESAMPLER_QUALITY=low resample-file music.ogg out.wav
//	resample-file --config settings.yaml input.wav output.wav
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "resample-file:", err)
		if errors.Is(err, errUsage) {
			newFlagSet().PrintDefaults()
		}
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	start := time.Now()
	stats, err := convertFile(cfg, logger)
	if err != nil {
		logger.Error("conversion failed", zap.Error(err))
		return err
	}
	elapsed := time.Since(start)

	seconds := float64(stats.outputFrames) / float64(stats.outputRate)
	logger.Info("resampled",
		zap.String("input", filepath.Base(cfg.Input)),
		zap.String("output", filepath.Base(cfg.Output)),
		zap.Int("input_rate", stats.inputRate),
		zap.Int("output_rate", stats.outputRate),
		zap.Int("channels", stats.channels),
		zap.Int64("frames", stats.outputFrames),
		zap.Duration("elapsed", elapsed),
		zap.Float64("speed", seconds/elapsed.Seconds()),
	)
	return nil
}
