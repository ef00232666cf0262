package main

import (
	"errors"
	"fmt"
	"io"

	resampler "github.com/tphakala/go-frame-resampler"
	"github.com/tphakala/go-frame-resampler/internal/formats"
	"go.uber.org/zap"
)

const (
	progressInterval = 10 // log every N seconds of input
)

type convertStats struct {
	inputRate    int
	outputRate   int
	channels     int
	outputFrames int64
	info         resampler.Info
}

// convertFile decodes cfg.Input, resamples it to cfg.Rate and writes a
// PCM WAV to cfg.Output.
func convertFile(cfg config, logger *zap.Logger) (stats *convertStats, err error) {
	src, err := formats.Open(cfg.Input)
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()

	var opts []resampler.SourceOption
	if cfg.CompensateLatency {
		opts = append(opts, resampler.WithLatencyCompensation())
	}
	rs, err := resampler.NewSource(src, cfg.Rate, cfg.quality, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating resampler: %w", err)
	}

	stats = &convertStats{
		inputRate:  src.SampleRate(),
		outputRate: cfg.Rate,
		channels:   src.Channels(),
		info:       rs.Info(),
	}
	logger.Info("input opened",
		zap.String("path", cfg.Input),
		zap.Int("rate", stats.inputRate),
		zap.Int("channels", stats.channels),
		zap.Stringer("resampler", stats.info),
	)

	out, err := formats.CreateWAV(cfg.Output, cfg.Rate, cfg.BitDepth, stats.channels)
	if err != nil {
		return nil, err
	}
	// Close output, capturing close errors on success path (WAV header update)
	defer func() {
		if closeErr := out.Close(); err == nil {
			err = closeErr
		}
	}()

	buf := make([]float32, cfg.BufferFrames*stats.channels)
	nextReport := int64(progressInterval * cfg.Rate)
	for {
		n, readErr := rs.ReadSamples(buf)
		if n > 0 {
			if err := out.WriteSamples(buf[:n]); err != nil {
				return nil, err
			}
		}
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, readErr
		}

		if cfg.Progress && out.Frames() >= nextReport {
			logger.Info("progress", zap.Float64("seconds", float64(out.Frames())/float64(cfg.Rate)))
			nextReport += int64(progressInterval * cfg.Rate)
		}
	}

	stats.outputFrames = out.Frames()
	return stats, nil
}
