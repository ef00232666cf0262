package main

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	resampler "github.com/tphakala/go-frame-resampler"
)

func TestAnalyze_Downsampling(t *testing.T) {
	for _, q := range []resampler.Quality{resampler.QualityHigh, resampler.QualityBest} {
		t.Run(q.String(), func(t *testing.T) {
			report, err := analyze(48000, 16000, q)
			require.NoError(t, err)

			assert.InDelta(t, 1.0, report.minRowGain, 1e-5)
			assert.InDelta(t, 1.0, report.maxRowGain, 1e-5)
			assert.InDelta(t, 0.0, report.passbandDB, 1.5)
			assert.LessOrEqual(t, report.aliasDB, -q.StopbandAttenuation())
			assert.LessOrEqual(t, report.stopbandDB, -q.StopbandAttenuation())
			assert.InDelta(t, q.StopbandEdge(48000, 16000), report.stopbandEdge, 0)
		})
	}
}

func TestAnalyze_Upsampling(t *testing.T) {
	report, err := analyze(44100, 48000, resampler.QualityBest)
	require.NoError(t, err)

	assert.Equal(t, resampler.StrategySinc, report.info.Strategy)
	assert.True(t, math.IsNaN(report.aliasDB))
	assert.LessOrEqual(t, report.stopbandDB, -resampler.QualityBest.StopbandAttenuation())
	assert.InDelta(t, 0.0, report.passbandDB, 1.5)
}

func TestRun(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"--in", "48000", "--out", "44100", "--quality", "medium"}, &out))
	assert.Contains(t, out.String(), "48000 Hz -> 44100 Hz")
	assert.Contains(t, out.String(), "polyphase")

	assert.Error(t, run([]string{"--quality", "ultra"}, &out))
	assert.Error(t, run([]string{"--in", "0"}, &out))
}
