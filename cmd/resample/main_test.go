package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	resampler "github.com/tphakala/go-frame-resampler"
)

func TestRun_Default(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(nil, &out))

	assert.Contains(t, out.String(), "Ratio: 147:160 (44100 Hz -> 48000 Hz)")
	assert.Contains(t, out.String(), "Input frames: 1000")
}

func TestRun_Errors(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run([]string{"--quality", "ultra"}, &out))
	assert.Error(t, run([]string{"--channels", "0"}, &out))
	assert.Error(t, run([]string{"--bogus"}, &out))
}

func TestRun_Demo(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"--demo"}, &out))
	assert.Contains(t, out.String(), "Demo Complete")
	assert.NotContains(t, out.String(), "Error")
}

func TestProcessChunked_MatchesOneShot(t *testing.T) {
	input := generateTestSignal(4000, stereoChannels, sampleRateDAT)

	r, err := resampler.Make(stereoChannels, sampleRateDAT, sampleRateCD, resampler.QualityHigh)
	require.NoError(t, err)
	want, err := resampler.ResampleInterleaved(input, stereoChannels, sampleRateDAT, sampleRateCD, resampler.QualityHigh)
	require.NoError(t, err)

	got := processChunked(resampler.NewConverter(r), input, stereoChannels)
	assert.Equal(t, want, got)
}
