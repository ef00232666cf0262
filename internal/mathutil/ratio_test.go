package mathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGCD(t *testing.T) {
	tests := []struct {
		a, b, want int
	}{
		{48000, 44100, 300},
		{44100, 48000, 300},
		{8000, 48000, 8000},
		{7, 13, 1},
		{0, 5, 5},
		{-12, 18, 6},
		{0, 0, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GCD(tt.a, tt.b), "GCD(%d, %d)", tt.a, tt.b)
	}
}

func TestReduceRatio(t *testing.T) {
	tests := []struct {
		name     string
		num, den int
		want     Ratio
	}{
		{"DAT to CD", 48000, 44100, Ratio{160, 147}},
		{"CD to DAT", 44100, 48000, Ratio{147, 160}},
		{"narrowband upsample", 8000, 48000, Ratio{1, 6}},
		{"identity", 44100, 44100, Ratio{1, 1}},
		{"coprime input", 44099, 48000, Ratio{44099, 48000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReduceRatio(tt.num, tt.den)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsReduced())
			assert.InDelta(t, float64(tt.num)/float64(tt.den), got.Float64(), 1e-12)
		})
	}
}

func TestReduceRatio_RejectsNonPositive(t *testing.T) {
	for _, terms := range [][2]int{{0, 1}, {1, 0}, {-48000, 44100}} {
		_, err := ReduceRatio(terms[0], terms[1])
		assert.Error(t, err, "terms %v", terms)
	}
}

func TestRatio_String(t *testing.T) {
	assert.Equal(t, "160:147", Ratio{160, 147}.String())
}
