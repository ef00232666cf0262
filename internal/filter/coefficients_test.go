package filter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-frame-resampler/internal/testutil"
)

const (
	coeffTolerance = 1e-5

	rateDAT        = 48000
	rateCD         = 44100
	rateWideband   = 16000
	rateNarrowband = 8000
)

func validParams() Params {
	return Params{
		InputRate:        rateDAT,
		OutputRate:       rateCD,
		NumTaps:          16,
		NumRows:          147,
		PhaseIncrement:   160.0 / 147.0,
		NormalizedCutoff: 0.9,
	}
}

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Params)
		wantErr error
	}{
		{"valid", func(p *Params) {}, nil},
		{"taps not multiple of four", func(p *Params) { p.NumTaps = 18 }, ErrInvalidTaps},
		{"taps too few", func(p *Params) { p.NumTaps = 0 }, ErrInvalidTaps},
		{"taps too many", func(p *Params) { p.NumTaps = 68 }, ErrInvalidTaps},
		{"zero input rate", func(p *Params) { p.InputRate = 0 }, ErrInvalidRate},
		{"negative output rate", func(p *Params) { p.OutputRate = -1 }, ErrInvalidRate},
		{"zero cutoff", func(p *Params) { p.NormalizedCutoff = 0 }, ErrInvalidCutoff},
		{"cutoff above one", func(p *Params) { p.NormalizedCutoff = 1.01 }, ErrInvalidCutoff},
		{"no rows", func(p *Params) { p.NumRows = 0 }, ErrInvalidRows},
		{"table overflow", func(p *Params) { p.NumTaps = 64 }, ErrTableTooLarge},
		{"guard row overflow", func(p *Params) {
			p.NumTaps = 64
			p.NumRows = MaxCoefficients / 64
			p.GuardRow = true
		}, ErrTableTooLarge},
		{"unknown window", func(p *Params) { p.Window = WindowType(9) }, ErrInvalidWindow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGenerateCoefficients_Layout(t *testing.T) {
	p := validParams()
	coeffs, err := GenerateCoefficients(p)
	require.NoError(t, err)
	require.Len(t, coeffs, p.NumRows*p.NumTaps)

	for row := range p.NumRows {
		testutil.AssertDCGain(t, coeffs[row*p.NumTaps:(row+1)*p.NumTaps], 1.0, coeffTolerance)
	}
}

func TestGenerateCoefficients_IdentityIsDelta(t *testing.T) {
	p := Params{
		InputRate:        rateDAT,
		OutputRate:       rateDAT,
		NumTaps:          16,
		NumRows:          1,
		PhaseIncrement:   1,
		NormalizedCutoff: 1.0,
	}
	coeffs, err := GenerateCoefficients(p)
	require.NoError(t, err)

	for tap, c := range coeffs {
		want := 0.0
		if tap == p.NumTaps/2 {
			want = 1.0
		}
		assert.InDelta(t, want, c, coeffTolerance, "tap %d", tap)
	}
}

func TestGenerateCoefficients_ZeroPhaseRowIsSymmetric(t *testing.T) {
	p := Params{
		InputRate:        rateDAT,
		OutputRate:       rateWideband,
		NumTaps:          32,
		NumRows:          1,
		PhaseIncrement:   3,
		NormalizedCutoff: 0.9,
	}
	coeffs, err := GenerateCoefficients(p)
	require.NoError(t, err)

	half := p.NumTaps / 2
	for k := 1; k < half; k++ {
		assert.InDelta(t, coeffs[half-k], coeffs[half+k], coeffTolerance, "offset %d", k)
	}
	for tap, c := range coeffs {
		assert.LessOrEqual(t, c, coeffs[half], "center tap should be the peak (tap %d)", tap)
	}
}

func TestGenerateCoefficients_RowPhases(t *testing.T) {
	p := Params{
		InputRate:        rateNarrowband,
		OutputRate:       rateDAT,
		NumTaps:          32,
		NumRows:          6,
		PhaseIncrement:   1.0 / 6.0,
		NormalizedCutoff: 0.9,
	}

	for row := range p.NumRows {
		assert.InDelta(t, float64(row)/6.0, p.RowPhase(row), 1e-12, "row %d", row)
	}
	assert.Zero(t, p.RowPhase(0), "row 0 must be the zero phase")

	coeffs, err := GenerateCoefficients(p)
	require.NoError(t, err)

	// The sinc peak stays on the center tap for phases below one half and
	// moves one tap earlier beyond it.
	half := p.NumTaps / 2
	for row := range p.NumRows {
		phase := p.RowPhase(row)
		if math.Abs(phase-0.5) < 1e-9 {
			continue // equidistant from two taps
		}
		rowCoeffs := coeffs[row*p.NumTaps : (row+1)*p.NumTaps]
		want := half
		if phase > 0.5 {
			want = half - 1
		}
		assert.Equal(t, want, argmax(rowCoeffs), "row %d", row)
	}
}

func TestGenerateCoefficients_GuardRow(t *testing.T) {
	p := Params{
		InputRate:        rateCD,
		OutputRate:       rateDAT,
		NumTaps:          64,
		NumRows:          MaxCoefficients/64 - 1,
		PhaseIncrement:   1.0 / float64(MaxCoefficients/64-1),
		NormalizedCutoff: 0.9,
		Window:           WindowKaiser,
		GuardRow:         true,
	}
	coeffs, err := GenerateCoefficients(p)
	require.NoError(t, err)
	require.Len(t, coeffs, MaxCoefficients)

	assert.Equal(t, 1.0, p.RowPhase(p.NumRows), "guard row must sit at phase 1.0")
	assert.Less(t, p.RowPhase(p.NumRows-1), 1.0)

	guard := coeffs[p.NumRows*p.NumTaps:]
	assert.Equal(t, p.NumTaps/2-1, argmax(guard), "guard row peaks one tap earlier")
	testutil.AssertDCGain(t, guard, 1.0, coeffTolerance)
}

func TestGenerateCoefficients_StopbandAttenuation(t *testing.T) {
	tests := []struct {
		name        string
		numTaps     int
		window      WindowType
		stopband    float64 // normalized to the input rate
		maxLevelDB  float64
		description string
	}{
		{"hamming_32", 32, WindowHamming, 0.25, -40, "High tier"},
		{"kaiser_64", 64, WindowKaiser, 0.21, -60, "Best tier"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Params{
				InputRate:        rateDAT,
				OutputRate:       rateWideband,
				NumTaps:          tt.numTaps,
				NumRows:          1,
				PhaseIncrement:   3,
				NormalizedCutoff: 0.9,
				Window:           tt.window,
			}
			coeffs, err := GenerateCoefficients(p)
			require.NoError(t, err)

			response := ComputeFrequencyResponse(coeffs, 1024)
			assert.InDelta(t, 0.0, MagnitudeDB(response.Magnitude[0]), 0.01, "unity DC gain")
			assert.LessOrEqual(t, response.PeakDB(tt.stopband, 0.5), tt.maxLevelDB,
				"%s stopband too high", tt.description)
		})
	}
}

func TestGenerateCoefficients_RejectsOverflow(t *testing.T) {
	p := validParams()
	p.NumTaps = 64 // 147 rows × 64 taps > MaxCoefficients

	coeffs, err := GenerateCoefficients(p)
	assert.ErrorIs(t, err, ErrTableTooLarge)
	assert.Nil(t, coeffs)
}

func TestCutoffScaler(t *testing.T) {
	assert.InDelta(t, 0.9, CutoffScaler(rateNarrowband, rateDAT, 0.9), 1e-12, "upsampling keeps input Nyquist")
	assert.InDelta(t, 0.3, CutoffScaler(rateDAT, rateWideband, 0.9), 1e-12, "downsampling scales to output Nyquist")
	assert.InDelta(t, 1.0, CutoffScaler(rateDAT, rateDAT, 1.0), 1e-12)
}

func BenchmarkGenerateCoefficients(b *testing.B) {
	p := validParams()
	b.ReportAllocs()
	for b.Loop() {
		_, _ = GenerateCoefficients(p)
	}
}

func argmax(s []float32) int {
	best := 0
	for i, v := range s {
		if v > s[best] {
			best = i
		}
	}
	return best
}
