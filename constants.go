package resampler

import "github.com/tphakala/go-frame-resampler/internal/filter"

// Channel constants
const (
	monoChannels   = 1
	stereoChannels = 2   // Stereo channel count (used by interleave functions)
	maxChannels    = 256 // Maximum supported channel count
)

// Filter defaults applied by New when the Config leaves them zero.
const (
	DefaultNumTaps          = 16
	DefaultNormalizedCutoff = 0.90
)

// MaxCoefficients is the largest coefficient table any resampler builds.
const MaxCoefficients = filter.MaxCoefficients

// Resampling ratio limits
const (
	minRatioFactor = 1.0 / 256.0 // Minimum resampling ratio (1/256)
	maxRatioFactor = 256.0       // Maximum resampling ratio (256x)
)

// Quality tier parameters
const (
	lowTaps   = 8
	lowCutoff = 0.70
	lowDB     = 20.0

	mediumTaps   = 16
	mediumCutoff = 0.80
	mediumDB     = 30.0

	highTaps   = 32
	highCutoff = 0.90
	highDB     = 40.0

	bestTaps   = 64
	bestCutoff = 0.90
	bestDB     = 60.0

	// kaiserDesignDB is the attenuation the Kaiser β is computed for.
	// It leaves headroom over the advertised figure for the short,
	// row-normalized filters built here.
	kaiserDesignDB = 80.0

	// Half transition bandwidth of the windowed sinc, in cycles per input
	// sample times numTaps. Beyond cutoff + width the response is past the
	// window's main lobe: about 53 dB down for Hamming and at the 80 dB
	// design figure for Kaiser.
	hammingTransitionWidth = 2.0
	kaiserTransitionWidth  = 2.6
)

// Memory accounting
const (
	bytesPerFloat32 = 4
	bytesPerInt     = 8
)

// Source buffering
const (
	defaultSourceBufferFrames = 1024
	maxEmptyReads             = 100
)

// Common sample rates
const (
	Rate8000  = 8000
	Rate16000 = 16000
	Rate22050 = 22050
	Rate32000 = 32000
	Rate44100 = 44100
	Rate48000 = 48000
	Rate88200 = 88200
	Rate96000 = 96000
)

const latencyDivisor = 2
