package resampler

import "fmt"

// Info describes a constructed resampler.
type Info struct {
	Strategy     Strategy
	NumTaps      int
	NumRows      int
	ChannelCount int

	// Numerator:Denominator is the reduced input:output rate ratio.
	Numerator   int
	Denominator int

	// Latency is the filter delay in input frames.
	Latency int

	Window           WindowType
	CoefficientCount int

	// MemoryUsage is the approximate number of bytes held by the instance.
	MemoryUsage int64

	// SIMDEnabled reports whether reads use the vectorized dot product.
	SIMDEnabled bool
}

func (i Info) String() string {
	return fmt.Sprintf("%s %d:%d, %d ch, %d taps × %d rows (%s), latency %d frames, %d bytes",
		i.Strategy, i.Numerator, i.Denominator, i.ChannelCount, i.NumTaps, i.NumRows,
		i.Window, i.Latency, i.MemoryUsage)
}

type infoProvider interface {
	info() Info
}

// GetInfo returns information about a resampler built by this package.
// Other implementations yield only the fields the interface exposes.
func GetInfo(r MultiChannelResampler) Info {
	if p, ok := r.(infoProvider); ok {
		return p.info()
	}
	return Info{
		NumTaps:      r.NumTaps(),
		ChannelCount: r.ChannelCount(),
	}
}
