// Package simdops provides generic SIMD kernels for float32 and float64 so
// the convolution and normalization code can be written once.
package simdops

import (
	"github.com/tphakala/simd/f32"
	"github.com/tphakala/simd/f64"
)

// Float is the type constraint for supported floating-point types.
type Float interface {
	float32 | float64
}

// Ops bundles the vector kernels used by the resampler for element type F.
type Ops[F Float] struct {
	// DotProductUnsafe computes Σ a[i]·b[i] without bounds checks.
	// Both slices must have the same length.
	DotProductUnsafe func(a, b []F) F

	// Sum returns the sum of all elements.
	Sum func(a []F) F

	// Scale writes a[i]·s into dst[i].
	Scale func(dst, a []F, s F)

	// Interleave2 writes dst[0]=a[0], dst[1]=b[0], dst[2]=a[1], ...
	Interleave2 func(dst, a, b []F)
}

var (
	ops32 = Ops[float32]{
		DotProductUnsafe: f32.DotProductUnsafe,
		Sum:              f32.Sum,
		Scale:            f32.Scale,
		Interleave2:      f32.Interleave2,
	}
	ops64 = Ops[float64]{
		DotProductUnsafe: f64.DotProductUnsafe,
		Sum:              f64.Sum,
		Scale:            f64.Scale,
		Interleave2:      f64.Interleave2,
	}
)

// For returns the Ops instance for type F.
// The type switch runs once at construction time, never per sample.
func For[F Float]() *Ops[F] {
	var zero F
	switch any(zero).(type) {
	case float32:
		ops, ok := any(&ops32).(*Ops[F])
		if !ok {
			panic("simdops: type assertion failed for float32")
		}
		return ops
	case float64:
		ops, ok := any(&ops64).(*Ops[F])
		if !ok {
			panic("simdops: type assertion failed for float64")
		}
		return ops
	default:
		panic("simdops: unsupported float type")
	}
}

// Float32Ops returns the float32 kernels.
func Float32Ops() *Ops[float32] {
	return &ops32
}

// Float64Ops returns the float64 kernels.
func Float64Ops() *Ops[float64] {
	return &ops64
}
