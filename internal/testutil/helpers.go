// Package testutil provides reusable test helpers for resampler tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance = 1e-10
	Float32Tolerance = 1e-6
	DBTolerance      = 0.01
)

// AssertNoNaNOrInf verifies that no element in the slice is NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float32) bool {
	t.Helper()
	for i, v := range s {
		f := float64(v)
		if math.IsNaN(f) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(f, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertAllZero verifies that every sample is exactly zero.
func AssertAllZero(t *testing.T, s []float32) bool {
	t.Helper()
	for i, v := range s {
		if v != 0 {
			return assert.Fail(t, "non-zero sample", "s[%d]=%g", i, v)
		}
	}
	return true
}

// AssertDCGain verifies that the sum of coefficients equals the expected DC gain.
func AssertDCGain(t *testing.T, coeffs []float32, expectedGain, tolerance float64) bool {
	t.Helper()
	var sum float64
	for _, c := range coeffs {
		sum += float64(c)
	}
	return assert.InDelta(t, expectedGain, sum, tolerance,
		"DC gain = %f, want %f", sum, expectedGain)
}

// AssertRelativeError verifies that the relative error between actual and expected is within tolerance.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	return assert.LessOrEqual(t, relError, tolerance,
		"relative error %e exceeds tolerance %e (expected=%f, actual=%f)",
		relError, tolerance, expected, actual)
}

// AssertSlicesInDelta compares two float32 slices element by element.
func AssertSlicesInDelta(t *testing.T, expected, actual []float32, tolerance float64) bool {
	t.Helper()
	if !assert.Len(t, actual, len(expected)) {
		return false
	}
	for i := range expected {
		if !assert.InDelta(t, expected[i], actual[i], tolerance, "index %d", i) {
			return false
		}
	}
	return true
}
