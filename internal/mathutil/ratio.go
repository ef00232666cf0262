package mathutil

import "fmt"

// GCD returns the greatest common divisor of a and b using Euclid's algorithm.
// The result is always non-negative; GCD(0, 0) is 0.
func GCD(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Ratio is an exact integer fraction Numerator/Denominator.
type Ratio struct {
	Numerator   int
	Denominator int
}

// ReduceRatio returns numerator/denominator reduced to lowest terms.
// Both values must be positive.
func ReduceRatio(numerator, denominator int) (Ratio, error) {
	if numerator <= 0 || denominator <= 0 {
		return Ratio{}, fmt.Errorf("ratio terms must be positive: %d/%d", numerator, denominator)
	}

	g := GCD(numerator, denominator)
	return Ratio{
		Numerator:   numerator / g,
		Denominator: denominator / g,
	}, nil
}

// Float64 returns the ratio as a floating-point value.
func (r Ratio) Float64() float64 {
	return float64(r.Numerator) / float64(r.Denominator)
}

// IsReduced reports whether the ratio is in lowest terms.
func (r Ratio) IsReduced() bool {
	return GCD(r.Numerator, r.Denominator) == 1
}

func (r Ratio) String() string {
	return fmt.Sprintf("%d:%d", r.Numerator, r.Denominator)
}
