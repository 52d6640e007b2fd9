// Package testutil provides signal generators and assertion helpers shared
// by the fixed-point DSP tests.
package testutil

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance = 1e-10
	DBTolerance      = 0.01
)

// halfDivisor is used for finding center indices in symmetric arrays.
const halfDivisor = 2

// Sine16 returns n samples of amplitude·sin(2π·freq·i/sampleRate), truncated
// toward zero like the reference signal generator.
func Sine16(n int, freq, sampleRate float64, amplitude float64) []int16 {
	s := make([]int16, n)
	omega := 2 * math.Pi * freq / sampleRate
	for i := range s {
		s[i] = int16(amplitude * math.Sin(omega*float64(i)))
	}
	return s
}

// Impulse16 returns n samples with amplitude at index 0 and zeros elsewhere.
func Impulse16(n int, amplitude int16) []int16 {
	s := make([]int16, n)
	if n > 0 {
		s[0] = amplitude
	}
	return s
}

// Constant16 returns n samples all equal to value.
func Constant16(n int, value int16) []int16 {
	s := make([]int16, n)
	for i := range s {
		s[i] = value
	}
	return s
}

// Noise16 returns n uniformly distributed samples in [-amplitude, amplitude].
func Noise16(rng *rand.Rand, n int, amplitude int) []int16 {
	s := make([]int16, n)
	for i := range s {
		s[i] = int16(rng.Intn(2*amplitude+1) - amplitude)
	}
	return s
}

// ArgMax16 returns the index of the largest element (first on ties).
func ArgMax16(s []int16) int {
	best := 0
	for i, v := range s {
		if v > s[best] {
			best = i
		}
	}
	return best
}

// AssertSymmetric16 verifies that s[i] == s[n-1-i] for every i.
func AssertSymmetric16(t *testing.T, s []int16) bool {
	t.Helper()
	n := len(s)
	for i := 0; i < n/halfDivisor; i++ {
		j := n - 1 - i
		if !assert.Equal(t, s[i], s[j], "slice not symmetric: s[%d]=%d != s[%d]=%d", i, s[i], j, s[j]) {
			return false
		}
	}
	return true
}

// AssertWithin16 verifies that got and want have the same length and differ
// by at most tolerance at every index.
func AssertWithin16(t *testing.T, want, got []int16, tolerance int, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Len(t, got, len(want), msgAndArgs...) {
		return false
	}
	for i := range want {
		diff := int(got[i]) - int(want[i])
		if diff < -tolerance || diff > tolerance {
			return assert.Fail(t, "sample outside tolerance",
				"index %d: got %d, want %d ± %d", i, got[i], want[i], tolerance)
		}
	}
	return true
}

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertInRange verifies that a value is within [min, max].
func AssertInRange(t *testing.T, value, minVal, maxVal float64) bool {
	t.Helper()
	if value < minVal || value > maxVal {
		return assert.Fail(t, "value out of range",
			"value %f is outside range [%f, %f]", value, minVal, maxVal)
	}
	return true
}
