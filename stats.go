package fixeddsp

import (
	"math"

	"github.com/tphakala/simd/f64"
)

// RMS returns the root-mean-square level of samples in raw sample units.
// An empty slice has an RMS of zero.
func RMS(samples []int16) float64 {
	if len(samples) == 0 {
		return 0
	}

	x := make([]float64, len(samples))
	for i, v := range samples {
		x[i] = float64(v)
	}
	return math.Sqrt(f64.DotProduct(x, x) / float64(len(x)))
}

// AttenuationDB returns the level of output relative to input in dB,
// 20·log10(RMS(output)/RMS(input)). Negative values mean the filter removed
// energy. Silent signals are clamped to a floor instead of producing
// infinities.
func AttenuationDB(input, output []int16) float64 {
	in := math.Max(RMS(input), minRMS)
	out := math.Max(RMS(output), minRMS)
	return dbMagnitudeMultiplier * math.Log10(out/in)
}
