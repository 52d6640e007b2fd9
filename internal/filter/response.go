package filter

import (
	"math"
	"math/cmplx"

	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Response holds the frequency response of a filter.
type Response struct {
	// Frequencies at which the response was evaluated (normalized, 0 to 0.5).
	Frequencies []float64

	// Magnitude at each frequency (linear, 1.0 = Q15 full scale).
	Magnitude []float64

	// Phase at each frequency in radians.
	Phase []float64
}

// FrequencyResponse evaluates Q15 taps at numPoints frequencies evenly spaced
// from DC up to (but excluding) Nyquist, using a zero-padded real FFT.
// numPoints is raised when needed so the FFT covers every tap.
func FrequencyResponse(coeffs []int16, numPoints int) Response {
	if numPoints <= 0 {
		numPoints = defaultResponsePoints
	}
	if numPoints*responseFFTFactor < len(coeffs) {
		numPoints = (len(coeffs) + 1) / responseFFTFactor
	}
	n := numPoints * responseFFTFactor

	h := make([]float64, n)
	for i, c := range coeffs {
		h[i] = float64(c)
	}
	f64.Scale(h, h, 1/q15FullScale)

	spectrum := fourier.NewFFT(n).Coefficients(nil, h)

	r := Response{
		Frequencies: make([]float64, numPoints),
		Magnitude:   make([]float64, numPoints),
		Phase:       make([]float64, numPoints),
	}
	for k := range numPoints {
		r.Frequencies[k] = float64(k) / float64(n)
		r.Magnitude[k] = cmplx.Abs(spectrum[k])
		r.Phase[k] = cmplx.Phase(spectrum[k])
	}
	return r
}

// MagnitudeAt returns the magnitude at the evaluated frequency nearest to
// the normalized frequency f (cycles per sample).
func (r Response) MagnitudeAt(f float64) float64 {
	if len(r.Magnitude) == 0 {
		return 0
	}
	step := r.Frequencies[len(r.Frequencies)-1] / math.Max(1, float64(len(r.Frequencies)-1))
	if step == 0 {
		return r.Magnitude[0]
	}
	k := int(math.Round(f / step))
	k = max(0, min(k, len(r.Magnitude)-1))
	return r.Magnitude[k]
}

// DCGain returns the sum of the taps as a float gain (1.0 = unity).
func DCGain(coeffs []int16) float64 {
	h := make([]float64, len(coeffs))
	for i, c := range coeffs {
		h[i] = float64(c)
	}
	return f64.Sum(h) / q15FullScale
}

// MagnitudeDB converts linear magnitude to decibels.
func MagnitudeDB(magnitude float64) float64 {
	const (
		minMagnitude = 1e-10 // Avoid log(0)
		dbMultiplier = 20.0  // 20*log10 for magnitude
	)

	if magnitude < minMagnitude {
		magnitude = minMagnitude
	}
	return dbMultiplier * math.Log10(magnitude)
}
