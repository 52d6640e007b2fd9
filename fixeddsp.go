package fixeddsp

import (
	"github.com/tphakala/go-fixed-dsp/internal/fft"
	"github.com/tphakala/go-fixed-dsp/internal/filter"
	"github.com/tphakala/go-fixed-dsp/internal/fir"
	"github.com/tphakala/go-fixed-dsp/internal/q15"
)

type (
	// Complex16 is a complex value with 16-bit real and imaginary parts.
	Complex16 = fft.Complex16

	// FIRFilter is a streaming direct-form FIR filter over caller-owned
	// coefficient and delay-line storage.
	FIRFilter = fir.Filter

	// FIROption configures a FIRFilter.
	FIROption = fir.Option

	// FFT holds the twiddle table and scratch buffer for one transform size.
	FFT = fft.Context

	// DesignParams holds windowed-sinc design parameters.
	DesignParams = filter.DesignParams

	// Window selects the taper applied during filter design.
	Window = filter.Window

	// FilterResponse is the evaluated frequency response of a tap set.
	FilterResponse = filter.Response
)

// Design windows.
const (
	WindowHamming  = filter.WindowHamming
	WindowHann     = filter.WindowHann
	WindowBlackman = filter.WindowBlackman
	WindowKaiser   = filter.WindowKaiser
)

// Q15 range.
const (
	MaxValue = q15.MaxValue
	MinValue = q15.MinValue
)

// NewFIRFilter returns a filter bound to coeffs and delayLine, both of
// which must hold at least taps values. The delay line is zeroed; the
// coefficients are used in place, not copied.
func NewFIRFilter(coeffs, delayLine []int16, taps int, opts ...FIROption) (*FIRFilter, error) {
	return fir.New(coeffs, delayLine, taps, opts...)
}

// WithOutputShift makes the filter shift the accumulator right by shift
// bits before saturating. A shift of 15 returns Q15 products to sample
// scale.
func WithOutputShift(shift uint) FIROption {
	return fir.WithOutputShift(shift)
}

// NewFFT returns an FFT context for the given power-of-two size.
func NewFFT(size int) (*FFT, error) {
	return fft.New(size)
}

// DesignLowPass designs windowed-sinc low-pass taps at p.CutoffHz.
func DesignLowPass(p DesignParams) ([]int16, error) {
	return filter.DesignLowPass(p)
}

// DesignHighPass designs high-pass taps at p.CutoffHz by spectral inversion.
func DesignHighPass(p DesignParams) ([]int16, error) {
	return filter.DesignHighPass(p)
}

// DesignBandPass designs band-pass taps passing p.LowHz to p.HighHz. The
// result has 2·p.NumTaps−1 taps.
func DesignBandPass(p DesignParams) ([]int16, error) {
	return filter.DesignBandPass(p)
}

// Convolve returns the full linear convolution of two Q15 tap sets.
func Convolve(a, b []int16) []int16 {
	return filter.Convolve(a, b)
}

// Evaluate returns the frequency response of Q15 taps at numPoints
// normalized frequencies from DC to Nyquist.
func Evaluate(coeffs []int16, numPoints int) FilterResponse {
	return filter.FrequencyResponse(coeffs, numPoints)
}

// Saturate16 clamps a 32-bit accumulator to the Q15 range.
func Saturate16(v int32) int16 {
	return q15.Saturate16(v)
}

// FromFloat converts x in [-1, 1] to Q15, truncating toward zero.
func FromFloat(x float64) int16 {
	return q15.FromFloat(x)
}

// ToFloat converts a Q15 value to float64.
func ToFloat(v int16) float64 {
	return q15.ToFloat(v)
}

// Backend describes the multiply-accumulate backend selected for this CPU.
func Backend() string {
	return q15.Describe()
}
