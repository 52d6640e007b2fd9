// Package filter designs Q15 FIR coefficients by the windowed-sinc method.
//
// Low-pass taps are a truncated, windowed sinc; high-pass taps are derived by
// spectral inversion of the low-pass; band-pass taps are the linear
// convolution of a low-pass at the upper edge with a high-pass at the lower
// edge. Taps are scaled by 32767 and truncated toward zero.
package filter

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/go-fixed-dsp/internal/mathutil"
	"github.com/tphakala/go-fixed-dsp/internal/q15"
	"github.com/tphakala/simd/f64"
)

// ErrInvalidParams indicates filter design parameters out of range.
var ErrInvalidParams = errors.New("filter: invalid design parameters")

// DesignParams holds parameters for filter design.
type DesignParams struct {
	// NumTaps is the filter length. Odd lengths give exactly symmetric,
	// linear-phase taps; the sinc is centered on tap NumTaps/2.
	NumTaps int

	// CutoffHz is the cutoff of low-pass and high-pass designs.
	CutoffHz float64

	// LowHz and HighHz are the band edges of band-pass designs.
	LowHz  float64
	HighHz float64

	// SampleRate in Hz.
	SampleRate float64

	// Window tapers the sinc. The zero value is WindowHamming.
	Window Window

	// Beta is the Kaiser window shape parameter, ignored by other windows.
	// Zero derives β from AttenuationDB.
	Beta float64

	// AttenuationDB is the stopband attenuation a Kaiser window is shaped
	// for when Beta is zero. Zero means 60 dB; below 21 dB the window is
	// rectangular.
	AttenuationDB float64
}

// Validate checks the parameters shared by every design.
func (p *DesignParams) Validate() error {
	if p.NumTaps < minFilterTaps || p.NumTaps > maxFilterTaps {
		return fmt.Errorf("%w: %d taps (must be %d-%d)", ErrInvalidParams, p.NumTaps, minFilterTaps, maxFilterTaps)
	}
	if p.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %g must be positive", ErrInvalidParams, p.SampleRate)
	}
	if p.Window < WindowHamming || p.Window > WindowKaiser {
		return fmt.Errorf("%w: unknown %s", ErrInvalidParams, p.Window)
	}
	if p.Window == WindowKaiser && p.Beta < 0 {
		return fmt.Errorf("%w: kaiser beta %g must not be negative", ErrInvalidParams, p.Beta)
	}
	if p.AttenuationDB < 0 {
		return fmt.Errorf("%w: attenuation %g dB must not be negative", ErrInvalidParams, p.AttenuationDB)
	}
	return nil
}

// kaiserBeta returns Beta, or the β that reaches AttenuationDB when Beta
// is zero.
func (p *DesignParams) kaiserBeta() float64 {
	if p.Beta > 0 {
		return p.Beta
	}
	att := p.AttenuationDB
	if att == 0 {
		att = defaultKaiserAttenuationDB
	}
	return mathutil.KaiserBeta(att)
}

// validateFrequency checks that freq lies strictly between 0 and Nyquist.
func (p *DesignParams) validateFrequency(name string, freq float64) error {
	nyquist := p.SampleRate / nyquistDivisor
	if freq <= 0 || freq >= nyquist {
		return fmt.Errorf("%w: %s %g Hz must be in (0, %g)", ErrInvalidParams, name, freq, nyquist)
	}
	return nil
}

// DesignLowPass designs a windowed-sinc low-pass filter at p.CutoffHz.
//
// With ωc = 2π·fc/fs and center = NumTaps/2, the center tap is 2·fc/fs and
// every other tap i is sin(ωc·n)/(π·n)·w[i] with n = i − center, all scaled
// to Q15.
func DesignLowPass(p DesignParams) ([]int16, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := p.validateFrequency("cutoff", p.CutoffHz); err != nil {
		return nil, err
	}

	return quantize(windowedSinc(p, p.CutoffHz)), nil
}

// DesignHighPass designs a high-pass filter at p.CutoffHz by spectral
// inversion: the low-pass taps are negated and one full-scale unit is added
// to the center tap.
func DesignHighPass(p DesignParams) ([]int16, error) {
	coeffs, err := DesignLowPass(p)
	if err != nil {
		return nil, err
	}

	SpectralInvert(coeffs)
	return coeffs, nil
}

// SpectralInvert turns low-pass taps into the complementary high-pass in place.
func SpectralInvert(coeffs []int16) {
	if len(coeffs) == 0 {
		return
	}
	for i, c := range coeffs {
		coeffs[i] = q15.Neg16(c)
	}
	center := len(coeffs) / 2
	coeffs[center] = q15.Add16(coeffs[center], q15.MaxValue)
}

// DesignBandPass designs a band-pass filter passing p.LowHz to p.HighHz.
//
// The result is the full linear convolution of a low-pass at HighHz and a
// high-pass at LowHz, each output shifted right by 15 bits to undo the
// Q15×Q15 growth. It has 2·NumTaps−1 taps.
func DesignBandPass(p DesignParams) ([]int16, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := p.validateFrequency("low edge", p.LowHz); err != nil {
		return nil, err
	}
	if err := p.validateFrequency("high edge", p.HighHz); err != nil {
		return nil, err
	}
	if p.LowHz >= p.HighHz {
		return nil, fmt.Errorf("%w: low edge %g Hz must be below high edge %g Hz", ErrInvalidParams, p.LowHz, p.HighHz)
	}

	lowpass := quantize(windowedSinc(p, p.HighHz))
	highpass := quantize(windowedSinc(p, p.LowHz))
	SpectralInvert(highpass)

	return Convolve(lowpass, highpass), nil
}

// Convolve returns the full linear convolution of two Q15 sequences,
// len(a)+len(b)−1 taps, each rescaled by >>15 and saturated.
func Convolve(a, b []int16) []int16 {
	if len(a) == 0 || len(b) == 0 {
		return []int16{}
	}

	out := make([]int16, len(a)+len(b)-1)
	for k := range out {
		var acc int64
		jmin := max(0, k-len(b)+1)
		jmax := min(k, len(a)-1)
		for j := jmin; j <= jmax; j++ {
			acc += int64(a[j]) * int64(b[k-j])
		}
		out[k] = q15.Saturate64(acc >> q15.FracBits)
	}
	return out
}

// windowedSinc returns the unit-gain float taps of a low-pass at cutoffHz.
// The center tap is left unwindowed.
func windowedSinc(p DesignParams, cutoffHz float64) []float64 {
	omegaC := 2 * math.Pi * cutoffHz / p.SampleRate
	center := p.NumTaps / 2
	w := p.Window.Coefficients(p.NumTaps, p.kaiserBeta())

	h := make([]float64, p.NumTaps)
	for i := range h {
		if i == center {
			h[i] = omegaC / math.Pi
			continue
		}
		n := float64(i - center)
		// Mirror the window so odd-length taps come out exactly symmetric.
		h[i] = math.Sin(omegaC*n) / (math.Pi * n) * w[min(i, p.NumTaps-1-i)]
	}
	return h
}

// quantize scales unit-gain taps to Q15, truncating toward zero.
func quantize(h []float64) []int16 {
	f64.Scale(h, h, q15FullScale)

	coeffs := make([]int16, len(h))
	for i, v := range h {
		coeffs[i] = q15.Saturate64(int64(v))
	}
	return coeffs
}
