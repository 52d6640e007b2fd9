// Package fft implements a radix-2 decimation-in-time FFT over 16-bit
// complex samples.
//
// Twiddle factors are Q15 with magnitude at most 32767 and every butterfly
// multiply is rounded back to sample scale, so the forward transform is
// unscaled: a bin can grow up to N times the input magnitude and saturates
// at full scale. Inputs bounded by 32767/N never saturate. The inverse
// transform divides by N.
//
// A Context is not safe for concurrent use.
package fft

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/go-fixed-dsp/internal/q15"
)

// Errors returned by Context methods.
var (
	// ErrInvalidSize indicates a transform size that is not a power of two
	// between 2 and 32768.
	ErrInvalidSize = errors.New("fft: invalid transform size")

	// ErrLengthMismatch indicates a buffer whose length does not match the
	// transform size.
	ErrLengthMismatch = errors.New("fft: buffer length mismatch")

	// ErrReleased indicates use of a Context after Close.
	ErrReleased = errors.New("fft: context released")
)

// Context holds the twiddle table and scratch buffer for one transform size.
type Context struct {
	size     int
	log2Size int
	twiddle  []Complex16
	scratch  []Complex16
}

// New returns a Context for transforms of the given size.
//
// twiddle[k] = (cos(-2πk/N), sin(-2πk/N)) scaled by 32767 and truncated.
func New(size int) (*Context, error) {
	if !IsPowerOfTwo(size) || size < minSize || size > maxSize {
		return nil, fmt.Errorf("%w: %d (must be a power of two in [%d, %d])", ErrInvalidSize, size, minSize, maxSize)
	}

	c := &Context{
		size:     size,
		log2Size: Log2(size),
		twiddle:  make([]Complex16, size),
		scratch:  make([]Complex16, size),
	}
	for k := range c.twiddle {
		angle := -2 * math.Pi * float64(k) / float64(size)
		c.twiddle[k] = Complex16{Re: q15.FromFloat(math.Cos(angle)), Im: q15.FromFloat(math.Sin(angle))}
	}
	return c, nil
}

// Size returns the transform length N.
func (c *Context) Size() int { return c.size }

// Log2Size returns log2(N).
func (c *Context) Log2Size() int { return c.log2Size }

// Released reports whether Close has been called.
func (c *Context) Released() bool { return c.twiddle == nil }

// Twiddle returns twiddle factor k. It panics if k is out of range or the
// context is released.
func (c *Context) Twiddle(k int) Complex16 { return c.twiddle[k] }

// Close releases the twiddle table and scratch buffer. Calling Close more
// than once is a no-op. Afterwards Forward, Inverse, Real, RealInverse,
// PowerSpectrum and SpectralFilter return ErrReleased, Twiddle panics, and
// Size and Log2Size keep reporting the released transform size.
func (c *Context) Close() error {
	c.twiddle = nil
	c.scratch = nil
	return nil
}

// Forward computes the unscaled DFT of in into out.
//
// in and out must both hold exactly N values. They may be the same slice,
// in which case the transform runs in place; partially overlapping slices
// are not supported.
func (c *Context) Forward(in, out []Complex16) error {
	if err := c.check(len(in), len(out)); err != nil {
		return err
	}
	c.permute(in, out, false)
	c.butterflies(out)
	return nil
}

// Inverse computes the inverse DFT of in into out, dividing by N with an
// arithmetic shift.
//
// The inverse runs as conjugate, forward, conjugate. The first conjugation
// happens while permuting into out, so in is never modified unless it is
// the same slice as out.
func (c *Context) Inverse(in, out []Complex16) error {
	if err := c.check(len(in), len(out)); err != nil {
		return err
	}
	c.permute(in, out, true)
	c.butterflies(out)
	for i, v := range out {
		v = Conj(v)
		out[i] = Complex16{Re: v.Re >> c.log2Size, Im: v.Im >> c.log2Size}
	}
	return nil
}

// Real computes the forward transform of real samples: each sample becomes
// a complex value with zero imaginary part.
func (c *Context) Real(in []int16, out []Complex16) error {
	if err := c.check(len(in), len(out)); err != nil {
		return err
	}
	for i, v := range in {
		out[i] = Complex16{Re: v}
	}
	c.permute(out, out, false)
	c.butterflies(out)
	return nil
}

// RealInverse computes the inverse transform of in and writes the real
// part of the result to out. in is not modified.
func (c *Context) RealInverse(in []Complex16, out []int16) error {
	if err := c.check(len(in), len(out)); err != nil {
		return err
	}
	if err := c.Inverse(in, c.scratch); err != nil {
		return err
	}
	for i, v := range c.scratch {
		out[i] = v.Re
	}
	return nil
}

// PowerSpectrum writes 10·log10(re² + im² + 1) of the first N/2 bins of
// spectrum to out, truncated toward zero. out must hold exactly N/2 values.
func (c *Context) PowerSpectrum(spectrum []Complex16, out []int16) error {
	if err := c.check(len(spectrum)); err != nil {
		return err
	}
	if half := c.size / halfSpectrumDivisor; len(out) != half {
		return fmt.Errorf("%w: power spectrum holds %d bins, want %d", ErrLengthMismatch, len(out), half)
	}

	for i := range out {
		v := spectrum[i]
		power := int64(q15.MAC(0, v.Re, v.Re)) + int64(q15.MAC(0, v.Im, v.Im))
		out[i] = int16(powerDBMultiplier * math.Log10(float64(power+1)))
	}
	return nil
}

// SpectralFilter filters in by multiplying its spectrum bin by bin with the
// Q15 gains in response, then writes the real part of the inverse transform
// to out. All three slices must hold exactly N values; in and out may be
// the same slice. The context scratch buffer holds the spectrum, so the
// call does not allocate.
func (c *Context) SpectralFilter(in, response, out []int16) error {
	if err := c.check(len(in), len(response), len(out)); err != nil {
		return err
	}

	for i, v := range in {
		c.scratch[i] = Complex16{Re: v}
	}
	c.permute(c.scratch, c.scratch, false)
	c.butterflies(c.scratch)

	for i, r := range response {
		c.scratch[i] = Scale(c.scratch[i], r)
	}

	if err := c.Inverse(c.scratch, c.scratch); err != nil {
		return err
	}
	for i, v := range c.scratch {
		out[i] = v.Re
	}
	return nil
}

func (c *Context) check(lengths ...int) error {
	if c.twiddle == nil {
		return ErrReleased
	}
	for _, n := range lengths {
		if n != c.size {
			return fmt.Errorf("%w: got %d, want %d", ErrLengthMismatch, n, c.size)
		}
	}
	return nil
}

// permute copies in into out in bit-reversed order, conjugating when conj
// is set. When in and out share storage the permutation is done by swaps.
func (c *Context) permute(in, out []Complex16, conj bool) {
	if &in[0] == &out[0] {
		for i := range out {
			if j := BitReverse(i, c.log2Size); i < j {
				out[i], out[j] = out[j], out[i]
			}
		}
		if conj {
			for i, v := range out {
				out[i] = Conj(v)
			}
		}
		return
	}

	for i, v := range in {
		if conj {
			v = Conj(v)
		}
		out[BitReverse(i, c.log2Size)] = v
	}
}

// butterflies runs the log2(N) in-place decimation-in-time stages over
// bit-reversed data.
func (c *Context) butterflies(x []Complex16) {
	for stage := range c.log2Size {
		half := 1 << stage
		step := c.size / (2 * half)
		for group := 0; group < c.size; group += 2 * half {
			for k := range half {
				top, bottom := group+k, group+k+half
				t := Mul(x[bottom], c.twiddle[k*step])
				u := x[top]
				x[top] = Add(u, t)
				x[bottom] = Sub(u, t)
			}
		}
	}
}
