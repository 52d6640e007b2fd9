// Package fir implements a streaming direct-form FIR filter over Q15
// coefficients with a circular delay line.
//
// The coefficient and delay-line slices are owned by the caller and bound by
// Init; the filter never allocates. Process is the per-sample path invoked
// from sample-rate-bound contexts: its cost is O(taps) and deterministic.
//
// A Filter is not safe for concurrent use.
package fir

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-fixed-dsp/internal/q15"
)

// Errors returned by Init.
var (
	// ErrInvalidTaps indicates a tap count below one.
	ErrInvalidTaps = errors.New("fir: invalid tap count")

	// ErrBufferTooShort indicates a coefficient or delay-line slice shorter
	// than the tap count.
	ErrBufferTooShort = errors.New("fir: buffer shorter than tap count")

	// ErrNotInitialized is the panic value raised when a filter is used
	// before Init.
	ErrNotInitialized = errors.New("fir: filter not initialized")
)

// Filter is a direct-form transversal FIR filter.
//
// The zero value is uninitialized; Init moves it to the ready state.
// At every call the delay line holds the taps most recent input samples in
// circular order, newest at the cursor position.
type Filter struct {
	coeffs    []int16
	delayLine []int16
	taps      int
	cursor    int
	shift     uint
	ops       *q15.Ops
}

// Option configures a Filter.
type Option func(*Filter)

// WithOps pins the multiply-accumulate backend used by Process and
// ProcessBlock.
func WithOps(ops *q15.Ops) Option {
	return func(f *Filter) {
		if ops != nil {
			f.ops = ops
		}
	}
}

// WithOutputShift shifts the accumulator right by shift bits before
// saturation. A shift of 15 treats samples and coefficients as Q15 and
// gives unity-scaled output; the default of zero returns the raw
// accumulator, saturated.
func WithOutputShift(shift uint) Option {
	return func(f *Filter) {
		f.shift = shift
	}
}

// New returns a ready filter bound to coeffs and delayLine.
func New(coeffs, delayLine []int16, taps int, opts ...Option) (*Filter, error) {
	f := &Filter{}
	if err := f.Init(coeffs, delayLine, taps, opts...); err != nil {
		return nil, err
	}
	return f, nil
}

// Init binds the caller-owned coefficient and delay-line storage, zeroes the
// first taps entries of the delay line and resets the cursor.
//
// Both slices must hold at least taps elements. The coefficients are not
// copied: rewriting them after Init changes the response from the next sample.
func (f *Filter) Init(coeffs, delayLine []int16, taps int, opts ...Option) error {
	if taps < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidTaps, taps)
	}
	if len(coeffs) < taps {
		return fmt.Errorf("%w: %d coefficients for %d taps", ErrBufferTooShort, len(coeffs), taps)
	}
	if len(delayLine) < taps {
		return fmt.Errorf("%w: delay line of %d for %d taps", ErrBufferTooShort, len(delayLine), taps)
	}

	f.coeffs = coeffs[:taps:taps]
	f.delayLine = delayLine[:taps:taps]
	f.taps = taps
	f.ops = q15.Default()
	f.shift = 0
	for _, opt := range opts {
		opt(f)
	}

	f.Reset()
	return nil
}

// Reset clears the delay line and moves the cursor back to zero.
func (f *Filter) Reset() {
	clear(f.delayLine)
	f.cursor = 0
}

// Taps returns the filter length, zero before Init.
func (f *Filter) Taps() int {
	return f.taps
}

// Cursor returns the delay-line position the next sample is written to.
func (f *Filter) Cursor() int {
	return f.cursor
}

// Process pushes one sample and returns the saturated filter output
//
//	y[n] = Σ coeffs[i] * x[n-i], i in [0, taps)
//
// Process panics with ErrNotInitialized on a filter that was never initialized.
func (f *Filter) Process(sample int16) int16 {
	taps := f.taps
	if taps == 0 {
		panic(ErrNotInitialized)
	}

	cursor := f.cursor
	f.delayLine[cursor] = sample

	mac := f.ops.MAC
	var acc int32
	idx := cursor
	for i := range taps {
		acc = mac(acc, f.coeffs[i], f.delayLine[idx])
		idx--
		if idx < 0 {
			idx = taps - 1
		}
	}

	cursor++
	if cursor == taps {
		cursor = 0
	}
	f.cursor = cursor

	return q15.Saturate16(acc >> f.shift)
}

// ProcessBlock filters src into dst and returns the number of samples
// written, min(len(dst), len(src)). The output is identical to calling
// Process once per sample.
//
// The circular delay line is split at the cursor into two contiguous runs,
// each evaluated with the backend's grouped reverse dot product.
func (f *Filter) ProcessBlock(dst, src []int16) int {
	taps := f.taps
	if taps == 0 {
		panic(ErrNotInitialized)
	}

	n := min(len(dst), len(src))
	dotReverse := f.ops.DotReverse
	shift := f.shift

	for k := range n {
		cursor := f.cursor
		f.delayLine[cursor] = src[k]

		// Taps [0, cursor] read delayLine[cursor..0]; taps (cursor, taps)
		// read delayLine[taps-1..cursor+1].
		head := cursor + 1
		acc := dotReverse(f.coeffs[:head], f.delayLine[:head])
		acc += dotReverse(f.coeffs[head:], f.delayLine[head:])

		cursor++
		if cursor == taps {
			cursor = 0
		}
		f.cursor = cursor

		dst[k] = q15.Saturate16(acc >> shift)
	}

	return n
}
