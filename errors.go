package fixeddsp

import (
	"errors"

	"github.com/tphakala/go-fixed-dsp/internal/fft"
	"github.com/tphakala/go-fixed-dsp/internal/filter"
	"github.com/tphakala/go-fixed-dsp/internal/fir"
)

// Errors returned by the package. All of them can be matched with errors.Is.
var (
	// ErrInvalidConfig indicates invalid Analyzer configuration.
	ErrInvalidConfig = errors.New("invalid analyzer configuration")

	// ErrInvalidSize indicates an FFT size that is not a power of two in
	// [2, 32768].
	ErrInvalidSize = fft.ErrInvalidSize

	// ErrLengthMismatch indicates a buffer whose length differs from the
	// FFT size.
	ErrLengthMismatch = fft.ErrLengthMismatch

	// ErrReleased indicates use of an FFT or Analyzer after Close.
	ErrReleased = fft.ErrReleased

	// ErrNotInitialized is the panic value of a FIR filter used before Init.
	ErrNotInitialized = fir.ErrNotInitialized

	// ErrInvalidTaps indicates a FIR tap count below one.
	ErrInvalidTaps = fir.ErrInvalidTaps

	// ErrBufferTooShort indicates FIR storage shorter than the tap count.
	ErrBufferTooShort = fir.ErrBufferTooShort

	// ErrInvalidParams indicates filter design parameters out of range.
	ErrInvalidParams = filter.ErrInvalidParams
)
