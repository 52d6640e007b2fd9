// Package fixeddsp provides a 16-bit fixed-point DSP kernel in pure Go: Q15
// arithmetic with saturation, a streaming FIR filter with a circular delay
// line, windowed-sinc filter design and a radix-2 FFT.
//
// # Number Format
//
// Samples and coefficients are int16. Coefficients are Q15, where 32767
// stands for 1.0. Products accumulate in int32 without saturation and every
// result written back to 16 bits is saturated, never wrapped.
//
// # FIR Filtering
//
// A [FIRFilter] is bound to caller-owned coefficient and delay-line storage
// and never allocates:
//
//	coeffs, err := fixeddsp.DesignLowPass(fixeddsp.DesignParams{
//	    NumTaps:    63,
//	    CutoffHz:   1000,
//	    SampleRate: 10000,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	f, err := fixeddsp.NewFIRFilter(coeffs, make([]int16, len(coeffs)), len(coeffs))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	y := f.Process(x)
//
// Process returns the raw accumulator saturated to 16 bits, so an impulse of
// 1 reproduces the coefficients. [DesignHighPass] derives a high-pass by
// spectral inversion and [DesignBandPass] convolves a low-pass with a
// high-pass.
//
// # FFT
//
// An [FFT] context owns its twiddle table and scratch buffer. The forward
// transform is unscaled, so inputs should stay within 32767/N to avoid
// saturation; the inverse divides by N:
//
//	ctx, err := fixeddsp.NewFFT(256)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ctx.Close()
//
//	spectrum := make([]fixeddsp.Complex16, 256)
//	if err := ctx.Real(block, spectrum); err != nil {
//	    log.Fatal(err)
//	}
//	power := make([]int16, 128)
//	_ = ctx.PowerSpectrum(spectrum, power)
//
// # Analyzer
//
// [Analyzer] combines both engines: it designs a filter from a [Config],
// runs streamed Q15 audio through a cascade of filter sections, collects
// the output into FFT-sized blocks and returns a [Frame] with the spectrum
// and power of every full block. Channels are independent and can be
// processed concurrently with [Analyzer.ProcessMulti].
//
// # Thread Safety
//
// FIR filters, FFT contexts and Analyzers are single-owner values: calls on
// the same instance must be serialized. Use one instance per channel.
package fixeddsp
