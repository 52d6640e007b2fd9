package fft

import "github.com/tphakala/go-fixed-dsp/internal/q15"

// Complex16 is a complex value with 16-bit real and imaginary parts.
type Complex16 struct {
	Re int16
	Im int16
}

// Add returns the componentwise saturated sum a+b.
func Add(a, b Complex16) Complex16 {
	return Complex16{Re: q15.Add16(a.Re, b.Re), Im: q15.Add16(a.Im, b.Im)}
}

// Sub returns the componentwise saturated difference a-b.
func Sub(a, b Complex16) Complex16 {
	return Complex16{Re: q15.Sub16(a.Re, b.Re), Im: q15.Sub16(a.Im, b.Im)}
}

// Conj returns the complex conjugate of a. The imaginary part is negated
// with saturation, so -32768 becomes 32767.
func Conj(a Complex16) Complex16 {
	return Complex16{Re: a.Re, Im: q15.Neg16(a.Im)}
}

// Mul returns a·w where w is a Q15 factor such as a twiddle.
//
// The products (ac − bd) and (ad + bc) accumulate in 32 bits, are rounded
// by 15 bits and saturated, so a unit-magnitude w preserves the scale of a.
// The 32-bit accumulation only overflows when all four components are
// -32768, which no twiddle contains.
func Mul(a, w Complex16) Complex16 {
	re := q15.MSU(q15.MAC(0, a.Re, w.Re), a.Im, w.Im)
	im := q15.MAC(q15.MAC(0, a.Re, w.Im), a.Im, w.Re)
	return Complex16{Re: q15.RoundSaturate16(re), Im: q15.RoundSaturate16(im)}
}

// Scale returns a with both parts multiplied by the Q15 gain r, shifted
// right by 15 bits and saturated.
func Scale(a Complex16, r int16) Complex16 {
	return Complex16{
		Re: q15.Saturate16(q15.MAC(0, a.Re, r) >> q15.FracBits),
		Im: q15.Saturate16(q15.MAC(0, a.Im, r) >> q15.FracBits),
	}
}
