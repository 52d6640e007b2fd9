// Package q15 provides the 16-bit fixed-point arithmetic primitives shared by
// the FIR and FFT engines.
//
// Values are plain int16 (Fixed16) and int32 (accumulator). Every operation
// that produces a 16-bit result from a wider one saturates instead of
// wrapping. The multiply-accumulate primitives never saturate: a 32-bit
// accumulator wraps modulo 2^32 and bounding the number of accumulated
// products is the caller's responsibility.
package q15

// Saturate16 clamps v to [-32768, 32767].
func Saturate16(v int32) int16 {
	if v > MaxValue {
		return MaxValue
	}
	if v < MinValue {
		return MinValue
	}
	return int16(v)
}

// Saturate64 clamps a 64-bit value to [-32768, 32767].
func Saturate64(v int64) int16 {
	if v > MaxValue {
		return MaxValue
	}
	if v < MinValue {
		return MinValue
	}
	return int16(v)
}

// Round16 rounds a Q15 accumulator to 16 bits: (v + 16384) >> 15.
//
// The result is truncated to 16 bits without saturation; callers that can
// produce values outside the 16-bit range must saturate themselves.
func Round16(v int32) int16 {
	return int16((v + roundingBias) >> FracBits)
}

// RoundSaturate16 rounds a Q15 accumulator like Round16 and saturates the
// result to 16 bits. v must not exceed MaxInt32 − 16384.
func RoundSaturate16(v int32) int16 {
	return Saturate16((v + roundingBias) >> FracBits)
}

// Clip hard-limits v to [lo, hi]. lo <= hi is not checked.
func Clip(v, lo, hi int16) int16 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Add16 returns the saturated sum a+b.
func Add16(a, b int16) int16 {
	return Saturate16(int32(a) + int32(b))
}

// Sub16 returns the saturated difference a-b.
func Sub16(a, b int16) int16 {
	return Saturate16(int32(a) - int32(b))
}

// Neg16 returns the saturated negation of v. Neg16(-32768) is 32767.
func Neg16(v int16) int16 {
	return Saturate16(-int32(v))
}

// MAC returns acc + a*b with full 32-bit accumulation and no saturation.
func MAC(acc int32, a, b int16) int32 {
	return acc + int32(a)*int32(b)
}

// MSU returns acc - a*b with full 32-bit accumulation and no saturation.
func MSU(acc int32, a, b int16) int32 {
	return acc - int32(a)*int32(b)
}

// FromFloat converts x in [-1, 1] to Q15 by scaling with 32767 and
// truncating toward zero. Out-of-range inputs saturate.
func FromFloat(x float64) int16 {
	v := x * fullScale
	if v >= MaxValue {
		return MaxValue
	}
	if v <= MinValue {
		return MinValue
	}
	return int16(v)
}

// ToFloat converts a Q15 value to float64 using the same 32767 scale as FromFloat.
func ToFloat(v int16) float64 {
	return float64(v) / fullScale
}
