package q15

// Q15 format constants
const (
	// MaxValue is the largest representable Fixed16 value (≈ +1.0 in Q15).
	MaxValue = 32767

	// MinValue is the smallest representable Fixed16 value (-1.0 in Q15).
	MinValue = -32768

	// FracBits is the number of fractional bits in Q15.
	FracBits = 15

	// roundingBias is half of one Q15 unit, added before the >>15 shift.
	roundingBias = 1 << (FracBits - 1)

	// fullScale is the scale used to convert between float and Q15.
	// The reference design scales by 32767, not 32768.
	fullScale = 32767.0
)

// Backend grouping constants
const (
	// unrollWidth is the number of taps handled per group by the unrolled backend.
	unrollWidth = 4
)
