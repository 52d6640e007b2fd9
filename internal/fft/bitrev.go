package fft

import "math/bits"

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Log2 returns floor(log2(n)), or -1 for n <= 0.
func Log2(n int) int {
	if n <= 0 {
		return -1
	}
	return bits.Len(uint(n)) - 1
}

// BitReverse returns the low log2Size bits of x in reverse order.
func BitReverse(x, log2Size int) int {
	if log2Size <= 0 {
		return 0
	}
	return int(bits.Reverse(uint(x)) >> (bits.UintSize - log2Size))
}
