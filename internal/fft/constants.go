package fft

// Transform size limits.
const (
	minSize     = 2
	maxLog2Size = 15
	maxSize     = 1 << maxLog2Size
)

const (
	// powerDBMultiplier converts power to decibels (10·log10).
	powerDBMultiplier = 10.0

	// halfSpectrumDivisor gives the number of unique bins of a real input.
	halfSpectrumDivisor = 2
)
