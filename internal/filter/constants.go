package filter

const (
	// Filter design limits
	minFilterTaps = 1
	maxFilterTaps = 4096

	// nyquistDivisor gives the Nyquist frequency from the sample rate.
	nyquistDivisor = 2.0

	// Sinc function constants
	sincCenterTap = 1.0

	// q15FullScale converts unit-gain float taps to Q15 and back.
	q15FullScale = 32767.0

	// defaultKaiserAttenuationDB shapes the Kaiser window when neither
	// Beta nor AttenuationDB is set.
	defaultKaiserAttenuationDB = 60.0

	// Frequency response defaults
	defaultResponsePoints = 512
	responseFFTFactor     = 2 // FFT length = 2 × number of response points
)
