package fixeddsp

// Analyzer defaults, matching a 10 kHz acquisition with a 1 kHz low-pass.
const (
	defaultSampleRate = 10000.0
	defaultTaps       = 64
	defaultCutoffHz   = 1000.0
	defaultBlockSize  = 256
	defaultSections   = 1
)

// Channel and section limits
const (
	maxChannels  = 256
	maxSections  = 8
	minBlockSize = 2
	maxBlockSize = 1 << 15
)

// Analysis constants
const (
	// DefaultComponentRange is the distance below the peak, in dB, within
	// which Frame.Components reports a bin.
	DefaultComponentRange = 20

	// dbMagnitudeMultiplier converts an amplitude ratio to dB (20·log10).
	dbMagnitudeMultiplier = 20.0

	// minRMS avoids log(0) in AttenuationDB.
	minRMS = 1e-10

	// firstBin skips DC when searching for the spectral peak.
	firstBin = 1

	// bytesPerSample is the size of an int16 sample.
	bytesPerSample = 2

	// bytesPerComplex is the size of a Complex16.
	bytesPerComplex = 4
)
