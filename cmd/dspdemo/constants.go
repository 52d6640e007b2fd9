package main

// Default command-line flag values
const (
	defaultSampleRate = 10000.0 // Hz
	defaultTaps       = 64
	defaultCutoffHz   = 1000.0
	defaultLowHz      = 1000.0
	defaultHighHz     = 2000.0
	defaultBlockSize  = 256
	defaultSamples    = 1024
	defaultSeed       = 1
)

// Test signal: four tones plus uniform noise, relative to full scale.
const (
	toneLevel500  = 0.5
	toneLevel1500 = 0.3
	toneLevel3000 = 0.2
	toneLevel5000 = 0.1
	noiseLevel    = 0.05
	noiseCenter   = 0.5
)

// Report layout
const (
	componentRangeDB = 20
	previewSamples   = 10
)

// WAV conversion
const (
	bitsPerSample16 = 16
	maxBitDepth     = 32
	pcmFormat       = 1
)
