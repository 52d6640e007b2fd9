package fixeddsp

import (
	"fmt"
	"math"
	"sync"

	"github.com/tphakala/go-fixed-dsp/internal/fft"
	"github.com/tphakala/go-fixed-dsp/internal/filter"
	"github.com/tphakala/go-fixed-dsp/internal/fir"
	"github.com/tphakala/go-fixed-dsp/internal/pipeline"
	"github.com/tphakala/go-fixed-dsp/internal/q15"
)

// ResponseType selects the filter the Analyzer designs.
type ResponseType int

const (
	// LowPass passes frequencies below CutoffHz.
	LowPass ResponseType = iota

	// HighPass passes frequencies above CutoffHz.
	HighPass

	// BandPass passes frequencies between LowHz and HighHz.
	BandPass
)

// String returns the response name.
func (r ResponseType) String() string {
	switch r {
	case LowPass:
		return "lowpass"
	case HighPass:
		return "highpass"
	case BandPass:
		return "bandpass"
	default:
		return fmt.Sprintf("response(%d)", int(r))
	}
}

// Config holds Analyzer configuration.
type Config struct {
	// SampleRate of the input in Hz.
	SampleRate float64

	// Taps is the length of each designed filter section. Band-pass
	// sections have 2·Taps−1 taps.
	Taps int

	// Response selects the filter type.
	Response ResponseType

	// CutoffHz is the cutoff of LowPass and HighPass responses.
	CutoffHz float64

	// LowHz and HighHz are the BandPass edges.
	LowHz  float64
	HighHz float64

	// Window tapers the designed sinc. The zero value is WindowHamming.
	Window Window

	// KaiserBeta shapes WindowKaiser. Zero derives it from
	// KaiserAttenuationDB.
	KaiserBeta float64

	// KaiserAttenuationDB is the stopband target of WindowKaiser when
	// KaiserBeta is zero. Zero means 60 dB.
	KaiserAttenuationDB float64

	// Sections is the number of identical filter sections run in cascade.
	// Each extra section sharpens the rolloff. Zero means one.
	Sections int

	// BlockSize is the FFT size, a power of two. Zero means 256.
	BlockSize int

	// Channels is the number of independent channels. Zero means one.
	Channels int

	// EnableParallel processes channels concurrently in ProcessMulti.
	EnableParallel bool
}

// DefaultConfig returns the configuration of a 10 kHz mono analyzer with a
// 64-tap, 1 kHz low-pass and 256-point blocks.
func DefaultConfig() *Config {
	return &Config{
		SampleRate: defaultSampleRate,
		Taps:       defaultTaps,
		Response:   LowPass,
		CutoffHz:   defaultCutoffHz,
		Sections:   defaultSections,
		BlockSize:  defaultBlockSize,
		Channels:   1,
	}
}

// applyDefaults fills zero-valued optional fields.
func (c *Config) applyDefaults() {
	if c.Sections == 0 {
		c.Sections = defaultSections
	}
	if c.BlockSize == 0 {
		c.BlockSize = defaultBlockSize
	}
	if c.Channels == 0 {
		c.Channels = 1
	}
}

// Validate checks the configuration, including the filter design.
// Zero-valued optional fields are accepted.
func (c *Config) Validate() error {
	if c.Sections < 0 || c.Sections > maxSections {
		return fmt.Errorf("%w: sections must be 1-%d", ErrInvalidConfig, maxSections)
	}
	if c.Channels < 0 || c.Channels > maxChannels {
		return fmt.Errorf("%w: channels must be 1-%d", ErrInvalidConfig, maxChannels)
	}
	if c.BlockSize != 0 && (!fft.IsPowerOfTwo(c.BlockSize) || c.BlockSize < minBlockSize || c.BlockSize > maxBlockSize) {
		return fmt.Errorf("%w: block size %d must be a power of two in [%d, %d]", ErrInvalidConfig, c.BlockSize, minBlockSize, maxBlockSize)
	}
	if _, err := c.design(); err != nil {
		return err
	}
	return nil
}

// designParams maps the configuration onto filter design parameters.
func (c *Config) designParams() filter.DesignParams {
	return filter.DesignParams{
		NumTaps:    c.Taps,
		CutoffHz:   c.CutoffHz,
		LowHz:      c.LowHz,
		HighHz:     c.HighHz,
		SampleRate: c.SampleRate,
		Window:     c.Window,
		Beta:       c.KaiserBeta,

		AttenuationDB: c.KaiserAttenuationDB,
	}
}

// design returns the taps of one filter section.
func (c *Config) design() ([]int16, error) {
	var (
		coeffs []int16
		err    error
	)

	p := c.designParams()
	switch c.Response {
	case LowPass:
		coeffs, err = filter.DesignLowPass(p)
	case HighPass:
		coeffs, err = filter.DesignHighPass(p)
	case BandPass:
		coeffs, err = filter.DesignBandPass(p)
	default:
		return nil, fmt.Errorf("%w: unknown %s", ErrInvalidConfig, c.Response)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return coeffs, nil
}

// Frame is the analysis of one block of filtered samples.
type Frame struct {
	// Index counts blocks from zero since creation or the last Reset.
	Index int

	// Filtered holds the BlockSize filtered samples of the block.
	Filtered []int16

	// Spectrum is the forward FFT of the block after the headroom shift.
	Spectrum []Complex16

	// PowerDB holds 10·log10(power+1) of the first BlockSize/2 bins.
	PowerDB []int16
}

// PeakBin returns the strongest non-DC bin of the power spectrum, or zero
// when there is none.
func (f Frame) PeakBin() int {
	peak := 0
	for i := firstBin; i < len(f.PowerDB); i++ {
		if peak == 0 || f.PowerDB[i] > f.PowerDB[peak] {
			peak = i
		}
	}
	return peak
}

// Components returns the non-DC bins whose power lies strictly within
// rangeDB of the peak, in ascending order.
func (f Frame) Components(rangeDB int) []int {
	peak := f.PeakBin()
	if peak == 0 {
		return nil
	}

	floor := int(f.PowerDB[peak]) - rangeDB
	var bins []int
	for i := firstBin; i < len(f.PowerDB); i++ {
		if int(f.PowerDB[i]) > floor {
			bins = append(bins, i)
		}
	}
	return bins
}

// Info describes an Analyzer.
type Info struct {
	Response    ResponseType
	Taps        int
	Sections    int
	BlockSize   int
	Channels    int
	Latency     int
	Backend     string
	MemoryUsage int64
}

// Analyzer filters streamed samples through a designed FIR cascade,
// accumulates the output into blocks and transforms each full block.
//
// Each channel owns its filter sections and FFT context. Process and Reset
// on the same Analyzer must be serialized.
type Analyzer struct {
	config   Config
	coeffs   []int16
	channels []*channelAnalyzer
	closed   bool
}

// channelAnalyzer holds per-channel state.
type channelAnalyzer struct {
	chain    *pipeline.Chain
	block    *pipeline.BlockBuffer
	fft      *fft.Context
	filtered []int16
	scaled   []int16
	frames   int
}

// NewAnalyzer creates an Analyzer from config. Zero-valued optional fields
// take their defaults; config itself is not modified.
func NewAnalyzer(config *Config) (*Analyzer, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}

	cfg := *config
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	coeffs, err := cfg.design()
	if err != nil {
		return nil, err
	}

	a := &Analyzer{
		config:   cfg,
		coeffs:   coeffs,
		channels: make([]*channelAnalyzer, cfg.Channels),
	}
	for i := range a.channels {
		ch, err := newChannelAnalyzer(coeffs, cfg.Sections, cfg.BlockSize)
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", i, err)
		}
		a.channels[i] = ch
	}

	return a, nil
}

func newChannelAnalyzer(coeffs []int16, sections, blockSize int) (*channelAnalyzer, error) {
	// Sections share the read-only taps but own their delay lines. Samples
	// are Q15 audio, so each section rescales its accumulator by 15 bits.
	stages := make([]pipeline.Stage, sections)
	for i := range stages {
		f, err := fir.New(coeffs, make([]int16, len(coeffs)), len(coeffs), fir.WithOutputShift(q15.FracBits))
		if err != nil {
			return nil, err
		}
		stages[i] = f
	}

	chain, err := pipeline.NewChain(stages...)
	if err != nil {
		return nil, err
	}

	ctx, err := fft.New(blockSize)
	if err != nil {
		return nil, err
	}

	return &channelAnalyzer{
		chain:  chain,
		block:  pipeline.NewBlockBuffer(blockSize),
		fft:    ctx,
		scaled: make([]int16, blockSize),
	}, nil
}

// Process analyzes a mono stream, or the first channel of a multi-channel
// Analyzer. It returns one Frame per block completed by samples; leftover
// samples are kept for the next call.
func (a *Analyzer) Process(samples []int16) ([]Frame, error) {
	if a.closed {
		return nil, ErrReleased
	}
	return a.channels[0].process(samples)
}

// ProcessMulti analyzes one slice of samples per channel. When
// EnableParallel is set, channels are processed concurrently.
func (a *Analyzer) ProcessMulti(input [][]int16) ([][]Frame, error) {
	if a.closed {
		return nil, ErrReleased
	}
	if len(input) != len(a.channels) {
		return nil, fmt.Errorf("%w: expected %d channels, got %d", ErrInvalidConfig, len(a.channels), len(input))
	}

	output := make([][]Frame, len(input))

	if !a.config.EnableParallel || len(input) <= 1 {
		for ch := range input {
			frames, err := a.channels[ch].process(input[ch])
			if err != nil {
				return nil, fmt.Errorf("channel %d: %w", ch, err)
			}
			output[ch] = frames
		}
		return output, nil
	}

	var wg sync.WaitGroup
	errChan := make(chan error, len(input))

	for ch := range input {
		wg.Add(1)
		go func(channel int) {
			defer wg.Done()

			frames, err := a.channels[channel].process(input[channel])
			if err != nil {
				errChan <- fmt.Errorf("channel %d: %w", channel, err)
				return
			}
			output[channel] = frames
		}(ch)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return nil, err
		}
	}

	return output, nil
}

func (ch *channelAnalyzer) process(samples []int16) ([]Frame, error) {
	if cap(ch.filtered) < len(samples) {
		ch.filtered = make([]int16, len(samples))
	}
	filtered := ch.filtered[:len(samples)]
	ch.chain.Process(filtered, samples)

	var frames []Frame
	for rest := filtered; len(rest) > 0; {
		n := ch.block.Write(rest)
		rest = rest[n:]
		if !ch.block.Full() {
			continue
		}

		frame, err := ch.analyze(ch.block.Block())
		if err != nil {
			return frames, err
		}
		frames = append(frames, frame)
		ch.block.Reset()
	}

	return frames, nil
}

// analyze transforms one full block. Samples are shifted right by log2(N)
// first so that full-scale input cannot saturate the unscaled transform.
func (ch *channelAnalyzer) analyze(block []int16) (Frame, error) {
	n := len(block)
	shift := ch.fft.Log2Size()
	for i, v := range block {
		ch.scaled[i] = v >> shift
	}

	frame := Frame{
		Index:    ch.frames,
		Filtered: append([]int16(nil), block...),
		Spectrum: make([]Complex16, n),
		PowerDB:  make([]int16, n/2),
	}
	if err := ch.fft.Real(ch.scaled, frame.Spectrum); err != nil {
		return Frame{}, err
	}
	if err := ch.fft.PowerSpectrum(frame.Spectrum, frame.PowerDB); err != nil {
		return Frame{}, err
	}

	ch.frames++
	return frame, nil
}

// BinFrequency returns the center frequency of bin in Hz.
func (a *Analyzer) BinFrequency(bin int) float64 {
	return float64(bin) * a.config.SampleRate / float64(a.config.BlockSize)
}

// Coefficients returns a copy of the taps of one filter section.
func (a *Analyzer) Coefficients() []int16 {
	return append([]int16(nil), a.coeffs...)
}

// FrequencyResponse evaluates the whole cascade at numPoints frequencies.
// Frequencies are normalized to the sample rate.
func (a *Analyzer) FrequencyResponse(numPoints int) FilterResponse {
	r := filter.FrequencyResponse(a.coeffs, numPoints)
	sections := float64(a.config.Sections)
	for i := range r.Magnitude {
		r.Magnitude[i] = math.Pow(r.Magnitude[i], sections)
		r.Phase[i] *= sections
	}
	return r
}

// Latency returns the group delay of the filter cascade in samples.
func (a *Analyzer) Latency() int {
	return a.channels[0].chain.Latency()
}

// Info returns a description of the Analyzer.
func (a *Analyzer) Info() Info {
	taps := len(a.coeffs)
	blockSize := a.config.BlockSize

	// Delay lines and block buffers per channel, plus the FFT twiddle and
	// scratch tables.
	perChannel := int64(a.config.Sections*taps+blockSize*2)*bytesPerSample +
		int64(2*blockSize)*bytesPerComplex

	return Info{
		Response:    a.config.Response,
		Taps:        taps,
		Sections:    a.config.Sections,
		BlockSize:   blockSize,
		Channels:    len(a.channels),
		Latency:     a.Latency(),
		Backend:     q15.Default().Name,
		MemoryUsage: int64(taps)*bytesPerSample + perChannel*int64(len(a.channels)),
	}
}

// Reset clears filter history and discards partially filled blocks.
func (a *Analyzer) Reset() {
	for _, ch := range a.channels {
		ch.chain.Reset()
		ch.block.Reset()
		ch.frames = 0
	}
}

// Close releases the FFT contexts. It is idempotent; Process and
// ProcessMulti return ErrReleased afterwards.
func (a *Analyzer) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	for _, ch := range a.channels {
		if err := ch.fft.Close(); err != nil {
			return err
		}
	}
	return nil
}
