package main

import (
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	fixeddsp "github.com/tphakala/go-fixed-dsp"
)

// testTones lists the frequencies and levels of the synthesized signal.
var testTones = []struct {
	freq  float64
	level float64
}{
	{500, toneLevel500},
	{1500, toneLevel1500},
	{3000, toneLevel3000},
	{5000, toneLevel5000},
}

// generateTestSignal synthesizes n samples of the four-tone test signal
// with uniform noise, converted to Q15 with saturation.
func generateTestSignal(n int, sampleRate float64, seed uint64) []int16 {
	rng := rand.New(rand.NewPCG(seed, seed))
	signal := make([]int16, n)
	for i := range signal {
		t := float64(i) / sampleRate
		var v float64
		for _, tone := range testTones {
			v += tone.level * math.Sin(2*math.Pi*tone.freq*t)
		}
		v += noiseLevel * (rng.Float64() - noiseCenter)
		signal[i] = fixeddsp.FromFloat(v)
	}
	return signal
}

func parseResponse(s string) (fixeddsp.ResponseType, error) {
	switch strings.ToLower(s) {
	case "lowpass", "low":
		return fixeddsp.LowPass, nil
	case "highpass", "high":
		return fixeddsp.HighPass, nil
	case "bandpass", "band":
		return fixeddsp.BandPass, nil
	default:
		return 0, fmt.Errorf("unknown response %q (want lowpass, highpass or bandpass)", s)
	}
}

func parseWindow(s string) (fixeddsp.Window, error) {
	for _, w := range []fixeddsp.Window{
		fixeddsp.WindowHamming, fixeddsp.WindowHann,
		fixeddsp.WindowBlackman, fixeddsp.WindowKaiser,
	} {
		if strings.EqualFold(s, w.String()) {
			return w, nil
		}
	}
	return 0, fmt.Errorf("unknown window %q", s)
}

// wavInput holds a decoded WAV file as per-channel Q15 samples.
type wavInput struct {
	rate     int
	bitDepth int
	channels [][]int16
}

// readWAV decodes a PCM WAV file and converts every channel to 16 bits by
// dropping low-order bits.
func readWAV(path string) (*wavInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data: %w", err)
	}

	bitDepth := int(decoder.BitDepth)
	if bitDepth < bitsPerSample16 || bitDepth > maxBitDepth {
		return nil, fmt.Errorf("unsupported bit depth %d (want 16-32)", bitDepth)
	}

	numChannels := buf.Format.NumChannels
	frames := len(buf.Data) / numChannels
	channels := make([][]int16, numChannels)
	for ch := range channels {
		channels[ch] = make([]int16, frames)
	}

	shift := bitDepth - bitsPerSample16
	for i := range frames {
		for ch := range numChannels {
			channels[ch][i] = int16(buf.Data[i*numChannels+ch] >> shift)
		}
	}

	return &wavInput{
		rate:     buf.Format.SampleRate,
		bitDepth: bitDepth,
		channels: channels,
	}, nil
}

// writeWAV encodes per-channel samples as a 16-bit PCM WAV file. All
// channels must have the same length.
func writeWAV(path string, sampleRate int, channels [][]int16) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	numChannels := len(channels)
	frames := 0
	if numChannels > 0 {
		frames = len(channels[0])
	}

	data := make([]int, frames*numChannels)
	for ch, samples := range channels {
		for i, s := range samples {
			data[i*numChannels+ch] = int(s)
		}
	}

	encoder := wav.NewEncoder(f, sampleRate, bitsPerSample16, numChannels, pcmFormat)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: numChannels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitsPerSample16,
	}
	if err := encoder.Write(buf); err != nil {
		return fmt.Errorf("failed to write audio data: %w", err)
	}
	return encoder.Close()
}

// padToBlock returns samples zero-padded to a multiple of blockSize.
func padToBlock(samples []int16, blockSize int) []int16 {
	if rem := len(samples) % blockSize; rem != 0 {
		return append(samples[:len(samples):len(samples)], make([]int16, blockSize-rem)...)
	}
	return samples
}

// collectFiltered concatenates the filtered samples of frames.
func collectFiltered(frames []fixeddsp.Frame) []int16 {
	var out []int16
	for _, f := range frames {
		out = append(out, f.Filtered...)
	}
	return out
}

// report prints signal statistics and the spectrum of the last frame.
func report(w io.Writer, a *fixeddsp.Analyzer, input, output []int16, frames []fixeddsp.Frame) {
	inRMS, outRMS := fixeddsp.RMS(input), fixeddsp.RMS(output)

	fmt.Fprintln(w, "Results Summary:")
	fmt.Fprintln(w, "================")
	fmt.Fprintf(w, "Input signal RMS: %.2f\n", inRMS)
	fmt.Fprintf(w, "Output signal RMS: %.2f\n", outRMS)
	fmt.Fprintf(w, "Signal attenuation: %.2f dB\n", fixeddsp.AttenuationDB(input, output))

	if len(frames) == 0 {
		fmt.Fprintln(w, "\nNo complete block to analyze.")
		return
	}

	frame := frames[len(frames)-1]
	peak := frame.PeakBin()
	fmt.Fprintf(w, "\nPower Spectrum Peaks (block %d):\n", frame.Index)
	fmt.Fprintf(w, "Peak frequency: %.0f Hz\n", a.BinFrequency(peak))
	fmt.Fprintf(w, "Peak power: %d dB\n", frame.PowerDB[peak])

	fmt.Fprintf(w, "\nFrequency Components (> -%d dB):\n", componentRangeDB)
	for _, bin := range frame.Components(componentRangeDB) {
		fmt.Fprintf(w, "  %.0f Hz: %d dB\n", a.BinFrequency(bin), frame.PowerDB[bin])
	}

	n := min(previewSamples, len(input), len(output))
	fmt.Fprintf(w, "\nSample Values (first %d samples):\n", n)
	fmt.Fprintln(w, "Input -> Output")
	for i := range n {
		fmt.Fprintf(w, "%6d -> %6d\n", input[i], output[i])
	}
}
