// Command analyze-filter prints designed Q15 filter taps and their
// frequency response.
//
// Usage:
//
//	analyze-filter -taps 31 -cutoff 1000
//	analyze-filter -highpass -cutoff 2000 -window blackman
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/tphakala/go-fixed-dsp/internal/filter"
)

const (
	defaultTaps       = 31
	defaultCutoffHz   = 1000.0
	defaultSampleRate = 10000.0
	defaultPoints     = 16

	tapsPerLine = 8
)

var errUnknownWindow = errors.New("unknown window")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		logrus.WithError(err).Fatal("filter analysis failed")
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("analyze-filter", flag.ContinueOnError)
	taps := fs.Int("taps", defaultTaps, "Number of filter taps")
	cutoff := fs.Float64("cutoff", defaultCutoffHz, "Cutoff frequency in Hz")
	rate := fs.Float64("rate", defaultSampleRate, "Sample rate in Hz")
	highpass := fs.Bool("highpass", false, "Design a high-pass instead of a low-pass")
	windowName := fs.String("window", "hamming", "Window: hamming, hann, blackman, kaiser")
	beta := fs.Float64("beta", 0, "Kaiser window beta (0: derive from -atten)")
	atten := fs.Float64("atten", 0, "Kaiser stopband attenuation in dB (0: 60 dB)")
	points := fs.Int("points", defaultPoints, "Response points between DC and Nyquist")
	verbose := fs.Bool("v", false, "Log design parameters")
	if err := fs.Parse(args); err != nil {
		return err
	}

	window, ok := parseWindow(*windowName)
	if !ok {
		return fmt.Errorf("%w %q", errUnknownWindow, *windowName)
	}

	params := filter.DesignParams{
		NumTaps:       *taps,
		CutoffHz:      *cutoff,
		SampleRate:    *rate,
		Window:        window,
		Beta:          *beta,
		AttenuationDB: *atten,
	}

	design, kind := filter.DesignLowPass, "low-pass"
	if *highpass {
		design, kind = filter.DesignHighPass, "high-pass"
	}
	if *verbose {
		logrus.WithFields(logrus.Fields{
			"taps":   params.NumTaps,
			"cutoff": params.CutoffHz,
			"rate":   params.SampleRate,
			"window": window.String(),
			"kind":   kind,
		}).Info("designing filter")
	}
	coeffs, err := design(params)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "=== %d-tap %s at %.1f Hz (%s window, fs %.0f Hz) ===\n\n",
		len(coeffs), kind, *cutoff, window, *rate)

	fmt.Fprintln(out, "Q15 taps:")
	for i, c := range coeffs {
		if i%tapsPerLine == 0 {
			fmt.Fprintf(out, "  %3d:", i)
		}
		fmt.Fprintf(out, " %6d", c)
		if i%tapsPerLine == tapsPerLine-1 || i == len(coeffs)-1 {
			fmt.Fprintln(out)
		}
	}

	dc := filter.DCGain(coeffs)
	fmt.Fprintf(out, "\nDC gain: %.6f (%.2f dB)\n", dc, filter.MagnitudeDB(max(dc, -dc)))

	resp := filter.FrequencyResponse(coeffs, *points)
	fmt.Fprintln(out, "\nFrequency response:")
	for i, f := range resp.Frequencies {
		fmt.Fprintf(out, "  %8.1f Hz: %8.2f dB\n", f*(*rate), filter.MagnitudeDB(resp.Magnitude[i]))
	}
	return nil
}

func parseWindow(name string) (filter.Window, bool) {
	for _, w := range []filter.Window{filter.WindowHamming, filter.WindowHann, filter.WindowBlackman, filter.WindowKaiser} {
		if strings.EqualFold(name, w.String()) {
			return w, true
		}
	}
	return 0, false
}
