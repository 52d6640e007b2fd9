package filter

import (
	"fmt"
	"math"

	"github.com/mjibson/go-dsp/window"
	"github.com/tphakala/go-fixed-dsp/internal/mathutil"
)

// Window selects the taper applied to the truncated sinc.
type Window int

const (
	// WindowHamming is 0.54 − 0.46·cos(2πi/(N−1)). It is the default.
	WindowHamming Window = iota

	// WindowHann is 0.5·(1 − cos(2πi/(N−1))).
	WindowHann

	// WindowBlackman is the three-term Blackman window.
	WindowBlackman

	// WindowKaiser is the Kaiser window; DesignParams.Beta or
	// DesignParams.AttenuationDB sets its shape.
	WindowKaiser
)

// String returns the window name.
func (w Window) String() string {
	switch w {
	case WindowHamming:
		return "hamming"
	case WindowHann:
		return "hann"
	case WindowBlackman:
		return "blackman"
	case WindowKaiser:
		return "kaiser"
	default:
		return fmt.Sprintf("window(%d)", int(w))
	}
}

// Coefficients returns the length-point window.
func (w Window) Coefficients(length int, beta float64) []float64 {
	if length < 1 {
		return []float64{}
	}

	switch w {
	case WindowHann:
		return window.Hann(length)
	case WindowBlackman:
		return window.Blackman(length)
	case WindowKaiser:
		return KaiserWindow(length, beta)
	default:
		return window.Hamming(length)
	}
}

// KaiserWindow generates a Kaiser window of the specified length and β
//
//	w[n] = I₀(β·sqrt(1 − ((n − α)/α)²)) / I₀(β),  α = (N−1)/2
//
// The window is symmetric and peaks at 1.0 in the middle.
func KaiserWindow(length int, beta float64) []float64 {
	if length < 1 {
		return []float64{}
	}

	w := make([]float64, length)
	if length == 1 {
		w[0] = sincCenterTap
		return w
	}

	alpha := float64(length-1) / nyquistDivisor
	i0Beta := mathutil.BesselI0(beta)

	for n := range length {
		x := (float64(n) - alpha) / alpha
		w[n] = mathutil.BesselI0(beta*math.Sqrt(math.Max(0, 1-x*x))) / i0Beta
	}

	return w
}
