package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-fixed-dsp/internal/mathutil"
	"github.com/tphakala/go-fixed-dsp/internal/q15"
	"github.com/tphakala/go-fixed-dsp/internal/testutil"
)

const (
	testSampleRate = 10000.0
	testCutoff     = 1000.0
	testLowEdge    = 1000.0
	testHighEdge   = 3000.0
	testTaps       = 63
	testPoints     = 1024

	centerTolerance   = 1
	dcGainTolerance   = 0.02
	passbandTolerance = 0.05
	halfPowerDelta    = 0.1
	stopbandCeiling   = 0.01
	bandEdgeCeiling   = 0.1
	bandCenterFloor   = 0.5
	testKaiserBeta    = 6.0

	kaiserStopbandCeiling = 1e-3 // -60 dB
)

func lowpassParams(taps int) DesignParams {
	return DesignParams{
		NumTaps:    taps,
		CutoffHz:   testCutoff,
		SampleRate: testSampleRate,
	}
}

func TestDesignParams_Validate(t *testing.T) {
	tests := []struct {
		name   string
		params DesignParams
		design func(DesignParams) ([]int16, error)
	}{
		{"zero_taps", DesignParams{NumTaps: 0, CutoffHz: testCutoff, SampleRate: testSampleRate}, DesignLowPass},
		{"too_many_taps", DesignParams{NumTaps: maxFilterTaps + 1, CutoffHz: testCutoff, SampleRate: testSampleRate}, DesignLowPass},
		{"zero_sample_rate", DesignParams{NumTaps: testTaps, CutoffHz: testCutoff}, DesignLowPass},
		{"cutoff_zero", DesignParams{NumTaps: testTaps, SampleRate: testSampleRate}, DesignHighPass},
		{"cutoff_at_nyquist", DesignParams{NumTaps: testTaps, CutoffHz: testSampleRate / 2, SampleRate: testSampleRate}, DesignLowPass},
		{"unknown_window", DesignParams{NumTaps: testTaps, CutoffHz: testCutoff, SampleRate: testSampleRate, Window: Window(99)}, DesignLowPass},
		{"negative_beta", DesignParams{NumTaps: testTaps, CutoffHz: testCutoff, SampleRate: testSampleRate, Window: WindowKaiser, Beta: -1}, DesignLowPass},
		{"negative_attenuation", DesignParams{NumTaps: testTaps, CutoffHz: testCutoff, SampleRate: testSampleRate, Window: WindowKaiser, AttenuationDB: -1}, DesignLowPass},
		{"band_edges_swapped", DesignParams{NumTaps: testTaps, LowHz: testHighEdge, HighHz: testLowEdge, SampleRate: testSampleRate}, DesignBandPass},
		{"band_missing_low", DesignParams{NumTaps: testTaps, HighHz: testHighEdge, SampleRate: testSampleRate}, DesignBandPass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coeffs, err := tt.design(tt.params)
			require.ErrorIs(t, err, ErrInvalidParams)
			assert.Nil(t, coeffs)
		})
	}
}

// TestDesignLowPass_CenterTap verifies the center tap is 2·fc/fs in Q15.
func TestDesignLowPass_CenterTap(t *testing.T) {
	for _, taps := range []int{15, 31, 64, 101} {
		coeffs, err := DesignLowPass(lowpassParams(taps))
		require.NoError(t, err)
		require.Len(t, coeffs, taps)

		want := 2 * testCutoff / testSampleRate * q15FullScale
		assert.InDelta(t, want, float64(coeffs[taps/2]), centerTolerance, "taps=%d", taps)
	}
}

// TestDesignLowPass_Symmetry verifies odd-length designs are linear phase.
func TestDesignLowPass_Symmetry(t *testing.T) {
	windows := []Window{WindowHamming, WindowHann, WindowBlackman, WindowKaiser}

	for _, w := range windows {
		for _, taps := range []int{3, 15, 31, 63, 101} {
			t.Run(w.String(), func(t *testing.T) {
				p := lowpassParams(taps)
				p.Window = w
				p.Beta = testKaiserBeta

				coeffs, err := DesignLowPass(p)
				require.NoError(t, err)
				testutil.AssertSymmetric16(t, coeffs)
			})
		}
	}
}

func TestDesignLowPass_SingleTap(t *testing.T) {
	coeffs, err := DesignLowPass(lowpassParams(1))
	require.NoError(t, err)
	assert.Equal(t, []int16{q15.FromFloat(2 * testCutoff / testSampleRate)}, coeffs)
}

func TestDesignLowPass_Response(t *testing.T) {
	coeffs, err := DesignLowPass(lowpassParams(testTaps))
	require.NoError(t, err)

	assert.InDelta(t, 1.0, DCGain(coeffs), dcGainTolerance)

	r := FrequencyResponse(coeffs, testPoints)
	testutil.AssertNoNaNOrInf(t, r.Magnitude)
	assert.InDelta(t, 1.0, r.MagnitudeAt(500/testSampleRate), passbandTolerance)
	assert.InDelta(t, 0.5, r.MagnitudeAt(testCutoff/testSampleRate), halfPowerDelta)
	assert.Less(t, r.MagnitudeAt(3000/testSampleRate), stopbandCeiling)
	assert.Less(t, r.MagnitudeAt(4500/testSampleRate), stopbandCeiling)
}

// TestDesignHighPass_SpectralInversion verifies the high-pass equals the
// negated low-pass plus a unit impulse at the center.
func TestDesignHighPass_SpectralInversion(t *testing.T) {
	for _, taps := range []int{15, 63, 64} {
		p := lowpassParams(taps)

		lowpass, err := DesignLowPass(p)
		require.NoError(t, err)
		highpass, err := DesignHighPass(p)
		require.NoError(t, err)

		want := make([]int16, taps)
		for i, c := range lowpass {
			want[i] = -c
		}
		want[taps/2] += q15.MaxValue

		assert.Equal(t, want, highpass, "taps=%d", taps)
	}
}

func TestDesignHighPass_Response(t *testing.T) {
	coeffs, err := DesignHighPass(lowpassParams(testTaps))
	require.NoError(t, err)

	r := FrequencyResponse(coeffs, testPoints)
	assert.Less(t, r.MagnitudeAt(0), bandEdgeCeiling)
	assert.InDelta(t, 1.0, r.MagnitudeAt(3000/testSampleRate), passbandTolerance)
}

func TestDesignBandPass(t *testing.T) {
	p := DesignParams{
		NumTaps:    testTaps,
		LowHz:      testLowEdge,
		HighHz:     testHighEdge,
		SampleRate: testSampleRate,
	}

	coeffs, err := DesignBandPass(p)
	require.NoError(t, err)
	require.Len(t, coeffs, 2*testTaps-1)
	testutil.AssertSymmetric16(t, coeffs)

	r := FrequencyResponse(coeffs, testPoints)
	assert.Greater(t, r.MagnitudeAt(2000/testSampleRate), bandCenterFloor)
	assert.Less(t, r.MagnitudeAt(0), bandEdgeCeiling)
	assert.Less(t, r.MagnitudeAt(4500/testSampleRate), bandEdgeCeiling)
}

func TestConvolve(t *testing.T) {
	tests := []struct {
		name string
		a, b []int16
		want []int16
	}{
		{"empty", nil, []int16{1}, []int16{}},
		{"half_times_half", []int16{16384}, []int16{16384, -16384}, []int16{8192, -8192}},
		{"unit_identity", []int16{100, 200, 300}, []int16{-32768}, []int16{-100, -200, -300}},
		{"saturates", []int16{q15.MaxValue, q15.MaxValue}, []int16{q15.MinValue, q15.MinValue}, []int16{-32767, q15.MinValue, -32767}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Convolve(tt.a, tt.b))
		})
	}
}

func TestKaiserWindow(t *testing.T) {
	w := KaiserWindow(21, testKaiserBeta)
	require.Len(t, w, 21)
	assert.InDelta(t, 1.0, w[10], testutil.DefaultTolerance)
	for i := range 10 {
		assert.InDelta(t, w[i], w[20-i], testutil.DefaultTolerance)
		assert.Less(t, w[i], w[i+1])
	}

	assert.Equal(t, []float64{1}, KaiserWindow(1, testKaiserBeta))
	assert.Empty(t, KaiserWindow(0, testKaiserBeta))
}

// TestDesignLowPass_KaiserAttenuation verifies that a Kaiser design without
// Beta is shaped for its target attenuation instead of left rectangular.
func TestDesignLowPass_KaiserAttenuation(t *testing.T) {
	kaiser := func(beta, att float64) []int16 {
		p := lowpassParams(testTaps)
		p.Window = WindowKaiser
		p.Beta = beta
		p.AttenuationDB = att
		coeffs, err := DesignLowPass(p)
		require.NoError(t, err)
		return coeffs
	}

	shaped := kaiser(0, 60)
	assert.Equal(t, kaiser(mathutil.KaiserBeta(60), 0), shaped)
	assert.Equal(t, shaped, kaiser(0, 0), "default attenuation")

	// Below 21 dB the derived β is zero, a rectangular window.
	rectangular := kaiser(0, 20)
	assert.NotEqual(t, rectangular, shaped)
	testutil.AssertSymmetric16(t, shaped)

	rs := FrequencyResponse(shaped, testPoints)
	rr := FrequencyResponse(rectangular, testPoints)
	for _, f := range []float64{0.25, 0.3, 0.4} {
		assert.Less(t, rs.MagnitudeAt(f), kaiserStopbandCeiling, "f=%g", f)
		assert.Less(t, rs.MagnitudeAt(f), rr.MagnitudeAt(f), "f=%g", f)
	}
}

func TestWindow_HammingFormula(t *testing.T) {
	const n = 9
	w := WindowHamming.Coefficients(n, 0)
	require.Len(t, w, n)
	assert.InDelta(t, 0.08, w[0], testutil.DefaultTolerance)
	assert.InDelta(t, 1.0, w[n/2], testutil.DefaultTolerance)
	assert.Equal(t, "hamming", WindowHamming.String())
	assert.Equal(t, "window(7)", Window(7).String())
}

func TestMagnitudeDB(t *testing.T) {
	assert.InDelta(t, 0.0, MagnitudeDB(1), testutil.DBTolerance)
	assert.InDelta(t, -20.0, MagnitudeDB(0.1), testutil.DBTolerance)
	assert.InDelta(t, -200.0, MagnitudeDB(0), testutil.DBTolerance)
}
