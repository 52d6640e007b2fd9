package fir

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-fixed-dsp/internal/q15"
	"github.com/tphakala/go-fixed-dsp/internal/testutil"
)

const (
	testSeed           = 7
	testCoeffAmplitude = 2000
	testInputAmplitude = 2000
	testRounds         = 3 // process rounds*taps samples to exercise wraparound
	testBlockSize      = 37
)

var testTapCounts = []int{1, 4, 17, 64}

func randomCoeffs(rng *rand.Rand, taps int) []int16 {
	return testutil.Noise16(rng, taps, testCoeffAmplitude)
}

// directOutput recomputes y[n] from the full input history.
func directOutput(coeffs, history []int16) int16 {
	var acc int64
	n := len(history) - 1
	for i, c := range coeffs {
		if n-i < 0 {
			break
		}
		acc += int64(c) * int64(history[n-i])
	}
	return q15.Saturate64(acc)
}

func TestInit_Errors(t *testing.T) {
	tests := []struct {
		name    string
		coeffs  int
		delay   int
		taps    int
		wantErr error
	}{
		{"zero_taps", 4, 4, 0, ErrInvalidTaps},
		{"negative_taps", 4, 4, -3, ErrInvalidTaps},
		{"short_coeffs", 3, 4, 4, ErrBufferTooShort},
		{"short_delay_line", 4, 3, 4, ErrBufferTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(make([]int16, tt.coeffs), make([]int16, tt.delay), tt.taps)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestInit_ZeroesDelayLine(t *testing.T) {
	coeffs := []int16{1, 2, 3}
	delay := []int16{9, 9, 9, 9}

	f, err := New(coeffs, delay, 3)
	require.NoError(t, err)

	assert.Equal(t, []int16{0, 0, 0, 9}, delay, "only the first taps entries are cleared")
	assert.Equal(t, 0, f.Cursor())
	assert.Equal(t, 3, f.Taps())
}

func TestProcess_Uninitialized(t *testing.T) {
	var f Filter
	assert.PanicsWithValue(t, ErrNotInitialized, func() { f.Process(1) })
	assert.PanicsWithValue(t, ErrNotInitialized, func() { f.ProcessBlock(make([]int16, 1), make([]int16, 1)) })
}

// TestProcess_ImpulseResponse verifies that a unit impulse reproduces the
// coefficients, followed by zeros.
func TestProcess_ImpulseResponse(t *testing.T) {
	rng := rand.New(rand.NewSource(testSeed))

	for _, taps := range testTapCounts {
		coeffs := randomCoeffs(rng, taps)
		f, err := New(coeffs, make([]int16, taps), taps)
		require.NoError(t, err)

		input := testutil.Impulse16(2*taps, 1)
		for n, x := range input {
			y := f.Process(x)
			if n < taps {
				require.Equal(t, coeffs[n], y, "taps=%d n=%d", taps, n)
			} else {
				require.Zero(t, y, "taps=%d n=%d", taps, n)
			}
		}
	}
}

// TestProcess_MatchesDirectForm compares Process against a dot product over
// the explicit input history.
func TestProcess_MatchesDirectForm(t *testing.T) {
	rng := rand.New(rand.NewSource(testSeed))

	for _, taps := range testTapCounts {
		coeffs := randomCoeffs(rng, taps)
		f, err := New(coeffs, make([]int16, taps), taps)
		require.NoError(t, err)

		input := testutil.Noise16(rng, testRounds*taps+1, testInputAmplitude)
		history := make([]int16, 0, len(input))
		for n, x := range input {
			history = append(history, x)
			require.Equal(t, directOutput(coeffs, history), f.Process(x), "taps=%d n=%d", taps, n)
		}
		assert.Equal(t, len(input)%taps, f.Cursor())
	}
}

func TestProcess_OutputSaturates(t *testing.T) {
	coeffs := []int16{q15.MaxValue, 0}
	f, err := New(coeffs, make([]int16, 2), 2)
	require.NoError(t, err)

	assert.Equal(t, int16(q15.MaxValue), f.Process(q15.MaxValue))
	assert.Equal(t, int16(q15.MinValue), f.Process(q15.MinValue))
}

// TestProcessBlock_MatchesProcess runs the batched path with uneven block
// sizes across several calls and checks it against the per-sample path.
func TestProcessBlock_MatchesProcess(t *testing.T) {
	rng := rand.New(rand.NewSource(testSeed))
	backends := []*q15.Ops{q15.Portable(), q15.Unrolled()}

	for _, taps := range testTapCounts {
		for _, ops := range backends {
			coeffs := randomCoeffs(rng, taps)
			input := testutil.Noise16(rng, testRounds*taps+testBlockSize, q15.MaxValue)

			ref, err := New(coeffs, make([]int16, taps), taps)
			require.NoError(t, err)
			want := make([]int16, len(input))
			for i, x := range input {
				want[i] = ref.Process(x)
			}

			blk, err := New(coeffs, make([]int16, taps), taps, WithOps(ops))
			require.NoError(t, err)
			got := make([]int16, len(input))
			for start := 0; start < len(input); start += testBlockSize {
				end := min(start+testBlockSize, len(input))
				n := blk.ProcessBlock(got[start:end], input[start:end])
				require.Equal(t, end-start, n)
			}

			require.Equal(t, want, got, "taps=%d backend=%s", taps, ops.Name)
			assert.Equal(t, ref.Cursor(), blk.Cursor())
		}
	}
}

func TestProcessBlock_ShortDestination(t *testing.T) {
	f, err := New([]int16{1, 1}, make([]int16, 2), 2)
	require.NoError(t, err)

	dst := make([]int16, 2)
	n := f.ProcessBlock(dst, []int16{5, 6, 7})
	assert.Equal(t, 2, n)
	assert.Equal(t, []int16{5, 11}, dst)
}

func TestReset(t *testing.T) {
	delay := make([]int16, 4)
	f, err := New([]int16{1, 1, 1, 1}, delay, 4)
	require.NoError(t, err)

	f.Process(100)
	f.Process(200)
	f.Reset()

	assert.Equal(t, 0, f.Cursor())
	assert.Equal(t, []int16{0, 0, 0, 0}, delay)
	assert.Equal(t, int16(3), f.Process(3))
}

// TestCoefficientsAreBound verifies that coefficients written after Init are
// picked up on the next sample, the order used by the demo harness.
func TestCoefficientsAreBound(t *testing.T) {
	coeffs := make([]int16, 3)
	f, err := New(coeffs, make([]int16, 3), 3)
	require.NoError(t, err)

	assert.Zero(t, f.Process(10))
	copy(coeffs, []int16{2, 0, 0})
	assert.Equal(t, int16(20), f.Process(10))
}

// TestProcess_UsesBackendMAC verifies that Process accumulates through the
// selected backend, one MAC per tap.
func TestProcess_UsesBackendMAC(t *testing.T) {
	var calls int
	counting := &q15.Ops{
		Name: "counting",
		MAC: func(acc int32, a, b int16) int32 {
			calls++
			return q15.MAC(acc, a, b)
		},
		DotReverse: q15.Portable().DotReverse,
	}

	coeffs := []int16{1, 2, 3, 4, 5}
	f, err := New(coeffs, make([]int16, len(coeffs)), len(coeffs), WithOps(counting))
	require.NoError(t, err)

	assert.Equal(t, int16(10), f.Process(10))
	assert.Equal(t, len(coeffs), calls)

	assert.Equal(t, int16(20), f.Process(0))
	assert.Equal(t, 2*len(coeffs), calls)
}

func BenchmarkProcess(b *testing.B) {
	const taps = 64
	rng := rand.New(rand.NewSource(testSeed))
	f, err := New(randomCoeffs(rng, taps), make([]int16, taps), taps)
	require.NoError(b, err)

	b.ReportAllocs()
	for i := range b.N {
		_ = f.Process(int16(i))
	}
}

func BenchmarkProcessBlock(b *testing.B) {
	const (
		taps  = 64
		block = 1024
	)
	rng := rand.New(rand.NewSource(testSeed))
	f, err := New(randomCoeffs(rng, taps), make([]int16, taps), taps)
	require.NoError(b, err)
	src := testutil.Noise16(rng, block, q15.MaxValue)
	dst := make([]int16, block)

	b.ReportAllocs()
	for range b.N {
		f.ProcessBlock(dst, src)
	}
}

// TestOutputShift verifies the Q15 rescale applies to both processing paths.
func TestOutputShift(t *testing.T) {
	const taps = 3
	coeffs := []int16{16384, 16384, 0} // 0.5, 0.5

	f, err := New(coeffs, make([]int16, taps), taps, WithOutputShift(q15.FracBits))
	require.NoError(t, err)

	// (0.5 + 0.5) of 20000 is 20000; the first output sees one sample.
	assert.Equal(t, int16(10000), f.Process(20000))
	assert.Equal(t, int16(20000), f.Process(20000))
	assert.Equal(t, int16(-5000), f.Process(-30000))

	g, err := New(coeffs, make([]int16, taps), taps, WithOutputShift(q15.FracBits))
	require.NoError(t, err)
	dst := make([]int16, 3)
	g.ProcessBlock(dst, []int16{20000, 20000, -30000})
	assert.Equal(t, []int16{10000, 20000, -5000}, dst)

	// Re-initializing without the option restores the raw accumulator.
	require.NoError(t, f.Init(coeffs, make([]int16, taps), taps))
	assert.Equal(t, int16(q15.MaxValue), f.Process(2))
}
