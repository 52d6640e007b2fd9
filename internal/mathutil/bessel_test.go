package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const relativeTolerance = 1e-9

// TestBesselI0 tests BesselI0 against tabulated values.
func TestBesselI0(t *testing.T) {
	tests := []struct {
		name     string
		x        float64
		expected float64
	}{
		{"zero", 0.0, 1.0},
		{"half", 0.5, 1.0634833707413236},
		{"one", 1.0, 1.2660658777520082},
		{"two", 2.0, 2.2795853023360673},
		{"five", 5.0, 27.239871823604442},
		{"ten", 10.0, 2815.716628466254},
		{"negative_one", -1.0, 1.2660658777520082},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BesselI0(tt.x)
			assert.InEpsilon(t, tt.expected, got, relativeTolerance)
		})
	}
}

// TestBesselI0_Monotonic tests I₀(x) is increasing for x > 0.
func TestBesselI0_Monotonic(t *testing.T) {
	prev := BesselI0(0)
	for x := 0.25; x <= 20; x += 0.25 {
		cur := BesselI0(x)
		assert.Greater(t, cur, prev, "x=%v", x)
		prev = cur
	}
}

func TestKaiserBeta(t *testing.T) {
	tests := []struct {
		name        string
		attenuation float64
		expected    float64
	}{
		{"below_21dB", 10, 0},
		{"at_21dB", 21, 0},
		{"40dB", 40, 0.5842*math.Pow(19, 0.4) + 0.07886*19},
		{"60dB", 60, 0.1102 * (60 - 8.7)},
		{"100dB", 100, 0.1102 * (100 - 8.7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, KaiserBeta(tt.attenuation), 1e-12)
		})
	}
}
