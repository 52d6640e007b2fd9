package q15

import (
	"runtime"

	"github.com/tphakala/simd/cpu"
	xcpu "golang.org/x/sys/cpu"
)

// Ops is the multiply-accumulate backend used by the filter engines.
//
// Every backend must produce bit-identical results. Accumulation is
// wrapping int32 addition, which is associative, so grouping taps into
// several partial accumulators does not change the sum.
type Ops struct {
	// Name identifies the backend in diagnostics.
	Name string

	// MAC computes acc + a*b. It is the per-tap primitive of FIR Process.
	MAC func(acc int32, a, b int16) int32

	// DotReverse computes Σ coeffs[i] * samples[n-1-i] for i in [0, n).
	// coeffs and samples must have the same length n.
	DotReverse func(coeffs, samples []int16) int32
}

var (
	portableOps = Ops{
		Name:       "portable",
		MAC:        MAC,
		DotReverse: dotReversePortable,
	}
	unrolledOps = Ops{
		Name:       "unrolled4",
		MAC:        MAC,
		DotReverse: dotReverseUnrolled,
	}

	defaultOps = selectOps()
)

// Portable returns the scalar backend, one MAC per tap.
func Portable() *Ops {
	return &portableOps
}

// Unrolled returns the grouped backend that accumulates four taps per
// iteration into independent accumulators.
func Unrolled() *Ops {
	return &unrolledOps
}

// Default returns the backend selected for the running CPU.
// The selection happens once at package initialization, not in hot paths.
func Default() *Ops {
	return defaultOps
}

// Describe reports the selected backend together with the SIMD capability
// string of the host.
func Describe() string {
	return defaultOps.Name + " (" + runtime.GOARCH + ", " + cpu.Info() + ")"
}

// selectOps picks the unrolled backend when the CPU has wide integer
// vector units the compiler can schedule the independent accumulators on.
func selectOps() *Ops {
	if xcpu.X86.HasSSE2 || xcpu.ARM64.HasASIMD {
		return &unrolledOps
	}
	return &portableOps
}

func dotReversePortable(coeffs, samples []int16) int32 {
	n := len(coeffs)
	samples = samples[:n]

	var acc int32
	for i, c := range coeffs {
		acc = MAC(acc, c, samples[n-1-i])
	}
	return acc
}

func dotReverseUnrolled(coeffs, samples []int16) int32 {
	n := len(coeffs)
	samples = samples[:n]

	var acc0, acc1, acc2, acc3 int32
	i := 0
	for ; i+unrollWidth <= n; i += unrollWidth {
		j := n - 1 - i
		acc0 = MAC(acc0, coeffs[i], samples[j])
		acc1 = MAC(acc1, coeffs[i+1], samples[j-1])
		acc2 = MAC(acc2, coeffs[i+2], samples[j-2])
		acc3 = MAC(acc3, coeffs[i+3], samples[j-3])
	}

	// Remaining taps when n is not a multiple of the group width
	for ; i < n; i++ {
		acc0 = MAC(acc0, coeffs[i], samples[n-1-i])
	}

	return acc0 + acc1 + acc2 + acc3
}
