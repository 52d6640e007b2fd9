package pipeline

const (
	// latencyDivisor gives the group delay of a linear-phase section,
	// (taps-1)/2 samples.
	latencyDivisor = 2

	// Initial capacity for the stages slice.
	defaultStageCapacity = 4

	// minBlockSize is the smallest block a BlockBuffer accumulates.
	minBlockSize = 1
)
