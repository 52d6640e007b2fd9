package pipeline

// BlockBuffer accumulates streamed samples into fixed-size blocks for the
// FFT path. Once Full, the block must be consumed and Reset before more
// samples are accepted.
//
// A BlockBuffer is not safe for concurrent use.
type BlockBuffer struct {
	data     []int16
	capacity int
	size     int
}

// NewBlockBuffer creates a buffer holding blocks of blockSize samples.
// Sizes below one are raised to one.
func NewBlockBuffer(blockSize int) *BlockBuffer {
	if blockSize < minBlockSize {
		blockSize = minBlockSize
	}

	return &BlockBuffer{
		data:     make([]int16, blockSize),
		capacity: blockSize,
	}
}

// Write copies as many samples as fit into the current block and returns
// the number consumed. It returns zero when the block is already full.
func (b *BlockBuffer) Write(samples []int16) int {
	n := copy(b.data[b.size:], samples)
	b.size += n
	return n
}

// Full reports whether a complete block is ready.
func (b *BlockBuffer) Full() bool {
	return b.size == b.capacity
}

// Block returns the completed block, or nil while it is still filling.
// The returned slice aliases the buffer and is overwritten after Reset.
func (b *BlockBuffer) Block() []int16 {
	if !b.Full() {
		return nil
	}
	return b.data
}

// Available returns the number of samples in the current block.
func (b *BlockBuffer) Available() int {
	return b.size
}

// Space returns how many more samples the current block accepts.
func (b *BlockBuffer) Space() int {
	return b.capacity - b.size
}

// Capacity returns the block size.
func (b *BlockBuffer) Capacity() int {
	return b.capacity
}

// Reset discards the current block.
func (b *BlockBuffer) Reset() {
	b.size = 0
}
