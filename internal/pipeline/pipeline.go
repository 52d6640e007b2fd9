// Package pipeline chains streaming Q15 filter sections and accumulates
// their output into blocks sized for the FFT engine.
package pipeline

import (
	"errors"
	"fmt"
)

// ErrNoStages indicates a chain built without any stage.
var ErrNoStages = errors.New("pipeline: chain needs at least one stage")

// Stage is one streaming filter section of a Chain.
// *fir.Filter satisfies it.
type Stage interface {
	// ProcessBlock filters src into dst and returns the number of samples
	// written. dst and src may be the same slice.
	ProcessBlock(dst, src []int16) int

	// Reset clears the section's history.
	Reset()

	// Taps returns the section length.
	Taps() int
}

// Chain runs samples through its stages in order.
//
// Intermediate results ping-pong between the destination slice and an
// internal scratch buffer that grows to the largest block seen, so steady
// state processing does not allocate.
type Chain struct {
	stages  []Stage
	scratch []int16
	latency int
}

// NewChain creates a chain of the given stages, first stage first.
func NewChain(stages ...Stage) (*Chain, error) {
	if len(stages) == 0 {
		return nil, ErrNoStages
	}

	c := &Chain{stages: make([]Stage, 0, max(len(stages), defaultStageCapacity))}
	for i, s := range stages {
		if s == nil {
			return nil, fmt.Errorf("pipeline: stage %d is nil", i)
		}
		c.stages = append(c.stages, s)
	}
	c.calculateLatency()

	return c, nil
}

// Process filters src through every stage into dst and returns the number
// of samples written, min(len(dst), len(src)).
func (c *Chain) Process(dst, src []int16) int {
	n := min(len(dst), len(src))
	if n == 0 {
		return 0
	}
	if cap(c.scratch) < n {
		c.scratch = make([]int16, n)
	}

	last := len(c.stages) - 1
	in := src[:n]
	for i, s := range c.stages {
		// The last stage always lands in dst.
		out := dst[:n]
		if (last-i)%2 == 1 {
			out = c.scratch[:n]
		}
		s.ProcessBlock(out, in)
		in = out
	}

	return n
}

// Reset clears every stage.
func (c *Chain) Reset() {
	for _, s := range c.stages {
		s.Reset()
	}
}

// Stages returns the number of stages.
func (c *Chain) Stages() int {
	return len(c.stages)
}

// Latency returns the group delay of the chain in samples, assuming
// linear-phase stages.
func (c *Chain) Latency() int {
	return c.latency
}

// calculateLatency sums the group delay of every stage.
func (c *Chain) calculateLatency() {
	total := 0
	for _, s := range c.stages {
		total += (s.Taps() - 1) / latencyDivisor
	}
	c.latency = total
}
