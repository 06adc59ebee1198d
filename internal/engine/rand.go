package engine

import "math/rand/v2"

// RandSource provides the random draws behind the capacity rule and the AI
// policy. Tests inject a fixed sequence.
type RandSource interface {
	// Float64 returns a number in [0.0, 1.0).
	Float64() float64
}

type globalRandSource struct{}

func (globalRandSource) Float64() float64 { return rand.Float64() }

var defaultRandSource RandSource = globalRandSource{}

// NewRandSource returns a deterministic source for seed.
func NewRandSource(seed uint64) RandSource {
	return rand.New(rand.NewPCG(seed, seed^0x5851f42d4c957f2d))
}

// DefaultRandSource returns the process-wide source.
func DefaultRandSource() RandSource { return defaultRandSource }
