package core

import (
	"math/rand"
	"time"
)

// MaxLevel is the number of difficulty levels of every game. A game at
// level L moves once every MaxLevel-L frames, so MaxLevel is also the
// default frame rate.
const MaxLevel = 20

// RuntimeConfig contains what a driver needs to run games.
type RuntimeConfig struct {
	TickRate int   // Frames per second (default MaxLevel)
	Seed     int64 // RNG seed; 0 means seed from the clock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		TickRate: MaxLevel,
	}
}

// Rand returns the generator games draw pieces and spawn points from.
func (c RuntimeConfig) Rand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
