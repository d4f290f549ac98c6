package engine

import (
	"math/rand"
	"time"

	"github.com/ESikich/TopDownRPG/pkg/dungeon"
)

// Config holds the parameters of one game instance. The seed drives every
// random draw of the run: generation, AI wander, attack and damage rolls.
type Config struct {
	Seed int64

	MapWidth  int
	MapHeight int

	Gen dungeon.Params

	MonstersPerFloor int
}

// Reseeded returns a copy with a fresh seed and every other parameter
// unchanged. A restarted run must not replay the previous dungeon.
func (c Config) Reseeded() Config {
	c.Seed = rand.Int63()
	return c
}

// NewConfig returns the default configuration with a time-based seed.
func NewConfig() Config {
	return Config{
		Seed:             time.Now().UnixNano(),
		MapWidth:         40,
		MapHeight:        25,
		Gen:              dungeon.DefaultParams(),
		MonstersPerFloor: 3,
	}
}
