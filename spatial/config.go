package spatial

import (
	"math"
	"sync/atomic"

	"github.com/jigardave8/8dSongs/parameter"
)

// Config holds the user-tunable rotation parameters. Setters clamp silently
// and stores are atomic so the tick goroutine always reads a consistent value
// written from any other goroutine (last writer wins).
type Config struct {
	speed    atomic.Uint64 // float64 bits
	roomSize atomic.Uint64 // float64 bits
}

// NewConfig creates a config with default speed and room size
func NewConfig() *Config {
	c := &Config{}
	c.SetSpeed(parameter.DefaultRotationSpeed)
	c.SetRoomSize(parameter.DefaultRoomSize)
	return c
}

// SetSpeed stores the angular speed multiplier, saturated to [0.2, 2.0]
func (c *Config) SetSpeed(v float64) {
	v = clamp(v, parameter.MinRotationSpeed, parameter.MaxRotationSpeed)
	c.speed.Store(math.Float64bits(v))
}

// Speed returns the clamped angular speed multiplier
func (c *Config) Speed() float64 {
	return math.Float64frombits(c.speed.Load())
}

// SetRoomSize stores the reverb room scalar, saturated to [0, 1]
func (c *Config) SetRoomSize(v float64) {
	v = clamp(v, parameter.MinRoomSize, parameter.MaxRoomSize)
	c.roomSize.Store(math.Float64bits(v))
}

// RoomSize returns the clamped room scalar
func (c *Config) RoomSize() float64 {
	return math.Float64frombits(c.roomSize.Load())
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
