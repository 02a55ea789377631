package spatial

import (
	"math"

	"github.com/jigardave8/8dSongs/parameter"
)

// State is the kinematic state of the virtual sound source. It is created
// when a source loads and mutated only by the rotation tick; no other
// goroutine may write to it.
type State struct {
	Angle     float64 // orbital bearing in radians, kept in [0, 2π)
	Elevation float64 // vertical offset, [-ElevationAmplitude, ElevationAmplitude]
	Distance  float64 // orbit radius
}

// NewState returns the initial state for a freshly loaded source
func NewState() State {
	return State{Distance: parameter.DefaultOrbitDistance}
}

// Advance moves the source one tick along its orbit. The angle wraps
// cleanly into [0, 2π); elevation is re-derived from the new angle.
// Pure arithmetic, never fails.
func (s *State) Advance(cfg *Config) {
	s.Angle += parameter.BaseAngularStep * cfg.Speed()
	s.Angle = math.Mod(s.Angle, 2*math.Pi)
	if s.Angle < 0 {
		s.Angle += 2 * math.Pi
	}
	s.Elevation = math.Sin(s.Angle*parameter.ElevationFactor) * parameter.ElevationAmplitude
}
