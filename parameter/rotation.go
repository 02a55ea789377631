package parameter

import "time"

// Rotation Clock Timing
const (
	// RotationTickInterval drives the orbit update at ~60 Hz
	RotationTickInterval = 16 * time.Millisecond
)

// Orbit Kinematics
const (
	// BaseAngularStep is the per-tick angle increment at speed 1.0
	// One full orbit takes roughly 50s at the default speed
	BaseAngularStep = 0.002

	// ElevationFactor couples the vertical oscillation to the orbital angle
	ElevationFactor = 0.4

	// ElevationAmplitude bounds elevation to [-0.5, 0.5]
	ElevationAmplitude = 0.5

	// DefaultOrbitDistance is the nominal orbit radius
	DefaultOrbitDistance = 1.0
)

// Rotation Speed Limits
const (
	MinRotationSpeed     = 0.2
	MaxRotationSpeed     = 2.0
	DefaultRotationSpeed = 1.0
)

// Room Size Limits
const (
	MinRoomSize     = 0.0
	MaxRoomSize     = 1.0
	DefaultRoomSize = 0.5
)
