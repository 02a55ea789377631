package spatial

import (
	"math"

	"github.com/jigardave8/8dSongs/parameter"
)

// Params is one tick's worth of effect control values. Every field is
// clamped to the range the effect chain accepts before being handed over.
type Params struct {
	Pan       float64 // stereo balance, -1 full left .. +1 full right
	Gain      float64 // distance attenuation factor, >= 0
	ReverbMix float64 // wet percentage, [20, 35]
	DelayTime float64 // seconds, >= 0
	Room      float64 // reverb room scalar, [0, 1]
}

// Map projects the kinematic state onto effect parameters. Deterministic
// pure computation: identical state and config produce identical output.
func Map(s State, cfg *Config) Params {
	x := math.Cos(s.Angle) * s.Distance
	z := math.Sin(s.Elevation) * s.Distance

	pan := math.Cos(s.Angle)
	if s.Distance != 0 {
		pan = x / s.Distance
	}
	pan = clamp(pan, -1, 1)

	gain := parameter.BaseGain - math.Abs(z)*parameter.ZAttenuation
	if gain < 0 {
		gain = 0
	}

	roomSim := 0.3 + math.Abs(math.Sin(s.Angle*parameter.RoomSimFactor))*0.3
	mix := clamp(parameter.ReverbMixFloor+roomSim*parameter.ReverbMixScale,
		parameter.ReverbMixFloor, parameter.ReverbMixCeil)

	delay := parameter.BaseDelayTime + math.Abs(x)*parameter.DelayPanFactor
	if delay < 0 {
		delay = 0
	}

	return Params{
		Pan:       pan,
		Gain:      gain,
		ReverbMix: mix,
		DelayTime: delay,
		Room:      cfg.RoomSize(),
	}
}
