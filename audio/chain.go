package audio

import (
	"math"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/jigardave8/8dSongs/parameter"
	"github.com/jigardave8/8dSongs/spatial"
)

// Chain is the fixed effect topology for one track:
// equalizer → delay → distortion → reverb → pan → volume, wrapped in a
// Ctrl for transport pause. The topology is not configurable.
type Chain struct {
	delay  *Delay
	reverb *Reverb
	pan    *effects.Pan
	volume *effects.Volume
	ctrl   *beep.Ctrl
}

// NewChain builds the effect graph around a source streamer
func NewChain(src beep.Streamer, sr beep.SampleRate) *Chain {
	eq := NewEqualizer(src, sr)
	delay := NewDelay(eq, sr)
	dist := NewDistortion(delay)
	reverb := NewReverb(dist, sr)
	pan := &effects.Pan{Streamer: reverb, Pan: 0}
	volume := &effects.Volume{Streamer: pan, Base: 2, Volume: 0}
	ctrl := &beep.Ctrl{Streamer: volume, Paused: true}

	return &Chain{
		delay:  delay,
		reverb: reverb,
		pan:    pan,
		volume: volume,
		ctrl:   ctrl,
	}
}

// Streamer returns the chain output for the speaker mixer
func (c *Chain) Streamer() beep.Streamer {
	return c.ctrl
}

// Apply pushes one tick's mapped parameters into the graph. The caller
// must hold the speaker lock; every update is a plain field store so the
// render goroutine is never blocked for long.
func (c *Chain) Apply(p spatial.Params) {
	c.delay.SetTime(p.DelayTime)
	c.reverb.SetMix(p.ReverbMix)
	c.reverb.SetRoom(p.Room)
	c.pan.Pan = p.Pan

	// Mapper gain is a 0..BaseGain attenuation factor; unity at BaseGain
	g := p.Gain / parameter.BaseGain
	if g <= 0 {
		c.volume.Silent = true
	} else {
		c.volume.Silent = false
		c.volume.Volume = math.Log2(g)
	}
}

// SetPaused pauses or resumes transport. Caller must hold the speaker lock.
func (c *Chain) SetPaused(paused bool) {
	c.ctrl.Paused = paused
}

// Paused reports transport pause state. Caller must hold the speaker lock.
func (c *Chain) Paused() bool {
	return c.ctrl.Paused
}
