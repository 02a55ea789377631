package audio

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/jigardave8/8dSongs/engine"
	"github.com/jigardave8/8dSongs/parameter"
	"github.com/jigardave8/8dSongs/spatial"
)

// Player is the playback session: it owns the rotation clock, the kinematic
// state and the effect chain for the loaded track.
//
// The kinematic state and chain are mutated by the tick callback only;
// Load stops the clock before replacing them, so they need no lock of
// their own. Rotation continues while playback is paused; only Stop and
// teardown halt the clock.
type Player struct {
	cfg        *Config
	sampleRate beep.SampleRate

	clock *engine.RotationClock
	scfg  *spatial.Config

	mu          sync.Mutex // serializes transport operations
	track       *Track
	chain       *Chain
	state       spatial.State
	mixer       *beep.Mixer
	initialized bool

	loaded     atomic.Bool
	playing    atomic.Bool
	lastParams atomic.Pointer[spatial.Params]
}

// NewPlayer creates a player
func NewPlayer(cfg ...*Config) *Player {
	config := DefaultConfig()
	if len(cfg) > 0 && cfg[0] != nil {
		config = cfg[0]
	}

	scfg := spatial.NewConfig()
	scfg.SetSpeed(config.RotationSpeed)
	scfg.SetRoomSize(config.RoomSize)

	return &Player{
		cfg:        config,
		sampleRate: beep.SampleRate(config.SampleRate),
		clock:      engine.NewRotationClock(parameter.RotationTickInterval, nil),
		scfg:       scfg,
		mixer:      &beep.Mixer{},
	}
}

// initializeLocked sets up the speaker once; caller holds p.mu
func (p *Player) initializeLocked() error {
	if p.initialized {
		return nil
	}
	if err := speaker.Init(p.sampleRate, p.sampleRate.N(p.cfg.BufferDuration)); err != nil {
		return fmt.Errorf("initializing speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Load opens and decodes a source, tears down the previous track, resets
// the kinematic state and starts the rotation clock. On failure the
// session is reset to not-loaded: no clock runs, times read zero, and a
// later Load may retry with a different source.
func (p *Player) Load(src string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	// Halt the tick stream before touching what it owns
	p.clock.Stop()

	track, err := LoadSource(src)
	if err != nil {
		p.teardownLocked()
		return err
	}

	if err := p.initializeLocked(); err != nil {
		track.Close()
		p.teardownLocked()
		return err
	}

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	if p.track != nil {
		p.track.Close()
	}

	streamer := beep.Streamer(track.Streamer)
	if track.Format.SampleRate != p.sampleRate {
		streamer = beep.Resample(parameter.ResampleQuality,
			track.Format.SampleRate, p.sampleRate, track.Streamer)
	}

	p.track = track
	p.chain = NewChain(streamer, p.sampleRate)
	p.state = spatial.NewState()
	p.lastParams.Store(nil)

	speaker.Lock()
	p.mixer.Add(p.chain.Streamer())
	speaker.Unlock()

	p.loaded.Store(true)
	p.playing.Store(false)
	p.clock.Start(p.tick)
	return nil
}

// teardownLocked resets the session to not-loaded; caller holds p.mu
func (p *Player) teardownLocked() {
	if p.initialized {
		speaker.Lock()
		p.mixer.Clear()
		speaker.Unlock()
	}
	if p.track != nil {
		p.track.Close()
		p.track = nil
	}
	p.chain = nil
	p.loaded.Store(false)
	p.playing.Store(false)
	p.lastParams.Store(nil)
}

// tick runs once per clock period: advance the orbit, map parameters,
// hand them to the effect chain in strict tick order
func (p *Player) tick() {
	p.state.Advance(p.scfg)
	params := spatial.Map(p.state, p.scfg)

	speaker.Lock()
	p.chain.Apply(params)
	speaker.Unlock()

	p.lastParams.Store(&params)
}

// Play resumes transport. The clock is restarted if a prior Stop halted it.
func (p *Player) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.loaded.Load() {
		return
	}

	speaker.Lock()
	p.chain.SetPaused(false)
	speaker.Unlock()

	if !p.clock.IsRunning() {
		p.clock.Start(p.tick)
	}
	p.playing.Store(true)
}

// Pause silences transport but keeps the orbit and effect modulation
// running, matching the product behavior of motion continuing while
// the sound is paused.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.loaded.Load() {
		return
	}

	speaker.Lock()
	p.chain.SetPaused(true)
	speaker.Unlock()
	p.playing.Store(false)
}

// Stop pauses transport, rewinds to the start and halts the clock
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.clock.Stop()

	if !p.loaded.Load() {
		return
	}

	speaker.Lock()
	p.chain.SetPaused(true)
	err := p.track.Streamer.Seek(0)
	speaker.Unlock()
	if err != nil {
		log.Printf("Rewind failed for %s: %v", p.track.Name, err)
	}
	p.playing.Store(false)
}

// Seek moves the transport position, saturated to the track bounds
func (p *Player) Seek(pos time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.loaded.Load() {
		return nil
	}

	n := p.track.Format.SampleRate.N(pos)
	if n < 0 {
		n = 0
	}
	if max := p.track.Streamer.Len(); n > max {
		n = max
	}

	speaker.Lock()
	err := p.track.Streamer.Seek(n)
	speaker.Unlock()
	if err != nil {
		return fmt.Errorf("seeking: %w", err)
	}
	return nil
}

// SetRotationSpeed sets the orbital speed multiplier, clamped to [0.2, 2.0]
func (p *Player) SetRotationSpeed(v float64) {
	p.scfg.SetSpeed(v)
}

// RotationSpeed returns the effective orbital speed multiplier
func (p *Player) RotationSpeed() float64 {
	return p.scfg.Speed()
}

// SetRoomSize sets the reverb room scalar, clamped to [0, 1]
func (p *Player) SetRoomSize(v float64) {
	p.scfg.SetRoomSize(v)
}

// RoomSize returns the effective room scalar
func (p *Player) RoomSize() float64 {
	return p.scfg.RoomSize()
}

// Position returns the current transport position, zero when not loaded
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.loaded.Load() {
		return 0
	}
	speaker.Lock()
	n := p.track.Streamer.Position()
	speaker.Unlock()
	return p.track.Format.SampleRate.D(n)
}

// Duration returns the total track length, zero when not loaded
func (p *Player) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.loaded.Load() {
		return 0
	}
	return p.track.Duration()
}

// TrackName returns the loaded track's display name
func (p *Player) TrackName() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.track == nil {
		return ""
	}
	return p.track.Name
}

// IsLoaded reports whether a track is loaded
func (p *Player) IsLoaded() bool {
	return p.loaded.Load()
}

// IsPlaying reports whether transport is running
func (p *Player) IsPlaying() bool {
	return p.playing.Load()
}

// ClockRunning reports whether the rotation clock is active
func (p *Player) ClockRunning() bool {
	return p.clock.IsRunning()
}

// Params returns the most recently mapped effect parameters, or the
// zero value before the first tick
func (p *Player) Params() spatial.Params {
	if params := p.lastParams.Load(); params != nil {
		return *params
	}
	return spatial.Params{}
}

// Close tears the session down
func (p *Player) Close() {
	p.clock.Stop()

	p.mu.Lock()
	defer p.mu.Unlock()
	p.teardownLocked()
}
