package audio

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// fakeSeeker is an in-memory seekable stream for transport tests
type fakeSeeker struct {
	silenceStreamer
	length  int
	pos     int
	seeks   int
	seekErr error
}

func (f *fakeSeeker) Len() int      { return f.length }
func (f *fakeSeeker) Position() int { return f.pos }
func (f *fakeSeeker) Close() error  { return nil }

func (f *fakeSeeker) Seek(p int) error {
	f.seeks++
	if f.seekErr != nil {
		return f.seekErr
	}
	f.pos = p
	return nil
}

// newSeekerPlayer wires a player around a fake stream without touching
// the speaker
func newSeekerPlayer(fs *fakeSeeker) *Player {
	p := NewPlayer()
	sr := beep.SampleRate(48000)
	p.track = &Track{
		Streamer: fs,
		Format:   beep.Format{SampleRate: sr, NumChannels: 2, Precision: 2},
		Name:     "fake",
	}
	p.chain = NewChain(fs, sr)
	p.loaded.Store(true)
	return p
}

// TestPlayerSpeedClamps verifies the transport speed setter saturates
func TestPlayerSpeedClamps(t *testing.T) {
	p := NewPlayer()
	defer p.Close()

	p.SetRotationSpeed(5.0)
	if got := p.RotationSpeed(); got != 2.0 {
		t.Errorf("Expected speed clamped to 2.0, got %v", got)
	}

	p.SetRotationSpeed(-1.0)
	if got := p.RotationSpeed(); got != 0.2 {
		t.Errorf("Expected speed clamped to 0.2, got %v", got)
	}
}

// TestPlayerRoomSizeClamps verifies the room setter saturates
func TestPlayerRoomSizeClamps(t *testing.T) {
	p := NewPlayer()
	defer p.Close()

	p.SetRoomSize(2.0)
	if got := p.RoomSize(); got != 1.0 {
		t.Errorf("Expected room clamped to 1.0, got %v", got)
	}

	p.SetRoomSize(-0.5)
	if got := p.RoomSize(); got != 0.0 {
		t.Errorf("Expected room clamped to 0.0, got %v", got)
	}
}

// TestPlayerConfigSeedsRotation verifies config values flow through clamped
func TestPlayerConfigSeedsRotation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RotationSpeed = 9.0
	cfg.RoomSize = -1.0

	p := NewPlayer(cfg)
	defer p.Close()

	if got := p.RotationSpeed(); got != 2.0 {
		t.Errorf("Expected seeded speed clamped to 2.0, got %v", got)
	}
	if got := p.RoomSize(); got != 0.0 {
		t.Errorf("Expected seeded room clamped to 0.0, got %v", got)
	}
}

// TestPlayerLoadFailure verifies a bad source leaves the session not-loaded
func TestPlayerLoadFailure(t *testing.T) {
	p := NewPlayer()
	defer p.Close()

	err := p.Load(filepath.Join(t.TempDir(), "missing.mp3"))
	if err == nil {
		t.Fatal("Expected load of missing file to fail")
	}

	if p.IsLoaded() {
		t.Error("Expected IsLoaded false after failed load")
	}
	if p.Duration() != 0 {
		t.Errorf("Expected zero duration after failed load, got %v", p.Duration())
	}
	if p.Position() != 0 {
		t.Errorf("Expected zero position after failed load, got %v", p.Position())
	}
	if p.ClockRunning() {
		t.Error("Expected rotation clock stopped after failed load")
	}
}

// TestPlayerTransportNoopWhenNotLoaded verifies transport calls are safe
// before any source is loaded
func TestPlayerTransportNoopWhenNotLoaded(t *testing.T) {
	p := NewPlayer()
	defer p.Close()

	p.Play()
	p.Pause()
	p.Stop()
	if err := p.Seek(0); err != nil {
		t.Errorf("Expected Seek to be a no-op, got %v", err)
	}

	if p.IsPlaying() {
		t.Error("Expected not playing with no track")
	}
	if p.ClockRunning() {
		t.Error("Expected clock stopped with no track")
	}
	if p.TrackName() != "" {
		t.Error("Expected empty track name with no track")
	}
}

// TestPlayerStopRewindsTrack verifies Stop seeks the stream back to zero
func TestPlayerStopRewindsTrack(t *testing.T) {
	fs := &fakeSeeker{length: 48000, pos: 24000}
	p := newSeekerPlayer(fs)
	defer p.Close()

	p.Stop()

	if fs.seeks != 1 {
		t.Errorf("Expected one rewind seek, got %d", fs.seeks)
	}
	if fs.pos != 0 {
		t.Errorf("Expected position rewound to 0, got %d", fs.pos)
	}
	if p.IsPlaying() {
		t.Error("Expected not playing after Stop")
	}
	if p.ClockRunning() {
		t.Error("Expected clock stopped after Stop")
	}
}

// TestPlayerStopSurvivesSeekFailure verifies a failed rewind leaves the
// session loaded and paused instead of wedging transport
func TestPlayerStopSurvivesSeekFailure(t *testing.T) {
	fs := &fakeSeeker{length: 48000, pos: 24000, seekErr: errors.New("stream gone")}
	p := newSeekerPlayer(fs)
	defer p.Close()

	p.Stop()

	if fs.seeks != 1 {
		t.Errorf("Expected the rewind to be attempted, got %d seeks", fs.seeks)
	}
	if !p.IsLoaded() {
		t.Error("Expected session to stay loaded after failed rewind")
	}
	if p.IsPlaying() {
		t.Error("Expected not playing after Stop")
	}
}

// TestPlayerSeekSurfacesError verifies Seek reports stream failures
func TestPlayerSeekSurfacesError(t *testing.T) {
	seekErr := errors.New("stream gone")
	fs := &fakeSeeker{length: 48000, seekErr: seekErr}
	p := newSeekerPlayer(fs)
	defer p.Close()

	err := p.Seek(100 * time.Millisecond)
	if !errors.Is(err, seekErr) {
		t.Errorf("Expected seek error surfaced, got %v", err)
	}
}

// TestPlayerSeekClampsToBounds verifies out-of-range targets saturate
func TestPlayerSeekClampsToBounds(t *testing.T) {
	fs := &fakeSeeker{length: 48000}
	p := newSeekerPlayer(fs)
	defer p.Close()

	if err := p.Seek(10 * time.Second); err != nil {
		t.Fatalf("Expected clamped seek to succeed, got %v", err)
	}
	if fs.pos != fs.length {
		t.Errorf("Expected seek clamped to %d, got %d", fs.length, fs.pos)
	}

	if err := p.Seek(-time.Second); err != nil {
		t.Fatalf("Expected clamped seek to succeed, got %v", err)
	}
	if fs.pos != 0 {
		t.Errorf("Expected seek clamped to 0, got %d", fs.pos)
	}
}

// TestPlayerParamsZeroBeforeTick verifies the zero value before any tick
func TestPlayerParamsZeroBeforeTick(t *testing.T) {
	p := NewPlayer()
	defer p.Close()

	params := p.Params()
	if params.Pan != 0 || params.Gain != 0 {
		t.Errorf("Expected zero params before first tick, got %+v", params)
	}
}
