package spatial

import (
	"math"
	"testing"
)

// TestMapAtOrigin verifies the mapped values at angle 0
func TestMapAtOrigin(t *testing.T) {
	cfg := NewConfig()
	s := State{Angle: 0, Elevation: 0, Distance: 1}

	p := Map(s, cfg)

	if p.Pan != 1.0 {
		t.Errorf("Expected pan 1.0 at angle 0, got %v", p.Pan)
	}
	if p.Gain != 5.0 {
		t.Errorf("Expected gain 5.0 at angle 0, got %v", p.Gain)
	}
	if math.Abs(p.DelayTime-0.025) > 1e-12 {
		t.Errorf("Expected delay time 0.025, got %v", p.DelayTime)
	}
}

// TestMapAtQuarterOrbit verifies the scenario at angle π/2
func TestMapAtQuarterOrbit(t *testing.T) {
	cfg := NewConfig()
	s := State{Angle: math.Pi / 2, Elevation: 0, Distance: 1}

	p := Map(s, cfg)

	if math.Abs(p.Pan) > 1e-9 {
		t.Errorf("Expected pan ~0 at angle π/2, got %v", p.Pan)
	}
	if math.Abs(p.DelayTime-0.02) > 1e-9 {
		t.Errorf("Expected delay time ~0.02 at angle π/2, got %v", p.DelayTime)
	}
}

// TestMapPanRange verifies pan stays in [-1, 1] for any angle
func TestMapPanRange(t *testing.T) {
	cfg := NewConfig()

	for angle := -10.0; angle <= 10.0; angle += 0.001 {
		p := Map(State{Angle: angle, Distance: 1}, cfg)
		if p.Pan < -1 || p.Pan > 1 {
			t.Fatalf("Pan %v out of [-1, 1] at angle %v", p.Pan, angle)
		}
	}
}

// TestMapGainNonNegative verifies gain never goes below zero
func TestMapGainNonNegative(t *testing.T) {
	cfg := NewConfig()

	for angle := 0.0; angle < 2*math.Pi; angle += 0.01 {
		for elev := -0.5; elev <= 0.5; elev += 0.05 {
			p := Map(State{Angle: angle, Elevation: elev, Distance: 1}, cfg)
			if p.Gain < 0 {
				t.Fatalf("Gain %v negative at angle %v elevation %v", p.Gain, angle, elev)
			}
		}
	}
}

// TestMapReverbMixRange verifies the wet mix stays in [20, 35]
func TestMapReverbMixRange(t *testing.T) {
	cfg := NewConfig()

	for angle := 0.0; angle < 8*math.Pi; angle += 0.01 {
		p := Map(State{Angle: angle, Distance: 1}, cfg)
		if p.ReverbMix < 20 || p.ReverbMix > 35 {
			t.Fatalf("Reverb mix %v out of [20, 35] at angle %v", p.ReverbMix, angle)
		}
	}
}

// TestMapDeterministic verifies identical input produces identical output
func TestMapDeterministic(t *testing.T) {
	cfg := NewConfig()
	cfg.SetRoomSize(0.7)
	s := State{Angle: 1.234, Elevation: 0.3, Distance: 1}

	first := Map(s, cfg)
	for i := 0; i < 100; i++ {
		if got := Map(s, cfg); got != first {
			t.Fatalf("Map not deterministic: %+v != %+v", got, first)
		}
	}
}

// TestMapRoomPassthrough verifies the configured room size reaches the output
func TestMapRoomPassthrough(t *testing.T) {
	cfg := NewConfig()
	cfg.SetRoomSize(0.8)

	p := Map(NewState(), cfg)
	if p.Room != 0.8 {
		t.Errorf("Expected room 0.8, got %v", p.Room)
	}
}
