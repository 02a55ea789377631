package audio

import (
	"os"
	"strconv"
	"time"

	"github.com/jigardave8/8dSongs/parameter"
)

// Config holds playback engine settings
type Config struct {
	SampleRate     int
	BufferDuration time.Duration

	// Initial rotation settings, clamped on use
	RotationSpeed float64
	RoomSize      float64
}

// DefaultConfig returns the standard engine configuration
func DefaultConfig() *Config {
	return &Config{
		SampleRate:     parameter.AudioSampleRate,
		BufferDuration: parameter.AudioBufferDuration,
		RotationSpeed:  parameter.DefaultRotationSpeed,
		RoomSize:       parameter.DefaultRoomSize,
	}
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	cfg := DefaultConfig()

	if rate := os.Getenv("EIGHTD_SAMPLE_RATE"); rate != "" {
		if val, err := strconv.Atoi(rate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	if buf := os.Getenv("EIGHTD_BUFFER_MS"); buf != "" {
		if val, err := strconv.Atoi(buf); err == nil && val > 0 {
			cfg.BufferDuration = time.Duration(val) * time.Millisecond
		}
	}

	if speed := os.Getenv("EIGHTD_ROTATION_SPEED"); speed != "" {
		if val, err := strconv.ParseFloat(speed, 64); err == nil {
			cfg.RotationSpeed = val
		}
	}

	if room := os.Getenv("EIGHTD_ROOM_SIZE"); room != "" {
		if val, err := strconv.ParseFloat(room, 64); err == nil {
			cfg.RoomSize = val
		}
	}

	return cfg
}
