package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 48000
	AudioChannels   = 2
)

// Audio Engine Timing
const (
	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond

	// ResampleQuality for sources not at the output rate
	ResampleQuality = 4
)

// Source Loading
const (
	// FetchTimeout bounds remote source downloads
	FetchTimeout = 30 * time.Second
)
