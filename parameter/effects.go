package parameter

// Distance Attenuation
const (
	// BaseGain is the attenuation factor at zero elevation
	BaseGain = 5.0

	// ZAttenuation reduces gain as the source moves off the horizontal plane
	ZAttenuation = 0.2
)

// Reverb Mix Mapping
const (
	// RoomSimFactor slows the room-simulation sweep relative to the orbit
	RoomSimFactor = 0.25

	// ReverbMixFloor and ReverbMixCeil bound the wet percentage
	ReverbMixFloor = 20.0
	ReverbMixCeil  = 35.0

	// ReverbMixScale converts the room-simulation term to wet percent
	ReverbMixScale = 15.0
)

// Delay Mapping
const (
	// BaseDelayTime in seconds, before the pan-coupled offset
	BaseDelayTime = 0.020

	// DelayPanFactor widens the delay as the source moves laterally
	DelayPanFactor = 0.005

	// MaxDelayTime bounds the delay ring buffer
	MaxDelayTime = 0.100

	// DelayFeedback and DelayMix are fixed stage tunings
	DelayFeedback = 0.25
	DelayMix      = 0.30
)

// Distortion Stage
const (
	DistortionDrive = 1.5
	DistortionMix   = 0.15
)

// Reverb Stage
const (
	// ReverbCombBase* are comb filter delays in seconds at room size 0
	ReverbCombBase1 = 0.0297
	ReverbCombBase2 = 0.0371
	ReverbCombBase3 = 0.0411
	ReverbCombBase4 = 0.0437

	// ReverbAllpass* are the series allpass delays in seconds
	ReverbAllpass1 = 0.0050
	ReverbAllpass2 = 0.0017

	// ReverbAllpassGain is the allpass diffusion coefficient
	ReverbAllpassGain = 0.5

	// ReverbFeedbackBase and ReverbFeedbackRoom set comb feedback:
	// feedback = base + room * roomScale, capped below 1.0
	ReverbFeedbackBase = 0.70
	ReverbFeedbackRoom = 0.26
	ReverbFeedbackMax  = 0.97
)

// Equalizer Stage (fixed three-band tone shaping)
const (
	EQLowShelfFreq = 120.0
	EQLowShelfGain = 2.0 // dB

	EQPeakFreq = 1200.0
	EQPeakGain = -1.5 // dB
	EQPeakQ    = 0.9

	EQHighShelfFreq = 8000.0
	EQHighShelfGain = 1.5 // dB

	EQShelfSlope = 0.9
)
