package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"

	"github.com/jigardave8/8dSongs/parameter"
)

// delaySmoothing is the per-sample one-pole coefficient for delay time
// changes; keeps tick-rate parameter updates from producing zipper noise
const delaySmoothing = 0.0005

// biquad is a two-pole two-zero filter section with per-channel state
type biquad struct {
	b0, b1, b2, a1, a2 float64
	x1, x2, y1, y2     [2]float64
}

func (f *biquad) process(ch int, x float64) float64 {
	y := f.b0*x + f.b1*f.x1[ch] + f.b2*f.x2[ch] - f.a1*f.y1[ch] - f.a2*f.y2[ch]
	f.x2[ch] = f.x1[ch]
	f.x1[ch] = x
	f.y2[ch] = f.y1[ch]
	f.y1[ch] = y
	return y
}

// newLowShelf builds an RBJ low-shelf biquad
func newLowShelf(sr beep.SampleRate, freq, gainDB, slope float64) *biquad {
	a := math.Pow(10, gainDB/40)
	w0 := 2 * math.Pi * freq / float64(sr)
	cosw, sinw := math.Cos(w0), math.Sin(w0)
	alpha := sinw / 2 * math.Sqrt((a+1/a)*(1/slope-1)+2)
	sqA := 2 * math.Sqrt(a) * alpha

	a0 := (a + 1) + (a-1)*cosw + sqA
	return normalize(&biquad{
		b0: a * ((a + 1) - (a-1)*cosw + sqA),
		b1: 2 * a * ((a - 1) - (a+1)*cosw),
		b2: a * ((a + 1) - (a-1)*cosw - sqA),
		a1: -2 * ((a - 1) + (a+1)*cosw),
		a2: (a + 1) + (a-1)*cosw - sqA,
	}, a0)
}

// newHighShelf builds an RBJ high-shelf biquad
func newHighShelf(sr beep.SampleRate, freq, gainDB, slope float64) *biquad {
	a := math.Pow(10, gainDB/40)
	w0 := 2 * math.Pi * freq / float64(sr)
	cosw, sinw := math.Cos(w0), math.Sin(w0)
	alpha := sinw / 2 * math.Sqrt((a+1/a)*(1/slope-1)+2)
	sqA := 2 * math.Sqrt(a) * alpha

	a0 := (a + 1) - (a-1)*cosw + sqA
	return normalize(&biquad{
		b0: a * ((a + 1) + (a-1)*cosw + sqA),
		b1: -2 * a * ((a - 1) + (a+1)*cosw),
		b2: a * ((a + 1) + (a-1)*cosw - sqA),
		a1: 2 * ((a - 1) - (a+1)*cosw),
		a2: (a + 1) - (a-1)*cosw - sqA,
	}, a0)
}

// newPeaking builds an RBJ peaking biquad
func newPeaking(sr beep.SampleRate, freq, gainDB, q float64) *biquad {
	a := math.Pow(10, gainDB/40)
	w0 := 2 * math.Pi * freq / float64(sr)
	cosw, sinw := math.Cos(w0), math.Sin(w0)
	alpha := sinw / (2 * q)

	a0 := 1 + alpha/a
	return normalize(&biquad{
		b0: 1 + alpha*a,
		b1: -2 * cosw,
		b2: 1 - alpha*a,
		a1: -2 * cosw,
		a2: 1 - alpha/a,
	}, a0)
}

func normalize(f *biquad, a0 float64) *biquad {
	f.b0 /= a0
	f.b1 /= a0
	f.b2 /= a0
	f.a1 /= a0
	f.a2 /= a0
	return f
}

// Equalizer is the fixed three-band tone stage at the head of the chain
type Equalizer struct {
	s     beep.Streamer
	bands []*biquad
}

// NewEqualizer creates the tone stage with its standard tuning
func NewEqualizer(s beep.Streamer, sr beep.SampleRate) *Equalizer {
	return &Equalizer{
		s: s,
		bands: []*biquad{
			newLowShelf(sr, parameter.EQLowShelfFreq, parameter.EQLowShelfGain, parameter.EQShelfSlope),
			newPeaking(sr, parameter.EQPeakFreq, parameter.EQPeakGain, parameter.EQPeakQ),
			newHighShelf(sr, parameter.EQHighShelfFreq, parameter.EQHighShelfGain, parameter.EQShelfSlope),
		},
	}
}

func (e *Equalizer) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.s.Stream(samples)
	for i := 0; i < n; i++ {
		for ch := 0; ch < 2; ch++ {
			v := samples[i][ch]
			for _, band := range e.bands {
				v = band.process(ch, v)
			}
			samples[i][ch] = v
		}
	}
	return n, ok
}

func (e *Equalizer) Err() error { return e.s.Err() }

// Delay is a stereo ring-buffer delay line with a variable delay time.
// SetTime must be called with the speaker locked; the time change is
// smoothed per sample.
type Delay struct {
	s        beep.Streamer
	sr       beep.SampleRate
	buf      [2][]float64
	pos      int
	size     int
	current  float64 // delay in samples, smoothed
	target   float64
	feedback float64
	mix      float64
}

// NewDelay creates a delay stage sized for the maximum mapped delay time
func NewDelay(s beep.Streamer, sr beep.SampleRate) *Delay {
	size := sr.N(time.Duration(parameter.MaxDelayTime*float64(time.Second))) + 2
	d := &Delay{
		s:        s,
		sr:       sr,
		size:     size,
		feedback: parameter.DelayFeedback,
		mix:      parameter.DelayMix,
	}
	d.buf[0] = make([]float64, size)
	d.buf[1] = make([]float64, size)
	d.SetTime(parameter.BaseDelayTime)
	d.current = d.target
	return d
}

// SetTime sets the delay in seconds, saturated to [0, MaxDelayTime]
func (d *Delay) SetTime(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	if seconds > parameter.MaxDelayTime {
		seconds = parameter.MaxDelayTime
	}
	d.target = seconds * float64(d.sr)
}

func (d *Delay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.s.Stream(samples)
	for i := 0; i < n; i++ {
		d.current += (d.target - d.current) * delaySmoothing

		read := float64(d.pos) - d.current
		for read < 0 {
			read += float64(d.size)
		}
		i0 := int(read) % d.size
		i1 := (i0 + 1) % d.size
		frac := read - math.Floor(read)

		for ch := 0; ch < 2; ch++ {
			dry := samples[i][ch]
			wet := d.buf[ch][i0]*(1-frac) + d.buf[ch][i1]*frac
			d.buf[ch][d.pos] = dry + wet*d.feedback
			samples[i][ch] = dry*(1-d.mix) + wet*d.mix
		}

		d.pos++
		if d.pos >= d.size {
			d.pos = 0
		}
	}
	return n, ok
}

func (d *Delay) Err() error { return d.s.Err() }

// Distortion is a soft-clip waveshaper with fixed drive
type Distortion struct {
	s     beep.Streamer
	drive float64
	norm  float64
	mix   float64
}

// NewDistortion creates the waveshaper stage with its standard tuning
func NewDistortion(s beep.Streamer) *Distortion {
	return &Distortion{
		s:     s,
		drive: parameter.DistortionDrive,
		norm:  math.Tanh(parameter.DistortionDrive),
		mix:   parameter.DistortionMix,
	}
}

func (d *Distortion) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.s.Stream(samples)
	for i := 0; i < n; i++ {
		for ch := 0; ch < 2; ch++ {
			dry := samples[i][ch]
			wet := math.Tanh(dry*d.drive) / d.norm
			samples[i][ch] = dry*(1-d.mix) + wet*d.mix
		}
	}
	return n, ok
}

func (d *Distortion) Err() error { return d.s.Err() }

// comb is a feedback comb filter, one channel
type comb struct {
	buf      []float64
	pos      int
	feedback float64
}

func (c *comb) process(x float64) float64 {
	y := c.buf[c.pos]
	c.buf[c.pos] = x + y*c.feedback
	c.pos++
	if c.pos >= len(c.buf) {
		c.pos = 0
	}
	return y
}

// allpass is a diffusion allpass filter, one channel
type allpass struct {
	buf  []float64
	pos  int
	gain float64
}

func (a *allpass) process(x float64) float64 {
	bufout := a.buf[a.pos]
	a.buf[a.pos] = x + bufout*a.gain
	a.pos++
	if a.pos >= len(a.buf) {
		a.pos = 0
	}
	return bufout - x
}

// stereoSpread offsets the right-channel comb lengths to decorrelate
// the reverb tail
const stereoSpread = 23

// Reverb is a Schroeder reverberator: four parallel combs into two series
// allpasses per channel. Wet mix and room size are tick-rate parameters;
// setters must be called with the speaker locked.
type Reverb struct {
	s         beep.Streamer
	combs     [2][]*comb
	allpasses [2][]*allpass
	mix       float64 // wet fraction, 0..1
}

// NewReverb creates the reverb stage
func NewReverb(s beep.Streamer, sr beep.SampleRate) *Reverb {
	combSeconds := []float64{
		parameter.ReverbCombBase1,
		parameter.ReverbCombBase2,
		parameter.ReverbCombBase3,
		parameter.ReverbCombBase4,
	}
	allpassSeconds := []float64{
		parameter.ReverbAllpass1,
		parameter.ReverbAllpass2,
	}

	r := &Reverb{s: s}
	for ch := 0; ch < 2; ch++ {
		for _, secs := range combSeconds {
			size := sr.N(time.Duration(secs*float64(time.Second))) + ch*stereoSpread
			r.combs[ch] = append(r.combs[ch], &comb{buf: make([]float64, size)})
		}
		for _, secs := range allpassSeconds {
			size := sr.N(time.Duration(secs*float64(time.Second))) + ch*stereoSpread
			r.allpasses[ch] = append(r.allpasses[ch], &allpass{
				buf:  make([]float64, size),
				gain: parameter.ReverbAllpassGain,
			})
		}
	}
	r.SetMix(parameter.ReverbMixFloor)
	r.SetRoom(parameter.DefaultRoomSize)
	return r
}

// SetMix sets the wet percentage, saturated to the mapper's output range
func (r *Reverb) SetMix(percent float64) {
	if percent < parameter.ReverbMixFloor {
		percent = parameter.ReverbMixFloor
	}
	if percent > parameter.ReverbMixCeil {
		percent = parameter.ReverbMixCeil
	}
	r.mix = percent / 100
}

// SetRoom scales comb feedback by the room size scalar in [0, 1]
func (r *Reverb) SetRoom(room float64) {
	if room < 0 {
		room = 0
	}
	if room > 1 {
		room = 1
	}
	fb := parameter.ReverbFeedbackBase + room*parameter.ReverbFeedbackRoom
	if fb > parameter.ReverbFeedbackMax {
		fb = parameter.ReverbFeedbackMax
	}
	for ch := 0; ch < 2; ch++ {
		for _, c := range r.combs[ch] {
			c.feedback = fb
		}
	}
}

func (r *Reverb) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = r.s.Stream(samples)
	for i := 0; i < n; i++ {
		for ch := 0; ch < 2; ch++ {
			dry := samples[i][ch]

			wet := 0.0
			for _, c := range r.combs[ch] {
				wet += c.process(dry)
			}
			wet /= float64(len(r.combs[ch]))
			for _, a := range r.allpasses[ch] {
				wet = a.process(wet)
			}

			samples[i][ch] = dry*(1-r.mix) + wet*r.mix
		}
	}
	return n, ok
}

func (r *Reverb) Err() error { return r.s.Err() }
