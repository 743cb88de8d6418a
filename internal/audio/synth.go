package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
)

// noiseBurst is a decaying crackle over a low rumble.
type noiseBurst struct {
	sr  beep.SampleRate
	pos int
	rng *rand.Rand
	lp  float64
}

func newNoiseBurst(sr beep.SampleRate, seed int64) *noiseBurst {
	return &noiseBurst{sr: sr, rng: rand.New(rand.NewSource(seed))}
}

func (g *noiseBurst) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		env := math.Exp(-t * 5)

		// One-pole low-pass keeps the noise from hissing.
		g.lp += 0.25 * ((g.rng.Float64()*2 - 1) - g.lp)
		rumble := 0.35 * math.Sin(2*math.Pi*(55+40*env)*t)

		v := env * (0.6*g.lp + rumble)
		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *noiseBurst) Err() error { return nil }

// pad is an endless slow-swelling minor chord.
type pad struct {
	sr  beep.SampleRate
	pos int
}

var padFreqs = []float64{110, 130.81, 164.81, 220}

func (g *pad) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		swell := 0.6 + 0.4*math.Sin(2*math.Pi*t/8)
		v := 0.0
		for j, f := range padFreqs {
			v += math.Sin(2*math.Pi*f*t + float64(j))
		}
		v *= 0.04 * swell
		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *pad) Err() error { return nil }

// fader scales a stream by a gain that ramps linearly toward a target.
type fader struct {
	streamer beep.Streamer
	sr       beep.SampleRate
	gain     float64
	target   float64
	step     float64
}

func newFader(s beep.Streamer, sr beep.SampleRate, gain float64) *fader {
	return &fader{streamer: s, sr: sr, gain: gain, target: gain}
}

// fadeTo ramps to target over d. Must be called with the speaker locked.
func (f *fader) fadeTo(target float64, d time.Duration) {
	f.target = target
	n := f.sr.N(d)
	if n <= 0 {
		f.gain = target
		f.step = 0
		return
	}
	f.step = (target - f.gain) / float64(n)
}

func (f *fader) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if f.gain != f.target {
			f.gain += f.step
			if (f.step > 0 && f.gain > f.target) || (f.step < 0 && f.gain < f.target) || f.step == 0 {
				f.gain = f.target
			}
		}
		samples[i][0] *= f.gain
		samples[i][1] *= f.gain
	}
	return n, ok
}

func (f *fader) Err() error { return f.streamer.Err() }
