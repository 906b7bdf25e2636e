// Package audio synthesises the short sounds the game plays.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

const SampleRate = beep.SampleRate(44100)

const (
	noteLength  = 140 * time.Millisecond
	noteAttack  = 5 * time.Millisecond
	noteRelease = 90 * time.Millisecond
)

// tone is a sine oscillator that stops after a fixed number of samples.
type tone struct {
	freq     float64
	phase    float64
	position int
	length   int
	rate     beep.SampleRate
}

func newTone(freq float64, d time.Duration, rate beep.SampleRate) *tone {
	return &tone{freq: freq, length: rate.N(d), rate: rate}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if t.position >= t.length {
			return i, i > 0
		}
		v := math.Sin(2 * math.Pi * t.phase)
		samples[i][0] = v
		samples[i][1] = v
		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// fade scales a stream with a linear attack and release.
type fade struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newFade(s beep.Streamer, total, attack, release time.Duration, rate beep.SampleRate) *fade {
	return &fade{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(total),
	}
}

func (f *fade) Stream(samples [][2]float64) (int, bool) {
	n, ok := f.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 1.0
		if f.position < f.attack {
			gain = float64(f.position) / float64(f.attack)
		}
		if remaining := f.total - f.position; remaining < f.release {
			gain = math.Max(0, float64(remaining)/float64(f.release))
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		f.position++
	}
	return n, ok
}

func (f *fade) Err() error { return f.streamer.Err() }

func note(freq float64, rate beep.SampleRate) beep.Streamer {
	return newFade(newTone(freq, noteLength, rate), noteLength, noteAttack, noteRelease, rate)
}

// Chime is a rising two-note jingle (E5 then A5) at the given volume in
// [0, 1].
func Chime(rate beep.SampleRate, volume float64) beep.Streamer {
	seq := beep.Seq(note(659.25, rate), note(880, rate))
	if volume <= 0 {
		return &effects.Volume{Streamer: seq, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: seq, Base: 2, Volume: math.Log2(math.Min(volume, 1))}
}

// ChimeLength is how long Chime plays.
func ChimeLength() time.Duration {
	return 2 * noteLength
}
