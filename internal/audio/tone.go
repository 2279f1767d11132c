package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveTriangle
)

// Tone is a single enveloped note that may glide between two pitches.
// It implements beep.Streamer and ends after its duration.
type Tone struct {
	sr    beep.SampleRate
	wave  Wave
	from  float64 // Hz at the start
	to    float64 // Hz at the end
	gain  float64
	total int
	pos   int
	phase float64
}

// NewTone creates a tone of duration d gliding from one frequency to another.
// Pass the same value twice for a steady pitch.
func NewTone(sr beep.SampleRate, wave Wave, from, to float64, d time.Duration, gain float64) *Tone {
	return &Tone{
		sr:    sr,
		wave:  wave,
		from:  from,
		to:    to,
		gain:  gain,
		total: sr.N(d),
	}
}

// Len returns the tone length in samples.
func (t *Tone) Len() int {
	return t.total
}

func (t *Tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.pos >= t.total {
		return 0, false
	}
	for i := range samples {
		if t.pos >= t.total {
			return i, true
		}
		progress := float64(t.pos) / float64(t.total)
		freq := t.from + (t.to-t.from)*progress

		s := t.gain * envelope(t.pos, t.total, t.sr) * t.sample()
		samples[i][0] = s
		samples[i][1] = s

		t.phase += freq / float64(t.sr)
		if t.phase >= 1 {
			t.phase -= math.Floor(t.phase)
		}
		t.pos++
	}
	return len(samples), true
}

func (t *Tone) Err() error {
	return nil
}

// sample returns the raw waveform value at the current phase, in [-1, 1].
func (t *Tone) sample() float64 {
	switch t.wave {
	case WaveSquare:
		if t.phase < 0.5 {
			return 1
		}
		return -1
	case WaveTriangle:
		return 4*math.Abs(t.phase-0.5) - 1
	default:
		return math.Sin(2 * math.Pi * t.phase)
	}
}

// envelope gives a 5ms attack and a linear release over the last fifth.
func envelope(pos, total int, sr beep.SampleRate) float64 {
	attack := sr.N(5 * time.Millisecond)
	if pos < attack && attack > 0 {
		return float64(pos) / float64(attack)
	}
	release := total / 5
	if remaining := total - pos; remaining < release && release > 0 {
		return float64(remaining) / float64(release)
	}
	return 1
}
