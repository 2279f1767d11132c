// Package audio plays short synthesized sound cues for game events.
package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/isletrap/internal/engine"
)

const sampleRate = beep.SampleRate(44100)

// Cue is a named sound effect.
type Cue int

const (
	CueNone Cue = iota
	CueCapture
	CueDeath
	CueLevelComplete
	CueGameOver
	CueGameWon
)

func (c Cue) String() string {
	switch c {
	case CueCapture:
		return "capture"
	case CueDeath:
		return "death"
	case CueLevelComplete:
		return "level-complete"
	case CueGameOver:
		return "game-over"
	case CueGameWon:
		return "game-won"
	default:
		return "none"
	}
}

// CueFor maps an engine event to its sound cue.
// Moves and level loads are silent.
func CueFor(e engine.Event) Cue {
	switch e.(type) {
	case engine.CreatureCaptured:
		return CueCapture
	case engine.PlayerDied:
		return CueDeath
	case engine.LevelCompleted:
		return CueLevelComplete
	case engine.GameOver:
		return CueGameOver
	case engine.GameWon:
		return CueGameWon
	default:
		return CueNone
	}
}

// note is one step of a cue melody.
type note struct {
	wave     Wave
	from, to float64
	d        time.Duration
}

var melodies = map[Cue][]note{
	CueCapture: {
		{WaveTriangle, 660, 660, 60 * time.Millisecond},
		{WaveTriangle, 990, 990, 90 * time.Millisecond},
	},
	CueDeath: {
		{WaveSquare, 330, 110, 350 * time.Millisecond},
	},
	CueLevelComplete: {
		{WaveSine, 523, 523, 100 * time.Millisecond},
		{WaveSine, 659, 659, 100 * time.Millisecond},
		{WaveSine, 784, 784, 100 * time.Millisecond},
		{WaveSine, 1047, 1047, 220 * time.Millisecond},
	},
	CueGameOver: {
		{WaveSquare, 392, 392, 180 * time.Millisecond},
		{WaveSquare, 330, 330, 180 * time.Millisecond},
		{WaveSquare, 262, 196, 400 * time.Millisecond},
	},
	CueGameWon: {
		{WaveTriangle, 523, 523, 120 * time.Millisecond},
		{WaveTriangle, 659, 659, 120 * time.Millisecond},
		{WaveTriangle, 784, 784, 120 * time.Millisecond},
		{WaveTriangle, 1047, 1047, 120 * time.Millisecond},
		{WaveTriangle, 784, 784, 120 * time.Millisecond},
		{WaveTriangle, 1047, 1047, 400 * time.Millisecond},
	},
}

// Streamer builds the sound for a cue at the given volume (0.0 to 1.0).
// It returns nil for CueNone.
func Streamer(c Cue, sr beep.SampleRate, volume float64) beep.Streamer {
	notes, ok := melodies[c]
	if !ok {
		return nil
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		parts = append(parts, NewTone(sr, n.wave, n.from, n.to, n.d, volume))
	}
	return beep.Seq(parts...)
}
