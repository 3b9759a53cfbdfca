package audio

import (
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/warehouse/event"
	"github.com/lixenwraith/warehouse/parameter"
)

// Cue is a short sound tied to a game event
type Cue uint8

const (
	CueNone Cue = iota
	CueKill
	CueDeath
	CueWin
)

// Win arpeggio, C5 E5 G5 C6
var winNotes = [...]float64{523.25, 659.25, 783.99, 1046.50}

// CueFor maps an event to its cue
func CueFor(t event.EventType) Cue {
	switch t {
	case event.EventMonsterKilled:
		return CueKill
	case event.EventPlayerDied:
		return CueDeath
	case event.EventWon:
		return CueWin
	}
	return CueNone
}

// NewCueStreamer builds the finite streamer for cue at rate, nil for CueNone
func NewCueStreamer(cue Cue, rate beep.SampleRate) beep.Streamer {
	var s beep.Streamer
	switch cue {
	case CueKill:
		s = NewSweep(parameter.KillSoundFreqStart, parameter.KillSoundFreqEnd, parameter.KillSoundDuration, WaveSine, rate)
	case CueDeath:
		s = NewTone(parameter.DeathSoundFreq, parameter.DeathSoundDuration, WaveSquare, rate)
	case CueWin:
		notes := make([]beep.Streamer, 0, len(winNotes))
		for _, f := range winNotes {
			notes = append(notes, NewTone(f, parameter.WinNoteDuration, WaveSine, rate))
		}
		s = beep.Seq(notes...)
	default:
		return nil
	}
	// Gain scales by 1+Gain
	return &effects.Gain{Streamer: s, Gain: parameter.CueVolume - 1}
}
