package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines latency of the speaker
	AudioBufferDuration = 100 * time.Millisecond
)

// Cue Sounds
const (
	KillSoundDuration  = 180 * time.Millisecond
	KillSoundFreqStart = 440.0
	KillSoundFreqEnd   = 880.0

	DeathSoundDuration = 400 * time.Millisecond
	DeathSoundFreq     = 110.0

	// WinNoteDuration is the length of each arpeggio note
	WinNoteDuration = 120 * time.Millisecond

	// CueVolume is the peak amplitude of every cue
	CueVolume = 0.25
)
