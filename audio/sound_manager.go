package audio

import (
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/warehouse/event"
	"github.com/lixenwraith/warehouse/parameter"
)

const sampleRate = beep.SampleRate(parameter.AudioSampleRate)

// SoundManager plays event cues through one mixer on the speaker
// Without Initialize every call is a no-op, the game runs silent
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       atomic.Bool

	played atomic.Int64
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the audio device
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds and closes the device
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}

// ToggleMute flips the mute flag and returns the new state
func (sm *SoundManager) ToggleMute() bool {
	for {
		old := sm.muted.Load()
		if sm.muted.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// SetMuted forces the mute flag
func (sm *SoundManager) SetMuted(muted bool) {
	sm.muted.Store(muted)
}

// Muted reports the mute flag
func (sm *SoundManager) Muted() bool {
	return sm.muted.Load()
}

// Played returns the number of cues started, muted cues excluded
func (sm *SoundManager) Played() int64 {
	return sm.played.Load()
}

// Play starts cue on the mixer
func (sm *SoundManager) Play(cue Cue) {
	if cue == CueNone || sm.muted.Load() {
		return
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	s := NewCueStreamer(cue, sampleRate)
	if s == nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
	sm.played.Add(1)
}

// HandleEvents plays one cue per cue-worthy event
// Several kills in one tick collapse into a single kill cue
func (sm *SoundManager) HandleEvents(events []event.GameEvent) {
	var seen [CueWin + 1]bool
	for _, ev := range events {
		cue := CueFor(ev.Type)
		if cue == CueNone || seen[cue] {
			continue
		}
		seen[cue] = true
		sm.Play(cue)
	}
}
