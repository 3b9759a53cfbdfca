package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
)

// sweep is an oscillator whose frequency glides linearly from start to end
// A linear fade-out over the last quarter avoids a click at the cut
type sweep struct {
	freqStart float64
	freqEnd   float64
	wave      WaveType
	rate      beep.SampleRate

	phase    float64
	position int
	duration int
}

// NewSweep creates a gliding tone; freqStart == freqEnd gives a plain tone
func NewSweep(freqStart, freqEnd float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &sweep{
		freqStart: freqStart,
		freqEnd:   freqEnd,
		wave:      wave,
		rate:      rate,
		duration:  rate.N(duration),
	}
}

// NewTone creates a fixed-frequency tone
func NewTone(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.duration {
			return i, i > 0
		}

		progress := float64(s.position) / float64(s.duration)
		freq := s.freqStart + (s.freqEnd-s.freqStart)*progress

		var val float64
		switch s.wave {
		case WaveSquare:
			if s.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		default:
			val = math.Sin(2 * math.Pi * s.phase)
		}

		if progress > 0.75 {
			val *= (1.0 - progress) * 4
		}

		samples[i][0] = val
		samples[i][1] = val

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }
