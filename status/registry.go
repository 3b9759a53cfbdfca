package status

import (
	"sync/atomic"
	"unicode/utf8"
)

// Metric keys shared by the simulation systems and the presentation layer
const (
	KeyTicks         = "engine.ticks"
	KeyEventsDropped = "engine.events_dropped"
	KeyResets        = "session.resets"
	KeyWon           = "session.won"
	KeyLost          = "session.lost"
	KeySessionID     = "session.id"
	KeyKillsTotal    = "kills.total"
	KeyKillsPrefix   = "kills."
	KeyPushes        = "movement.pushes"
	KeyBounces       = "movement.bounces"
	KeyLiveMonster   = "monsters.live"
	KeyParalyzed     = "monsters.paralyzed"
	KeyStickyPurge   = "outcome.sticky_purged"
)

// MaxStringLen caps label values; a session uuid is 36 bytes
const MaxStringLen = 40

// AtomicString is a string label readable from any goroutine, zero value is ""
type AtomicString struct {
	ptr atomic.Pointer[string]
}

// Store sets the value, cut to MaxStringLen bytes on a rune boundary
func (s *AtomicString) Store(val string) {
	if len(val) > MaxStringLen {
		cut := MaxStringLen
		for cut > 0 && !utf8.RuneStart(val[cut]) {
			cut--
		}
		val = val[:cut]
	}
	s.ptr.Store(&val)
}

func (s *AtomicString) Load() string {
	if p := s.ptr.Load(); p != nil {
		return *p
	}
	return ""
}

// Registry holds every simulation metric
// Systems cache pointers at construction; the exporter and status line read them
type Registry struct {
	Ints    *MetricMap[atomic.Int64]
	Strings *MetricMap[AtomicString]
}

func NewRegistry() *Registry {
	return &Registry{
		Ints:    NewMetricMap[atomic.Int64](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// Int reads an integer metric without registering it, 0 if absent
func (r *Registry) Int(key string) int64 {
	if !r.Ints.Has(key) {
		return 0
	}
	return r.Ints.Get(key).Load()
}
