package component

import "github.com/lixenwraith/warehouse/core"

// Policy selects how a monster chooses its direction
type Policy uint8

const (
	// PolicyFixed keeps the current direction, changed only by bounces
	PolicyFixed Policy = iota
	// PolicyRandom redirects to a random compass direction when RandomTimer expires
	PolicyRandom
)

func (p Policy) String() string {
	if p == PolicyRandom {
		return "random"
	}
	return "fixed"
}

// MonsterComponent holds per-monster movement state
type MonsterComponent struct {
	Direction core.Direction
	Policy    Policy

	// Delay is ticks per move, the monster acts when DelayCount wraps to 0
	Delay      int
	DelayCount int

	// RandomTimer is ticks until the next random redirect (PolicyRandom only)
	RandomTimer int
	// Compass4 restricts random picks to orthogonal directions
	Compass4 bool

	// Pending is the move requested for the current tick, DirNone when idle
	Pending core.Direction

	Paralyzed   bool
	ParalyzedBy core.Entity

	// StickyImmune monsters are never paralyzed
	StickyImmune bool
}

// Ready advances the delay counter and reports whether this tick is a move tick
func (m *MonsterComponent) Ready() bool {
	if m.Delay <= 1 {
		m.DelayCount = 0
		return true
	}
	m.DelayCount = (m.DelayCount + 1) % m.Delay
	return m.DelayCount == 0
}
