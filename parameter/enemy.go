package parameter

import "time"

// Monster Speeds (ticks per move, lower is faster)
const (
	// NormalMonsterDelays are the delays of the three fixed normal monsters
	NormalMonsterDelayA = 5
	NormalMonsterDelayB = 3
	NormalMonsterDelayC = 2

	FreeMonsterDelay   = 5
	BoxMonsterDelay    = 5
	BossMonsterDelay   = 2
	RipperMonsterDelay = 8
)

// Random Walk
const (
	// RandomTimerMin is the shortest interval between random redirects in ticks
	RandomTimerMin = 3

	// RandomTimerMax is the longest interval between random redirects in ticks
	RandomTimerMax = 12
)

// Box Monster Camouflage Cycle
const (
	// BoxMonsterActiveDuration is time spent as a roaming monster
	BoxMonsterActiveDuration = 5 * time.Second

	// BoxMonsterToBoxDuration is the turning-into-box step, one tick at default timing
	BoxMonsterToBoxDuration = 100 * time.Millisecond

	// BoxMonsterBoxDuration is time spent disguised as a box
	BoxMonsterBoxDuration = 1 * time.Second

	// BoxMonsterToMonsterDuration is the turning-back step, one tick at default timing
	BoxMonsterToMonsterDuration = 100 * time.Millisecond
)
