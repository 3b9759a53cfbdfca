package event

import (
	"github.com/lixenwraith/warehouse/component"
	"github.com/lixenwraith/warehouse/core"
)

// ResetPayload carries the identity of the new session
type ResetPayload struct {
	SessionID string
	Count     int64 // Resets since process start, 1 for the first session
}

// PlayerDiedPayload identifies the monster that caught the player
type PlayerDiedPayload struct {
	Player core.Entity
	Killer core.Entity
	Pos    core.Point
}

// WonPayload summarizes the finished session
type WonPayload struct {
	Kills int
	Ticks int64
}

// MonsterKilledPayload identifies the encircled monster
type MonsterKilledPayload struct {
	Entity core.Entity
	Kind   component.Kind
	Pos    core.Point
}

// StickyPurgedPayload reports a ripper death side effect
type StickyPurgedPayload struct {
	Ripper  core.Entity
	Removed []core.Entity
}

// TransformChangedPayload reports a box monster camouflage step
type TransformChangedPayload struct {
	Entity core.Entity
	From   component.TransformState
	To     component.TransformState
}

// BoxPushedPayload reports a successful push chain
type BoxPushedPayload struct {
	Mover core.Entity
	Boxes []core.Entity
	Dir   core.Direction
}
