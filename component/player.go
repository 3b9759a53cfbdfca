package component

import "github.com/lixenwraith/warehouse/core"

// PlayerComponent holds the player's per-tick intent and the last resolved move
type PlayerComponent struct {
	// Intent is consumed by the movement system once per tick
	Intent core.Direction
	// LastMove is the last direction that actually moved the player
	LastMove core.Direction
	// Facing is DirE or DirW, projected from the last move with a horizontal component
	Facing core.Direction
}

// Record stores a successful move and updates facing
func (p *PlayerComponent) Record(d core.Direction) {
	p.LastMove = d
	if h := d.Horizontal(); h != core.DirNone {
		p.Facing = h
	}
}
