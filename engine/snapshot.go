package engine

import (
	"github.com/lixenwraith/warehouse/component"
	"github.com/lixenwraith/warehouse/core"
)

// EntitySnapshot is the read-only view of one entity handed to presentation
type EntitySnapshot struct {
	ID    core.Entity
	Kind  component.Kind
	Pos   core.Point
	Alive bool

	// Transform is meaningful for box monsters only
	Transform component.TransformState
	// Facing is meaningful for the player only
	Facing core.Direction

	Paralyzed bool
}

// Snapshot is a copy of the stage after a tick
type Snapshot struct {
	Width    int
	Height   int
	Session  Session
	Entities []EntitySnapshot
}

// Snapshot copies the current state for presentation
// Dead entities are included with Alive=false at their last cell
func (w *World) Snapshot() Snapshot {
	width, height := w.Positions.Dimensions()
	ids := w.Identity.All()
	snap := Snapshot{
		Width:    width,
		Height:   height,
		Session:  w.Session,
		Entities: make([]EntitySnapshot, 0, len(ids)),
	}

	for _, e := range ids {
		id, _ := w.Identity.Get(e)
		es := EntitySnapshot{
			ID:    e,
			Kind:  id.Kind,
			Alive: id.Alive,
			Pos:   id.LastPos,
		}
		if pt, ok := w.Positions.Get(e); ok {
			es.Pos = pt
		}
		if t, ok := w.Transforms.Get(e); ok {
			es.Transform = t.State
		}
		if m, ok := w.Monsters.Get(e); ok {
			es.Paralyzed = m.Paralyzed
		}
		if p, ok := w.Players.Get(e); ok {
			es.Facing = p.Facing
		}
		snap.Entities = append(snap.Entities, es)
	}
	return snap
}

// At returns the live entity snapshot at pt
func (s Snapshot) At(pt core.Point) (EntitySnapshot, bool) {
	for _, es := range s.Entities {
		if es.Alive && es.Pos == pt {
			return es, true
		}
	}
	return EntitySnapshot{}, false
}

// Count returns the number of live entities of kind k
func (s Snapshot) Count(k component.Kind) int {
	n := 0
	for _, es := range s.Entities {
		if es.Alive && es.Kind == k {
			n++
		}
	}
	return n
}
