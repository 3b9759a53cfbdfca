package component

import "github.com/lixenwraith/warehouse/core"

// IdentityComponent is the entity model record kept for every entity created in a session
// Dead entities keep their record with Alive=false until the next reset
type IdentityComponent struct {
	Kind  Kind
	Alive bool

	// LastPos is the cell occupied at the moment of death
	LastPos core.Point
}
