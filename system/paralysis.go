package system

import (
	"sync/atomic"

	"github.com/lixenwraith/warehouse/core"
	"github.com/lixenwraith/warehouse/engine"
	"github.com/lixenwraith/warehouse/parameter"
	"github.com/lixenwraith/warehouse/status"
)

// ParalysisSystem marks monsters orthogonally adjacent to a sticky box
// Diagonal contact never paralyzes; the flag is recomputed from scratch every tick
type ParalysisSystem struct {
	world *engine.World

	statParalyzed *atomic.Int64
}

func NewParalysisSystem(world *engine.World) *ParalysisSystem {
	return &ParalysisSystem{
		world:         world,
		statParalyzed: world.Status.Ints.Get(status.KeyParalyzed),
	}
}

func (s *ParalysisSystem) Name() string {
	return "paralysis"
}

func (s *ParalysisSystem) Priority() int {
	return parameter.PriorityParalysis
}

func (s *ParalysisSystem) Update() {
	var count int64
	for _, e := range s.world.Monsters.All() {
		m, ok := s.world.Monsters.Get(e)
		if !ok {
			continue
		}

		m.Paralyzed, m.ParalyzedBy = false, 0
		if !m.StickyImmune {
			if box := s.stickyNeighbor(e); box != 0 {
				m.Paralyzed, m.ParalyzedBy = true, box
				count++
			}
		}
		s.world.Monsters.Set(e, m)
	}
	s.statParalyzed.Store(count)
}

// stickyNeighbor returns the first sticky box found N, E, S, W of e
func (s *ParalysisSystem) stickyNeighbor(e core.Entity) core.Entity {
	pos, ok := s.world.Positions.Get(e)
	if !ok {
		return 0
	}
	for _, n := range pos.Neighbors4() {
		occ := s.world.Positions.OccupantAt(n)
		if occ != 0 && s.world.KindOf(occ).IsSticky() {
			return occ
		}
	}
	return 0
}
