package system

import (
	"github.com/lixenwraith/warehouse/component"
	"github.com/lixenwraith/warehouse/core"
	"github.com/lixenwraith/warehouse/engine"
	"github.com/lixenwraith/warehouse/parameter"
)

// BehaviorSystem decides every monster's move for the tick from the previous tick's state
// It only writes MonsterComponent.Pending and the walk timers; MovementSystem resolves
type BehaviorSystem struct {
	world *engine.World
	rules Rules
}

func NewBehaviorSystem(world *engine.World, rules Rules) *BehaviorSystem {
	return &BehaviorSystem{world: world, rules: rules}
}

func (s *BehaviorSystem) Name() string {
	return "behavior"
}

func (s *BehaviorSystem) Priority() int {
	return parameter.PriorityBehavior
}

func (s *BehaviorSystem) Update() {
	for _, e := range s.world.Monsters.All() {
		m, ok := s.world.Monsters.Get(e)
		if !ok {
			continue
		}
		m.Pending = core.DirNone

		if !m.Paralyzed && s.mobile(e) {
			s.decide(s.world.KindOf(e), &m)
		}
		s.world.Monsters.Set(e, m)
	}
}

// mobile is false for a box monster outside its monster form
func (s *BehaviorSystem) mobile(e core.Entity) bool {
	t, ok := s.world.Transforms.Get(e)
	return !ok || t.Active()
}

// decide is the single behavior dispatch keyed by kind
func (s *BehaviorSystem) decide(kind component.Kind, m *component.MonsterComponent) {
	switch kind {
	case component.KindMonsterNormal:
		// Fixed heading, changed only by bounces
	case component.KindMonsterFree, component.KindMonsterBoss, component.KindMonsterRipper:
		s.randomWalk(m)
	case component.KindMonsterBox:
		if m.Policy == component.PolicyRandom {
			s.randomWalk(m)
		}
	default:
		return
	}

	if m.Direction != core.DirNone && m.Ready() {
		m.Pending = m.Direction
	}
}

// randomWalk redirects when the timer expires and rolls a new interval
func (s *BehaviorSystem) randomWalk(m *component.MonsterComponent) {
	m.RandomTimer--
	if m.RandomTimer <= 0 || m.Direction == core.DirNone {
		m.Direction = RandomDirection(s.world, m.Compass4)
		m.RandomTimer = RandomInterval(s.world, s.rules)
	}
}

// PolicyOf returns the walk policy a monster kind spawns with
func PolicyOf(kind component.Kind, rules Rules) component.Policy {
	switch kind {
	case component.KindMonsterBox:
		return rules.BoxPolicy
	case component.KindMonsterNormal:
		return component.PolicyFixed
	}
	if kind.Has(component.CapRandomWalk) {
		return component.PolicyRandom
	}
	return component.PolicyFixed
}

// RandomDirection draws uniformly from the 8 or 4 compass directions
func RandomDirection(w *engine.World, compass4 bool) core.Direction {
	if compass4 {
		return core.Compass4[w.Rand.IntN(len(core.Compass4))]
	}
	return core.Compass8[w.Rand.IntN(len(core.Compass8))]
}

// RandomDiagonal draws one of NE, SE, SW, NW
func RandomDiagonal(w *engine.World) core.Direction {
	diagonals := [4]core.Direction{core.DirNE, core.DirSE, core.DirSW, core.DirNW}
	return diagonals[w.Rand.IntN(len(diagonals))]
}

// RandomInterval draws a redirect interval in [RandomTimerMin, RandomTimerMax]
func RandomInterval(w *engine.World, rules Rules) int {
	lo, hi := rules.RandomTimerMin, rules.RandomTimerMax
	if lo <= 0 {
		lo = 1
	}
	if hi < lo {
		hi = lo
	}
	return lo + w.Rand.IntN(hi-lo+1)
}
