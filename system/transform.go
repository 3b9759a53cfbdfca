package system

import (
	"github.com/lixenwraith/warehouse/component"
	"github.com/lixenwraith/warehouse/engine"
	"github.com/lixenwraith/warehouse/event"
	"github.com/lixenwraith/warehouse/parameter"
)

// TransformSystem drives the box monster camouflage cycle
// Monster -> ToBox -> Box -> ToMonster -> Monster, forever while alive; paused while paralyzed
type TransformSystem struct {
	world *engine.World
	ticks [4]int
}

func NewTransformSystem(world *engine.World, rules Rules) *TransformSystem {
	return &TransformSystem{world: world, ticks: rules.TransformTicks}
}

func (s *TransformSystem) Name() string {
	return "transform"
}

func (s *TransformSystem) Priority() int {
	return parameter.PriorityTransform
}

// Initial is the component a freshly spawned box monster starts with
func (s *TransformSystem) Initial() component.TransformComponent {
	return component.TransformComponent{
		State:     component.TransformMonster,
		Remaining: s.duration(component.TransformMonster),
	}
}

func (s *TransformSystem) Update() {
	for _, e := range s.world.Transforms.All() {
		t, ok := s.world.Transforms.Get(e)
		if !ok {
			continue
		}
		if m, ok := s.world.Monsters.Get(e); ok && m.Paralyzed {
			continue
		}

		t.Remaining--
		if t.Remaining > 0 {
			s.world.Transforms.Set(e, t)
			continue
		}

		from := t.State
		t.State = from.Next()
		t.Remaining = s.duration(t.State)
		s.world.Transforms.Set(e, t)

		s.world.PushEvent(event.EventTransformChanged, &event.TransformChangedPayload{
			Entity: e,
			From:   from,
			To:     t.State,
		})
	}
}

func (s *TransformSystem) duration(state component.TransformState) int {
	return max(1, s.ticks[state])
}
