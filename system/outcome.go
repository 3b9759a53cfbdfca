package system

import (
	"log"
	"sync/atomic"

	"github.com/lixenwraith/warehouse/component"
	"github.com/lixenwraith/warehouse/core"
	"github.com/lixenwraith/warehouse/engine"
	"github.com/lixenwraith/warehouse/event"
	"github.com/lixenwraith/warehouse/parameter"
	"github.com/lixenwraith/warehouse/status"
)

// OutcomeSystem kills fully encircled monsters and detects the win
// The kill set is computed on the post-movement grid before any removal, so scan order never matters
type OutcomeSystem struct {
	world *engine.World

	statKills       *atomic.Int64
	statWon         *atomic.Int64
	statLive        *atomic.Int64
	statStickyPurge *atomic.Int64
	statKillsByKind map[component.Kind]*atomic.Int64
}

func NewOutcomeSystem(world *engine.World) *OutcomeSystem {
	s := &OutcomeSystem{
		world:           world,
		statKills:       world.Status.Ints.Get(status.KeyKillsTotal),
		statWon:         world.Status.Ints.Get(status.KeyWon),
		statLive:        world.Status.Ints.Get(status.KeyLiveMonster),
		statStickyPurge: world.Status.Ints.Get(status.KeyStickyPurge),
		statKillsByKind: make(map[component.Kind]*atomic.Int64, len(component.MonsterKinds)),
	}
	for _, k := range component.MonsterKinds {
		s.statKillsByKind[k] = world.Status.Ints.Get(status.KeyKillsPrefix + k.String())
	}
	return s
}

func (s *OutcomeSystem) Name() string {
	return "outcome"
}

func (s *OutcomeSystem) Priority() int {
	return parameter.PriorityOutcome
}

func (s *OutcomeSystem) EventTypes() []event.EventType {
	return []event.EventType{event.EventGameReset}
}

// HandleEvent refreshes the live monster gauge once the stage is populated
func (s *OutcomeSystem) HandleEvent(ev event.GameEvent) {
	if ev.Type == event.EventGameReset {
		s.statLive.Store(int64(s.world.Monsters.Count()))
	}
}

func (s *OutcomeSystem) Update() {
	var doomed []core.Entity
	for _, e := range s.world.Monsters.All() {
		if s.Encircled(e) {
			doomed = append(doomed, e)
		}
	}

	for _, e := range doomed {
		s.kill(e)
	}

	live := s.world.Monsters.Count()
	s.statLive.Store(int64(live))
	if live == 0 && s.world.End(engine.PhaseWon) {
		s.statWon.Add(1)
		log.Printf("[outcome] session %s won at tick %d with %d kills",
			s.world.Session.ID, s.world.Session.Tick, s.world.Session.Kills)
		s.world.PushEvent(event.EventWon, &event.WonPayload{
			Kills: s.world.Session.Kills,
			Ticks: s.world.Session.Tick,
		})
	}
}

// Encircled reports whether every one of the 8 neighbors of monster e is off-stage or
// held by a blocking non-player entity; disguised box monsters are never encircled
func (s *OutcomeSystem) Encircled(e core.Entity) bool {
	if !s.world.KindOf(e).IsMonster() || !s.world.IsAlive(e) {
		return false
	}
	if t, ok := s.world.Transforms.Get(e); ok && !t.Active() {
		return false
	}
	pos, ok := s.world.Positions.Get(e)
	if !ok {
		return false
	}

	for _, n := range pos.Neighbors8() {
		if !s.world.Positions.InBounds(n) {
			continue
		}
		occ := s.world.Positions.OccupantAt(n)
		if occ == 0 {
			return false
		}
		k := s.world.KindOf(occ)
		if k == component.KindPlayer || !k.IsBlocking() {
			return false
		}
	}
	return true
}

func (s *OutcomeSystem) kill(e core.Entity) {
	kind := s.world.KindOf(e)
	pos, _ := s.world.Positions.Get(e)
	if !s.world.Destroy(e) {
		return
	}

	s.world.Session.Kills++
	s.statKills.Add(1)
	if stat := s.statKillsByKind[kind]; stat != nil {
		stat.Add(1)
	}
	log.Printf("[outcome] session %s: %s %d encircled at %v", s.world.Session.ID, kind, e, pos)

	s.world.PushEvent(event.EventMonsterKilled, &event.MonsterKilledPayload{
		Entity: e,
		Kind:   kind,
		Pos:    pos,
	})

	if kind.Has(component.CapPurgeStickyOnDeath) {
		s.purgeSticky(e)
	}
}

// purgeSticky destroys every sticky box and releases the monsters they held
func (s *OutcomeSystem) purgeSticky(ripper core.Entity) {
	removed := s.world.LiveOfKind(component.KindBoxSticky)
	for _, b := range removed {
		s.world.Destroy(b)
	}
	s.statStickyPurge.Add(int64(len(removed)))

	for _, e := range s.world.Monsters.All() {
		if m, ok := s.world.Monsters.Get(e); ok && m.Paralyzed {
			m.Paralyzed, m.ParalyzedBy = false, 0
			s.world.Monsters.Set(e, m)
		}
	}

	s.world.PushEvent(event.EventStickyPurged, &event.StickyPurgedPayload{
		Ripper:  ripper,
		Removed: removed,
	})
}
