package system

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/warehouse/component"
	"github.com/lixenwraith/warehouse/config"
	"github.com/lixenwraith/warehouse/core"
	"github.com/lixenwraith/warehouse/engine"
	"github.com/lixenwraith/warehouse/event"
)

func init() {
	engine.Debug = true
}

// stage is a hand-built world with every tick system installed and no spawner
type stage struct {
	t     *testing.T
	w     *engine.World
	rules Rules

	paralysis *ParalysisSystem
	transform *TransformSystem
	behavior  *BehaviorSystem
	movement  *MovementSystem
	outcome   *OutcomeSystem
	spawn     *SpawnSystem
}

func testRules() Rules {
	return Rules{
		MonstersPushBoxes: true,
		StickyImmune:      map[component.Kind]bool{},
		BoxPolicy:         component.PolicyFixed,
		RandomTimerMin:    3,
		RandomTimerMax:    6,
		TransformTicks:    [4]int{4, 1, 3, 1},
	}
}

func newStage(t *testing.T, width, height int) *stage {
	return newStageWithRules(t, width, height, testRules())
}

func newStageWithRules(t *testing.T, width, height int, rules Rules) *stage {
	t.Helper()
	w := engine.NewWorld(width, height, 42, nil)
	w.BeginSession()
	w.Events.Consume()

	transform := NewTransformSystem(w, rules)
	s := &stage{
		t:         t,
		w:         w,
		rules:     rules,
		paralysis: NewParalysisSystem(w),
		transform: transform,
		behavior:  NewBehaviorSystem(w, rules),
		movement:  NewMovementSystem(w, rules),
		outcome:   NewOutcomeSystem(w),
		spawn:     NewSpawnSystem(w, config.Default(), rules, transform),
	}
	w.AddSystem(s.paralysis)
	w.AddSystem(s.transform)
	w.AddSystem(s.behavior)
	w.AddSystem(s.movement)
	w.AddSystem(s.outcome)
	return s
}

func (s *stage) player(x, y int) core.Entity {
	s.t.Helper()
	e, err := s.w.Spawn(component.KindPlayer, core.Point{X: x, Y: y})
	require.NoError(s.t, err)
	return e
}

func (s *stage) put(kind component.Kind, x, y int) core.Entity {
	s.t.Helper()
	e, err := s.w.Spawn(kind, core.Point{X: x, Y: y})
	require.NoError(s.t, err)
	return e
}

// monster places a monster that moves every tick in dir
func (s *stage) monster(kind component.Kind, x, y int, dir core.Direction) core.Entity {
	s.t.Helper()
	e, err := s.spawn.PlaceMonster(kind, core.Point{X: x, Y: y}, dir, 1)
	require.NoError(s.t, err)
	return e
}

// walls surrounds (x, y) with walls on every in-bounds empty neighbor
func (s *stage) walls(x, y int) {
	for _, n := range (core.Point{X: x, Y: y}).Neighbors8() {
		if s.w.Positions.InBounds(n) && s.w.Positions.OccupantAt(n) == 0 {
			s.put(component.KindWall, n.X, n.Y)
		}
	}
}

func (s *stage) tick() []event.GameEvent {
	s.w.Update()
	events := s.w.Dispatch()
	require.NoError(s.t, s.w.Positions.Consistent(), "\n%s", s.dump())
	return events
}

func (s *stage) pos(e core.Entity) core.Point {
	pt, ok := s.w.Positions.Get(e)
	if !ok {
		id, _ := s.w.Identity.Get(e)
		return id.LastPos
	}
	return pt
}

func (s *stage) dir(e core.Entity) core.Direction {
	m, _ := s.w.Monsters.Get(e)
	return m.Direction
}

func (s *stage) paralyzed(e core.Entity) bool {
	m, _ := s.w.Monsters.Get(e)
	return m.Paralyzed
}

var dumpGlyphs = map[component.Kind]byte{
	component.KindPlayer:        'P',
	component.KindMonsterNormal: 'M',
	component.KindMonsterFree:   'F',
	component.KindMonsterBox:    'S',
	component.KindMonsterBoss:   'B',
	component.KindMonsterRipper: 'R',
	component.KindBoxNormal:     'o',
	component.KindBoxSticky:     '#',
	component.KindWall:          'W',
}

// dump renders the grid as ASCII for failure messages
func (s *stage) dump() string {
	width, height := s.w.Positions.Dimensions()
	var b strings.Builder
	for y := range height {
		for x := range width {
			occ := s.w.Positions.OccupantAt(core.Point{X: x, Y: y})
			if occ == 0 {
				b.WriteByte('.')
				continue
			}
			b.WriteByte(dumpGlyphs[s.w.KindOf(occ)])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func countEvents(events []event.GameEvent, et event.EventType) int {
	n := 0
	for _, ev := range events {
		if ev.Type == et {
			n++
		}
	}
	return n
}

// idle places a monster that never reaches a move tick during a test
func (s *stage) idle(kind component.Kind, x, y int) core.Entity {
	s.t.Helper()
	e, err := s.spawn.PlaceMonster(kind, core.Point{X: x, Y: y}, core.DirN, 1<<30)
	require.NoError(s.t, err)
	return e
}

func (s *stage) intent(d core.Direction) {
	pc, ok := s.w.Players.Get(s.w.Player)
	require.True(s.t, ok, "no live player")
	pc.Intent = d
	s.w.Players.Set(s.w.Player, pc)
}
