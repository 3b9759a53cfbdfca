package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/warehouse/component"
	"github.com/lixenwraith/warehouse/core"
	"github.com/lixenwraith/warehouse/engine"
	"github.com/lixenwraith/warehouse/event"
)

func TestMovement_ObjectBounceReverses(t *testing.T) {
	s := newStage(t, 10, 10)
	m := s.monster(component.KindMonsterNormal, 5, 5, core.DirNE)
	s.put(component.KindWall, 6, 4)

	s.tick()
	assert.Equal(t, core.Point{X: 5, Y: 5}, s.pos(m), "bounce must not move\n%s", s.dump())
	assert.Equal(t, core.DirSW, s.dir(m))

	s.tick()
	assert.Equal(t, core.Point{X: 4, Y: 6}, s.pos(m), "\n%s", s.dump())
}

func TestMovement_NorthIntoWallMovesSouthNextTick(t *testing.T) {
	s := newStage(t, 10, 10)
	m := s.monster(component.KindMonsterNormal, 3, 5, core.DirN)
	s.put(component.KindBoxNormal, 2, 4) // bystander, not in the path
	s.put(component.KindWall, 3, 4)

	s.tick()
	assert.Equal(t, core.DirS, s.dir(m))
	s.tick()
	assert.Equal(t, core.Point{X: 3, Y: 6}, s.pos(m))
}

func TestMovement_StageEdgeKeepsDirection(t *testing.T) {
	s := newStage(t, 10, 10)
	m := s.monster(component.KindMonsterNormal, 3, 0, core.DirN)

	for range 3 {
		s.tick()
		assert.Equal(t, core.Point{X: 3, Y: 0}, s.pos(m))
		assert.Equal(t, core.DirN, s.dir(m), "wall bounce must keep the heading")
	}
}

func TestMovement_DiagonalIsOneStep(t *testing.T) {
	s := newStage(t, 10, 10)
	m := s.monster(component.KindMonsterNormal, 5, 5, core.DirNE)
	s.put(component.KindWall, 6, 5)
	s.put(component.KindWall, 5, 4)

	s.tick()
	assert.Equal(t, core.Point{X: 6, Y: 4}, s.pos(m), "orthogonal neighbors must not block a diagonal step\n%s", s.dump())
	assert.Equal(t, core.DirNE, s.dir(m))
}

func TestMovement_PlayerPushAtomicity(t *testing.T) {
	tests := []struct {
		name       string
		blocker    component.Kind
		wantPlayer core.Point
		wantBox    core.Point
	}{
		{"into wall", component.KindWall, core.Point{X: 2, Y: 2}, core.Point{X: 3, Y: 2}},
		{"into monster", component.KindMonsterNormal, core.Point{X: 2, Y: 2}, core.Point{X: 3, Y: 2}},
		{"into empty", component.KindNone, core.Point{X: 3, Y: 2}, core.Point{X: 4, Y: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStage(t, 10, 10)
			s.idle(component.KindMonsterNormal, 9, 9)
			p := s.player(2, 2)
			box := s.put(component.KindBoxNormal, 3, 2)
			switch {
			case tt.blocker.IsMonster():
				s.idle(tt.blocker, 4, 2)
			case tt.blocker != component.KindNone:
				s.put(tt.blocker, 4, 2)
			}

			s.intent(core.DirE)
			s.tick()

			assert.Equal(t, tt.wantPlayer, s.pos(p), "\n%s", s.dump())
			assert.Equal(t, tt.wantBox, s.pos(box), "\n%s", s.dump())
			assert.Equal(t, engine.PhasePlaying, s.w.Session.Phase)
		})
	}
}

func TestMovement_StickyPushIntoMonsterFails(t *testing.T) {
	s := newStage(t, 8, 8)
	p := s.player(2, 2)
	sticky := s.put(component.KindBoxSticky, 3, 2)
	m := s.idle(component.KindMonsterNormal, 4, 2)

	res, err := s.movement.Resolve(p, core.DirE)
	require.NoError(t, err)
	assert.Equal(t, OutcomeBlocked, res.Outcome)
	assert.Equal(t, []core.Entity{sticky}, res.Chain)

	assert.Equal(t, core.Point{X: 2, Y: 2}, s.pos(p))
	assert.Equal(t, core.Point{X: 3, Y: 2}, s.pos(sticky))
	assert.Equal(t, core.Point{X: 4, Y: 2}, s.pos(m))
	assert.Zero(t, s.w.Positions.OccupantAt(core.Point{X: 5, Y: 2}))
}

func TestMovement_PushChain(t *testing.T) {
	s := newStage(t, 6, 3)
	s.idle(component.KindMonsterNormal, 5, 2)
	p := s.player(0, 0)
	b1 := s.put(component.KindBoxNormal, 1, 0)
	b2 := s.put(component.KindBoxSticky, 2, 0)
	b3 := s.put(component.KindBoxNormal, 3, 0)

	s.intent(core.DirE)
	events := s.tick()

	assert.Equal(t, core.Point{X: 1, Y: 0}, s.pos(p))
	assert.Equal(t, core.Point{X: 2, Y: 0}, s.pos(b1))
	assert.Equal(t, core.Point{X: 3, Y: 0}, s.pos(b2))
	assert.Equal(t, core.Point{X: 4, Y: 0}, s.pos(b3))
	require.Equal(t, 1, countEvents(events, event.EventBoxPushed))

	// Chain now touches the edge
	s.intent(core.DirE)
	s.tick()
	assert.Equal(t, core.Point{X: 2, Y: 0}, s.pos(p))
	assert.Equal(t, core.Point{X: 5, Y: 0}, s.pos(b3))

	s.intent(core.DirE)
	s.tick()
	assert.Equal(t, core.Point{X: 2, Y: 0}, s.pos(p), "push past the edge must fail\n%s", s.dump())
	assert.Equal(t, core.Point{X: 5, Y: 0}, s.pos(b3))
}

func TestMovement_MonsterPush(t *testing.T) {
	t.Run("allowed", func(t *testing.T) {
		s := newStage(t, 10, 10)
		m := s.monster(component.KindMonsterNormal, 2, 7, core.DirE)
		box := s.put(component.KindBoxNormal, 3, 7)

		s.tick()
		assert.Equal(t, core.Point{X: 3, Y: 7}, s.pos(m))
		assert.Equal(t, core.Point{X: 4, Y: 7}, s.pos(box))
		assert.Equal(t, core.DirE, s.dir(m))
	})

	t.Run("disabled", func(t *testing.T) {
		rules := testRules()
		rules.MonstersPushBoxes = false
		s := newStageWithRules(t, 10, 10, rules)
		m := s.monster(component.KindMonsterNormal, 2, 7, core.DirE)
		box := s.put(component.KindBoxNormal, 3, 7)

		s.tick()
		assert.Equal(t, core.Point{X: 2, Y: 7}, s.pos(m))
		assert.Equal(t, core.Point{X: 3, Y: 7}, s.pos(box))
		assert.Equal(t, core.DirW, s.dir(m))
	})

	t.Run("failed push bounces", func(t *testing.T) {
		s := newStage(t, 10, 10)
		m := s.monster(component.KindMonsterNormal, 2, 7, core.DirE)
		box := s.put(component.KindBoxNormal, 3, 7)
		s.put(component.KindWall, 4, 7)

		s.tick()
		assert.Equal(t, core.Point{X: 2, Y: 7}, s.pos(m))
		assert.Equal(t, core.Point{X: 3, Y: 7}, s.pos(box))
		assert.Equal(t, core.DirW, s.dir(m))
	})
}

func TestMovement_PlayerWalksIntoMonster(t *testing.T) {
	s := newStage(t, 10, 10)
	p := s.player(2, 2)
	m := s.idle(component.KindMonsterNormal, 3, 2)

	s.intent(core.DirE)
	events := s.tick()

	assert.Equal(t, engine.PhaseLost, s.w.Session.Phase)
	assert.False(t, s.w.IsAlive(p))
	assert.True(t, s.w.IsAlive(m))
	assert.Zero(t, s.w.Player)
	require.Equal(t, 1, countEvents(events, event.EventPlayerDied))
	assert.Equal(t, 0, countEvents(events, event.EventWon))
}

func TestMovement_MonsterWalksIntoPlayer(t *testing.T) {
	s := newStage(t, 10, 10)
	p := s.player(4, 5)
	m := s.monster(component.KindMonsterNormal, 5, 5, core.DirW)

	events := s.tick()

	assert.Equal(t, engine.PhaseLost, s.w.Session.Phase)
	assert.False(t, s.w.IsAlive(p))
	assert.Equal(t, core.Point{X: 5, Y: 5}, s.pos(m))
	assert.Equal(t, core.DirE, s.dir(m))

	payload, ok := events[0].Payload.(*event.PlayerDiedPayload)
	require.True(t, ok)
	assert.Equal(t, m, payload.Killer)
	assert.Equal(t, core.Point{X: 4, Y: 5}, payload.Pos)
}

func TestMovement_DisguisedBoxMonsterBlocksPlayer(t *testing.T) {
	s := newStage(t, 10, 10)
	p := s.player(2, 2)
	bm := s.idle(component.KindMonsterBox, 3, 2)
	s.w.Transforms.Set(bm, component.TransformComponent{State: component.TransformBox, Remaining: 100})

	res, err := s.movement.Resolve(p, core.DirE)
	require.NoError(t, err)
	assert.Equal(t, OutcomeBlocked, res.Outcome)
	assert.True(t, s.w.IsAlive(p))
	assert.Equal(t, engine.PhasePlaying, s.w.Session.Phase)

	_, err = s.movement.Resolve(bm, core.DirW)
	assert.ErrorIs(t, err, engine.ErrInvalidKind)
}

func TestMovement_PlayerBlocked(t *testing.T) {
	s := newStage(t, 5, 5)
	s.idle(component.KindMonsterNormal, 4, 4)
	p := s.player(0, 0)
	s.put(component.KindWall, 1, 1)

	for _, d := range []core.Direction{core.DirN, core.DirW, core.DirNW, core.DirSE} {
		res, err := s.movement.Resolve(p, d)
		require.NoError(t, err)
		assert.Equal(t, OutcomeBlocked, res.Outcome, "direction %v", d)
	}
	assert.Equal(t, core.Point{}, s.pos(p))
}

func TestMovement_PlayerFacing(t *testing.T) {
	s := newStage(t, 10, 10)
	s.idle(component.KindMonsterNormal, 9, 9)
	p := s.player(5, 5)

	s.intent(core.DirW)
	s.tick()
	pc, _ := s.w.Players.Get(p)
	assert.Equal(t, core.DirW, pc.Facing)

	// Pure vertical moves keep the last horizontal facing
	s.intent(core.DirN)
	s.tick()
	pc, _ = s.w.Players.Get(p)
	assert.Equal(t, core.DirW, pc.Facing)
	assert.Equal(t, core.DirN, pc.LastMove)
	assert.Equal(t, core.DirNone, pc.Intent, "intent is consumed each tick")

	s.intent(core.DirSE)
	s.tick()
	pc, _ = s.w.Players.Get(p)
	assert.Equal(t, core.DirE, pc.Facing)
	assert.Equal(t, core.Point{X: 5, Y: 5}, s.pos(p))
}

func TestMovement_ResolveRejectsStaticKinds(t *testing.T) {
	s := newStage(t, 5, 5)
	wall := s.put(component.KindWall, 1, 1)
	box := s.put(component.KindBoxNormal, 2, 2)

	_, err := s.movement.Resolve(wall, core.DirE)
	assert.ErrorIs(t, err, engine.ErrInvalidKind)
	_, err = s.movement.Resolve(box, core.DirE)
	assert.ErrorIs(t, err, engine.ErrInvalidKind)
}

func TestMovement_TerminalFreezesStage(t *testing.T) {
	s := newStage(t, 10, 10)
	s.player(4, 5)
	s.monster(component.KindMonsterNormal, 5, 5, core.DirW)
	s.monster(component.KindMonsterNormal, 1, 1, core.DirSE)

	s.tick()
	require.Equal(t, engine.PhaseLost, s.w.Session.Phase)
	before := s.w.Snapshot()

	for range 5 {
		assert.Empty(t, s.tick())
	}
	assert.Equal(t, before, s.w.Snapshot())
}

func TestMoveOutcome_String(t *testing.T) {
	assert.Equal(t, "bounce_object", OutcomeBounceObject.String())
	assert.Equal(t, "invalid", MoveOutcome(99).String())
}

// A stale target that turns out occupied is rejected in release builds
func TestMovement_OccupiedStepRejectedWithoutDebug(t *testing.T) {
	engine.Debug = false
	t.Cleanup(func() { engine.Debug = true })

	s := newStage(t, 6, 6)
	p := s.player(1, 1)
	wall := s.put(component.KindWall, 2, 1)
	m := s.monster(component.KindMonsterNormal, 1, 4, core.DirE)
	box := s.put(component.KindBoxNormal, 2, 4)

	tests := []struct {
		name     string
		mover    core.Entity
		to       core.Point
		isPlayer bool
		want     MoveOutcome
	}{
		{"player", p, core.Point{X: 2, Y: 1}, true, OutcomeBlocked},
		{"monster", m, core.Point{X: 2, Y: 4}, false, OutcomeBounceObject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from := s.pos(tt.mover)
			assert.Equal(t, tt.want, s.movement.step(tt.mover, tt.to, tt.isPlayer))
			assert.Equal(t, from, s.pos(tt.mover), "mover must stay put")
		})
	}

	assert.Equal(t, core.Point{X: 2, Y: 1}, s.pos(wall))
	assert.Equal(t, core.Point{X: 2, Y: 4}, s.pos(box))
	assert.NoError(t, s.w.Positions.Consistent(), "\n%s", s.dump())
}

func TestMovement_OccupiedStepPanicsInDebug(t *testing.T) {
	s := newStage(t, 4, 4)
	p := s.player(0, 0)
	s.put(component.KindWall, 1, 0)

	assert.Panics(t, func() { s.movement.step(p, core.Point{X: 1, Y: 0}, true) })
	assert.Equal(t, core.Point{X: 0, Y: 0}, s.pos(p))
	assert.NoError(t, s.w.Positions.Consistent())
}
