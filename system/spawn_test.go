package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/warehouse/component"
	"github.com/lixenwraith/warehouse/config"
	"github.com/lixenwraith/warehouse/core"
	"github.com/lixenwraith/warehouse/engine"
	"github.com/lixenwraith/warehouse/event"
	"github.com/lixenwraith/warehouse/status"
)

func populatedWorld(t *testing.T, cfg *config.Config) *engine.World {
	t.Helper()
	require.NoError(t, cfg.Validate())
	w := engine.NewWorld(cfg.Stage.Width, cfg.Stage.Height, cfg.Seed, nil)
	rules := RulesFromConfig(cfg)
	w.RegisterHandler(NewSpawnSystem(w, cfg, rules, NewTransformSystem(w, rules)))
	w.BeginSession()
	w.Dispatch()
	require.NoError(t, w.Positions.Consistent())
	return w
}

func TestSpawn_DefaultRecipe(t *testing.T) {
	cfg := config.Default()
	cfg.Seed = 7
	w := populatedWorld(t, cfg)

	require.NotZero(t, w.Player)
	pt, _ := w.Positions.Get(w.Player)
	assert.Equal(t, core.Point{X: cfg.Stage.PlayerX, Y: cfg.Stage.PlayerY}, pt)

	normals := w.LiveOfKind(component.KindMonsterNormal)
	assert.Len(t, normals, 3)
	for _, fm := range cfg.Monsters.Fixed {
		occ := w.Positions.OccupantAt(core.Point{X: fm.X, Y: fm.Y})
		assert.Equal(t, component.KindMonsterNormal, w.KindOf(occ))
		m, _ := w.Monsters.Get(occ)
		assert.Equal(t, core.DirSE, m.Direction)
		assert.Equal(t, fm.Delay, m.Delay)
	}

	assert.LessOrEqual(t, len(w.LiveOfKind(component.KindMonsterFree)), 2)
	assert.LessOrEqual(t, len(w.LiveOfKind(component.KindMonsterBox)), 2)
	assert.LessOrEqual(t, len(w.LiveOfKind(component.KindMonsterBoss)), 1)
	assert.LessOrEqual(t, len(w.LiveOfKind(component.KindMonsterRipper)), 3)
	assert.LessOrEqual(t, len(w.LiveOfKind(component.KindWall)), cfg.Obstacles.Walls)
	assert.LessOrEqual(t, len(w.LiveOfKind(component.KindBoxSticky)), cfg.Obstacles.StickyBoxes)
	assert.Len(t, w.LiveOfKind(component.KindBoxNormal), cfg.Obstacles.Boxes)

	for _, e := range w.LiveOfKind(component.KindMonsterBox) {
		tc, ok := w.Transforms.Get(e)
		require.True(t, ok, "box monster %d without transform state", e)
		assert.Equal(t, component.TransformMonster, tc.State)
	}
	assert.Equal(t, int64(1), w.Status.Int(status.KeyResets))
	assert.Equal(t, w.Session.ID.String(), w.Status.Strings.Get(status.KeySessionID).Load())
}

func TestSpawn_SameSeedSameStage(t *testing.T) {
	layout := func(seed uint64, noise bool) map[core.Point]component.Kind {
		cfg := config.Default()
		cfg.Seed = seed
		cfg.Obstacles.WallNoise.Enabled = noise
		w := populatedWorld(t, cfg)
		out := make(map[core.Point]component.Kind)
		for _, e := range w.Positions.All() {
			pt, _ := w.Positions.Get(e)
			out[pt] = w.KindOf(e)
		}
		return out
	}

	for _, noise := range []bool{true, false} {
		assert.Equal(t, layout(99, noise), layout(99, noise), "noise=%v", noise)
	}
	assert.NotEqual(t, layout(1, true), layout(2, true))
}

func TestSpawn_SmallStage(t *testing.T) {
	cfg := config.Default()
	cfg.Stage = config.StageConfig{Width: 4, Height: 4}
	cfg.Monsters.Fixed = nil
	cfg.Monsters.Groups = []config.MonsterGroup{{Kind: "monster_normal", Min: 1, Max: 1, Delay: 1}}
	cfg.Obstacles = config.ObstaclesConfig{Boxes: 10}
	w := populatedWorld(t, cfg)

	assert.Len(t, w.LiveOfKind(component.KindBoxNormal), 10)
	assert.LessOrEqual(t, w.Positions.Count(), 16)
}

func TestSpawn_PlaceMonsterRejectsNonMonster(t *testing.T) {
	cfg := config.Default()
	w := engine.NewWorld(10, 10, 1, nil)
	rules := RulesFromConfig(cfg)
	s := NewSpawnSystem(w, cfg, rules, NewTransformSystem(w, rules))

	_, err := s.PlaceMonster(component.KindWall, core.Point{X: 1, Y: 1}, core.DirN, 1)
	assert.ErrorIs(t, err, engine.ErrInvalidKind)

	e, err := s.PlaceMonster(component.KindMonsterFree, core.Point{X: 2, Y: 2}, core.DirNone, 0)
	require.NoError(t, err)
	m, _ := w.Monsters.Get(e)
	assert.Equal(t, component.PolicyRandom, m.Policy)
	assert.NotEqual(t, core.DirNone, m.Direction)
	assert.Equal(t, 1, m.Delay)
	assert.Positive(t, m.RandomTimer)

	e, err = s.PlaceMonster(component.KindMonsterNormal, core.Point{X: 3, Y: 3}, core.DirNone, 2)
	require.NoError(t, err)
	m, _ = w.Monsters.Get(e)
	assert.True(t, m.Direction.IsDiagonal())
}

func TestSpawn_ResetRepopulates(t *testing.T) {
	cfg := config.Default()
	w := populatedWorld(t, cfg)
	first := w.Session.ID

	w.End(engine.PhaseLost)
	w.BeginSession()
	events := w.Dispatch()

	require.Len(t, events, 1)
	assert.Equal(t, event.EventGameReset, events[0].Type)
	assert.NotEqual(t, first, w.Session.ID)
	assert.Equal(t, engine.PhasePlaying, w.Session.Phase)
	assert.NotZero(t, w.Player)
	assert.Len(t, w.LiveOfKind(component.KindBoxNormal), cfg.Obstacles.Boxes)
	assert.Equal(t, int64(2), w.Status.Int(status.KeyResets))
}

func TestRulesFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Rules.StickyImmune = []string{"monster_boss"}
	cfg.Monsters.BoxPolicy = "fixed"
	rules := RulesFromConfig(cfg)

	assert.True(t, rules.StickyImmune[component.KindMonsterBoss])
	assert.False(t, rules.StickyImmune[component.KindMonsterRipper])
	assert.Equal(t, component.PolicyFixed, rules.BoxPolicy)
	// 5s at a 100ms tick
	assert.Equal(t, 50, rules.TransformTicks[component.TransformMonster])
	assert.Equal(t, 1, rules.TransformTicks[component.TransformToBox])
}
