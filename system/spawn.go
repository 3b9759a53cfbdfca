package system

import (
	"fmt"
	"log"
	"sync/atomic"

	"github.com/aquilax/go-perlin"

	"github.com/lixenwraith/warehouse/component"
	"github.com/lixenwraith/warehouse/config"
	"github.com/lixenwraith/warehouse/core"
	"github.com/lixenwraith/warehouse/engine"
	"github.com/lixenwraith/warehouse/event"
	"github.com/lixenwraith/warehouse/status"
)

// SpawnSystem populates the stage on EventGameReset
// Order: player, fixed monsters, monster groups, walls, sticky boxes, boxes
// Every placement except normal boxes is "up to": a roll that lands on an occupied cell is skipped
type SpawnSystem struct {
	world     *engine.World
	cfg       *config.Config
	rules     Rules
	transform *TransformSystem

	statResets *atomic.Int64
	sessionID  *status.AtomicString
}

// NewSpawnSystem creates the spawner; box monsters start from transform's initial state
func NewSpawnSystem(world *engine.World, cfg *config.Config, rules Rules, transform *TransformSystem) *SpawnSystem {
	return &SpawnSystem{
		world:      world,
		cfg:        cfg,
		rules:      rules,
		transform:  transform,
		statResets: world.Status.Ints.Get(status.KeyResets),
		sessionID:  world.Status.Strings.Get(status.KeySessionID),
	}
}

func (s *SpawnSystem) EventTypes() []event.EventType {
	return []event.EventType{event.EventGameReset}
}

func (s *SpawnSystem) HandleEvent(ev event.GameEvent) {
	if ev.Type != event.EventGameReset {
		return
	}
	if p, ok := ev.Payload.(*event.ResetPayload); ok {
		s.sessionID.Store(p.SessionID)
	}
	s.statResets.Add(1)
	s.Populate()
	log.Printf("[spawn] session %s: %d entities, %d monsters",
		s.world.Session.ID, s.world.Positions.Count(), s.world.Monsters.Count())
}

// Populate places the whole recipe on an empty stage
func (s *SpawnSystem) Populate() {
	w := s.world
	stage := s.cfg.Stage

	if _, err := w.Spawn(component.KindPlayer, core.Point{X: stage.PlayerX, Y: stage.PlayerY}); err != nil {
		log.Printf("[spawn] player: %v", err)
	}

	for _, fm := range s.cfg.Monsters.Fixed {
		kind, ok := component.ParseKind(fm.Kind)
		if !ok {
			continue
		}
		dir, _ := core.ParseDirection(fm.Direction)
		pt := core.Point{X: fm.X, Y: fm.Y}
		if !w.Positions.InBounds(pt) || w.Positions.OccupantAt(pt) != 0 {
			continue
		}
		if _, err := s.PlaceMonster(kind, pt, dir, fm.Delay); err != nil {
			log.Printf("[spawn] fixed %s: %v", kind, err)
		}
	}

	for _, g := range s.cfg.Monsters.Groups {
		kind, ok := component.ParseKind(g.Kind)
		if !ok {
			continue
		}
		count := g.Min + w.Rand.IntN(g.Max-g.Min+1)
		for range count {
			pt := s.randomCell()
			if w.Positions.OccupantAt(pt) != 0 {
				continue
			}
			if _, err := s.PlaceMonster(kind, pt, core.DirNone, g.Delay); err != nil {
				log.Printf("[spawn] %s: %v", kind, err)
			}
		}
	}

	s.placeWalls()

	for range s.cfg.Obstacles.StickyBoxes {
		s.tryPlace(component.KindBoxSticky, s.randomCell())
	}

	s.placeBoxes()
}

// PlaceMonster spawns a monster with its movement state
// DirNone picks a starting heading: random diagonal for fixed walkers, random compass for random walkers
func (s *SpawnSystem) PlaceMonster(kind component.Kind, pt core.Point, dir core.Direction, delay int) (core.Entity, error) {
	if !kind.IsMonster() {
		return 0, fmt.Errorf("place monster %s: %w", kind, engine.ErrInvalidKind)
	}
	e, err := s.world.Spawn(kind, pt)
	if err != nil {
		return 0, err
	}

	policy := PolicyOf(kind, s.rules)
	m := component.MonsterComponent{
		Direction:    dir,
		Policy:       policy,
		Delay:        max(1, delay),
		Compass4:     s.rules.Compass4,
		StickyImmune: s.rules.StickyImmune[kind],
	}
	if policy == component.PolicyRandom {
		m.RandomTimer = RandomInterval(s.world, s.rules)
		if m.Direction == core.DirNone {
			m.Direction = RandomDirection(s.world, m.Compass4)
		}
	} else if m.Direction == core.DirNone {
		m.Direction = RandomDiagonal(s.world)
	}
	s.world.Monsters.Set(e, m)

	if kind.Has(component.CapTransforms) {
		s.world.Transforms.Set(e, s.transform.Initial())
	}
	return e, nil
}

// placeWalls draws wall rolls from cells where perlin noise is high, so walls form groves
// Falls back to uniform rolls when noise is disabled or no cell passes the threshold
func (s *SpawnSystem) placeWalls() {
	candidates := s.wallCandidates()
	for range s.cfg.Obstacles.Walls {
		pt := s.randomCell()
		if len(candidates) > 0 {
			pt = candidates[s.world.Rand.IntN(len(candidates))]
		}
		s.tryPlace(component.KindWall, pt)
	}
}

func (s *SpawnSystem) wallCandidates() []core.Point {
	nc := s.cfg.Obstacles.WallNoise
	if !nc.Enabled {
		return nil
	}

	noise := perlin.NewPerlin(nc.Alpha, nc.Beta, nc.Octaves, s.world.Rand.Int64())
	var out []core.Point
	for y := range s.cfg.Stage.Height {
		for x := range s.cfg.Stage.Width {
			// Noise2D is in [-1, 1], normalize to [0, 1]
			v := (noise.Noise2D(float64(x)*nc.Scale, float64(y)*nc.Scale) + 1.0) / 2.0
			if v >= nc.Threshold {
				out = append(out, core.Point{X: x, Y: y})
			}
		}
	}
	return out
}

// placeBoxes retries until every box is placed or the stage is full
func (s *SpawnSystem) placeBoxes() {
	width, height := s.world.Positions.Dimensions()
	free := width*height - s.world.Positions.Count()
	target := min(s.cfg.Obstacles.Boxes, free)

	for placed := 0; placed < target; {
		if s.tryPlace(component.KindBoxNormal, s.randomCell()) {
			placed++
		}
	}
}

func (s *SpawnSystem) tryPlace(kind component.Kind, pt core.Point) bool {
	if s.world.Positions.OccupantAt(pt) != 0 {
		return false
	}
	_, err := s.world.Spawn(kind, pt)
	return err == nil
}

func (s *SpawnSystem) randomCell() core.Point {
	width, height := s.world.Positions.Dimensions()
	return core.Point{X: s.world.Rand.IntN(width), Y: s.world.Rand.IntN(height)}
}
