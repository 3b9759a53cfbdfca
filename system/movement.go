package system

import (
	"errors"
	"fmt"
	"log"
	"sync/atomic"

	"github.com/lixenwraith/warehouse/component"
	"github.com/lixenwraith/warehouse/core"
	"github.com/lixenwraith/warehouse/engine"
	"github.com/lixenwraith/warehouse/event"
	"github.com/lixenwraith/warehouse/parameter"
	"github.com/lixenwraith/warehouse/status"
)

// MoveOutcome is the result of resolving one requested move
type MoveOutcome uint8

const (
	// OutcomeNone means nothing was requested
	OutcomeNone MoveOutcome = iota
	// OutcomeMoved means the mover advanced into an empty cell
	OutcomeMoved
	// OutcomePushed means a box chain advanced and the mover took the vacated cell
	OutcomePushed
	// OutcomeBounceWall means a monster hit the stage edge, direction kept
	OutcomeBounceWall
	// OutcomeBounceObject means a monster hit something solid, direction reversed
	OutcomeBounceObject
	// OutcomeBlocked means a player move was rejected
	OutcomeBlocked
	// OutcomeKilledPlayer means a monster moved into the player
	OutcomeKilledPlayer
	// OutcomePlayerDied means the player moved into a living monster
	OutcomePlayerDied
)

var outcomeNames = [...]string{
	OutcomeNone:         "none",
	OutcomeMoved:        "moved",
	OutcomePushed:       "pushed",
	OutcomeBounceWall:   "bounce_wall",
	OutcomeBounceObject: "bounce_object",
	OutcomeBlocked:      "blocked",
	OutcomeKilledPlayer: "killed_player",
	OutcomePlayerDied:   "player_died",
}

func (o MoveOutcome) String() string {
	if int(o) >= len(outcomeNames) {
		return "invalid"
	}
	return outcomeNames[o]
}

// MoveResult describes a resolved move
type MoveResult struct {
	Outcome MoveOutcome
	// Target is the cell the mover tried to enter
	Target core.Point
	// Other is the entity in Target, 0 if empty or out of bounds
	Other core.Entity
	// Chain lists pushed boxes nearest first, set for OutcomePushed and failed pushes
	Chain []core.Entity
}

// MovementSystem resolves the player's move then every pending monster move against the grid
// It is the only system that moves entities; pushes go through Position.Shift
type MovementSystem struct {
	world *engine.World
	rules Rules

	statPushes  *atomic.Int64
	statBounces *atomic.Int64
	statLost    *atomic.Int64
}

func NewMovementSystem(world *engine.World, rules Rules) *MovementSystem {
	return &MovementSystem{
		world:       world,
		rules:       rules,
		statPushes:  world.Status.Ints.Get(status.KeyPushes),
		statBounces: world.Status.Ints.Get(status.KeyBounces),
		statLost:    world.Status.Ints.Get(status.KeyLost),
	}
}

func (s *MovementSystem) Name() string {
	return "movement"
}

func (s *MovementSystem) Priority() int {
	return parameter.PriorityMovement
}

func (s *MovementSystem) Update() {
	if s.movePlayer() {
		return
	}

	for _, e := range s.world.Monsters.All() {
		if s.world.Session.Terminal() {
			return
		}
		m, ok := s.world.Monsters.Get(e)
		if !ok || m.Pending == core.DirNone || m.Paralyzed {
			continue
		}
		d := m.Pending
		m.Pending = core.DirNone

		res, err := s.Resolve(e, d)
		if err != nil {
			log.Printf("[movement] monster %d: %v", e, err)
			s.world.Monsters.Set(e, m)
			continue
		}

		switch res.Outcome {
		case OutcomeBounceObject, OutcomeKilledPlayer:
			m.Direction = d.Opposite()
			s.statBounces.Add(1)
		case OutcomeBounceWall:
			s.statBounces.Add(1)
		}
		s.world.Monsters.Set(e, m)
	}
}

// movePlayer consumes the player's intent, returns true if the player died
func (s *MovementSystem) movePlayer() bool {
	p := s.world.Player
	if p == 0 {
		return false
	}
	pc, ok := s.world.Players.Get(p)
	if !ok {
		return false
	}
	d := pc.Intent
	pc.Intent = core.DirNone
	s.world.Players.Set(p, pc)
	if d == core.DirNone {
		return false
	}

	res, err := s.Resolve(p, d)
	if err != nil {
		log.Printf("[movement] player: %v", err)
		return false
	}
	return res.Outcome == OutcomePlayerDied
}

// Resolve applies one move for e in direction d and reports what happened
// Only players and mobile monsters may move; other kinds fail with ErrInvalidKind
// Diagonal moves are one combined step, never split into components
func (s *MovementSystem) Resolve(e core.Entity, d core.Direction) (MoveResult, error) {
	kind := s.world.KindOf(e)
	isPlayer := kind == component.KindPlayer
	if !isPlayer && !kind.IsMonster() {
		return MoveResult{}, fmt.Errorf("move %s: %w", kind, engine.ErrInvalidKind)
	}
	if kind.Has(component.CapTransforms) && !s.active(e) {
		return MoveResult{}, fmt.Errorf("move disguised %s: %w", kind, engine.ErrInvalidKind)
	}
	if d == core.DirNone {
		return MoveResult{Outcome: OutcomeNone}, nil
	}

	from, ok := s.world.Positions.Get(e)
	if !ok {
		return MoveResult{}, fmt.Errorf("move entity %d: %w", e, engine.ErrNoPosition)
	}
	to := from.Add(d)
	res := MoveResult{Target: to}

	// Edge
	if !s.world.Positions.InBounds(to) {
		if isPlayer {
			res.Outcome = OutcomeBlocked
		} else {
			res.Outcome = OutcomeBounceWall
		}
		return res, nil
	}

	occ := s.world.Positions.OccupantAt(to)
	res.Other = occ

	// Empty
	if occ == 0 {
		res.Outcome = s.step(e, to, isPlayer)
		if res.Outcome == OutcomeMoved && isPlayer {
			s.recordPlayerMove(e, d)
		}
		return res, nil
	}

	other := s.world.KindOf(occ)
	switch {
	case other == component.KindPlayer:
		// Only a monster can get here
		res.Outcome = OutcomeKilledPlayer
		s.killPlayer(occ, e, to)

	case other.IsMonster():
		if !isPlayer {
			res.Outcome = OutcomeBounceObject
		} else if other.Has(component.CapTransforms) && !s.active(occ) {
			res.Outcome = OutcomeBlocked
		} else {
			res.Outcome = OutcomePlayerDied
			s.killPlayer(e, occ, from)
		}

	case other.IsPushable():
		if !isPlayer && !s.rules.MonstersPushBoxes {
			res.Outcome = OutcomeBounceObject
			break
		}
		res.Chain, res.Outcome = s.push(e, occ, to, d, isPlayer)

	default:
		if isPlayer {
			res.Outcome = OutcomeBlocked
		} else {
			res.Outcome = OutcomeBounceObject
		}
	}
	return res, nil
}

// step moves e into a pre-checked empty cell
func (s *MovementSystem) step(e core.Entity, to core.Point, isPlayer bool) MoveOutcome {
	if err := s.world.Positions.Move(e, to); err != nil {
		engine.ContractViolation(err)
		if isPlayer {
			return OutcomeBlocked
		}
		return OutcomeBounceObject
	}
	return OutcomeMoved
}

// push collects the line of pushable boxes starting at first and shifts it with the mover
// The cell past the last box must be in bounds and empty, otherwise nothing moves
func (s *MovementSystem) push(mover, first core.Entity, at core.Point, d core.Direction, isPlayer bool) ([]core.Entity, MoveOutcome) {
	failed := OutcomeBounceObject
	if isPlayer {
		failed = OutcomeBlocked
	}

	boxes := []core.Entity{first}
	next := at.Add(d)
	for s.world.Positions.InBounds(next) {
		occ := s.world.Positions.OccupantAt(next)
		if occ == 0 || !s.world.KindOf(occ).IsPushable() {
			break
		}
		boxes = append(boxes, occ)
		next = next.Add(d)
	}

	if !s.world.Positions.InBounds(next) || s.world.Positions.OccupantAt(next) != 0 {
		return boxes, failed
	}

	chain := append([]core.Entity{mover}, boxes...)
	if err := s.world.Positions.Shift(chain, d); err != nil {
		if errors.Is(err, engine.ErrCellOccupied) {
			engine.ContractViolation(err)
		} else {
			log.Printf("[movement] push rejected: %v", err)
		}
		return boxes, failed
	}

	if isPlayer {
		s.recordPlayerMove(mover, d)
	}
	s.statPushes.Add(1)
	s.world.PushEvent(event.EventBoxPushed, &event.BoxPushedPayload{
		Mover: mover,
		Boxes: boxes,
		Dir:   d,
	})
	return boxes, OutcomePushed
}

func (s *MovementSystem) recordPlayerMove(p core.Entity, d core.Direction) {
	if pc, ok := s.world.Players.Get(p); ok {
		pc.Record(d)
		s.world.Players.Set(p, pc)
	}
}

// killPlayer ends the session as Lost
func (s *MovementSystem) killPlayer(player, killer core.Entity, at core.Point) {
	if !s.world.Destroy(player) {
		return
	}
	if !s.world.End(engine.PhaseLost) {
		return
	}
	s.statLost.Add(1)
	log.Printf("[movement] session %s lost at tick %d, caught by %s %d",
		s.world.Session.ID, s.world.Session.Tick, s.world.KindOf(killer), killer)

	s.world.PushEvent(event.EventPlayerDied, &event.PlayerDiedPayload{
		Player: player,
		Killer: killer,
		Pos:    at,
	})
}

func (s *MovementSystem) active(e core.Entity) bool {
	t, ok := s.world.Transforms.Get(e)
	return !ok || t.Active()
}
