package game

import (
	"fmt"
	"log"
	"sync/atomic"

	"github.com/lixenwraith/warehouse/config"
	"github.com/lixenwraith/warehouse/core"
	"github.com/lixenwraith/warehouse/engine"
	"github.com/lixenwraith/warehouse/event"
	"github.com/lixenwraith/warehouse/status"
	"github.com/lixenwraith/warehouse/system"
)

// Game wires the world, the tick systems and the spawner behind the core interface:
// RequestPlayerMove, Tick, Reset and Snapshot
// Not safe for concurrent use; drive it from one goroutine (see engine.ClockScheduler)
type Game struct {
	cfg   *config.Config
	world *engine.World

	Movement *system.MovementSystem
	Outcome  *system.OutcomeSystem
	Spawn    *system.SpawnSystem

	// events holds what the last Tick or Reset emitted
	events []event.GameEvent

	statTicks *atomic.Int64
}

// New builds a game from cfg and starts the first session
func New(cfg *config.Config, reg *status.Registry) (*Game, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}

	world := engine.NewWorld(cfg.Stage.Width, cfg.Stage.Height, cfg.Seed, reg)
	rules := system.RulesFromConfig(cfg)
	transform := system.NewTransformSystem(world, rules)

	g := &Game{
		cfg:       cfg,
		world:     world,
		Movement:  system.NewMovementSystem(world, rules),
		Outcome:   system.NewOutcomeSystem(world),
		Spawn:     system.NewSpawnSystem(world, cfg, rules, transform),
		statTicks: world.Status.Ints.Get(status.KeyTicks),
	}

	// Spawner first so reset handlers that follow see a populated stage
	world.RegisterHandler(g.Spawn)
	world.AddSystem(system.NewParalysisSystem(world))
	world.AddSystem(transform)
	world.AddSystem(system.NewBehaviorSystem(world, rules))
	world.AddSystem(g.Movement)
	world.AddSystem(g.Outcome)

	g.Reset()
	return g, nil
}

// RequestPlayerMove sets the player's intent for the next tick, last request wins
// Ignored when there is no live player
func (g *Game) RequestPlayerMove(d core.Direction) {
	p := g.world.Player
	if p == 0 {
		return
	}
	if pc, ok := g.world.Players.Get(p); ok {
		pc.Intent = d
		g.world.Players.Set(p, pc)
	}
}

// Tick advances one simulation step and returns the events it emitted
// After a win or loss the session is frozen and Tick returns nothing until Reset
func (g *Game) Tick() []event.GameEvent {
	if g.world.Session.Terminal() {
		g.events = nil
		return nil
	}
	g.world.Update()
	g.statTicks.Add(1)
	g.events = g.world.Dispatch()
	return g.events
}

// Reset discards every entity and starts a new Playing session from any phase
func (g *Game) Reset() []event.GameEvent {
	s := g.world.BeginSession()
	g.events = g.world.Dispatch()
	log.Printf("[game] reset #%d session %s", s.Resets, s.ID)
	return g.events
}

// Events returns what the last Tick or Reset emitted
func (g *Game) Events() []event.GameEvent {
	return g.events
}

// Snapshot copies the stage for presentation
func (g *Game) Snapshot() engine.Snapshot {
	return g.world.Snapshot()
}

// Phase returns the current session phase
func (g *Game) Phase() engine.Phase {
	return g.world.Session.Phase
}

// Session returns the current session record
func (g *Game) Session() engine.Session {
	return g.world.Session
}

// World exposes the simulation state for tests and tooling
func (g *Game) World() *engine.World {
	return g.world
}

// Config returns the configuration the game was built with
func (g *Game) Config() *config.Config {
	return g.cfg
}
