package engine

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/lixenwraith/warehouse/component"
	"github.com/lixenwraith/warehouse/core"
	"github.com/lixenwraith/warehouse/event"
	"github.com/lixenwraith/warehouse/status"
)

// maxDispatchRounds bounds handler-emitted event cascades within one Dispatch
const maxDispatchRounds = 8

// World is the entity model: typed component stores, the occupancy grid and the tick pipeline
// Every mutation happens on the goroutine that calls Update and Dispatch
type World struct {
	mu           sync.RWMutex
	nextEntityID core.Entity

	Positions  *Position
	Identity   *Store[component.IdentityComponent]
	Monsters   *Store[component.MonsterComponent]
	Transforms *Store[component.TransformComponent]
	Players    *Store[component.PlayerComponent]

	// Player is the live player entity, 0 after death until the next reset
	Player  core.Entity
	Session Session

	// Rand is the single seeded source for every random decision
	Rand *rand.Rand

	Events *event.EventQueue
	Status *status.Registry

	router  *EventRouter
	systems []System
	resets  int64

	statDropped *atomic.Int64
}

// NewWorld creates an empty world over a width x height stage
func NewWorld(width, height int, seed uint64, reg *status.Registry) *World {
	if reg == nil {
		reg = status.NewRegistry()
	}
	q := event.NewEventQueue()
	return &World{
		nextEntityID: 1,
		Positions:    NewPosition(width, height),
		Identity:     NewStore[component.IdentityComponent](),
		Monsters:     NewStore[component.MonsterComponent](),
		Transforms:   NewStore[component.TransformComponent](),
		Players:      NewStore[component.PlayerComponent](),
		Rand:         rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		Events:       q,
		Status:       reg,
		router:       NewEventRouter(q),
		statDropped:  reg.Ints.Get(status.KeyEventsDropped),
	}
}

// CreateEntity reserves a new entity ID
func (w *World) CreateEntity() core.Entity {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextEntityID
	w.nextEntityID++
	return id
}

// Spawn creates a live entity of kind at pt
// Fails with ErrInvalidKind for KindNone or a second player, and with the Position errors otherwise
func (w *World) Spawn(kind component.Kind, pt core.Point) (core.Entity, error) {
	if kind.Capabilities() == 0 {
		return 0, fmt.Errorf("spawn %s: %w", kind, ErrInvalidKind)
	}
	if kind == component.KindPlayer && w.Player != 0 {
		return 0, fmt.Errorf("spawn second player: %w", ErrInvalidKind)
	}

	e := w.CreateEntity()
	if err := w.Positions.Place(e, pt); err != nil {
		return 0, fmt.Errorf("spawn %s: %w", kind, err)
	}
	w.Identity.Set(e, component.IdentityComponent{Kind: kind, Alive: true, LastPos: pt})

	if kind == component.KindPlayer {
		w.Player = e
		w.Players.Set(e, component.PlayerComponent{Facing: core.DirE})
	}
	return e, nil
}

// Destroy removes e from the grid and marks it dead
// Returns false if e is unknown or already dead, so a death is recorded exactly once
func (w *World) Destroy(e core.Entity) bool {
	id, ok := w.Identity.Get(e)
	if !ok || !id.Alive {
		return false
	}
	if pt, ok := w.Positions.Remove(e); ok {
		id.LastPos = pt
	}
	id.Alive = false
	w.Identity.Set(e, id)

	w.Monsters.Remove(e)
	w.Transforms.Remove(e)
	w.Players.Remove(e)
	if e == w.Player {
		w.Player = 0
	}
	return true
}

// KindOf returns the kind of e, KindNone if unknown
func (w *World) KindOf(e core.Entity) component.Kind {
	if e == 0 {
		return component.KindNone
	}
	id, ok := w.Identity.Get(e)
	if !ok {
		return component.KindNone
	}
	return id.Kind
}

// IsAlive reports whether e is a live entity
func (w *World) IsAlive(e core.Entity) bool {
	id, ok := w.Identity.Get(e)
	return ok && id.Alive
}

// LiveOfKind returns every live entity of kind k in ascending id order
func (w *World) LiveOfKind(k component.Kind) []core.Entity {
	var out []core.Entity
	for _, e := range w.Identity.All() {
		if id, ok := w.Identity.Get(e); ok && id.Alive && id.Kind == k {
			out = append(out, e)
		}
	}
	return out
}

// Clear removes all entities and components from the world
// Systems, the random source and the reset counter survive
func (w *World) Clear() {
	w.mu.Lock()
	w.nextEntityID = 1
	w.mu.Unlock()

	w.Positions.Clear()
	w.Identity.Clear()
	w.Monsters.Clear()
	w.Transforms.Clear()
	w.Players.Clear()
	w.Player = 0
}

// BeginSession discards the stage and opens a new Playing session
// Population is left to EventGameReset handlers, run them with Dispatch
func (w *World) BeginSession() Session {
	w.Clear()
	w.resets++
	w.Session = Session{
		ID:     uuid.New(),
		Phase:  PhasePlaying,
		Resets: w.resets,
	}
	w.PushEvent(event.EventGameReset, &event.ResetPayload{
		SessionID: w.Session.ID.String(),
		Count:     w.resets,
	})
	return w.Session
}

// AddSystem adds a system to the world and sorts by priority
// Systems implementing EventHandler are registered with the router
func (w *World) AddSystem(system System) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.systems = append(w.systems, system)
	sort.SliceStable(w.systems, func(i, j int) bool {
		return w.systems[i].Priority() < w.systems[j].Priority()
	})

	if h, ok := system.(EventHandler); ok {
		w.router.Register(h)
	}
}

// RegisterHandler routes events to a handler that is not a tick system
func (w *World) RegisterHandler(h EventHandler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.router.Register(h)
}

// Systems returns a copy of all registered systems
func (w *World) Systems() []System {
	w.mu.RLock()
	defer w.mu.RUnlock()
	result := make([]System, len(w.systems))
	copy(result, w.systems)
	return result
}

// Update advances the session by one tick, running systems in priority order
// No-op once the session is terminal; stops mid-pipeline if a system ends it
func (w *World) Update() {
	if w.Session.Terminal() {
		return
	}
	w.Session.Tick++

	for _, system := range w.Systems() {
		if w.Session.Terminal() {
			return
		}
		system.Update()
	}
}

// PushEvent emits a game event stamped with the current tick
func (w *World) PushEvent(eventType event.EventType, payload any) {
	w.Events.Push(event.GameEvent{
		Type:    eventType,
		Payload: payload,
		Tick:    w.Session.Tick,
	})
}

// Dispatch routes pending events to handlers and returns every event consumed
// Events emitted by handlers are routed in the same call
func (w *World) Dispatch() []event.GameEvent {
	var all []event.GameEvent
	for range maxDispatchRounds {
		events := w.router.DispatchAll()
		if len(events) == 0 {
			break
		}
		all = append(all, events...)
	}
	w.statDropped.Store(int64(w.Events.Dropped()))
	return all
}

// End moves the session to a terminal phase, returns false if already terminal
func (w *World) End(p Phase) bool {
	if w.Session.Terminal() || p == PhasePlaying {
		return false
	}
	w.Session.Phase = p
	return true
}
