package engine

import "github.com/lixenwraith/warehouse/event"

// System is one stage of the tick pipeline
// Systems hold their *World and run sequentially in Priority order
type System interface {
	Name() string
	Priority() int // Lower values run first
	Update()
}

// EventHandler processes specific event types
// Systems implement this interface to receive routed events
type EventHandler interface {
	// HandleEvent processes a single event
	// Called synchronously during World.Dispatch, never concurrently with Update
	HandleEvent(ev event.GameEvent)

	// EventTypes returns the event types this handler processes
	EventTypes() []event.EventType
}
