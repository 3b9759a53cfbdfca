package parameter

import "time"

// Game Loop & Engine Timing
const (
	// GameUpdateInterval is the simulation tick, one discrete update per rendered frame
	GameUpdateInterval = 100 * time.Millisecond

	// SubmitQueueSize is the capacity of the clock scheduler command channel
	// Input goroutines block when the loop falls this far behind
	SubmitQueueSize = 64
)

// ECS & Resources Limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 1024

	// EventBufferMask is the bitmask for fast modulo operations (1024 - 1)
	EventBufferMask = 1023
)

// Stage Defaults
const (
	// DefaultStageWidth is the stage column count
	DefaultStageWidth = 20

	// DefaultStageHeight is the stage row count
	DefaultStageHeight = 20
)
