package event

// EventType represents the type of game event
type EventType int

const (
	// EventNone is the zero value, never emitted
	EventNone EventType = iota

	// === Session Event ===

	// EventGameReset discards the stage and starts a new session
	// Trigger: Game.Reset (reset key, startup)
	// Consumer: SpawnSystem, OutcomeSystem, presentation | Payload: *ResetPayload
	EventGameReset

	// EventPlayerDied signals the player touched a living monster, session is Lost
	// Trigger: MovementSystem
	// Consumer: presentation, audio | Payload: *PlayerDiedPayload
	EventPlayerDied

	// EventWon signals every monster is dead, session is Won
	// Trigger: OutcomeSystem
	// Consumer: presentation, audio | Payload: *WonPayload
	EventWon

	// === Game Event ===

	// EventMonsterKilled signals a monster was fully encircled and removed
	// Trigger: OutcomeSystem, exactly once per monster
	// Consumer: presentation (kill text), audio, status | Payload: *MonsterKilledPayload
	EventMonsterKilled

	// EventStickyPurged signals a ripper death destroyed every sticky box
	// Trigger: OutcomeSystem after a ripper kill
	// Consumer: presentation | Payload: *StickyPurgedPayload
	EventStickyPurged

	// EventTransformChanged signals a box monster moved to the next camouflage state
	// Trigger: TransformSystem
	// Consumer: presentation | Payload: *TransformChangedPayload
	EventTransformChanged

	// EventBoxPushed signals a push chain succeeded
	// Trigger: MovementSystem
	// Consumer: status | Payload: *BoxPushedPayload
	EventBoxPushed
)

// GameEvent represents a single game event with metadata
type GameEvent struct {
	Type    EventType
	Payload any
	// Tick is the simulation tick the event was emitted on
	Tick int64
}
