package engine

import "github.com/google/uuid"

// Phase is the session outcome state
type Phase uint8

const (
	PhasePlaying Phase = iota
	PhaseWon
	PhaseLost
)

func (p Phase) String() string {
	switch p {
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	default:
		return "playing"
	}
}

// Session tracks one run of the stage, from reset to win or loss
// Playing -> {Won | Lost}, both return to Playing only through a reset
type Session struct {
	ID     uuid.UUID
	Phase  Phase
	Tick   int64
	Kills  int
	Resets int64 // Sessions started since process start, 1 for the first
}

// Terminal reports whether the session has ended
func (s Session) Terminal() bool {
	return s.Phase != PhasePlaying
}
