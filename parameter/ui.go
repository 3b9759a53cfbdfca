package parameter

import "time"

// UI Timing
const (
	// KillTextDuration is how long "You killed a monster!" stays on screen
	KillTextDuration = 1 * time.Second
)

// UI Layout
const (
	// StatusBarRows is the number of rows reserved below the stage
	StatusBarRows = 2
)
