package parameter

// System Execution Priorities (lower runs first)
// Paralysis runs before behavior so a box pushed away frees the monster on the very next tick
const (
	PriorityParalysis = 10
	PriorityTransform = 20
	PriorityBehavior  = 30 // Decides from the previous tick's resolved positions
	PriorityMovement  = 40 // Player first, then monsters in id order
	PriorityOutcome   = 50 // Encirclement, ripper purge, win check
)
