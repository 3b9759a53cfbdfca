package component

// TransformState is the box-monster camouflage cycle position
type TransformState uint8

const (
	TransformMonster TransformState = iota
	TransformToBox
	TransformBox
	TransformToMonster
)

var transformNames = [...]string{
	TransformMonster:   "monster",
	TransformToBox:     "to_box",
	TransformBox:       "box",
	TransformToMonster: "to_monster",
}

func (s TransformState) String() string {
	if int(s) >= len(transformNames) {
		return "invalid"
	}
	return transformNames[s]
}

// Next returns the following state in the cycle
func (s TransformState) Next() TransformState {
	return (s + 1) % 4
}

// TransformComponent drives the Monster -> ToBox -> Box -> ToMonster cycle
type TransformComponent struct {
	State TransformState
	// Remaining is ticks left in State
	Remaining int
}

// Active reports whether the entity behaves as a monster (moves, can be killed)
func (t TransformComponent) Active() bool {
	return t.State == TransformMonster
}
