package input

// Command is a non-movement key action
type Command uint8

const (
	CommandNone Command = iota
	CommandStart         // s
	CommandReset         // t
	CommandMenu          // m
	CommandQuit          // x, Esc, Ctrl+C
	CommandToggleMute    // Ctrl+S
	CommandResize        // Terminal resize event
)

var commandNames = [...]string{
	CommandNone:       "none",
	CommandStart:      "start",
	CommandReset:      "reset",
	CommandMenu:       "menu",
	CommandQuit:       "quit",
	CommandToggleMute: "toggle_mute",
	CommandResize:     "resize",
}

func (c Command) String() string {
	if int(c) >= len(commandNames) {
		return "invalid"
	}
	return commandNames[c]
}
