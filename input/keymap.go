package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/warehouse/core"
)

// specialKeys maps non-rune keys
var specialKeys = map[tcell.Key]Action{
	tcell.KeyUp:     {Dir: core.DirN},
	tcell.KeyDown:   {Dir: core.DirS},
	tcell.KeyLeft:   {Dir: core.DirW},
	tcell.KeyRight:  {Dir: core.DirE},
	tcell.KeyEscape: {Cmd: CommandQuit},
	tcell.KeyCtrlC:  {Cmd: CommandQuit},
	tcell.KeyCtrlS:  {Cmd: CommandToggleMute},
}

// runeKeys maps printable keys, vi-style hjkl plus yubn diagonals
var runeKeys = map[rune]Action{
	'k': {Dir: core.DirN},
	'j': {Dir: core.DirS},
	'h': {Dir: core.DirW},
	'l': {Dir: core.DirE},
	'y': {Dir: core.DirNW},
	'u': {Dir: core.DirNE},
	'b': {Dir: core.DirSW},
	'n': {Dir: core.DirSE},

	's': {Cmd: CommandStart},
	't': {Cmd: CommandReset},
	'm': {Cmd: CommandMenu},
	'x': {Cmd: CommandQuit},
}

// Action is what a single terminal event asks for
type Action struct {
	Dir core.Direction
	Cmd Command
}

// Translate maps a tcell event to an action, zero Action for unbound input
func Translate(ev tcell.Event) Action {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyRune {
			return runeKeys[ev.Rune()]
		}
		return specialKeys[ev.Key()]
	case *tcell.EventResize:
		return Action{Cmd: CommandResize}
	}
	return Action{}
}
