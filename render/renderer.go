package render

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/warehouse/component"
	"github.com/lixenwraith/warehouse/core"
	"github.com/lixenwraith/warehouse/engine"
	"github.com/lixenwraith/warehouse/event"
	"github.com/lixenwraith/warehouse/parameter"
	"github.com/lixenwraith/warehouse/status"
)

// View is the presentation state; the simulation only knows Playing, Won and Lost
type View uint8

const (
	ViewMenu View = iota
	ViewPlaying
)

const (
	killText = "You killed a monster!"
	// cellWidth is the terminal columns per stage cell, keeps the board roughly square
	cellWidth = 2
	originX   = 1
	originY   = 1
)

// Renderer draws snapshots and overlays; it holds no simulation state of its own
type Renderer struct {
	buf    *RenderBuffer
	status *status.Registry

	view      View
	killUntil time.Time
	muted     bool
}

func NewRenderer(reg *status.Registry) *Renderer {
	return &Renderer{
		buf:    NewRenderBuffer(0, 0),
		status: reg,
		view:   ViewMenu,
	}
}

// SetView switches between the menu and the board
func (r *Renderer) SetView(v View) {
	r.view = v
}

func (r *Renderer) View() View {
	return r.view
}

// SetMuted shows the mute flag in the status line
func (r *Renderer) SetMuted(muted bool) {
	r.muted = muted
}

// Buffer exposes the composed frame
func (r *Renderer) Buffer() *RenderBuffer {
	return r.buf
}

// HandleEvents updates overlays from the events of one tick
func (r *Renderer) HandleEvents(events []event.GameEvent, now time.Time) {
	for _, ev := range events {
		switch ev.Type {
		case event.EventMonsterKilled:
			r.killUntil = now.Add(parameter.KillTextDuration)
		case event.EventGameReset:
			r.killUntil = time.Time{}
		}
	}
}

// KillTextVisible reports whether the kill message is on screen at now
func (r *Renderer) KillTextVisible(now time.Time) bool {
	return now.Before(r.killUntil)
}

// FrameSize returns the terminal size needed for a stage
func FrameSize(stageW, stageH int) (int, int) {
	return stageW*cellWidth + 2*originX + 1, stageH + 2*originY + parameter.StatusBarRows
}

// Compose draws the frame for snap into the buffer, sized to the terminal
func (r *Renderer) Compose(snap engine.Snapshot, width, height int, now time.Time) {
	r.buf.Resize(width, height)

	if r.view == ViewMenu {
		r.composeMenu()
		return
	}

	r.composeBoard(snap)
	r.composeStatus(snap)

	switch snap.Session.Phase {
	case engine.PhaseWon:
		r.composeBanner(snap, "YOU WIN!", styleWin)
	case engine.PhaseLost:
		r.composeBanner(snap, "GAME OVER", styleLose)
	default:
		if r.KillTextVisible(now) {
			r.buf.Text(originX, originY+snap.Height+1, killText, styleKillText)
		}
	}
}

// Draw composes and shows a frame
func (r *Renderer) Draw(screen tcell.Screen, snap engine.Snapshot, now time.Time) {
	width, height := screen.Size()
	r.Compose(snap, width, height, now)
	r.buf.Flush(screen)
	screen.Show()
}

func (r *Renderer) composeMenu() {
	_, h := r.buf.Size()
	top := max(0, h/2-4)
	r.buf.TextCentered(top, "W A R E H O U S E", styleTitle)
	r.buf.TextCentered(top+2, "Trap every monster between boxes and walls.", styleBackground)
	r.buf.TextCentered(top+3, "Sticky boxes freeze monsters. Rippers dissolve them.", styleBackground)
	r.buf.TextCentered(top+5, "arrows/hjkl move  yubn diagonal", styleStatus)
	r.buf.TextCentered(top+6, "s start  t reset  m menu  x quit", styleStatus)
}

func (r *Renderer) composeBoard(snap engine.Snapshot) {
	// Border
	right := originX + snap.Width*cellWidth
	bottom := originY + snap.Height
	for x := originX - 1; x <= right; x++ {
		r.buf.Set(x, originY-1, '─', styleBorder)
		r.buf.Set(x, bottom, '─', styleBorder)
	}
	for y := originY - 1; y <= bottom; y++ {
		r.buf.Set(originX-1, y, '│', styleBorder)
		r.buf.Set(right, y, '│', styleBorder)
	}
	r.buf.Set(originX-1, originY-1, '┌', styleBorder)
	r.buf.Set(right, originY-1, '┐', styleBorder)
	r.buf.Set(originX-1, bottom, '└', styleBorder)
	r.buf.Set(right, bottom, '┘', styleBorder)

	for _, es := range snap.Entities {
		if !es.Alive {
			continue
		}
		ch, style := entityGlyph(es)
		r.buf.Set(originX+es.Pos.X*cellWidth, originY+es.Pos.Y, ch, style)
	}
}

// entityGlyph picks the rune and style for one live entity
func entityGlyph(es engine.EntitySnapshot) (rune, tcell.Style) {
	if es.Kind == component.KindPlayer {
		ch := '►'
		if es.Facing == core.DirW {
			ch = '◄'
		}
		return ch, styleBackground.Foreground(colorYellow).Bold(true)
	}

	g, ok := kindGlyphs[es.Kind]
	if !ok {
		return '?', styleBackground
	}

	if es.Kind == component.KindMonsterBox {
		switch es.Transform {
		case component.TransformBox:
			// Camouflaged, indistinguishable from a box
			g = kindGlyphs[component.KindBoxNormal]
		case component.TransformToBox, component.TransformToMonster:
			g.r = 's'
		}
	}

	style := styleBackground.Foreground(g.color)
	if es.Paralyzed {
		style = style.Dim(true)
	}
	return g.r, style
}

func (r *Renderer) composeStatus(snap engine.Snapshot) {
	y := originY + snap.Height + 1
	if r.status == nil {
		return
	}
	sound := "on"
	if r.muted {
		sound = "off"
	}
	line := fmt.Sprintf("tick %d  kills %d  monsters %d  resets %d  sound %s",
		snap.Session.Tick,
		snap.Session.Kills,
		r.status.Int(status.KeyLiveMonster),
		r.status.Int(status.KeyResets),
		sound,
	)
	r.buf.Text(originX, y+1, line, styleStatus)
}

func (r *Renderer) composeBanner(snap engine.Snapshot, title string, style tcell.Style) {
	midY := originY + snap.Height/2
	r.boardCentered(snap, midY-1, " "+title+" ", style)
	r.boardCentered(snap, midY+1, " t play again  m menu  x quit ", styleStatus)
}

// boardCentered writes s centered over the stage, clipped on the left border
func (r *Renderer) boardCentered(snap engine.Snapshot, y int, s string, style tcell.Style) {
	x := originX + (snap.Width*cellWidth-len([]rune(s)))/2
	r.buf.Text(max(0, x), y, s, style)
}
