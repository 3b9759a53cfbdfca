package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/warehouse/component"
)

// Tokyo Night palette
var (
	colorBackground = tcell.NewRGBColor(26, 27, 38)
	colorForeground = tcell.NewRGBColor(192, 202, 245)
	colorComment    = tcell.NewRGBColor(86, 95, 137)
	colorRed        = tcell.NewRGBColor(247, 118, 142)
	colorOrange     = tcell.NewRGBColor(255, 158, 100)
	colorYellow     = tcell.NewRGBColor(224, 175, 104)
	colorGreen      = tcell.NewRGBColor(158, 206, 106)
	colorCyan       = tcell.NewRGBColor(125, 207, 255)
	colorBlue       = tcell.NewRGBColor(122, 162, 247)
	colorMagenta    = tcell.NewRGBColor(187, 154, 247)
	colorBrown      = tcell.NewRGBColor(180, 140, 90)
)

var (
	styleBackground = tcell.StyleDefault.Background(colorBackground).Foreground(colorForeground)
	styleBorder     = styleBackground.Foreground(colorComment)
	styleStatus     = styleBackground.Foreground(colorComment)
	styleTitle      = styleBackground.Foreground(colorCyan).Bold(true)
	styleWin        = styleBackground.Foreground(colorGreen).Bold(true)
	styleLose       = styleBackground.Foreground(colorRed).Bold(true)
	styleKillText   = styleBackground.Foreground(colorYellow).Bold(true)
)

// glyph is how one kind is drawn
type glyph struct {
	r     rune
	color tcell.Color
}

var kindGlyphs = map[component.Kind]glyph{
	component.KindMonsterNormal: {'M', colorRed},
	component.KindMonsterFree:   {'F', colorOrange},
	component.KindMonsterBox:    {'S', colorMagenta},
	component.KindMonsterBoss:   {'B', colorRed},
	component.KindMonsterRipper: {'R', colorBlue},
	component.KindBoxNormal:     {'□', colorBrown},
	component.KindBoxSticky:     {'▣', colorMagenta},
	component.KindWall:          {'♣', colorGreen},
}
