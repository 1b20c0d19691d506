package ui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	panelPadding = 16
	lineHeight   = 20
)

// panelLine is one row of the side panel.
type panelLine struct {
	text string
	face *text.GoTextFace
	c    color.Color
}

// Panel shows the current position's FEN fields, diagnostics and key help
// to the right of the board.
type Panel struct {
	x, width int
	theme    *Theme
	scale    float64
}

// NewPanel creates a panel starting at logical x.
func NewPanel(x, width int, theme *Theme) *Panel {
	return &Panel{x: x, width: width, theme: theme, scale: 1.0}
}

// SetScale sets the HiDPI scale factor for rendering.
func (p *Panel) SetScale(scale float64) {
	p.scale = scale
}

func (p *Panel) lines(e *Entry, index, total int, status string) []panelLine {
	fg, warn := p.theme.TextColor, p.theme.WarningColor
	b := &e.Board

	out := []panelLine{
		{e.Label, boldFace, fg},
		{fmt.Sprintf("Position %d of %d", index+1, total), regularFace, fg},
		{"", regularFace, fg},
	}

	fields := strings.Fields(b.FEN())
	names := []string{"board", "turn", "castle", "e.p.", "half", "full"}
	for i, f := range fields {
		out = append(out, panelLine{fmt.Sprintf("%-6s %s", names[i], f), monoFace, fg})
	}

	out = append(out,
		panelLine{"", regularFace, fg},
		panelLine{b.SideToMove().String() + " to move", regularFace, fg},
	)
	for _, d := range e.Diagnostics {
		out = append(out, panelLine{d.String(), monoFace, warn})
	}
	if status != "" {
		out = append(out, panelLine{status, regularFace, warn})
	}

	out = append(out,
		panelLine{"", regularFace, fg},
		panelLine{"←/→ position   F flip", regularFace, fg},
		panelLine{"S save   Esc clear", regularFace, fg},
	)
	return out
}

// Draw renders the panel for entry e.
func (p *Panel) Draw(screen *ebiten.Image, e *Entry, index, total int, status string) {
	sx := float32(float64(p.x) * p.scale)
	sw := float32(float64(p.width) * p.scale)
	vector.DrawFilledRect(screen, sx, 0, sw, float32(screen.Bounds().Dy()), p.theme.Background, false)

	y := panelPadding
	for _, l := range p.lines(e, index, total, status) {
		p.drawText(screen, l.text, l.face, p.x+panelPadding, y, l.c)
		y += lineHeight
	}
}

func (p *Panel) drawText(screen *ebiten.Image, s string, face *text.GoTextFace, x, y int, c color.Color) {
	face = scaledFace(face, p.scale)
	if face == nil || s == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x)*p.scale, float64(y)*p.scale)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}
