package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// DrawTextFunc draws s with its top-left corner at (x, y).
type DrawTextFunc func(screen *ebiten.Image, face font.Face, s string, x, y int, clr color.Color)

var (
	colorButton         = color.RGBA{60, 60, 70, 220}
	colorButtonActive   = color.RGBA{0, 120, 255, 255}
	colorButtonDisabled = color.RGBA{45, 45, 50, 160}
	colorTextDisabled   = color.RGBA{130, 130, 130, 255}
)

type Button struct {
	Label   string
	X, Y    float32
	W, H    float32
	OnClick func()

	// Active highlights the button, e.g. the current tool.
	Active func() bool
	// Enabled gates OnClick; nil means always enabled.
	Enabled func() bool
}

func (b *Button) IsMouseOver(mx, my int) bool {
	return float32(mx) >= b.X && float32(mx) <= b.X+b.W &&
		float32(my) >= b.Y && float32(my) <= b.Y+b.H
}

func (b *Button) IsEnabled() bool {
	return b.Enabled == nil || b.Enabled()
}

// Click runs OnClick when the button is enabled and reports whether it did.
func (b *Button) Click() bool {
	if !b.IsEnabled() || b.OnClick == nil {
		return false
	}
	b.OnClick()
	return true
}

func (b *Button) Draw(screen *ebiten.Image, face font.Face, drawText DrawTextFunc) {
	bg, fg := colorButton, color.Color(color.White)
	switch {
	case !b.IsEnabled():
		bg, fg = colorButtonDisabled, colorTextDisabled
	case b.Active != nil && b.Active():
		bg = colorButtonActive
	}
	vector.DrawFilledRect(screen, b.X, b.Y, b.W, b.H, bg, false)
	if face == nil || drawText == nil {
		return
	}
	drawText(screen, face, b.Label, int(b.X)+8, int(b.Y)+(int(b.H)-13)/2, fg)
}
