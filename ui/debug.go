package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// DebugPanel shows the last error, or a status message, in the bottom-left
// corner of the stage.
type DebugPanel struct {
	Error  string
	Status string
}

func (d *DebugPanel) SetError(msg string) {
	d.Error = msg
}

func (d *DebugPanel) SetStatus(msg string) {
	d.Status = msg
	d.Error = ""
}

func (d *DebugPanel) Clear() {
	d.Error = ""
	d.Status = ""
}

func (d *DebugPanel) Draw(screen *ebiten.Image, x, y, w int, face font.Face, drawText DrawTextFunc) {
	if d == nil || (d.Error == "" && d.Status == "") {
		return
	}
	msg, fg := d.Status, color.Color(color.RGBA{200, 200, 200, 255})
	if d.Error != "" {
		msg, fg = d.Error, color.RGBA{255, 200, 50, 255}
	}

	ph := 24
	vector.DrawFilledRect(screen, float32(x), float32(y-ph), float32(w), float32(ph), color.RGBA{40, 40, 40, 220}, false)
	if face != nil && drawText != nil {
		drawText(screen, face, msg, x+8, y-ph+5, fg)
	}
}
