package canvas

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// DrawBackground renders the plan image fitted into the stage, or a grid when
// no image is loaded yet.
func DrawBackground(m *Mapper, screen, plan *ebiten.Image, gridSize float64, gridColor, stageColor color.Color) {
	ox, oy := m.StageToScreen(0, 0)
	vector.DrawFilledRect(screen, float32(ox), float32(oy), float32(m.ContainerW), float32(m.ContainerH), stageColor, false)

	if plan == nil || !m.HasImage() {
		drawGrid(m, screen, gridSize, gridColor)
		return
	}

	sx, sy := m.ImageToStage(0, 0)
	sx, sy = m.StageToScreen(sx, sy)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(m.FitScale, m.FitScale)
	op.GeoM.Translate(sx, sy)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(plan, op)
}

func drawGrid(m *Mapper, screen *ebiten.Image, gridSize float64, gridColor color.Color) {
	ox, oy := m.StageToScreen(0, 0)
	right := ox + m.ContainerW
	bottom := oy + m.ContainerH

	for x := ox; x < right; x += gridSize {
		vector.StrokeLine(screen, float32(x), float32(oy), float32(x), float32(bottom), 1, gridColor, false)
	}
	for y := oy; y < bottom; y += gridSize {
		vector.StrokeLine(screen, float32(ox), float32(y), float32(right), float32(y), 1, gridColor, false)
	}

	cx := ox + math.Floor(m.ContainerW/2)
	cy := oy + math.Floor(m.ContainerH/2)
	vector.StrokeLine(screen, float32(cx-15), float32(cy), float32(cx+15), float32(cy), 2, gridColor, false)
	vector.StrokeLine(screen, float32(cx), float32(cy-15), float32(cx), float32(cy+15), 2, gridColor, false)
}
