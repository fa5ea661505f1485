package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"plan-measure/measure"
	"plan-measure/ui"
)

func (g *Game) cursorStage() (float64, float64) {
	mx, my := ebiten.CursorPosition()
	return g.mapper.ScreenToStage(float64(mx), float64(my))
}

func (g *Game) drawMeasurements(screen *ebiten.Image) {
	cx, cy := g.cursorStage()
	hovered, _ := g.editor.HitTest(cx, cy)
	selected, _ := g.editor.Selected()
	active, transforming := g.editor.Active()

	for i, m := range g.editor.Measurements() {
		if transforming && m.ID == active.ID {
			m = active
		}
		border := ColorMeasureBorder
		switch {
		case m.ID == selected:
			border = ColorMeasureActive
		case m.ID == hovered:
			border = ColorMeasureHover
		}
		g.drawRect(screen, m.Rect(), ColorMeasureFill, border)
		g.drawLabel(screen, m.X, m.Y, fmt.Sprintf("%s\n%s", ui.RowLabel(i+1, m.Name), ui.FormatArea(m.AreaM2)), ColorLabelText)
		if m.ID == selected {
			g.drawHandles(screen, m, cx, cy)
		}
	}
}

func (g *Game) drawRect(screen *ebiten.Image, r measure.Rect, fill, border color.Color) {
	sx, sy := g.mapper.StageToScreen(r.X, r.Y)
	vector.DrawFilledRect(screen, float32(sx), float32(sy), float32(r.Width), float32(r.Height), fill, false)
	vector.StrokeRect(screen, float32(sx), float32(sy), float32(r.Width), float32(r.Height), BorderThickness, border, false)
}

func (g *Game) drawHandles(screen *ebiten.Image, m measure.Measurement, cx, cy float64) {
	grabbed := g.editor.ActiveHandle()
	if grabbed == measure.HandleNone {
		grabbed = m.CornerAt(cx, cy, g.editor.HandleRadius)
	}
	for i, c := range m.Corners() {
		clr := ColorCornerHandle
		if measure.Handle(i) == grabbed {
			clr = ColorHandleActive
		}
		sx, sy := g.mapper.StageToScreen(c[0], c[1])
		vector.DrawFilledRect(screen, float32(sx-HandleSize/2), float32(sy-HandleSize/2), HandleSize, HandleSize, clr, false)
	}
}

func (g *Game) drawLabel(screen *ebiten.Image, x, y float64, s string, clr color.Color) {
	sx, sy := g.mapper.StageToScreen(x, y)
	w := float32(TextWidth(g.face, s)) + 2*LabelPaddingX
	h := float32(2*g.face.Metrics().Height.Round()) + 2*LabelPaddingY
	vector.DrawFilledRect(screen, float32(sx)+BorderThickness, float32(sy)+BorderThickness, w, h, ColorLabelBack, false)
	DrawTextLines(screen, g.face, s, int(sx+BorderThickness+LabelPaddingX), int(sy+BorderThickness+LabelPaddingY), clr)
}

func (g *Game) drawDraft(screen *ebiten.Image) {
	r, ok := g.editor.Draft()
	if !ok {
		return
	}
	border := ColorDraft
	if r.Width < measure.MinSize || r.Height < measure.MinSize {
		border = ColorDraftInvalid
	}
	g.drawRect(screen, r, color.Transparent, border)

	area := measure.Area(r.Width, r.Height, g.editor.Scale())
	g.drawLabel(screen, r.X, r.Y+r.Height, ui.FormatArea(area), ColorLabelText)
}

func (g *Game) drawSuggestions(screen *ebiten.Image) {
	for _, s := range g.editor.Suggestions() {
		sx, sy := g.mapper.StageToScreen(s.X, s.Y)
		strokeDashedRect(screen, sx, sy, s.Width, s.Height, ColorSuggestion)

		label := s.Label
		if label == "" {
			label = "suggestion"
		}
		if s.Confidence > 0 {
			label = fmt.Sprintf("%s (%.0f%%)", label, s.Confidence*100)
		}
		DrawTextLines(screen, g.face, label+"\nP to accept", int(sx)+4, int(sy)+4, ColorSuggestionText)
	}
}

func strokeDashedRect(screen *ebiten.Image, x, y, w, h float64, clr color.Color) {
	dashedLine(screen, x, y, x+w, y, clr)
	dashedLine(screen, x+w, y, x+w, y+h, clr)
	dashedLine(screen, x+w, y+h, x, y+h, clr)
	dashedLine(screen, x, y+h, x, y, clr)
}

func dashedLine(screen *ebiten.Image, x1, y1, x2, y2 float64, clr color.Color) {
	length := math.Hypot(x2-x1, y2-y1)
	if length == 0 {
		return
	}
	ux, uy := (x2-x1)/length, (y2-y1)/length
	for d := 0.0; d < length; d += 2 * DashLength {
		end := math.Min(d+DashLength, length)
		vector.StrokeLine(screen,
			float32(x1+ux*d), float32(y1+uy*d),
			float32(x1+ux*end), float32(y1+uy*end),
			BorderThickness, clr, false)
	}
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	cx, cy := g.cursorStage()
	ix, iy := g.mapper.StageToImage(cx, cy)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
		"Project: %s  Tool: %s  State: %s\n"+
			"Scale: %.2f px/m  Cursor: (%.0f, %.0f) image px",
		g.project.ID, g.editor.Tool(), g.editor.State(),
		g.editor.Scale(), ix, iy,
	), 10, int(ui.ToolbarHeight)+6)
}
