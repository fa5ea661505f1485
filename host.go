package main

import (
	"github.com/sirupsen/logrus"

	"plan-measure/input"
	"plan-measure/measure"
)

var _ input.Host = (*Game)(nil)

func (g *Game) ScreenToStage(sx, sy float64) (float64, float64) {
	return g.mapper.ScreenToStage(sx, sy)
}

func (g *Game) InStage(mx, my int) bool {
	return g.mapper.InStage(float64(mx), float64(my))
}

func (g *Game) IsMouseOver(mx, my int) bool {
	return g.ui.IsMouseOver(mx, my)
}

func (g *Game) ListRowAt(mx, my int) (string, bool) {
	if g.modal.IsOpen() {
		return "", false
	}
	return g.list.RowAt(mx, my)
}

func (g *Game) PointerDown(x, y float64) { g.editor.PointerDown(x, y) }
func (g *Game) PointerMove(x, y float64) { g.editor.PointerMove(x, y) }
func (g *Game) PointerUp(x, y float64)   { g.editor.PointerUp(x, y) }
func (g *Game) CancelGesture()           { g.editor.Cancel() }

func (g *Game) SetTool(t measure.Tool) {
	if t == measure.ToolMeasure && !g.editor.HasImage() {
		g.ui.Debug.SetError("Open a plan image before measuring")
		return
	}
	g.editor.SetTool(t)
	g.log.WithField("tool", t).Debug("tool changed")
}

func (g *Game) Select(id string) {
	g.editor.Select(id)
}

func (g *Game) BeginRename(id string) {
	g.list.BeginRename(id)
}

func (g *Game) DeleteSelected() {
	id, ok := g.editor.Selected()
	if !ok {
		return
	}
	if g.editor.Delete(id) {
		g.log.WithFields(logrus.Fields{"project": g.project.ID, "id": id}).Info("measurement deleted")
	}
}

func (g *Game) PromoteAt(x, y float64) {
	sid, ok := g.editor.SuggestionAt(x, y)
	if !ok {
		return
	}
	m, ok := g.editor.Promote(sid)
	if !ok {
		g.ui.Debug.SetError("Suggestion is too small to measure")
		return
	}
	g.editor.Select(m.ID)
	g.log.WithFields(logrus.Fields{"project": g.project.ID, "id": m.ID}).Info("suggestion promoted")
}

func (g *Game) TextTarget() input.TextTarget {
	if g.modal.IsOpen() {
		return g.modal
	}
	if _, ok := g.list.Editing(); ok {
		return g.list
	}
	return nil
}

func (g *Game) RequestScreenshot() {
	g.screenshotRequested = true
}
