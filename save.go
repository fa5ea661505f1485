package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sqweek/dialog"

	"plan-measure/canvas"
	"plan-measure/engine"
	"plan-measure/export"
	"plan-measure/measure"
	"plan-measure/project"
	"plan-measure/store"
)

// snapshot captures the editor state. UpdatedAt is left to the store.
func (g *Game) snapshot() *project.Snapshot {
	return &project.Snapshot{
		ID:           g.project.ID,
		Image:        g.project.Image,
		Scale:        g.editor.Scale(),
		Measurements: g.editor.Measurements(),
		Suggestions:  g.editor.Suggestions(),
	}
}

// OpenProject loads a project from the store, starting an empty one when it
// does not exist yet.
func (g *Game) OpenProject(id string) error {
	snap, err := g.store.Load(g.ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		snap = project.New(id)
	} else if err != nil {
		return err
	}

	g.project = snap
	g.editor.Load(snap.Measurements, snap.Suggestions)
	g.editor.SetScale(snap.Scale)
	g.list.SetItems(snap.Measurements)
	g.list.Selected = ""

	g.planSrc, g.plan = nil, nil
	g.mapper.SetImage(0, 0)
	g.editor.SetImage(false)
	if snap.Image != "" {
		if err := g.LoadPlan(snap.Image); err != nil {
			g.ui.Debug.SetError(err.Error())
		}
	}

	g.savedHash = g.contentHash(g.snapshot())
	g.dirty = false
	g.log.WithFields(logrus.Fields{
		"project":      id,
		"measurements": len(snap.Measurements),
		"scale":        snap.Scale,
	}).Info("project opened")
	return nil
}

// LoadPlan replaces the background image. Existing measurements keep their
// stage coordinates.
func (g *Game) LoadPlan(path string) error {
	img, err := canvas.LoadImage(path)
	if err != nil {
		g.log.WithError(err).WithField("image", path).Error("load plan")
		return err
	}

	b := img.Bounds()
	g.planSrc, g.plan = img, nil
	g.mapper.SetImage(b.Dx(), b.Dy())
	g.editor.SetImage(true)
	g.project.Image = path
	g.dirty = true

	g.log.WithFields(logrus.Fields{"image": path, "width": b.Dx(), "height": b.Dy()}).Info("plan loaded")
	return nil
}

func openPlanDialog() (string, error) {
	return dialog.File().
		Filter("Plan images", "png", "jpg", "jpeg", "bmp", "tif", "tiff", "webp").
		Title("Open plan").
		Load()
}

func (g *Game) openPlan() {
	path, err := g.openDialog()
	if errors.Is(err, dialog.ErrCancelled) || (err == nil && path == "") {
		return
	}
	if err != nil {
		g.log.WithError(err).Error("open dialog")
		g.ui.Debug.SetError(err.Error())
		return
	}
	if err := g.LoadPlan(path); err != nil {
		g.ui.Debug.SetError(err.Error())
		return
	}
	g.ui.Debug.SetStatus("Opened " + filepath.Base(path))
}

// Save writes the current project to the store.
func (g *Game) Save() error {
	snap := g.snapshot()
	hash := g.contentHash(snap)
	if err := g.store.Save(g.ctx, snap); err != nil {
		g.log.WithError(err).WithField("project", snap.ID).Error("save")
		g.ui.Debug.SetError(err.Error())
		return err
	}

	g.project.UpdatedAt = snap.UpdatedAt
	g.savedHash = hash
	g.dirty = false
	g.log.WithFields(logrus.Fields{"project": snap.ID, "measurements": len(snap.Measurements)}).Info("project saved")
	g.ui.Debug.SetStatus("Saved " + snap.ID)
	return nil
}

// autosaveIfChanged saves after a committed change once no gesture is in
// progress, skipping saves that would write identical content.
func (g *Game) autosaveIfChanged() {
	if !g.autosave || !g.dirty || g.input.Gesturing() {
		return
	}
	if hash := g.contentHash(g.snapshot()); hash != "" && hash == g.savedHash {
		g.dirty = false
		return
	}
	_ = g.Save()
}

// contentHash fingerprints snap, returning "" when it cannot be encoded so
// that it never matches a saved hash.
func (g *Game) contentHash(snap *project.Snapshot) string {
	hash, err := engine.Hash(snap)
	if err != nil {
		g.log.WithError(err).WithField("project", snap.ID).Warn("fingerprint project")
		return ""
	}
	return hash
}

// Export writes the measurement table next to the other exports and returns
// the file path.
func (g *Game) Export() (string, error) {
	path := filepath.Join(g.exportDir, g.project.ID+"."+g.exportFormat)
	err := writeExport(path, g.exportFormat, g.editor.Measurements())
	if err != nil {
		g.log.WithError(err).WithField("file", path).Error("export")
		g.ui.Debug.SetError(err.Error())
		return "", err
	}
	g.log.WithFields(logrus.Fields{"project": g.project.ID, "file": path}).Info("exported")
	g.ui.Debug.SetStatus("Exported " + path)
	return path, nil
}

func writeExport(path, format string, list []measure.Measurement) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "export")
	}
	if err := export.Write(f, format, list); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return errors.Wrap(err, "export")
	}
	return nil
}

// openCalibration opens the calibration modal, pre-filling the pixel length
// with the longer side of the selected measurement.
func (g *Game) openCalibration() {
	pixels := ""
	if id, ok := g.editor.Selected(); ok {
		if m, ok := g.editor.Get(id); ok {
			pixels = strconv.FormatFloat(math.Round(math.Max(m.Width, m.Height)*100)/100, 'f', -1, 64)
		}
	}
	g.editor.Cancel()
	g.modal.Open(pixels)
}

func (g *Game) applyScale(scale float64) {
	g.editor.SetScale(scale)
	g.dirty = true
	g.log.WithFields(logrus.Fields{"project": g.project.ID, "scale": scale}).Info("scale calibrated")

	msg := fmt.Sprintf("Scale set to %.2f px/m", scale)
	if g.editor.Len() > 0 {
		msg += "; press Recalc to update existing areas"
	}
	g.ui.Debug.SetStatus(msg)
}

func (g *Game) recalc() {
	if g.editor.RecomputeAreas() {
		g.log.WithFields(logrus.Fields{"project": g.project.ID, "scale": g.editor.Scale()}).Info("areas recomputed")
	}
	g.ui.Debug.SetStatus("Areas recomputed")
}
