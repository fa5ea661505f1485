package main

import (
	"context"
	"image"
	"image/png"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font"

	"plan-measure/canvas"
	"plan-measure/input"
	"plan-measure/measure"
	"plan-measure/project"
	"plan-measure/store"
	"plan-measure/ui"
)

// Options configure a Game.
type Options struct {
	Store     store.Store
	Log       *logrus.Logger
	ExportDir string
	// ExportFormat is "csv" or "xlsx".
	ExportFormat string
	Autosave     bool
}

type Game struct {
	ctx   context.Context
	log   *logrus.Logger
	store store.Store

	project    *project.Snapshot
	editor     *measure.Editor
	mapper     *canvas.Mapper
	calibrator *measure.Calibrator

	planSrc image.Image
	plan    *ebiten.Image

	screenWidth  int
	screenHeight int

	// Sub-systems
	input *input.InputSystem
	ui    *ui.UISystem
	list  *ui.ListPanel
	modal *ui.CalibrateModal
	face  font.Face

	exportDir    string
	exportFormat string
	autosave     bool
	dirty        bool
	savedHash    string

	openDialog func() (string, error)

	screenshotRequested bool
}

func NewGame(ctx context.Context, opts Options) *Game {
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}
	if opts.ExportFormat == "" {
		opts.ExportFormat = "xlsx"
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}

	g := &Game{
		ctx:          ctx,
		log:          opts.Log,
		store:        opts.Store,
		project:      project.New("default"),
		editor:       measure.NewEditor(measure.DefaultScale),
		mapper:       canvas.NewMapper(0, ui.ToolbarHeight),
		calibrator:   &measure.Calibrator{},
		exportDir:    opts.ExportDir,
		exportFormat: opts.ExportFormat,
		autosave:     opts.Autosave,
		openDialog:   openPlanDialog,
	}

	g.editor.HandleRadius = HandleRadius
	g.editor.OnChange = g.onChange
	g.editor.OnSelect = func(id string) { g.list.Selected = id }

	g.list = &ui.ListPanel{OnRename: g.editor.Rename}
	g.modal = ui.NewCalibrateModal(g.calibrator, g.applyScale)
	g.face = LoadUIFont(FontPath, g.log)
	g.ui = ui.NewUISystem(g.face, g.screenSize, DrawTextLines, ui.Actions{
		Select:     func() { g.SetTool(measure.ToolSelect) },
		Measure:    func() { g.SetTool(measure.ToolMeasure) },
		Calibrate:  g.openCalibration,
		Recalc:     g.recalc,
		Open:       g.openPlan,
		Save:       func() { _ = g.Save() },
		Export:     func() { _, _ = g.Export() },
		ToolActive: func(name string) bool { return g.editor.Tool().String() == name },
		HasImage:   g.editor.HasImage,
	}, g.list, g.modal)
	g.input = input.NewInputSystem(g)

	g.Layout(DefaultWindowWidth, DefaultWindowHeight)
	return g
}

func (g *Game) screenSize() (int, int) {
	return g.screenWidth, g.screenHeight
}

func (g *Game) onChange(list []measure.Measurement) {
	g.list.SetItems(list)
	g.dirty = true
	g.log.WithFields(logrus.Fields{
		"project":      g.project.ID,
		"measurements": len(list),
	}).Debug("measurements changed")
}

func (g *Game) Update() error {
	// Delegate to sub-systems
	g.input.Update()
	g.ui.Update()
	g.autosaveIfChanged()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(ColorBackground)

	if g.plan == nil && g.planSrc != nil {
		g.plan = ebiten.NewImageFromImage(g.planSrc)
	}
	canvas.DrawBackground(g.mapper, screen, g.plan, GridSize, ColorGrid, ColorStage)

	if g.editor.HasImage() {
		g.drawSuggestions(screen)
		g.drawMeasurements(screen)
		g.drawDraft(screen)
	}
	g.drawStatus(screen)

	g.ui.Draw(screen)

	// --- Save Screenshot ---
	if g.screenshotRequested {
		g.screenshotRequested = false
		g.saveScreenshot(screen)
	}
}

func (g *Game) saveScreenshot(screen *ebiten.Image) {
	f, err := os.Create(ScreenshotPng)
	if err != nil {
		g.log.WithError(err).Error("screenshot")
		return
	}
	defer f.Close()
	if err := png.Encode(f, screen); err != nil {
		g.log.WithError(err).Error("screenshot")
		return
	}
	g.log.WithField("file", ScreenshotPng).Info("screenshot saved")
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.screenWidth || outsideHeight != g.screenHeight {
		g.screenWidth = outsideWidth
		g.screenHeight = outsideHeight
		g.mapper.Resize(float64(outsideWidth)-ui.ListWidth, float64(outsideHeight)-ui.ToolbarHeight)
		g.ui.Layout()
	}
	return outsideWidth, outsideHeight
}
