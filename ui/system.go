package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

const (
	ToolbarHeight = 40.0
	ListWidth     = 260.0

	buttonWidth   = 84.0
	buttonHeight  = 28.0
	buttonPadding = 6.0
)

// Actions are the toolbar callbacks.
type Actions struct {
	Select    func()
	Measure   func()
	Calibrate func()
	Recalc    func()
	Open      func()
	Save      func()
	Export    func()

	// ToolActive reports whether the named tool ("select", "measure") is current.
	ToolActive func(name string) bool
	// HasImage gates the actions that need a plan.
	HasImage func() bool
}

type UISystem struct {
	buttons       []*Button
	face          font.Face
	getScreenSize func() (int, int)
	drawText      DrawTextFunc

	Debug     *DebugPanel
	List      *ListPanel
	Calibrate *CalibrateModal
}

func NewUISystem(face font.Face, getScreenSize func() (int, int), drawText DrawTextFunc, actions Actions, list *ListPanel, modal *CalibrateModal) *UISystem {
	ui := &UISystem{
		face:          face,
		getScreenSize: getScreenSize,
		drawText:      drawText,
		Debug:         &DebugPanel{},
		List:          list,
		Calibrate:     modal,
	}
	ui.initButtons(actions)
	ui.Layout()
	return ui
}

func (ui *UISystem) initButtons(a Actions) {
	tool := func(name string) func() bool {
		return func() bool { return a.ToolActive != nil && a.ToolActive(name) }
	}
	ui.buttons = []*Button{
		{Label: "Select", OnClick: a.Select, Active: tool("select")},
		{Label: "Measure", OnClick: a.Measure, Active: tool("measure"), Enabled: a.HasImage},
		{Label: "Calibrate", OnClick: a.Calibrate},
		{Label: "Recalc", OnClick: a.Recalc},
		{Label: "Open", OnClick: a.Open},
		{Label: "Save", OnClick: a.Save},
		{Label: "Export", OnClick: a.Export},
	}
	for _, b := range ui.buttons {
		b.W, b.H = buttonWidth, buttonHeight
	}
}

// Layout positions the toolbar, the list panel and the modal for the
// current screen size.
func (ui *UISystem) Layout() {
	w, h := ui.getScreenSize()
	x := float32(buttonPadding)
	for _, b := range ui.buttons {
		b.X = x
		b.Y = (ToolbarHeight - buttonHeight) / 2
		x += b.W + buttonPadding
	}
	if ui.List != nil {
		ui.List.X = float64(w) - ListWidth
		ui.List.Y = ToolbarHeight
		ui.List.W = ListWidth
		ui.List.H = float64(h) - ToolbarHeight
	}
	if ui.Calibrate != nil {
		ui.Calibrate.Layout(w, h)
	}
}

// IsMouseOver reports whether the cursor is over UI chrome rather than the stage.
func (ui *UISystem) IsMouseOver(mx, my int) bool {
	if ui.Calibrate != nil && ui.Calibrate.IsOpen() {
		return true
	}
	if float64(my) < ToolbarHeight {
		return true
	}
	return ui.List != nil && ui.List.Contains(mx, my)
}

// Click dispatches a click to the modal or the toolbar and reports whether
// it was consumed.
func (ui *UISystem) Click(mx, my int) bool {
	if ui.Calibrate != nil && ui.Calibrate.IsOpen() {
		return ui.Calibrate.Click(mx, my)
	}
	for _, b := range ui.buttons {
		if b.IsMouseOver(mx, my) {
			b.Click()
			return true
		}
	}
	return false
}

func (ui *UISystem) Update() {
	ui.Layout()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		ui.Click(mx, my)
	}
}

func (ui *UISystem) Draw(screen *ebiten.Image) {
	w, h := ui.getScreenSize()
	vector.DrawFilledRect(screen, 0, 0, float32(w), ToolbarHeight, colorListBackground, false)
	for _, b := range ui.buttons {
		b.Draw(screen, ui.face, ui.drawText)
	}
	if ui.List != nil {
		ui.List.Draw(screen, ui.face, ui.drawText)
	}
	if ui.Debug != nil {
		ui.Debug.Draw(screen, 0, h, w-int(ListWidth), ui.face, ui.drawText)
	}
	if ui.Calibrate != nil {
		ui.Calibrate.Draw(screen, ui.face, ui.drawText)
	}
}
