package input

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"plan-measure/measure"
)

const (
	DoubleClickThreshold = 350 * time.Millisecond
	DoubleClickDistance  = 100 // px squared
)

// TextTarget receives keyboard text while a field is being edited.
type TextTarget interface {
	Insert(r []rune)
	Backspace()
	Commit()
	Cancel()
}

// Host defines the callbacks the input system needs from the main game.
type Host interface {
	ScreenToStage(sx, sy float64) (float64, float64)
	InStage(mx, my int) bool
	IsMouseOver(mx, my int) bool
	ListRowAt(mx, my int) (string, bool)

	PointerDown(x, y float64)
	PointerMove(x, y float64)
	PointerUp(x, y float64)
	CancelGesture()

	SetTool(t measure.Tool)
	Select(id string)
	BeginRename(id string)
	DeleteSelected()
	PromoteAt(x, y float64)
	TextTarget() TextTarget

	Save() error
	RequestScreenshot()
}

// Frame is the input observed during one tick.
type Frame struct {
	CursorX, CursorY int

	LeftPressed      bool
	LeftJustPressed  bool
	LeftJustReleased bool

	Keys  []ebiten.Key // just pressed
	Ctrl  bool
	Chars []rune
	Now   time.Time
}

func (f Frame) pressed(k ebiten.Key) bool {
	for _, p := range f.Keys {
		if p == k {
			return true
		}
	}
	return false
}

type InputSystem struct {
	host Host

	gesture    bool
	lastX      int
	lastY      int
	lastClick  time.Time
	lastClickX int
	lastClickY int
	lastRow    string
}

func NewInputSystem(h Host) *InputSystem {
	return &InputSystem{host: h}
}

// Update reads ebiten's input state for this tick.
func (is *InputSystem) Update() {
	mx, my := ebiten.CursorPosition()
	is.Step(Frame{
		CursorX:          mx,
		CursorY:          my,
		LeftPressed:      ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		LeftJustPressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		LeftJustReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		Keys:             inpututil.AppendJustPressedKeys(nil),
		Ctrl:             ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta),
		Chars:            ebiten.AppendInputChars(nil),
		Now:              time.Now(),
	})
}

// Step applies one tick of input.
func (is *InputSystem) Step(f Frame) {
	if is.handleTextEditing(f) {
		return
	}
	is.handleControlKeys(f)
	is.handleMouse(f)
}

// Gesturing reports whether a pointer gesture on the stage is in progress.
func (is *InputSystem) Gesturing() bool {
	return is.gesture
}

func (is *InputSystem) handleTextEditing(f Frame) bool {
	t := is.host.TextTarget()
	if t == nil {
		return false
	}

	switch {
	case f.pressed(ebiten.KeyEnter) || f.pressed(ebiten.KeyNumpadEnter):
		t.Commit()
		return true
	case f.pressed(ebiten.KeyEscape):
		t.Cancel()
		return true
	case f.pressed(ebiten.KeyTab):
		if n, ok := t.(interface{ Next() }); ok {
			n.Next()
		}
		return true
	case f.pressed(ebiten.KeyBackspace):
		t.Backspace()
		return true
	}
	if len(f.Chars) > 0 {
		t.Insert(f.Chars)
	}

	// Clicking outside the UI commits the edit; clicks on the UI are left to it.
	if f.LeftJustPressed && !is.host.IsMouseOver(f.CursorX, f.CursorY) {
		t.Commit()
		return false
	}
	if f.LeftJustPressed {
		if id, ok := is.host.ListRowAt(f.CursorX, f.CursorY); ok {
			t.Commit()
			is.host.Select(id)
		}
	}
	return true
}

func (is *InputSystem) handleControlKeys(f Frame) {
	// --- Screenshot ---
	if f.pressed(ebiten.KeyF12) {
		is.host.RequestScreenshot()
	}

	// --- Save ---
	if f.Ctrl {
		if f.pressed(ebiten.KeyS) {
			_ = is.host.Save()
		}
		return
	}

	switch {
	case f.pressed(ebiten.KeyEscape):
		is.gesture = false
		is.host.CancelGesture()
	case f.pressed(ebiten.KeyS):
		is.host.SetTool(measure.ToolSelect)
	case f.pressed(ebiten.KeyM):
		is.host.SetTool(measure.ToolMeasure)
	case f.pressed(ebiten.KeyDelete), f.pressed(ebiten.KeyBackspace):
		is.host.DeleteSelected()
	case f.pressed(ebiten.KeyP):
		x, y := is.host.ScreenToStage(float64(f.CursorX), float64(f.CursorY))
		is.host.PromoteAt(x, y)
	}
}

func (is *InputSystem) handleMouse(f Frame) {
	mx, my := f.CursorX, f.CursorY

	if f.LeftJustPressed {
		if id, ok := is.host.ListRowAt(mx, my); ok {
			is.handleListClick(id, f)
			return
		}
		if is.host.IsMouseOver(mx, my) || !is.host.InStage(mx, my) {
			return
		}
		x, y := is.host.ScreenToStage(float64(mx), float64(my))
		is.host.PointerDown(x, y)
		is.gesture = true
		is.lastX, is.lastY = mx, my
		return
	}

	if !is.gesture {
		return
	}
	x, y := is.host.ScreenToStage(float64(mx), float64(my))
	if f.LeftJustReleased || !f.LeftPressed {
		is.gesture = false
		is.host.PointerUp(x, y)
		return
	}
	if mx != is.lastX || my != is.lastY {
		is.host.PointerMove(x, y)
		is.lastX, is.lastY = mx, my
	}
}

func (is *InputSystem) handleListClick(id string, f Frame) {
	dx := f.CursorX - is.lastClickX
	dy := f.CursorY - is.lastClickY
	double := id == is.lastRow &&
		f.Now.Sub(is.lastClick) < DoubleClickThreshold &&
		dx*dx+dy*dy < DoubleClickDistance

	is.lastClick = f.Now
	is.lastClickX, is.lastClickY = f.CursorX, f.CursorY
	is.lastRow = id

	is.host.Select(id)
	if double {
		is.lastRow = ""
		is.host.BeginRename(id)
	}
}
