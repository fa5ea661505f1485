package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"plan-measure/engine"
	"plan-measure/measure"
)

const (
	modalWidth  = 360.0
	modalHeight = 190.0
	fieldHeight = 24.0
)

var (
	colorModalShade = color.RGBA{0, 0, 0, 140}
	colorModal      = color.RGBA{50, 50, 58, 255}
	colorField      = color.RGBA{30, 30, 35, 255}
	colorFieldFocus = color.RGBA{0, 120, 255, 255}
	colorModalError = color.RGBA{255, 120, 100, 255}
)

// CalibrateModal edits the two calibration lengths. Fields accept arithmetic
// expressions such as "12*0.3048".
type CalibrateModal struct {
	Calibrator *measure.Calibrator
	Pixels     TextField
	Real       TextField

	// OnConfirm receives the accepted scale.
	OnConfirm func(scale float64)

	focus    int
	fieldErr string

	X, Y             float32
	confirm          *Button
	cancel           *Button
	screenW, screenH int
}

func NewCalibrateModal(c *measure.Calibrator, onConfirm func(float64)) *CalibrateModal {
	m := &CalibrateModal{
		Calibrator: c,
		Pixels:     TextField{Label: "Length in pixels"},
		Real:       TextField{Label: "Real length (m)"},
		OnConfirm:  onConfirm,
	}
	m.confirm = &Button{Label: "Confirm", W: 90, H: 28, OnClick: m.Commit, Enabled: c.CanConfirm}
	m.cancel = &Button{Label: "Cancel", W: 90, H: 28, OnClick: m.Cancel}
	return m
}

// Open shows the modal. A non-empty pixels value pre-fills the pixel field.
func (m *CalibrateModal) Open(pixels string) {
	if pixels != "" {
		m.Pixels.Text = pixels
	}
	m.focus = 0
	if m.Pixels.Text != "" {
		m.focus = 1
	}
	m.Calibrator.Open()
	m.sync()
}

func (m *CalibrateModal) IsOpen() bool {
	return m.Calibrator.IsOpen()
}

func (m *CalibrateModal) field() *TextField {
	if m.focus == 1 {
		return &m.Real
	}
	return &m.Pixels
}

func (m *CalibrateModal) Insert(r []rune) {
	m.field().Insert(r)
	m.sync()
}

func (m *CalibrateModal) Backspace() {
	m.field().Backspace()
	m.sync()
}

// Next moves the focus to the other field.
func (m *CalibrateModal) Next() {
	m.focus = 1 - m.focus
}

// Commit confirms the calibration. Invalid values keep the modal open with
// an inline message.
func (m *CalibrateModal) Commit() {
	m.sync()
	scale, ok := m.Calibrator.Confirm()
	if ok && m.OnConfirm != nil {
		m.OnConfirm(scale)
	}
}

func (m *CalibrateModal) Cancel() {
	m.Calibrator.Close()
}

func (m *CalibrateModal) sync() {
	m.fieldErr = ""
	m.Calibrator.Pixels = m.eval(&m.Pixels)
	m.Calibrator.Real = m.eval(&m.Real)
}

func (m *CalibrateModal) eval(f *TextField) float64 {
	if f.Text == "" {
		return 0
	}
	v, err := engine.EvalNumber(f.Text)
	if err != nil {
		if m.fieldErr == "" {
			m.fieldErr = f.Label + ": not a number"
		}
		return 0
	}
	return v
}

// Message is the inline validation message, empty when the input is valid.
func (m *CalibrateModal) Message() string {
	if m.fieldErr != "" {
		return m.fieldErr
	}
	if err := m.Calibrator.Err(); err != nil && !m.Calibrator.CanConfirm() {
		return err.Error()
	}
	return ""
}

func (m *CalibrateModal) Layout(sw, sh int) {
	m.screenW, m.screenH = sw, sh
	m.X = float32(sw)/2 - modalWidth/2
	m.Y = float32(sh)/2 - modalHeight/2
	m.confirm.X, m.confirm.Y = m.X+modalWidth-2*90-20, m.Y+modalHeight-40
	m.cancel.X, m.cancel.Y = m.X+modalWidth-90-10, m.Y+modalHeight-40
}

func (m *CalibrateModal) fieldRect(i int) (x, y, w, h float32) {
	return m.X + 150, m.Y + 40 + float32(i)*36, modalWidth - 160, fieldHeight
}

// Click handles a click while the modal is open. The modal captures every
// click, so it always reports true when open.
func (m *CalibrateModal) Click(mx, my int) bool {
	if !m.IsOpen() {
		return false
	}
	switch {
	case m.confirm.IsMouseOver(mx, my):
		m.confirm.Click()
	case m.cancel.IsMouseOver(mx, my):
		m.cancel.Click()
	default:
		for i := 0; i < 2; i++ {
			x, y, w, h := m.fieldRect(i)
			if float32(mx) >= x && float32(mx) <= x+w && float32(my) >= y && float32(my) <= y+h {
				m.focus = i
			}
		}
	}
	return true
}

func (m *CalibrateModal) Draw(screen *ebiten.Image, face font.Face, drawText DrawTextFunc) {
	if !m.IsOpen() {
		return
	}
	vector.DrawFilledRect(screen, 0, 0, float32(m.screenW), float32(m.screenH), colorModalShade, false)
	vector.DrawFilledRect(screen, m.X, m.Y, modalWidth, modalHeight, colorModal, false)
	if face == nil || drawText == nil {
		return
	}

	drawText(screen, face, "Calibrate scale", int(m.X)+12, int(m.Y)+12, color.White)
	for i, f := range []*TextField{&m.Pixels, &m.Real} {
		x, y, w, h := m.fieldRect(i)
		drawText(screen, face, f.Label, int(m.X)+12, int(y)+5, color.White)
		vector.DrawFilledRect(screen, x, y, w, h, colorField, false)
		txt := f.Text
		if i == m.focus {
			vector.StrokeRect(screen, x, y, w, h, 1, colorFieldFocus, false)
			txt += "_"
		}
		drawText(screen, face, txt, int(x)+6, int(y)+5, color.White)
	}
	if msg := m.Message(); msg != "" {
		drawText(screen, face, msg, int(m.X)+12, int(m.Y)+118, colorModalError)
	}

	m.confirm.Draw(screen, face, drawText)
	m.cancel.Draw(screen, face, drawText)
}
