package canvas

import "math"

// Mapper converts between screen, stage and image-pixel coordinates. The stage
// is the drawing area of the window, offset by Origin; the image is fitted
// into it without enlarging past its native size and centred.
type Mapper struct {
	OriginX, OriginY float64 // screen position of the stage top-left corner

	ImageW, ImageH         float64
	ContainerW, ContainerH float64

	FitScale       float64
	ImageX, ImageY float64 // stage position of the image top-left corner
}

// NewMapper returns a mapper for a stage placed at (originX, originY) on screen.
func NewMapper(originX, originY float64) *Mapper {
	return &Mapper{OriginX: originX, OriginY: originY, FitScale: 1}
}

// SetImage records the intrinsic size of the background image. A zero size
// means there is no image.
func (m *Mapper) SetImage(w, h int) {
	m.ImageW, m.ImageH = float64(w), float64(h)
	m.recompute()
}

// Resize records the available stage size. Stored shapes are not re-projected.
func (m *Mapper) Resize(w, h float64) {
	m.ContainerW, m.ContainerH = w, h
	m.recompute()
}

func (m *Mapper) HasImage() bool {
	return m.ImageW > 0 && m.ImageH > 0
}

func (m *Mapper) recompute() {
	if !m.HasImage() || m.ContainerW <= 0 || m.ContainerH <= 0 {
		m.FitScale = 1
		m.ImageX, m.ImageY = 0, 0
		return
	}
	m.FitScale = math.Min(math.Min(m.ContainerW/m.ImageW, m.ContainerH/m.ImageH), 1)
	m.ImageX = (m.ContainerW - m.ImageW*m.FitScale) / 2
	m.ImageY = (m.ContainerH - m.ImageH*m.FitScale) / 2
}

func (m *Mapper) ScreenToStage(sx, sy float64) (float64, float64) {
	return sx - m.OriginX, sy - m.OriginY
}

func (m *Mapper) StageToScreen(x, y float64) (float64, float64) {
	return x + m.OriginX, y + m.OriginY
}

func (m *Mapper) StageToImage(x, y float64) (float64, float64) {
	return (x - m.ImageX) / m.FitScale, (y - m.ImageY) / m.FitScale
}

func (m *Mapper) ImageToStage(ix, iy float64) (float64, float64) {
	return ix*m.FitScale + m.ImageX, iy*m.FitScale + m.ImageY
}

// InStage reports whether a screen point falls inside the stage.
func (m *Mapper) InStage(sx, sy float64) bool {
	x, y := m.ScreenToStage(sx, sy)
	return x >= 0 && y >= 0 && x < m.ContainerW && y < m.ContainerH
}

// ImageBounds returns the stage rectangle covered by the fitted image.
func (m *Mapper) ImageBounds() (x, y, w, h float64) {
	return m.ImageX, m.ImageY, m.ImageW * m.FitScale, m.ImageH * m.FitScale
}
