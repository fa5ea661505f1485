// Package measure holds the measurement model and the editor that creates,
// moves, resizes, renames and deletes measurements drawn over a floor plan.
package measure

import "math"

const (
	// MinSize is the smallest width or height, in stage units, a measurement may have.
	MinSize = 10.0
	// DefaultScale is the pixels-per-metre ratio used until the plan is calibrated.
	DefaultScale = 100.0
)

// Measurement is a named rectangle in stage coordinates with its derived area.
type Measurement struct {
	ID     string  `yaml:"id" json:"id"`
	Name   string  `yaml:"name" json:"name"`
	X      float64 `yaml:"x" json:"x"`
	Y      float64 `yaml:"y" json:"y"`
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
	AreaM2 float64 `yaml:"area_m2" json:"areaM2"`
}

// Suggestion is a read-only candidate region, usually produced by a detector.
// It only becomes a Measurement once promoted.
type Suggestion struct {
	ID         string  `yaml:"id" json:"id"`
	Label      string  `yaml:"label" json:"label"`
	X          float64 `yaml:"x" json:"x"`
	Y          float64 `yaml:"y" json:"y"`
	Width      float64 `yaml:"width" json:"width"`
	Height     float64 `yaml:"height" json:"height"`
	Confidence float64 `yaml:"confidence,omitempty" json:"confidence,omitempty"`
}

// Rect is a rectangle whose width and height may be negative while a gesture
// is in progress.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Area converts a stage-space extent into square metres. A scale that is not
// a positive finite number yields 0.
func Area(width, height, scale float64) float64 {
	if !(scale > 0) || math.IsInf(scale, 0) {
		return 0
	}
	return (width / scale) * (height / scale)
}

// Normalize flips negative extents so the rectangle is anchored at its top-left corner.
func (r Rect) Normalize() Rect {
	if r.Width < 0 {
		r.X += r.Width
		r.Width = -r.Width
	}
	if r.Height < 0 {
		r.Y += r.Height
		r.Height = -r.Height
	}
	return r
}

// Contains reports whether the stage point lies inside the measurement.
func (m Measurement) Contains(x, y float64) bool {
	return x >= m.X && x < m.X+m.Width && y >= m.Y && y < m.Y+m.Height
}

// Rect returns the measurement geometry.
func (m Measurement) Rect() Rect {
	return Rect{X: m.X, Y: m.Y, Width: m.Width, Height: m.Height}
}

// Corners returns the corner positions in handle order: TL, TR, BL, BR.
func (m Measurement) Corners() [4][2]float64 {
	return [4][2]float64{
		{m.X, m.Y},
		{m.X + m.Width, m.Y},
		{m.X, m.Y + m.Height},
		{m.X + m.Width, m.Y + m.Height},
	}
}

// CornerAt returns the handle whose corner lies within radius of (x, y), or HandleNone.
func (m Measurement) CornerAt(x, y, radius float64) Handle {
	for i, c := range m.Corners() {
		dx := x - c[0]
		dy := y - c[1]
		if math.Sqrt(dx*dx+dy*dy) < radius {
			return Handle(i)
		}
	}
	return HandleNone
}

func (m Measurement) withRect(r Rect, scale float64) Measurement {
	m.X, m.Y = r.X, r.Y
	m.Width, m.Height = r.Width, r.Height
	m.AreaM2 = Area(m.Width, m.Height, scale)
	return m
}

// Contains reports whether the stage point lies inside the suggestion.
func (s Suggestion) Contains(x, y float64) bool {
	return x >= s.X && x < s.X+s.Width && y >= s.Y && y < s.Y+s.Height
}
