package measure

import (
	"math"

	"github.com/pkg/errors"
)

// ErrInvalidCalibration is returned when either calibration length is not a
// positive finite number.
var ErrInvalidCalibration = errors.New("pixel and real lengths must both be greater than zero")

// Calibrate derives a pixels-per-metre scale from a measured pixel length and
// the real length it represents.
func Calibrate(pixels, realLength float64) (float64, error) {
	if !positive(pixels) || !positive(realLength) {
		return 0, ErrInvalidCalibration
	}
	return pixels / realLength, nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// Calibrator is the open/closed calibration form. It only produces a scale;
// the owning context decides who receives it.
type Calibrator struct {
	Pixels float64
	Real   float64

	open bool
	err  error
}

// Open shows the form, keeping previously entered values.
func (c *Calibrator) Open() {
	c.open = true
	c.err = nil
}

// Close hides the form without changing anything.
func (c *Calibrator) Close() {
	c.open = false
	c.err = nil
}

func (c *Calibrator) IsOpen() bool { return c.open }

// Err is the reason the last confirmation was rejected.
func (c *Calibrator) Err() error { return c.err }

// CanConfirm reports whether both inputs are valid, gating the confirm action.
func (c *Calibrator) CanConfirm() bool {
	return c.open && positive(c.Pixels) && positive(c.Real)
}

// Confirm computes the scale and closes the form. Invalid input leaves the
// form open and returns false.
func (c *Calibrator) Confirm() (float64, bool) {
	if !c.open {
		return 0, false
	}
	scale, err := Calibrate(c.Pixels, c.Real)
	if err != nil {
		c.err = err
		return 0, false
	}
	c.open = false
	c.err = nil
	return scale, true
}
