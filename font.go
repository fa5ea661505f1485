package main

import (
	"image/color"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// LoadUIFont loads a TrueType font from path, falling back to the embedded
// Go Regular font and finally to basicfont.Face7x13.
func LoadUIFont(path string, log *logrus.Logger) font.Face {
	l := log.WithField("font", path)
	data, err := os.ReadFile(path)
	if err != nil {
		l.WithError(err).Debug("font not found, using Go Regular")
		data = goregular.TTF
	}
	f, err := opentype.Parse(data)
	if err != nil {
		l.WithError(err).Warn("font parse error, using basic font")
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: 13, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		l.WithError(err).Warn("font face error, using basic font")
		return basicfont.Face7x13
	}
	return face
}

// DrawTextLines draws multiline text with the provided font.Face and color starting at (x,y).
func DrawTextLines(screen *ebiten.Image, face font.Face, s string, x, y int, clr color.Color) {
	if face == nil {
		face = basicfont.Face7x13
	}
	metrics := face.Metrics()
	ascent := metrics.Ascent.Round()
	lineHeight := ascent + metrics.Descent.Round()
	if lineHeight <= 0 {
		lineHeight = 16
		ascent = 12
	}
	// y is the top of the first line; text.Draw expects the baseline.
	baseY := y + ascent
	for i, line := range strings.Split(s, "\n") {
		text.Draw(screen, line, face, x, baseY+(i*lineHeight), clr)
	}
}

// TextWidth returns the advance of the widest line of s.
func TextWidth(face font.Face, s string) int {
	if face == nil {
		face = basicfont.Face7x13
	}
	w := 0
	for _, line := range strings.Split(s, "\n") {
		if lw := font.MeasureString(face, line).Round(); lw > w {
			w = lw
		}
	}
	return w
}
