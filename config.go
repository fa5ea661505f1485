package main

import "image/color"

const (
	// --- Window ---
	DefaultWindowWidth  = 1280
	DefaultWindowHeight = 800
	WindowTitle         = "Plan Measure"

	// --- Stage ---
	GridSize = 50.0

	// --- Measurements ---
	HandleSize      = 8.0
	HandleRadius    = 8.0
	BorderThickness = 2.0
	LabelPaddingX   = 4.0
	LabelPaddingY   = 3.0
	DashLength      = 6.0

	// --- Files ---
	FontPath      = "fonts/Roboto-Regular.ttf"
	ScreenshotPng = "screenshot.png"
)

var (
	// --- Colors ---
	ColorBackground     = color.RGBA{30, 30, 35, 255}
	ColorStage          = color.RGBA{24, 24, 28, 255}
	ColorGrid           = color.RGBA{255, 255, 255, 20}
	ColorMeasureFill    = color.RGBA{0, 120, 255, 50}
	ColorMeasureBorder  = color.RGBA{0, 120, 255, 255}
	ColorMeasureActive  = color.RGBA{50, 205, 50, 255}
	ColorMeasureHover   = color.RGBA{100, 200, 255, 255}
	ColorDraft          = color.RGBA{255, 140, 0, 255}
	ColorDraftInvalid   = color.RGBA{220, 50, 50, 255}
	ColorSuggestion     = color.RGBA{255, 200, 50, 220}
	ColorCornerHandle   = color.RGBA{255, 255, 255, 220}
	ColorHandleActive   = color.RGBA{255, 140, 0, 255}
	ColorLabelBack      = color.RGBA{0, 0, 0, 160}
	ColorLabelText      = color.RGBA{240, 240, 240, 255}
	ColorSuggestionText = color.RGBA{255, 220, 120, 255}
)
