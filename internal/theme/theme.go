package theme

import (
	"image/color"
)

// Theme defines the colours used to paint the canvas and its chrome.
type Theme struct {
	Name string

	// Canvas
	Background color.RGBA // Stage background behind all shapes
	Foreground color.RGBA // Fallback text colour

	// Selection
	SelectionStroke color.RGBA // Outline of the drag-select box
	SelectionFill   color.RGBA // Interior of the drag-select box
	Highlight       color.RGBA // Dashed outline around selected shapes
	HighlightAlt    color.RGBA // Second dash colour of the outline
	PreviewStroke   color.RGBA // Outline of the shape being drawn

	// Toolbar
	ToolbarBackground color.RGBA
	ToolbarText       color.RGBA
	ToolActive        color.RGBA
	ToolHover         color.RGBA
}

// Default returns the built-in dark theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:              "Default",
		Background:        color.RGBA{24, 24, 27, 255},
		Foreground:        color.RGBA{244, 244, 245, 255},
		SelectionStroke:   color.RGBA{129, 140, 248, 255},
		SelectionFill:     color.RGBA{129, 140, 248, 76},
		Highlight:         color.RGBA{56, 189, 248, 255},
		HighlightAlt:      color.RGBA{24, 24, 27, 255},
		PreviewStroke:     color.RGBA{161, 161, 170, 255},
		ToolbarBackground: color.RGBA{39, 39, 42, 255},
		ToolbarText:       color.RGBA{228, 228, 231, 255},
		ToolActive:        color.RGBA{79, 70, 229, 255},
		ToolHover:         color.RGBA{63, 63, 70, 255},
	}
}
