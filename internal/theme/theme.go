package theme

import (
	"image/color"
)

// Theme defines the color palette for the window chrome. The drawing area
// itself is painted with the user's background color, not the theme.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Window background around the canvas
	Foreground color.RGBA // Main text color

	// Toolbar
	ToolbarBackground color.RGBA
	ToolbarBorder     color.RGBA

	// Toolbar buttons
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonBackgroundPress color.RGBA
	ButtonActive          color.RGBA // Checked eraser, open menu
	ButtonText            color.RGBA
	ButtonBorder          color.RGBA

	// Brush menu and color popup
	MenuBackground color.RGBA
	MenuHover      color.RGBA
	MenuText       color.RGBA

	// Pen size slider
	SliderTrack color.RGBA
	SliderKnob  color.RGBA

	// Temporary status message
	MessageBackground color.RGBA
	MessageText       color.RGBA
}

// Default returns the hardcoded default light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:                  "Default",
		Background:            color.RGBA{220, 220, 220, 255},
		Foreground:            color.RGBA{0, 0, 0, 255},
		ToolbarBackground:     color.RGBA{220, 220, 220, 255},
		ToolbarBorder:         color.RGBA{160, 160, 160, 255},
		ButtonBackground:      color.RGBA{200, 200, 200, 255},
		ButtonBackgroundHover: color.RGBA{180, 180, 180, 255},
		ButtonBackgroundPress: color.RGBA{150, 150, 150, 255},
		ButtonActive:          color.RGBA{170, 190, 220, 255},
		ButtonText:            color.RGBA{0, 0, 0, 255},
		ButtonBorder:          color.RGBA{0, 0, 0, 255},
		MenuBackground:        color.RGBA{240, 240, 240, 255},
		MenuHover:             color.RGBA{200, 210, 230, 255},
		MenuText:              color.RGBA{0, 0, 0, 255},
		SliderTrack:           color.RGBA{160, 160, 160, 255},
		SliderKnob:            color.RGBA{60, 60, 60, 255},
		MessageBackground:     color.RGBA{255, 255, 255, 230},
		MessageText:           color.RGBA{0, 0, 0, 255},
	}
}
