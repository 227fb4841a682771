package appstate

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

const (
	toolbarHeight = 36
	padding       = 4
	buttonGap     = 4
	swatchSize    = 14
	checkSize     = 11
	sliderWidth   = 120
	sliderKnob    = 8
)

var labelFace font.Face = basicfont.Face7x13

func textWidth(s string) int {
	d := &font.Drawer{Face: labelFace}
	return d.MeasureString(s).Ceil()
}

// toolbarLayout positions the toolbar controls from left to right.
type toolbarLayout struct {
	buttons []image.Rectangle
	slider  image.Rectangle
	// sizeLabel is the baseline origin of the "Size: N" text.
	sizeLabel image.Point
}

func layoutToolbar(widths []int) toolbarLayout {
	var l toolbarLayout
	x := padding
	top, bottom := padding, toolbarHeight-padding
	for _, w := range widths {
		l.buttons = append(l.buttons, image.Rect(x, top, x+w, bottom))
		x += w + buttonGap
	}
	x += 2 * buttonGap
	mid := toolbarHeight / 2
	l.slider = image.Rect(x, mid-8, x+sliderWidth, mid+8)
	l.sizeLabel = image.Pt(l.slider.Max.X+8, mid+5)
	return l
}

// canvasRect is the drawing area in window coordinates: everything below
// the toolbar.
func canvasRect(width, height int) image.Rectangle {
	r := image.Rect(0, toolbarHeight, width, height)
	if r.Empty() {
		return image.Rectangle{}
	}
	return r
}

// canvasSize is the drawable size for a window of width x height.
func canvasSize(width, height int) image.Point {
	h := height - toolbarHeight
	if h < 0 {
		h = 0
	}
	if width < 0 {
		width = 0
	}
	return image.Pt(width, h)
}

// toCanvas converts window coordinates to canvas coordinates.
func toCanvas(p image.Point) image.Point {
	return p.Sub(image.Pt(0, toolbarHeight))
}

// hitIndex returns the index of the first rectangle containing p, or -1.
func hitIndex(rects []image.Rectangle, p image.Point) int {
	for i, r := range rects {
		if p.In(r) {
			return i
		}
	}
	return -1
}
