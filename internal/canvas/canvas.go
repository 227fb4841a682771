// Package canvas implements the drawing surface: an ordered display list of
// stroked primitives over a separately tagged background fill, rendered into
// an RGBA image and exportable as a raster file or a vector PDF.
package canvas

import (
	"errors"
	"image"
	"image/color"
)

// Kind identifies a primitive in the display list.
type Kind int

const (
	KindLine Kind = iota
	KindRect
	KindOval
	KindArc
)

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindRect:
		return "rectangle"
	case KindOval:
		return "oval"
	case KindArc:
		return "arc"
	}
	return "unknown"
}

// Cap controls how the ends of a line are drawn.
type Cap int

const (
	CapButt Cap = iota
	CapRound
)

// Pie slice geometry used for KindArc, in degrees measured counter-clockwise
// from the 3 o'clock position.
const (
	ArcStart  = 0.0
	ArcExtent = 90.0
)

// Stroke is the pen a primitive is drawn with.
type Stroke struct {
	Color color.RGBA
	Width int
	Cap   Cap
}

// Shape is one drawn primitive. Lines run From -> To; the other kinds span
// the box defined by the two points.
type Shape struct {
	ID     string
	Kind   Kind
	From   image.Point
	To     image.Point
	Stroke Stroke
}

// Bounds returns the normalised box spanned by From and To.
func (s Shape) Bounds() image.Rectangle {
	return image.Rect(s.From.X, s.From.Y, s.To.X, s.To.Y)
}

// Background is the fill primitive kept outside the display list so that
// Clear never removes it.
type Background struct {
	ID    string
	Size  image.Point
	Color color.RGBA
}

// Rect returns the area covered by the background.
func (b Background) Rect() image.Rectangle {
	return image.Rectangle{Max: b.Size}
}

// ErrEmptySurface is returned when a surface with no area is captured.
var ErrEmptySurface = errors.New("surface has empty geometry")

// Surface is the capability the drawing controller renders through.
// Draw methods return the ID of the primitive they added.
type Surface interface {
	DrawLine(from, to image.Point, st Stroke) string
	DrawRect(from, to image.Point, st Stroke) string
	DrawOval(from, to image.Point, st Stroke) string
	DrawArc(from, to image.Point, st Stroke) string
	// FillBackground replaces the background primitive.
	FillBackground(size image.Point, c color.RGBA) string
	Remove(id string) bool
	// Clear removes every drawn primitive but keeps the background.
	Clear()
	// Count reports the number of drawn primitives, background excluded.
	Count() int
	Capture() (*image.RGBA, error)
}

// PDFExporter is implemented by surfaces that can replay their display list
// as vector graphics.
type PDFExporter interface {
	WritePDF(path string) error
}
