package drawing

import (
	"fmt"
	"strings"
)

// Brush is the active shape-drawing mode.
type Brush int

const (
	BrushFreehand Brush = iota
	BrushLine
	BrushRectangle
	BrushOval
	BrushArc
)

// Brushes lists every brush in toolbar order.
var Brushes = []Brush{BrushFreehand, BrushLine, BrushRectangle, BrushOval, BrushArc}

// String returns the toolbar label of b.
func (b Brush) String() string {
	switch b {
	case BrushFreehand:
		return "Pencil"
	case BrushLine:
		return "Line"
	case BrushRectangle:
		return "Rectangle"
	case BrushOval:
		return "Oval"
	case BrushArc:
		return "Arc"
	}
	return fmt.Sprintf("Brush(%d)", int(b))
}

// ParseBrush accepts a toolbar label or one of its aliases, case-insensitively.
func ParseBrush(s string) (Brush, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pencil", "freehand", "pen":
		return BrushFreehand, nil
	case "line":
		return BrushLine, nil
	case "rectangle", "rect":
		return BrushRectangle, nil
	case "oval", "ellipse", "circle":
		return BrushOval, nil
	case "arc":
		return BrushArc, nil
	}
	return BrushFreehand, fmt.Errorf("unknown brush %q", s)
}

// ShapeMode selects how Line, Rectangle, Oval and Arc react to a drag.
type ShapeMode int

const (
	// ShapeTrail emits a new shape from the previous pointer position to the
	// current one on every motion event, leaving a trail of shapes.
	ShapeTrail ShapeMode = iota
	// ShapePreview keeps the drag start as anchor and replaces a single live
	// shape on every motion; release commits it.
	ShapePreview
)

func (m ShapeMode) String() string {
	if m == ShapePreview {
		return "preview"
	}
	return "trail"
}

// ParseShapeMode accepts "trail" or "preview".
func ParseShapeMode(s string) (ShapeMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "trail":
		return ShapeTrail, nil
	case "preview":
		return ShapePreview, nil
	}
	return ShapeTrail, fmt.Errorf("unknown shape mode %q", s)
}
