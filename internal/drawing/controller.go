// Package drawing holds the drawing controller: the tool state chosen from
// the toolbar and the drag session that turns pointer motion into shapes on
// a canvas.Surface.
package drawing

import (
	"fmt"
	"image"
	"image/color"

	"github.com/example/drawall/internal/canvas"
)

// Pen width bounds.
const (
	MinPenWidth = 1
	MaxPenWidth = 30
)

// Defaults match the stock toolbar: white ink on black with a 3px pencil.
var (
	DefaultStrokeColor     = color.RGBA{255, 255, 255, 255}
	DefaultBackgroundColor = color.RGBA{0, 0, 0, 255}
)

const DefaultPenWidth = 3

// ToolState is the toolbar selection.
type ToolState struct {
	Stroke     color.RGBA
	Background color.RGBA
	PenWidth   int
	Brush      Brush
	Eraser     bool
}

// InkColor returns the color the active brush draws with. The eraser only
// applies to Freehand.
func (t ToolState) InkColor() color.RGBA {
	if t.Eraser && t.Brush == BrushFreehand {
		return t.Background
	}
	return t.Stroke
}

// Controller routes toolbar commands and pointer events to a surface.
// It is not safe for concurrent use; drive it from the event loop.
type Controller struct {
	surface canvas.Surface
	tools   ToolState
	mode    ShapeMode
	size    image.Point

	// drag session
	dragging bool
	last     image.Point
	anchor   image.Point
	preview  string

	capture  func() (*image.RGBA, error)
	quality  int
	listener func(ToolState)
}

// Option modifies a Controller during creation.
type Option func(*Controller)

// WithStrokeColor sets the initial ink color.
func WithStrokeColor(c color.RGBA) Option { return func(ctl *Controller) { ctl.tools.Stroke = c } }

// WithBackgroundColor sets the initial background color.
func WithBackgroundColor(c color.RGBA) Option {
	return func(ctl *Controller) { ctl.tools.Background = c }
}

// WithPenWidth sets the initial pen width; it is clamped like SetPenWidth.
func WithPenWidth(n int) Option { return func(ctl *Controller) { ctl.tools.PenWidth = n } }

// WithBrush sets the initial brush.
func WithBrush(b Brush) Option { return func(ctl *Controller) { ctl.tools.Brush = b } }

// WithShapeMode selects trail or preview dragging for shape brushes.
func WithShapeMode(m ShapeMode) Option { return func(ctl *Controller) { ctl.mode = m } }

// WithCapture replaces the pixel source used by Save. By default Save
// captures the surface itself.
func WithCapture(fn func() (*image.RGBA, error)) Option {
	return func(ctl *Controller) { ctl.capture = fn }
}

// WithJPEGQuality sets the quality used when saving JPEG files.
func WithJPEGQuality(q int) Option { return func(ctl *Controller) { ctl.quality = q } }

// WithSettingsListener registers a callback for tool state changes.
func WithSettingsListener(fn func(ToolState)) Option {
	return func(ctl *Controller) { ctl.listener = fn }
}

// New creates a Controller drawing on s.
func New(s canvas.Surface, opts ...Option) *Controller {
	ctl := &Controller{
		surface: s,
		tools: ToolState{
			Stroke:     DefaultStrokeColor,
			Background: DefaultBackgroundColor,
			PenWidth:   DefaultPenWidth,
			Brush:      BrushFreehand,
		},
		quality: canvas.DefaultJPEGQuality,
	}
	for _, o := range opts {
		o(ctl)
	}
	ctl.tools.PenWidth = ClampPenWidth(ctl.tools.PenWidth)
	if ctl.capture == nil {
		ctl.capture = s.Capture
	}
	return ctl
}

// ClampPenWidth limits n to [MinPenWidth, MaxPenWidth].
func ClampPenWidth(n int) int {
	if n < MinPenWidth {
		return MinPenWidth
	}
	if n > MaxPenWidth {
		return MaxPenWidth
	}
	return n
}

// Tools returns the current tool state.
func (c *Controller) Tools() ToolState { return c.tools }

// ShapeMode reports how shape brushes react to a drag.
func (c *Controller) ShapeMode() ShapeMode { return c.mode }

// Surface returns the surface the controller draws on.
func (c *Controller) Surface() canvas.Surface { return c.surface }

// Size returns the drawable size set by the last Resize.
func (c *Controller) Size() image.Point { return c.size }

// Dragging reports whether a drag session holds a last position.
func (c *Controller) Dragging() bool { return c.dragging }

func (c *Controller) changed() {
	if c.listener != nil {
		c.listener(c.tools)
	}
}

// SetStrokeColor replaces the ink color. Existing primitives keep theirs.
func (c *Controller) SetStrokeColor(col color.RGBA) {
	c.tools.Stroke = col
	c.changed()
}

// SetBackgroundColor replaces the background color and repaints the
// background at once.
func (c *Controller) SetBackgroundColor(col color.RGBA) {
	c.tools.Background = col
	c.surface.FillBackground(c.size, col)
	c.changed()
}

// SetPenWidth stores n clamped to [MinPenWidth, MaxPenWidth] and returns the
// stored width.
func (c *Controller) SetPenWidth(n int) int {
	c.tools.PenWidth = ClampPenWidth(n)
	c.changed()
	return c.tools.PenWidth
}

// SetBrush selects the brush used by future motion events.
func (c *Controller) SetBrush(b Brush) {
	c.tools.Brush = b
	c.changed()
}

// SetEraser turns the eraser on or off.
func (c *Controller) SetEraser(on bool) {
	c.tools.Eraser = on
	c.changed()
}

// ToggleEraser flips the eraser flag and returns the new value.
func (c *Controller) ToggleEraser() bool {
	c.SetEraser(!c.tools.Eraser)
	return c.tools.Eraser
}

// Clear removes every drawn primitive and repaints the background.
func (c *Controller) Clear() {
	c.surface.Clear()
	c.preview = ""
	c.surface.FillBackground(c.size, c.tools.Background)
}

// Resize records the drawable size and replaces the background primitive so
// it spans the new area.
func (c *Controller) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c.size = image.Pt(w, h)
	c.surface.FillBackground(c.size, c.tools.Background)
}

// Motion handles pointer movement with the button held. The first motion of
// a gesture only records the position.
func (c *Controller) Motion(p image.Point) {
	if !c.dragging {
		c.dragging = true
		c.last = p
		c.anchor = p
		return
	}
	if c.mode == ShapePreview && c.tools.Brush != BrushFreehand {
		if c.preview != "" {
			c.surface.Remove(c.preview)
		}
		c.preview = c.emit(c.anchor, p)
	} else {
		c.emit(c.last, p)
	}
	c.last = p
}

// Release ends the drag session. Nothing is drawn on release; a preview
// shape simply stays where it is.
func (c *Controller) Release() {
	c.dragging = false
	c.last = image.Point{}
	c.anchor = image.Point{}
	c.preview = ""
}

func (c *Controller) emit(from, to image.Point) string {
	st := canvas.Stroke{Color: c.tools.InkColor(), Width: c.tools.PenWidth}
	switch c.tools.Brush {
	case BrushFreehand:
		st.Cap = canvas.CapRound
		return c.surface.DrawLine(from, to, st)
	case BrushLine:
		return c.surface.DrawLine(from, to, st)
	case BrushRectangle:
		return c.surface.DrawRect(from, to, st)
	case BrushOval:
		return c.surface.DrawOval(from, to, st)
	case BrushArc:
		return c.surface.DrawArc(from, to, st)
	}
	return ""
}

// Save writes the current rendering to path. A .pdf path is exported as
// vector graphics when the surface supports it; any other extension is
// captured and encoded as a raster image. On failure the drawing is
// untouched.
func (c *Controller) Save(path string) error {
	if canvas.IsPDF(path) {
		exp, ok := c.surface.(canvas.PDFExporter)
		if !ok {
			return fmt.Errorf("save %s: surface cannot export PDF", path)
		}
		return exp.WritePDF(path)
	}
	img, err := c.capture()
	if err != nil {
		return fmt.Errorf("capture canvas: %w", err)
	}
	return canvas.WriteImage(img, path, c.quality)
}

// Snapshot returns the current rendering of the surface, for the clipboard
// and notifications.
func (c *Controller) Snapshot() (*image.RGBA, error) {
	return c.capture()
}
