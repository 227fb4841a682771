package canvas

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/google/uuid"
)

// Raster is a Surface backed by an in-memory display list. Added primitives
// are rasterised straight into the cached image; removals and background
// changes re-render the whole list.
type Raster struct {
	shapes []Shape
	bg     Background
	img    *image.RGBA

	newID func() string
}

var _ Surface = (*Raster)(nil)
var _ PDFExporter = (*Raster)(nil)

// NewRaster returns an empty surface with no area. Call FillBackground to
// give it a size.
func NewRaster() *Raster {
	return &Raster{newID: uuid.NewString}
}

func (r *Raster) DrawLine(from, to image.Point, st Stroke) string {
	return r.add(KindLine, from, to, st)
}

func (r *Raster) DrawRect(from, to image.Point, st Stroke) string {
	return r.add(KindRect, from, to, st)
}

func (r *Raster) DrawOval(from, to image.Point, st Stroke) string {
	return r.add(KindOval, from, to, st)
}

func (r *Raster) DrawArc(from, to image.Point, st Stroke) string {
	return r.add(KindArc, from, to, st)
}

func (r *Raster) add(kind Kind, from, to image.Point, st Stroke) string {
	if st.Width < 1 {
		st.Width = 1
	}
	s := Shape{ID: r.newID(), Kind: kind, From: from, To: to, Stroke: st}
	r.shapes = append(r.shapes, s)
	if r.img != nil {
		drawShape(r.img, s)
	}
	return s.ID
}

// FillBackground drops the previous background and creates a new one of the
// given size and color. The cached image is reallocated when the size
// changes.
func (r *Raster) FillBackground(size image.Point, c color.RGBA) string {
	if size.X < 0 {
		size.X = 0
	}
	if size.Y < 0 {
		size.Y = 0
	}
	r.bg = Background{ID: r.newID(), Size: size, Color: c}
	if size.X == 0 || size.Y == 0 {
		r.img = nil
		return r.bg.ID
	}
	if r.img == nil || r.img.Bounds().Size() != size {
		r.img = image.NewRGBA(r.bg.Rect())
	}
	r.render()
	return r.bg.ID
}

func (r *Raster) Remove(id string) bool {
	for i, s := range r.shapes {
		if s.ID == id {
			r.shapes = append(r.shapes[:i], r.shapes[i+1:]...)
			r.render()
			return true
		}
	}
	return false
}

func (r *Raster) Clear() {
	if len(r.shapes) == 0 {
		return
	}
	r.shapes = nil
	r.render()
}

func (r *Raster) Count() int { return len(r.shapes) }

// Shapes returns a copy of the display list in drawing order.
func (r *Raster) Shapes() []Shape {
	out := make([]Shape, len(r.shapes))
	copy(out, r.shapes)
	return out
}

// Background returns the current background primitive.
func (r *Raster) Background() Background { return r.bg }

// Size reports the drawable size.
func (r *Raster) Size() image.Point { return r.bg.Size }

// Image returns the live rendering. Callers must not modify it; it is nil
// while the surface has no area.
func (r *Raster) Image() *image.RGBA { return r.img }

// Capture returns a copy of the current rendering.
func (r *Raster) Capture() (*image.RGBA, error) {
	if r.img == nil || r.img.Bounds().Empty() {
		return nil, ErrEmptySurface
	}
	out := image.NewRGBA(r.img.Bounds())
	copy(out.Pix, r.img.Pix)
	return out, nil
}

func (r *Raster) render() {
	if r.img == nil {
		return
	}
	draw.Draw(r.img, r.img.Bounds(), &image.Uniform{r.bg.Color}, image.Point{}, draw.Src)
	for _, s := range r.shapes {
		drawShape(r.img, s)
	}
}
