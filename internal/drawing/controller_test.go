package drawing

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/drawall/internal/canvas"
)

var (
	red  = color.RGBA{255, 0, 0, 255}
	blue = color.RGBA{0, 0, 255, 255}
)

type call struct {
	Kind     canvas.Kind
	From, To image.Point
	Stroke   canvas.Stroke
	ID       string
}

// recorder is a Surface that remembers every call.
type recorder struct {
	shapes      []call
	backgrounds []color.RGBA
	bgSize      image.Point
	fills       int
	next        int
}

func (r *recorder) add(k canvas.Kind, from, to image.Point, st canvas.Stroke) string {
	r.next++
	id := fmt.Sprintf("s%d", r.next)
	r.shapes = append(r.shapes, call{Kind: k, From: from, To: to, Stroke: st, ID: id})
	return id
}

func (r *recorder) DrawLine(from, to image.Point, st canvas.Stroke) string {
	return r.add(canvas.KindLine, from, to, st)
}
func (r *recorder) DrawRect(from, to image.Point, st canvas.Stroke) string {
	return r.add(canvas.KindRect, from, to, st)
}
func (r *recorder) DrawOval(from, to image.Point, st canvas.Stroke) string {
	return r.add(canvas.KindOval, from, to, st)
}
func (r *recorder) DrawArc(from, to image.Point, st canvas.Stroke) string {
	return r.add(canvas.KindArc, from, to, st)
}
func (r *recorder) FillBackground(size image.Point, c color.RGBA) string {
	r.fills++
	r.bgSize = size
	r.backgrounds = []color.RGBA{c}
	return "bg"
}
func (r *recorder) Remove(id string) bool {
	for i, s := range r.shapes {
		if s.ID == id {
			r.shapes = append(r.shapes[:i], r.shapes[i+1:]...)
			return true
		}
	}
	return false
}
func (r *recorder) Clear()     { r.shapes = nil }
func (r *recorder) Count() int { return len(r.shapes) }
func (r *recorder) Capture() (*image.RGBA, error) {
	return nil, canvas.ErrEmptySurface
}

func drag(c *Controller, pts ...image.Point) {
	for _, p := range pts {
		c.Motion(p)
	}
	c.Release()
}

func TestFreehandSegmentsPerMotion(t *testing.T) {
	for n := 1; n <= 6; n++ {
		s := &recorder{}
		c := New(s)
		for i := 0; i < n; i++ {
			c.Motion(image.Pt(i*3, i*2))
		}
		if got := s.Count(); got != n-1 {
			t.Fatalf("%d motions: %d segments, want %d", n, got, n-1)
		}
		for i, sh := range s.shapes {
			if sh.Kind != canvas.KindLine || sh.Stroke.Cap != canvas.CapRound {
				t.Fatalf("segment %d is %+v, want round line", i, sh)
			}
			if sh.From != image.Pt(i*3, i*2) || sh.To != image.Pt((i+1)*3, (i+1)*2) {
				t.Fatalf("segment %d runs %v->%v", i, sh.From, sh.To)
			}
			if sh.Stroke.Color != DefaultStrokeColor {
				t.Fatalf("segment %d color %v", i, sh.Stroke.Color)
			}
		}
	}
}

func TestFirstMotionAtOriginStartsDrag(t *testing.T) {
	s := &recorder{}
	c := New(s)
	c.Motion(image.Pt(0, 0))
	if !c.Dragging() {
		t.Fatalf("origin must count as a known position")
	}
	c.Motion(image.Pt(0, 5))
	if s.Count() != 1 || s.shapes[0].From != image.Pt(0, 0) {
		t.Fatalf("expected one segment from the origin, got %+v", s.shapes)
	}
}

func TestEraserToggleMidGesture(t *testing.T) {
	s := &recorder{}
	c := New(s, WithStrokeColor(red), WithBackgroundColor(blue))
	c.Motion(image.Pt(0, 0))
	c.Motion(image.Pt(1, 1))
	c.Motion(image.Pt(2, 2))
	if !c.ToggleEraser() {
		t.Fatalf("eraser should be on")
	}
	c.Motion(image.Pt(3, 3))
	c.Motion(image.Pt(4, 4))
	c.Release()

	want := []color.RGBA{red, red, blue, blue}
	if len(s.shapes) != len(want) {
		t.Fatalf("got %d segments", len(s.shapes))
	}
	for i, w := range want {
		if s.shapes[i].Stroke.Color != w {
			t.Errorf("segment %d color %v, want %v", i, s.shapes[i].Stroke.Color, w)
		}
	}
}

func TestEraserIgnoredByShapes(t *testing.T) {
	for _, b := range []Brush{BrushLine, BrushRectangle, BrushOval, BrushArc} {
		s := &recorder{}
		c := New(s, WithStrokeColor(red), WithBackgroundColor(blue), WithBrush(b))
		c.SetEraser(true)
		drag(c, image.Pt(1, 1), image.Pt(9, 9))
		if s.Count() != 1 {
			t.Fatalf("%v: %d shapes", b, s.Count())
		}
		if got := s.shapes[0].Stroke.Color; got != red {
			t.Errorf("%v: color %v, want stroke color", b, got)
		}
		if s.shapes[0].Stroke.Cap != canvas.CapButt {
			t.Errorf("%v: cap should be butt", b)
		}
	}
}

func TestClearLeavesNoPrimitives(t *testing.T) {
	s := &recorder{}
	c := New(s, WithBackgroundColor(blue))
	c.Resize(80, 60)
	drag(c, image.Pt(1, 1), image.Pt(2, 2), image.Pt(3, 3))
	fills := s.fills
	c.Clear()
	if s.Count() != 0 {
		t.Fatalf("count after clear = %d", s.Count())
	}
	if s.fills != fills+1 || s.bgSize != image.Pt(80, 60) || s.backgrounds[0] != blue {
		t.Fatalf("clear must repaint the background")
	}
	c.Clear()
	if s.Count() != 0 {
		t.Fatalf("clear is not idempotent")
	}
}

func TestResizeKeepsOneBackground(t *testing.T) {
	r := canvas.NewRaster()
	c := New(r, WithBackgroundColor(blue))
	for _, sz := range []image.Point{{100, 50}, {30, 200}, {640, 480}} {
		c.Resize(sz.X, sz.Y)
		bg := r.Background()
		if bg.Size != sz || bg.Color != blue {
			t.Fatalf("background %+v after resize to %v", bg, sz)
		}
		if r.Image().Bounds() != (image.Rectangle{Max: sz}) {
			t.Fatalf("image bounds %v", r.Image().Bounds())
		}
		if r.Count() != 0 {
			t.Fatalf("background counted as primitive")
		}
	}
}

func TestSetBackgroundRepaintsImmediately(t *testing.T) {
	r := canvas.NewRaster()
	c := New(r)
	c.Resize(10, 10)
	c.SetBackgroundColor(red)
	if got := r.Image().RGBAAt(5, 5); got != red {
		t.Fatalf("pixel = %v, want red", got)
	}
	if c.Tools().Background != red {
		t.Fatalf("background not stored")
	}
}

func TestPenWidthClamp(t *testing.T) {
	tests := []struct{ in, want int }{
		{-5, 1}, {0, 1}, {1, 1}, {3, 3}, {30, 30}, {31, 30}, {1000, 30},
	}
	for _, tt := range tests {
		s := &recorder{}
		c := New(s)
		if got := c.SetPenWidth(tt.in); got != tt.want {
			t.Errorf("SetPenWidth(%d) = %d, want %d", tt.in, got, tt.want)
		}
		drag(c, image.Pt(0, 0), image.Pt(1, 0))
		if w := s.shapes[0].Stroke.Width; w != tt.want || w <= 0 {
			t.Errorf("stroke width %d for input %d", w, tt.in)
		}
	}
	if got := New(&recorder{}, WithPenWidth(0)).Tools().PenWidth; got != 1 {
		t.Errorf("WithPenWidth(0) stored %d", got)
	}
}

func TestRectangleScenario(t *testing.T) {
	s := &recorder{}
	c := New(s, WithBrush(BrushRectangle), WithStrokeColor(red), WithPenWidth(4))
	c.Motion(image.Pt(10, 10))
	if s.Count() != 0 {
		t.Fatalf("shape emitted on first motion")
	}
	c.Motion(image.Pt(50, 40))
	c.Release()
	if s.Count() != 1 {
		t.Fatalf("got %d shapes", s.Count())
	}
	got := s.shapes[0]
	if got.Kind != canvas.KindRect || got.From != image.Pt(10, 10) || got.To != image.Pt(50, 40) {
		t.Fatalf("unexpected shape %+v", got)
	}
	if got.Stroke.Color != red || got.Stroke.Width != 4 {
		t.Fatalf("unexpected stroke %+v", got.Stroke)
	}
	if c.Dragging() {
		t.Fatalf("release must end the drag")
	}
	c.Release()
	if s.Count() != 1 {
		t.Fatalf("shape emitted after release")
	}
}

func TestShapeTrailChainsFromPreviousPosition(t *testing.T) {
	s := &recorder{}
	c := New(s, WithBrush(BrushOval))
	drag(c, image.Pt(0, 0), image.Pt(10, 10), image.Pt(20, 15))
	if s.Count() != 2 {
		t.Fatalf("got %d shapes", s.Count())
	}
	if s.shapes[1].From != image.Pt(10, 10) || s.shapes[1].To != image.Pt(20, 15) {
		t.Fatalf("second shape %+v", s.shapes[1])
	}
}

func TestShapePreviewKeepsSingleShape(t *testing.T) {
	s := &recorder{}
	c := New(s, WithBrush(BrushLine), WithShapeMode(ShapePreview))
	drag(c, image.Pt(5, 5), image.Pt(10, 10), image.Pt(20, 15), image.Pt(30, 40))
	if s.Count() != 1 {
		t.Fatalf("got %d shapes", s.Count())
	}
	if s.shapes[0].From != image.Pt(5, 5) || s.shapes[0].To != image.Pt(30, 40) {
		t.Fatalf("preview shape %+v", s.shapes[0])
	}
	drag(c, image.Pt(0, 0), image.Pt(1, 1))
	if s.Count() != 2 {
		t.Fatalf("committed preview was replaced")
	}
}

func TestShapePreviewDoesNotAffectFreehand(t *testing.T) {
	s := &recorder{}
	c := New(s, WithShapeMode(ShapePreview))
	drag(c, image.Pt(0, 0), image.Pt(1, 1), image.Pt(2, 2))
	if s.Count() != 2 {
		t.Fatalf("got %d segments", s.Count())
	}
}

func TestBrushKinds(t *testing.T) {
	want := map[Brush]canvas.Kind{
		BrushFreehand:  canvas.KindLine,
		BrushLine:      canvas.KindLine,
		BrushRectangle: canvas.KindRect,
		BrushOval:      canvas.KindOval,
		BrushArc:       canvas.KindArc,
	}
	for b, k := range want {
		s := &recorder{}
		c := New(s)
		c.SetBrush(b)
		drag(c, image.Pt(0, 0), image.Pt(4, 4))
		if s.shapes[0].Kind != k {
			t.Errorf("%v drew %v, want %v", b, s.shapes[0].Kind, k)
		}
	}
}

func TestSettingsListener(t *testing.T) {
	var seen []ToolState
	c := New(&recorder{}, WithSettingsListener(func(ts ToolState) { seen = append(seen, ts) }))
	c.SetStrokeColor(red)
	c.SetPenWidth(99)
	c.SetBrush(BrushArc)
	c.ToggleEraser()
	if len(seen) != 4 {
		t.Fatalf("listener called %d times", len(seen))
	}
	last := seen[len(seen)-1]
	if last.Stroke != red || last.PenWidth != MaxPenWidth || last.Brush != BrushArc || !last.Eraser {
		t.Fatalf("unexpected final state %+v", last)
	}
}

func TestSaveWritesImage(t *testing.T) {
	r := canvas.NewRaster()
	c := New(r, WithStrokeColor(red))
	c.Resize(40, 30)
	drag(c, image.Pt(0, 15), image.Pt(39, 15))

	dir := t.TempDir()
	for _, name := range []string{"canvas_image.jpg", "out.png", "out.pdf"} {
		path := filepath.Join(dir, name)
		if err := c.Save(path); err != nil {
			t.Fatalf("Save(%s): %v", name, err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("%s missing: %v", name, err)
		}
	}
}

func TestSaveFailureLeavesStateUntouched(t *testing.T) {
	sentinel := errors.New("window off-screen")
	r := canvas.NewRaster()
	c := New(r, WithCapture(func() (*image.RGBA, error) { return nil, sentinel }))
	c.Resize(10, 10)
	drag(c, image.Pt(1, 1), image.Pt(5, 5))
	before := c.Tools()

	err := c.Save(filepath.Join(t.TempDir(), "out.jpg"))
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped capture error, got %v", err)
	}
	if c.Tools() != before || r.Count() != 1 {
		t.Fatalf("save failure changed drawing state")
	}

	empty := New(canvas.NewRaster())
	if err := empty.Save(filepath.Join(t.TempDir(), "out.png")); !errors.Is(err, canvas.ErrEmptySurface) {
		t.Fatalf("expected ErrEmptySurface, got %v", err)
	}
}

func TestSavePDFRequiresExporter(t *testing.T) {
	c := New(&recorder{})
	if err := c.Save(filepath.Join(t.TempDir(), "out.pdf")); err == nil {
		t.Fatalf("expected error for surface without PDF support")
	}
}
