package appstate

import (
	"image"
	"image/color"
	"testing"

	"github.com/example/drawall/internal/theme"
)

func TestLayoutToolbar(t *testing.T) {
	l := layoutToolbar([]int{50, 30})
	if want := image.Rect(padding, padding, padding+50, toolbarHeight-padding); l.buttons[0] != want {
		t.Fatalf("first button %v, want %v", l.buttons[0], want)
	}
	if l.buttons[1].Min.X != l.buttons[0].Max.X+buttonGap {
		t.Fatalf("buttons not spaced: %v", l.buttons)
	}
	if l.slider.Min.X <= l.buttons[1].Max.X || l.slider.Dx() != sliderWidth {
		t.Fatalf("slider %v", l.slider)
	}
	if l.sizeLabel.X <= l.slider.Max.X {
		t.Fatalf("size label overlaps slider")
	}
}

func TestCanvasGeometry(t *testing.T) {
	if got := canvasRect(200, 100); got != image.Rect(0, toolbarHeight, 200, 100) {
		t.Fatalf("canvasRect %v", got)
	}
	if got := canvasRect(200, toolbarHeight); !got.Empty() {
		t.Fatalf("expected empty canvas, got %v", got)
	}
	if got := canvasSize(200, 10); got != image.Pt(200, 0) {
		t.Fatalf("canvasSize %v", got)
	}
	if got := toCanvas(image.Pt(5, toolbarHeight)); got != image.Pt(5, 0) {
		t.Fatalf("toCanvas %v", got)
	}
	rects := []image.Rectangle{image.Rect(0, 0, 10, 10), image.Rect(20, 0, 30, 10)}
	if hitIndex(rects, image.Pt(25, 5)) != 1 || hitIndex(rects, image.Pt(15, 5)) != -1 {
		t.Fatalf("hitIndex")
	}
}

func TestSliderMapping(t *testing.T) {
	s := Slider{Min: 1, Max: 30, rect: image.Rect(100, 0, 100+sliderWidth, 16)}
	if got := s.ValueAt(0); got != 1 {
		t.Fatalf("left of track = %d", got)
	}
	if got := s.ValueAt(1000); got != 30 {
		t.Fatalf("right of track = %d", got)
	}
	for v := s.Min; v <= s.Max; v++ {
		k := s.Knob(v)
		if got := s.ValueAt((k.Min.X + k.Max.X) / 2); got != v {
			t.Errorf("knob for %d maps back to %d", v, got)
		}
	}
	if s.Knob(99) != s.Knob(30) {
		t.Fatalf("knob not clamped")
	}
}

func TestCacheButtonRedrawsOnStateChange(t *testing.T) {
	checked := false
	b := &CacheButton{Button: &LabelButton{label: "Eraser", th: theme.Default(),
		rect:    image.Rect(0, 0, 80, 28),
		checked: func() bool { return checked }}}
	dst := image.NewRGBA(image.Rect(0, 0, 80, 28))
	b.Draw(dst, StateDefault)
	first := b.cache[StateDefault]
	b.Draw(dst, StateDefault)
	if b.cache[StateDefault] != first {
		t.Fatalf("cache not reused")
	}
	checked = true
	b.Draw(dst, StateDefault)
	if b.cache[StateDefault] == first {
		t.Fatalf("cache not invalidated")
	}
	box := image.Rect(8, 14-checkSize/2, 8+checkSize, 14-checkSize/2+checkSize)
	if got := dst.RGBAAt(box.Min.X+checkSize/2, box.Min.Y+checkSize/2); got != (color.RGBA{0, 0, 0, 255}) {
		t.Fatalf("check mark not drawn: %v", got)
	}
	b.SetRect(image.Rect(10, 0, 90, 28))
	if b.cache[StateDefault] != nil {
		t.Fatalf("SetRect should drop the cache")
	}
}

func TestPalettePopupGeometry(t *testing.T) {
	p := newPalettePopup(popupStroke, image.Rect(4, 4, 60, 32))
	if !p.open() || p.title() != "Stroke color" {
		t.Fatalf("unexpected popup %+v", p)
	}
	for i, r := range p.items {
		if !r.In(p.rect) {
			t.Fatalf("item %d %v outside popup %v", i, r, p.rect)
		}
	}
	if p.hit(center(p.items[7])) != 7 || p.hit(image.Pt(0, 0)) != -1 {
		t.Fatalf("hit test")
	}
}
