package render

import (
	"image"
	"image/color"
	"testing"
)

func TestFrameExpandsBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	subject := image.Pt(5, 5)
	img.Set(subject.X, subject.Y, color.RGBA{R: 255, A: 255})

	s := Shadow{Radius: 4, Offset: image.Pt(8, 6), Opacity: 0.5}
	out, shift := s.Frame(img, nil)
	if out == nil {
		t.Fatal("expected output image")
	}
	if want := image.Rect(0, 0, 22, 20); !out.Bounds().Eq(want) {
		t.Fatalf("unexpected bounds %v, want %v", out.Bounds(), want)
	}
	if shift != (image.Point{}) {
		t.Fatalf("content moved by %v", shift)
	}
	if got := out.RGBAAt(subject.X, subject.Y); got != (color.RGBA{R: 255, A: 255}) {
		t.Fatalf("subject pixel changed: %v", got)
	}
	shadowPt := subject.Add(s.Offset)
	if out.RGBAAt(shadowPt.X, shadowPt.Y).A == 0 {
		t.Fatalf("expected shadow alpha at %v", shadowPt)
	}
}

func TestFrameNegativeOffsetShiftsContent(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	out, shift := Shadow{Radius: 2, Offset: image.Pt(-6, -3), Opacity: 1}.Frame(img, color.White)
	if want := image.Pt(8, 5); shift != want {
		t.Fatalf("shift %v, want %v", shift, want)
	}
	if out.Bounds().Dx() != 12 || out.Bounds().Dy() != 9 {
		t.Fatalf("bounds %v", out.Bounds())
	}
}

func TestFrameFillsBackground(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	bg := color.RGBA{10, 20, 30, 255}
	out, _ := Shadow{Radius: 1, Offset: image.Pt(4, 4), Opacity: 1}.Frame(img, bg)
	if got := out.RGBAAt(0, 6); got != bg {
		t.Fatalf("background pixel %v, want %v", got, bg)
	}
}

func TestFrameNoShadowWhenOpacityZero(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	out, shift := Shadow{Radius: 12, Offset: image.Pt(20, 10)}.Frame(img, nil)
	if out != img || shift != (image.Point{}) {
		t.Fatalf("expected the input back unchanged")
	}
}

func TestCastDarkensBelowRect(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 40, 40))
	for i := range dst.Pix {
		dst.Pix[i] = 0xff
	}
	r := image.Rect(10, 10, 20, 20)
	PopupShadow().Cast(dst, r)

	under := r.Min.Add(image.Pt(5, 5)).Add(PopupShadow().Offset)
	if got := dst.RGBAAt(under.X, under.Y); got.R == 0xff {
		t.Fatalf("expected darkened pixel at %v, got %v", under, got)
	}
	if got := dst.RGBAAt(39, 0); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("far pixel touched: %v", got)
	}
}

func TestCastClipsToDestination(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 8, 8))
	Shadow{Radius: 3, Offset: image.Pt(2, 2), Opacity: 1}.Cast(dst, image.Rect(4, 4, 30, 30))
	if dst.RGBAAt(7, 7).A == 0 {
		t.Fatalf("expected shadow inside destination")
	}
}

func TestBoxBlurSpreadsMass(t *testing.T) {
	pix := make([]uint8, 5*5)
	pix[2*5+2] = 255
	boxBlur(pix, 5, 5, 5, 1)
	if pix[2*5+2] == 255 || pix[2*5+2] == 0 {
		t.Fatalf("center not blurred: %d", pix[2*5+2])
	}
	if pix[1*5+1] == 0 {
		t.Fatalf("neighbor untouched")
	}
	if pix[0] != 0 {
		t.Fatalf("corner outside radius touched: %d", pix[0])
	}
}
