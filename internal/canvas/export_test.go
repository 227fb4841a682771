package canvas

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteImageByExtension(t *testing.T) {
	r := newTestRaster(32, 16)
	r.DrawRect(image.Pt(2, 2), image.Pt(29, 13), Stroke{Color: red, Width: 2})
	img, err := r.Capture()
	if err != nil {
		t.Fatalf("capture: %v", err)
	}

	dir := t.TempDir()
	for _, name := range []string{"out.png", "out.jpg", "OUT.JPEG", "out.gif", "out.bmp", "out.tiff"} {
		path := filepath.Join(dir, name)
		if err := WriteImage(img, path, 0); err != nil {
			t.Fatalf("WriteImage(%s): %v", name, err)
		}
		if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
			t.Fatalf("%s not written: %v", name, err)
		}
	}

	f, err := os.Open(filepath.Join(dir, "out.png"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Bounds() != image.Rect(0, 0, 32, 16) {
		t.Fatalf("bounds = %v", decoded.Bounds())
	}
	if r, _, _, _ := decoded.At(2, 8).RGBA(); r>>8 != 255 {
		t.Fatalf("saved pixel is not red")
	}
}

func TestWriteImageErrors(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	dir := t.TempDir()
	if err := WriteImage(img, filepath.Join(dir, "out.xyz"), 90); err == nil {
		t.Fatalf("expected error for unknown extension")
	}
	if err := WriteImage(img, filepath.Join(dir, "missing", "out.png"), 90); err == nil {
		t.Fatalf("expected error for missing directory")
	}
	if err := WriteImage(nil, filepath.Join(dir, "out.png"), 90); err == nil {
		t.Fatalf("expected error for nil image")
	}
}

func TestWritePDF(t *testing.T) {
	r := newTestRaster(200, 100)
	r.DrawLine(image.Pt(0, 0), image.Pt(50, 50), Stroke{Color: red, Width: 3, Cap: CapRound})
	r.DrawRect(image.Pt(10, 10), image.Pt(50, 40), Stroke{Color: red, Width: 2})
	r.DrawOval(image.Pt(60, 10), image.Pt(120, 60), Stroke{Color: white, Width: 2})
	r.DrawArc(image.Pt(130, 10), image.Pt(190, 90), Stroke{Color: white, Width: 2})

	path := filepath.Join(t.TempDir(), "canvas.pdf")
	if !IsPDF(path) {
		t.Fatalf("IsPDF(%q) = false", path)
	}
	if err := r.WritePDF(path); err != nil {
		t.Fatalf("WritePDF: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF")
	}
}

func TestWritePDFEmptySurface(t *testing.T) {
	r := NewRaster()
	err := r.WritePDF(filepath.Join(t.TempDir(), "empty.pdf"))
	if !errors.Is(err, ErrEmptySurface) {
		t.Fatalf("expected ErrEmptySurface, got %v", err)
	}
}
