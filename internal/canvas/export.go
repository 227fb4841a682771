package canvas

import (
	"fmt"
	"image"
	"math"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/jung-kurt/gofpdf"
)

// DefaultJPEGQuality is used when no quality is configured.
const DefaultJPEGQuality = 95

// IsPDF reports whether path names a PDF export.
func IsPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

// WriteImage encodes img in the format implied by the extension of path.
func WriteImage(img image.Image, path string, quality int) error {
	if img == nil {
		return fmt.Errorf("write %s: no image", path)
	}
	if _, err := imaging.FormatFromFilename(path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	if err := imaging.Save(img, path, imaging.JPEGQuality(quality)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// WritePDF replays the background and display list as vector operations on a
// single page sized to the surface, one point per pixel.
func (r *Raster) WritePDF(path string) error {
	size := r.Size()
	if size.X <= 0 || size.Y <= 0 {
		return fmt.Errorf("write %s: %w", path, ErrEmptySurface)
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: float64(size.X), Ht: float64(size.Y)},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	bg := r.bg.Color
	pdf.SetFillColor(int(bg.R), int(bg.G), int(bg.B))
	pdf.Rect(0, 0, float64(size.X), float64(size.Y), "F")

	pdf.SetLineJoinStyle("round")
	for _, s := range r.shapes {
		pdfShape(pdf, s)
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func pdfShape(pdf *gofpdf.Fpdf, s Shape) {
	c := s.Stroke.Color
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
	pdf.SetLineWidth(float64(s.Stroke.Width))
	if s.Stroke.Cap == CapRound {
		pdf.SetLineCapStyle("round")
	} else {
		pdf.SetLineCapStyle("butt")
	}

	b := s.Bounds()
	x, y := float64(b.Min.X), float64(b.Min.Y)
	w, h := float64(b.Dx()), float64(b.Dy())
	switch s.Kind {
	case KindLine:
		pdf.Line(float64(s.From.X), float64(s.From.Y), float64(s.To.X), float64(s.To.Y))
	case KindRect:
		pdf.Rect(x, y, w, h, "D")
	case KindOval:
		pdf.Ellipse(x+w/2, y+h/2, w/2, h/2, 0, "D")
	case KindArc:
		cx, cy := x+w/2, y+h/2
		rx, ry := w/2, h/2
		pdf.Arc(cx, cy, rx, ry, 0, ArcStart, ArcStart+ArcExtent, "D")
		for _, deg := range []float64{ArcStart, ArcStart + ArcExtent} {
			rad := deg * math.Pi / 180
			pdf.Line(cx, cy, cx+rx*math.Cos(rad), cy-ry*math.Sin(rad))
		}
	}
}
