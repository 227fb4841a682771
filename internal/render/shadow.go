// Package render holds small compositing effects shared by the window and
// the headless renderer.
package render

import (
	"image"
	"image/color"
	"image/draw"
)

// Shadow is a soft drop shadow: a box-blurred silhouette shifted by Offset
// and tinted black at Opacity.
type Shadow struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// ExportShadow frames a saved drawing.
func ExportShadow() Shadow {
	return Shadow{Radius: 24, Offset: image.Pt(16, 16), Opacity: 0.55}
}

// PopupShadow sits under menus and the color picker.
func PopupShadow() Shadow {
	return Shadow{Radius: 6, Offset: image.Pt(3, 4), Opacity: 0.4}
}

func (s Shadow) alpha() uint8 {
	o := s.Opacity
	if o > 1 {
		o = 1
	}
	if o <= 0 {
		return 0
	}
	return uint8(o*255 + 0.5)
}

func (s Shadow) radius() int {
	if s.Radius < 0 {
		return 0
	}
	return s.Radius
}

// Cast darkens dst under the rectangle r as if r floated above it. Only the
// shadow is drawn; callers paint r itself afterwards.
func (s Shadow) Cast(dst *image.RGBA, r image.Rectangle) {
	a := s.alpha()
	if a == 0 || r.Empty() {
		return
	}
	rad := s.radius()
	area := r.Inset(-rad)
	mask := image.NewAlpha(area.Sub(area.Min))
	inner := r.Sub(area.Min)
	draw.Draw(mask, inner, image.Opaque, image.Point{}, draw.Src)
	boxBlur(mask.Pix, mask.Stride, mask.Rect.Dx(), mask.Rect.Dy(), rad)

	target := area.Add(s.Offset)
	draw.DrawMask(dst, target, image.NewUniform(color.RGBA{0, 0, 0, a}), image.Point{}, mask, image.Point{}, draw.Over)
}

// Frame places img on a larger canvas filled with bg and casts its shadow
// there. The image keeps its pixels; its top-left corner lands at the
// returned offset.
func (s Shadow) Frame(img *image.RGBA, bg color.Color) (*image.RGBA, image.Point) {
	if img == nil || img.Bounds().Empty() || s.alpha() == 0 {
		return img, image.Point{}
	}
	rad := s.radius()
	src := img.Bounds()
	shadow := src.Inset(-rad).Add(s.Offset)
	all := src.Union(shadow)
	shift := src.Min.Sub(all.Min)

	out := image.NewRGBA(all.Sub(all.Min))
	if bg != nil {
		draw.Draw(out, out.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	}

	mask := image.NewAlpha(image.Rect(0, 0, src.Dx()+2*rad, src.Dy()+2*rad))
	for y := src.Min.Y; y < src.Max.Y; y++ {
		for x := src.Min.X; x < src.Max.X; x++ {
			mask.Pix[(y-src.Min.Y+rad)*mask.Stride+x-src.Min.X+rad] = img.RGBAAt(x, y).A
		}
	}
	boxBlur(mask.Pix, mask.Stride, mask.Rect.Dx(), mask.Rect.Dy(), rad)

	draw.DrawMask(out, mask.Rect.Add(shadow.Min.Sub(all.Min)),
		image.NewUniform(color.RGBA{0, 0, 0, s.alpha()}), image.Point{}, mask, image.Point{}, draw.Over)
	draw.Draw(out, src.Sub(all.Min), img, src.Min, draw.Over)
	return out, shift
}

// boxBlur blurs an 8-bit plane in place, horizontally then vertically, with
// a window of 2*radius+1 clamped at the edges.
func boxBlur(pix []uint8, stride, w, h, radius int) {
	if radius <= 0 || w == 0 || h == 0 {
		return
	}
	n := w
	if h > n {
		n = h
	}
	line := make([]uint8, n)
	prefix := make([]int, n+1)
	blur1D := func(get func(i int) uint8, set func(i int, v uint8), length int) {
		for i := 0; i < length; i++ {
			line[i] = get(i)
			prefix[i+1] = prefix[i] + int(line[i])
		}
		for i := 0; i < length; i++ {
			lo, hi := i-radius, i+radius
			if lo < 0 {
				lo = 0
			}
			if hi >= length {
				hi = length - 1
			}
			set(i, uint8((prefix[hi+1]-prefix[lo])/(hi-lo+1)))
		}
	}
	for y := 0; y < h; y++ {
		row := pix[y*stride:]
		blur1D(func(i int) uint8 { return row[i] }, func(i int, v uint8) { row[i] = v }, w)
	}
	for x := 0; x < w; x++ {
		blur1D(func(i int) uint8 { return pix[i*stride+x] }, func(i int, v uint8) { pix[i*stride+x] = v }, h)
	}
}
