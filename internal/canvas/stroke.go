package canvas

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"
)

type vec struct{ x, y float64 }

func (a vec) add(b vec) vec       { return vec{a.x + b.x, a.y + b.y} }
func (a vec) sub(b vec) vec       { return vec{a.x - b.x, a.y - b.y} }
func (a vec) scale(f float64) vec { return vec{a.x * f, a.y * f} }
func (a vec) perp() vec           { return vec{-a.y, a.x} }
func (a vec) length() float64     { return math.Hypot(a.x, a.y) }

func toVec(p image.Point) vec { return vec{float64(p.X), float64(p.Y)} }

// polar returns the point at angle rad on the ellipse centred at c. Screen y
// grows downwards, so counter-clockwise angles subtract.
func polar(c vec, rx, ry, rad float64) vec {
	return vec{c.x + rx*math.Cos(rad), c.y - ry*math.Sin(rad)}
}

func drawShape(dst *image.RGBA, s Shape) {
	half := float64(s.Stroke.Width) / 2
	var polys [][]vec
	switch s.Kind {
	case KindLine:
		polys = linePolygons(toVec(s.From), toVec(s.To), half, s.Stroke.Cap == CapRound)
	case KindRect:
		polys = rectPolygons(s.Bounds(), half)
	case KindOval:
		polys = ovalPolygons(s.Bounds(), half)
	case KindArc:
		polys = arcPolygons(s.Bounds(), half)
	}
	fillPolygons(dst, s.Stroke.Color, polys)
}

// linePolygons builds a quad for the segment and, for round caps, a disc at
// each end. A zero length segment only produces its caps.
func linePolygons(a, b vec, half float64, round bool) [][]vec {
	var out [][]vec
	d := b.sub(a)
	if l := d.length(); l > 0 {
		n := d.scale(half / l).perp()
		out = append(out, orient([]vec{a.add(n), b.add(n), b.sub(n), a.sub(n)}, true))
	}
	if round {
		out = append(out, ellipse(a, half, half, true), ellipse(b, half, half, true))
	}
	return out
}

// rectPolygons strokes the rectangle outline centred on its edges.
func rectPolygons(r image.Rectangle, half float64) [][]vec {
	x0, y0 := float64(r.Min.X), float64(r.Min.Y)
	x1, y1 := float64(r.Max.X), float64(r.Max.Y)
	outer := orient([]vec{{x0 - half, y0 - half}, {x1 + half, y0 - half}, {x1 + half, y1 + half}, {x0 - half, y1 + half}}, true)
	if x1-x0 <= 2*half || y1-y0 <= 2*half {
		return [][]vec{outer}
	}
	inner := orient([]vec{{x0 + half, y0 + half}, {x1 - half, y0 + half}, {x1 - half, y1 - half}, {x0 + half, y1 - half}}, false)
	return [][]vec{outer, inner}
}

// ovalPolygons strokes the ellipse inscribed in r as a ring.
func ovalPolygons(r image.Rectangle, half float64) [][]vec {
	rx := float64(r.Dx()) / 2
	ry := float64(r.Dy()) / 2
	c := vec{float64(r.Min.X) + rx, float64(r.Min.Y) + ry}
	outer := ellipse(c, rx+half, ry+half, true)
	if rx <= half || ry <= half {
		return [][]vec{outer}
	}
	return [][]vec{outer, ellipse(c, rx-half, ry-half, false)}
}

// arcPolygons strokes a pie slice outline: the two radii and the elliptical
// arc between ArcStart and ArcStart+ArcExtent. Joins are rounded.
func arcPolygons(r image.Rectangle, half float64) [][]vec {
	rx := float64(r.Dx()) / 2
	ry := float64(r.Dy()) / 2
	c := vec{float64(r.Min.X) + rx, float64(r.Min.Y) + ry}
	steps := segments(math.Max(rx, ry) * ArcExtent / 360)
	path := []vec{c}
	for i := 0; i <= steps; i++ {
		deg := ArcStart + ArcExtent*float64(i)/float64(steps)
		path = append(path, polar(c, rx, ry, deg*math.Pi/180))
	}
	path = append(path, c)
	var out [][]vec
	for i := 1; i < len(path); i++ {
		out = append(out, linePolygons(path[i-1], path[i], half, false)...)
		out = append(out, ellipse(path[i], half, half, true))
	}
	return out
}

func segments(radius float64) int {
	n := int(2 * math.Pi * radius / 3)
	if n < 12 {
		n = 12
	}
	if n > 256 {
		n = 256
	}
	return n
}

func ellipse(c vec, rx, ry float64, positive bool) []vec {
	n := segments(math.Max(rx, ry))
	pts := make([]vec, n)
	for i := range pts {
		pts[i] = polar(c, rx, ry, 2*math.Pi*float64(i)/float64(n))
	}
	return orient(pts, positive)
}

// orient returns pts wound so that its signed area is positive or negative.
// The rasterizer accumulates signed coverage, so holes must run opposite to
// their outline and overlapping pieces of one stroke must agree.
func orient(pts []vec, positive bool) []vec {
	var area float64
	for i := range pts {
		j := (i + 1) % len(pts)
		area += pts[i].x*pts[j].y - pts[j].x*pts[i].y
	}
	if (area >= 0) == positive {
		return pts
	}
	out := make([]vec, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}

// fillPolygons rasterises polys into dst with a rasterizer sized to their
// clipped bounding box.
func fillPolygons(dst *image.RGBA, c color.RGBA, polys [][]vec) {
	if len(polys) == 0 {
		return
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, poly := range polys {
		for _, p := range poly {
			minX = math.Min(minX, p.x)
			minY = math.Min(minY, p.y)
			maxX = math.Max(maxX, p.x)
			maxY = math.Max(maxY, p.y)
		}
	}
	box := image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX)), int(math.Ceil(maxY)))
	box = box.Intersect(dst.Bounds())
	if box.Empty() {
		return
	}
	z := vector.NewRasterizer(box.Dx(), box.Dy())
	ox, oy := float64(box.Min.X), float64(box.Min.Y)
	for _, poly := range polys {
		if len(poly) < 3 {
			continue
		}
		z.MoveTo(float32(poly[0].x-ox), float32(poly[0].y-oy))
		for _, p := range poly[1:] {
			z.LineTo(float32(p.x-ox), float32(p.y-oy))
		}
		z.ClosePath()
	}
	z.Draw(dst, box, image.NewUniform(c), image.Point{})
}
