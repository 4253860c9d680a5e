package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/example/whiteboard/internal/geom"
)

// polygon is a closed outline in screen pixels, clockwise on a y-down screen.
type polygon []geom.Point

func reversed(p polygon) polygon {
	out := make(polygon, len(p))
	for i, pt := range p {
		out[len(p)-1-i] = pt
	}
	return out
}

func arcSegments(radius float64) int {
	n := int(radius/2) + 8
	if n > 128 {
		n = 128
	}
	return n
}

// roundedRect outlines r with corners of the given radius, clamped so that
// opposite corners never overlap.
func roundedRect(r geom.Rect, radius float64) polygon {
	r = r.Normalize()
	radius = math.Max(0, math.Min(radius, math.Min(r.Width, r.Height)/2))
	if radius == 0 {
		return polygon{
			{X: r.X, Y: r.Y},
			{X: r.X + r.Width, Y: r.Y},
			{X: r.X + r.Width, Y: r.Y + r.Height},
			{X: r.X, Y: r.Y + r.Height},
		}
	}
	n := arcSegments(radius)
	corners := [4]struct {
		c     geom.Point
		start float64
	}{
		{geom.Pt(r.X+r.Width-radius, r.Y+radius), -math.Pi / 2},
		{geom.Pt(r.X+r.Width-radius, r.Y+r.Height-radius), 0},
		{geom.Pt(r.X+radius, r.Y+r.Height-radius), math.Pi / 2},
		{geom.Pt(r.X+radius, r.Y+radius), math.Pi},
	}
	out := make(polygon, 0, 4*(n+1))
	for _, k := range corners {
		for i := 0; i <= n; i++ {
			a := k.start + float64(i)/float64(n)*math.Pi/2
			out = append(out, geom.Pt(k.c.X+radius*math.Cos(a), k.c.Y+radius*math.Sin(a)))
		}
	}
	return out
}

// ellipse outlines the ellipse inscribed in r.
func ellipse(r geom.Rect) polygon {
	r = r.Normalize()
	rx, ry := r.Width/2, r.Height/2
	cx, cy := r.X+rx, r.Y+ry
	n := 4 * arcSegments(math.Max(rx, ry))
	out := make(polygon, n)
	for i := range out {
		a := 2 * math.Pi * float64(i) / float64(n)
		out[i] = geom.Pt(cx+rx*math.Cos(a), cy+ry*math.Sin(a))
	}
	return out
}

func inset(r geom.Rect, d float64) geom.Rect {
	r = r.Normalize()
	return geom.Rect{X: r.X + d, Y: r.Y + d, Width: r.Width - 2*d, Height: r.Height - 2*d}
}

// ring returns the outline pair of a stroke of width w centred on the edge
// produced by outline. The inner contour is reversed so the rasterizer's
// signed coverage cancels inside it.
func ring(r geom.Rect, w float64, outline func(geom.Rect) polygon) []polygon {
	outer := outline(inset(r, -w/2))
	in := inset(r, w/2)
	if in.Width <= 0 || in.Height <= 0 {
		return []polygon{outer}
	}
	return []polygon{outer, reversed(outline(in))}
}

// fill rasterizes the polygons onto dst with the source-over operator.
func fill(dst *image.RGBA, c color.Color, polys ...polygon) {
	b := dst.Bounds()
	if b.Empty() {
		return
	}
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = draw.Over
	drawn := false
	for _, p := range polys {
		if len(p) < 3 {
			continue
		}
		z.MoveTo(float32(p[0].X-float64(b.Min.X)), float32(p[0].Y-float64(b.Min.Y)))
		for _, pt := range p[1:] {
			z.LineTo(float32(pt.X-float64(b.Min.X)), float32(pt.Y-float64(b.Min.Y)))
		}
		z.ClosePath()
		drawn = true
	}
	if !drawn {
		return
	}
	z.Draw(dst, b, image.NewUniform(c), image.Point{})
}
