// Package geom holds the float geometry shared by the canvas packages. All
// values are plain structs so callers can copy them freely.
package geom

import "math"

// Point is a 2D coordinate in either screen or world space.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p minus q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Rect is an anchored rectangle. Width and Height may be negative while a
// gesture is in progress; Normalize folds them back.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// RectFromPoints returns the rectangle anchored at a spanning to b. The span
// keeps its sign.
func RectFromPoints(a, b Point) Rect {
	return Rect{X: a.X, Y: a.Y, Width: b.X - a.X, Height: b.Y - a.Y}
}

// Normalize moves the anchor so Width and Height are non-negative.
func (r Rect) Normalize() Rect {
	if r.Width < 0 {
		r.X += r.Width
		r.Width = -r.Width
	}
	if r.Height < 0 {
		r.Y += r.Height
		r.Height = -r.Height
	}
	return r
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width == 0 || r.Height == 0
}

// Min returns the top-left corner of the normalized rectangle.
func (r Rect) Min() Point {
	n := r.Normalize()
	return Point{n.X, n.Y}
}

// Max returns the bottom-right corner of the normalized rectangle.
func (r Rect) Max() Point {
	n := r.Normalize()
	return Point{n.X + n.Width, n.Y + n.Height}
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	min, max := r.Min(), r.Max()
	return p.X >= min.X && p.X <= max.X && p.Y >= min.Y && p.Y <= max.Y
}

// ContainsRect reports whether o lies entirely inside r, edges included.
func (r Rect) ContainsRect(o Rect) bool {
	rmin, rmax := r.Min(), r.Max()
	omin, omax := o.Min(), o.Max()
	return omin.X >= rmin.X && omin.Y >= rmin.Y && omax.X <= rmax.X && omax.Y <= rmax.Y
}

// Overlaps reports whether r and o share any area.
func (r Rect) Overlaps(o Rect) bool {
	rmin, rmax := r.Min(), r.Max()
	omin, omax := o.Min(), o.Max()
	return omin.X < rmax.X && rmin.X < omax.X && omin.Y < rmax.Y && rmin.Y < omax.Y
}

// Distance returns the euclidean distance between p and q.
func Distance(p, q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}
