package f32

import "gioui.org/f32"

type Point = f32.Point

var Pt = f32.Pt

// A Rectangle contains the points (X, Y) where Min.X <= X < Max.X,
// Min.Y <= Y < Max.Y.
type Rectangle struct {
	Min, Max Point
}

// String return a string representation of r.
func (r Rectangle) String() string {
	return r.Min.String() + "-" + r.Max.String()
}

// Rect is a shorthand for Rectangle{Point{x0, y0}, Point{x1, y1}}.
// The returned Rectangle has x0 and y0 swapped if necessary so that
// it's correctly formed.
func Rect(x0, y0, x1, y1 float32) Rectangle {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return Rectangle{Point{X: x0, Y: y0}, Point{X: x1, Y: y1}}
}

// Size returns r's width and height.
func (r Rectangle) Size() Point {
	return Point{X: r.Dx(), Y: r.Dy()}
}

// Dx returns r's width.
func (r Rectangle) Dx() float32 {
	return r.Max.X - r.Min.X
}

// Dy returns r's Height.
func (r Rectangle) Dy() float32 {
	return r.Max.Y - r.Min.Y
}

// Add offsets r with the vector p.
func (r Rectangle) Add(p Point) Rectangle {
	return Rectangle{
		Point{X: r.Min.X + p.X, Y: r.Min.Y + p.Y},
		Point{X: r.Max.X + p.X, Y: r.Max.Y + p.Y},
	}
}

// Contains reports whether p lies in r. The test is exact: no slack is applied at the edges, and
// the maximum edges are exclusive.
func (r Rectangle) Contains(p Point) bool {
	return p.X >= r.Min.X && p.Y >= r.Min.Y &&
		p.X < r.Max.X && p.Y < r.Max.Y
}

func Clamp(v, minV, maxV float32) float32 {
	return min(maxV, max(minV, v))
}
