// Package geometry provides the plane math used for placing, moving and
// hit-testing diagram elements. Coordinates are unbounded float64 values.
package geometry

import "math"

// Epsilon is the tolerance used by ApproxEqual.
const Epsilon = 1e-6

// Point is a position (or a displacement) in the logical plane.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p translated by d.
func (p Point) Add(d Point) Point { return Point{p.X + d.X, p.Y + d.Y} }

// Sub returns the displacement from q to p.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Mul scales p about the origin.
func (p Point) Mul(f float64) Point { return Point{p.X * f, p.Y * f} }

// Len returns the distance of p from the origin.
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

// IsZero reports whether p is the origin.
func (p Point) IsZero() bool { return p.X == 0 && p.Y == 0 }

// ApproxEqual reports whether p and q are within Epsilon on both axes.
func (p Point) ApproxEqual(q Point) bool {
	return math.Abs(p.X-q.X) <= Epsilon && math.Abs(p.Y-q.Y) <= Epsilon
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// ScaleAbout re-projects p toward or away from anchor by factor:
// anchor + (p - anchor) * factor.
func ScaleAbout(p, anchor Point, factor float64) Point {
	return anchor.Add(p.Sub(anchor).Mul(factor))
}

// Polar returns the displacement of length dist at angle radians, measured
// clockwise from the positive X axis (Y grows downward).
func Polar(angle, dist float64) Point {
	return Point{dist * math.Cos(angle), dist * math.Sin(angle)}
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// Segment is a straight connector between two points.
type Segment struct {
	From, To Point
}

// Translate moves both endpoints by d.
func (s Segment) Translate(d Point) Segment {
	return Segment{s.From.Add(d), s.To.Add(d)}
}

// ScaleAbout re-projects both endpoints about anchor.
func (s Segment) ScaleAbout(anchor Point, factor float64) Segment {
	return Segment{ScaleAbout(s.From, anchor, factor), ScaleAbout(s.To, anchor, factor)}
}

// ApproxEqual compares both endpoints within Epsilon.
func (s Segment) ApproxEqual(o Segment) bool {
	return s.From.ApproxEqual(o.From) && s.To.ApproxEqual(o.To)
}

// Coords returns x1, y1, x2, y2.
func (s Segment) Coords() []float64 {
	return []float64{s.From.X, s.From.Y, s.To.X, s.To.Y}
}

// DistanceTo returns the shortest distance from p to the segment.
func (s Segment) DistanceTo(p Point) float64 {
	d := s.To.Sub(s.From)
	lenSq := d.X*d.X + d.Y*d.Y
	if lenSq == 0 {
		return Distance(p, s.From)
	}
	t := ((p.X-s.From.X)*d.X + (p.Y-s.From.Y)*d.Y) / lenSq
	t = math.Max(0, math.Min(1, t))
	return Distance(p, s.From.Add(d.Mul(t)))
}

// Rect is an axis-aligned box given by its corners.
type Rect struct {
	Min, Max Point
}

// Around returns the square box of half-width r centred on c.
func Around(c Point, r float64) Rect {
	return Rect{Point{c.X - r, c.Y - r}, Point{c.X + r, c.Y + r}}
}

// Center returns the midpoint of the box.
func (r Rect) Center() Point {
	return Point{(r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2}
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Contains reports whether p lies inside or on the box.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Coords returns x1, y1, x2, y2.
func (r Rect) Coords() []float64 {
	return []float64{r.Min.X, r.Min.Y, r.Max.X, r.Max.Y}
}
