// Package spatial provides the kernel's continuous-2D geometry and the A*
// pathfinder that operates over a grid rasterized from that geometry.
package spatial

import "math"

// Numeric constants the spec pins bit-exact (spec §6).
const (
	UnitRadius         = 0.5
	MinUnitSeparation  = 1.0
	MeleeAttackRange   = 1.2
	EngagementRange    = 1.5
	ShieldWallRange    = 2.5
	CellSize           = 0.5
	Clearance          = 0.15
)

// epsilon is the floating-point tolerance used for positional comparisons
// (spec §9: "Do not use integer grid snapping outside the pathfinder").
const epsilon = 1e-6

// Point is a position in continuous 2D space.
type Point struct {
	X, Y float64
}

// Add returns p+o.
func (p Point) Add(o Point) Point { return Point{p.X + o.X, p.Y + o.Y} }

// Sub returns p-o.
func (p Point) Sub(o Point) Point { return Point{p.X - o.X, p.Y - o.Y} }

// Scale returns p scaled by f.
func (p Point) Scale(f float64) Point { return Point{p.X * f, p.Y * f} }

// Dot returns the dot product of p and o.
func (p Point) Dot(o Point) float64 { return p.X*o.X + p.Y*o.Y }

// Length returns the Euclidean length of p as a vector.
func (p Point) Length() float64 { return math.Sqrt(p.Dot(p)) }

// Normalize returns a unit vector in the direction of p, or the zero
// vector if p is the zero vector.
func (p Point) Normalize() Point {
	l := p.Length()
	if l == 0 {
		return Point{}
	}
	return p.Scale(1 / l)
}

// Distance returns the Euclidean distance between p and o.
func (p Point) Distance(o Point) float64 {
	return p.Sub(o).Length()
}

// Equals reports whether p and o are within epsilon of each other.
func (p Point) Equals(o Point) bool {
	return math.Abs(p.X-o.X) < epsilon && math.Abs(p.Y-o.Y) < epsilon
}

// Bounds is a map's rectangular extent, centered at the origin.
type Bounds struct {
	Width, Height float64
}

// Contains reports whether p lies within the bounds (spec §3 invariant 3).
func (b Bounds) Contains(p Point) bool {
	return p.X >= -b.Width/2 && p.X <= b.Width/2 &&
		p.Y >= -b.Height/2 && p.Y <= b.Height/2
}

// Clamp pins p to the bounds.
func (b Bounds) Clamp(p Point) Point {
	x := math.Max(-b.Width/2, math.Min(b.Width/2, p.X))
	y := math.Max(-b.Height/2, math.Min(b.Height/2, p.Y))
	return Point{x, y}
}
