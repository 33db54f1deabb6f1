package spatial

import "math"

// Blocker is anything the pathfinder and movement stepper must treat as
// solid: a non-passable obstacle (expanded by unit radius + clearance) or
// a live unit (expanded by MIN_UNIT_SEPARATION-equivalent clearance).
type Blocker interface {
	// Intersects reports whether the closed segment a-b comes within the
	// blocker's effective radius of the blocker.
	Intersects(a, b Point) bool
	// Contains reports whether p lies within the blocker's effective area.
	Contains(p Point) bool
}

// Circle is a circular blocker (trees, rocks, unit occupancy disks).
type Circle struct {
	Center Point
	Radius float64
}

// Contains reports whether p is within the circle.
func (c Circle) Contains(p Point) bool {
	return c.Center.Distance(p) <= c.Radius
}

// Intersects reports whether segment a-b passes within Radius of Center.
func (c Circle) Intersects(a, b Point) bool {
	return segmentPointDistance(a, b, c.Center) <= c.Radius
}

// OBB is an oriented rectangular blocker (walls, fences, houses), given
// as a center, half-extents along its own (possibly rotated) axes, and a
// rotation in radians.
type OBB struct {
	Center                Point
	HalfLength, HalfWidth float64
	Rotation              float64
}

// toLocal rotates a world point into the OBB's local, axis-aligned frame.
func (r OBB) toLocal(p Point) Point {
	d := p.Sub(r.Center)
	cos, sin := math.Cos(-r.Rotation), math.Sin(-r.Rotation)
	return Point{d.X*cos - d.Y*sin, d.X*sin + d.Y*cos}
}

// Contains reports whether p is within the rectangle.
func (r OBB) Contains(p Point) bool {
	local := r.toLocal(p)
	return math.Abs(local.X) <= r.HalfLength && math.Abs(local.Y) <= r.HalfWidth
}

// Intersects reports whether segment a-b crosses the rectangle, tested by
// transforming the segment into the rectangle's local frame and running a
// standard slab (Liang-Barsky style) test against the axis-aligned box.
func (r OBB) Intersects(a, b Point) bool {
	la, lb := r.toLocal(a), r.toLocal(b)
	if r.Contains(a) || r.Contains(b) {
		return true
	}
	return segmentIntersectsAABB(la, lb, r.HalfLength, r.HalfWidth)
}

// segmentPointDistance returns the minimum distance from point p to the
// closed segment a-b.
func segmentPointDistance(a, b, p Point) float64 {
	ab := b.Sub(a)
	abLenSq := ab.Dot(ab)
	if abLenSq == 0 {
		return a.Distance(p)
	}
	t := p.Sub(a).Dot(ab) / abLenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	closest := a.Add(ab.Scale(t))
	return closest.Distance(p)
}

// segmentIntersectsAABB tests a segment (in the box's local frame)
// against the axis-aligned box [-hl,hl] x [-hw,hw] using the slab method.
func segmentIntersectsAABB(a, b Point, hl, hw float64) bool {
	d := b.Sub(a)
	tMin, tMax := 0.0, 1.0

	clip := func(p, q float64) bool {
		if p == 0 {
			return q >= 0
		}
		t := q / p
		if p < 0 {
			if t > tMax {
				return false
			}
			if t > tMin {
				tMin = t
			}
		} else {
			if t < tMin {
				return false
			}
			if t < tMax {
				tMax = t
			}
		}
		return true
	}

	if !clip(-d.X, a.X+hl) {
		return false
	}
	if !clip(d.X, hl-a.X) {
		return false
	}
	if !clip(-d.Y, a.Y+hw) {
		return false
	}
	if !clip(d.Y, hw-a.Y) {
		return false
	}
	return tMin <= tMax
}

// AnyIntersects reports whether segment a-b is blocked by any of blockers.
func AnyIntersects(a, b Point, blockers []Blocker) bool {
	for _, bl := range blockers {
		if bl.Intersects(a, b) {
			return true
		}
	}
	return false
}

// AnyContains reports whether p lies within any of blockers.
func AnyContains(p Point, blockers []Blocker) bool {
	for _, bl := range blockers {
		if bl.Contains(p) {
			return true
		}
	}
	return false
}
