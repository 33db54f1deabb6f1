package spatial_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ttu/skirmish-sim/spatial"
)

func TestCircleIntersects(t *testing.T) {
	c := spatial.Circle{Center: spatial.Point{X: 5, Y: 0}, Radius: 1}
	assert.True(t, c.Intersects(spatial.Point{X: 0, Y: 0}, spatial.Point{X: 10, Y: 0}))
	assert.False(t, c.Intersects(spatial.Point{X: 0, Y: 5}, spatial.Point{X: 10, Y: 5}))
	assert.True(t, c.Contains(spatial.Point{X: 5.5, Y: 0}))
	assert.False(t, c.Contains(spatial.Point{X: 7, Y: 0}))
}

func TestOBBAxisAlignedIntersects(t *testing.T) {
	r := spatial.OBB{Center: spatial.Point{X: 0, Y: 0}, HalfLength: 2, HalfWidth: 1}
	assert.True(t, r.Intersects(spatial.Point{X: -5, Y: 0}, spatial.Point{X: 5, Y: 0}))
	assert.False(t, r.Intersects(spatial.Point{X: -5, Y: 5}, spatial.Point{X: 5, Y: 5}))
}

func TestOBBRotatedIntersects(t *testing.T) {
	// A wall rotated 45 degrees; a horizontal segment through the origin
	// should still clip it since the rectangle still straddles y=0 near x=0.
	r := spatial.OBB{Center: spatial.Point{X: 0, Y: 0}, HalfLength: 3, HalfWidth: 0.2, Rotation: 0.785398}
	assert.True(t, r.Intersects(spatial.Point{X: -0.1, Y: 0}, spatial.Point{X: 0.1, Y: 0}))
}

func TestAnyIntersectsAndContains(t *testing.T) {
	blockers := []spatial.Blocker{
		spatial.Circle{Center: spatial.Point{X: 5, Y: 5}, Radius: 1},
		spatial.OBB{Center: spatial.Point{X: -5, Y: -5}, HalfLength: 1, HalfWidth: 1},
	}
	assert.True(t, spatial.AnyIntersects(spatial.Point{X: 0, Y: 5}, spatial.Point{X: 10, Y: 5}, blockers))
	assert.True(t, spatial.AnyContains(spatial.Point{X: -5, Y: -5}, blockers))
	assert.False(t, spatial.AnyContains(spatial.Point{X: 100, Y: 100}, blockers))
}
