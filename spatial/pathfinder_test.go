package spatial_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ttu/skirmish-sim/spatial"
)

func TestFindPathStraightLineWhenClear(t *testing.T) {
	bounds := spatial.Bounds{Width: 40, Height: 40}
	path := spatial.FindPath(spatial.Point{X: -5, Y: 0}, spatial.Point{X: 5, Y: 0}, nil, bounds)
	require.Len(t, path, 2)
	assert.True(t, path[0].Equals(spatial.Point{X: -5, Y: 0}))
	assert.True(t, path[1].Equals(spatial.Point{X: 5, Y: 0}))
}

func TestFindPathAvoidsRock(t *testing.T) {
	bounds := spatial.Bounds{Width: 40, Height: 40}
	rock := spatial.Circle{Center: spatial.Point{X: 5, Y: 5}, Radius: 1.5 + spatial.UnitRadius + spatial.Clearance}
	blockers := []spatial.Blocker{rock}

	path := spatial.FindPath(spatial.Point{X: 0, Y: 5}, spatial.Point{X: 10, Y: 5}, blockers, bounds)
	require.NotNil(t, path)

	length := spatial.PathLength(path)
	assert.Greater(t, length, 10.0)

	for _, p := range path {
		assert.Greater(t, p.Distance(spatial.Point{X: 5, Y: 5}), 1.0)
	}
}

func TestFindPathNoCornerCutting(t *testing.T) {
	bounds := spatial.Bounds{Width: 10, Height: 10}
	// Two rectangles forming a near-diagonal pinch point.
	r1 := spatial.OBB{Center: spatial.Point{X: 0, Y: 1}, HalfLength: 1, HalfWidth: 1}
	r2 := spatial.OBB{Center: spatial.Point{X: 1, Y: 0}, HalfLength: 1, HalfWidth: 1}
	blockers := []spatial.Blocker{r1, r2}

	path := spatial.FindPath(spatial.Point{X: -2, Y: -2}, spatial.Point{X: 3, Y: 3}, blockers, bounds)
	require.NotNil(t, path)
	for _, p := range path {
		assert.False(t, r1.Contains(p))
		assert.False(t, r2.Contains(p))
	}
}

func TestPathLengthAndPositionAlongPath(t *testing.T) {
	path := []spatial.Point{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 4}}
	assert.InDelta(t, 7.0, spatial.PathLength(path), 1e-9)

	mid := spatial.PositionAlongPath(path, 3)
	assert.InDelta(t, 3.0, mid.X, 1e-9)
	assert.InDelta(t, 0.0, mid.Y, 1e-9)

	end := spatial.PositionAlongPath(path, 100)
	assert.True(t, end.Equals(spatial.Point{X: 3, Y: 4}))
}

func TestFindPathNoPathReturnsNil(t *testing.T) {
	bounds := spatial.Bounds{Width: 6, Height: 6}
	// Four overlapping OBBs forming a sealed ring around the start point,
	// with the goal placed outside the ring entirely.
	blockers := []spatial.Blocker{
		spatial.OBB{Center: spatial.Point{X: 0, Y: 2}, HalfLength: 3, HalfWidth: 0.3},
		spatial.OBB{Center: spatial.Point{X: 0, Y: -2}, HalfLength: 3, HalfWidth: 0.3},
		spatial.OBB{Center: spatial.Point{X: 2, Y: 0}, HalfLength: 0.3, HalfWidth: 3},
		spatial.OBB{Center: spatial.Point{X: -2, Y: 0}, HalfLength: 0.3, HalfWidth: 3},
	}
	path := spatial.FindPath(spatial.Point{X: 0, Y: 0}, spatial.Point{X: 2.9, Y: 2.9}, blockers, bounds)
	assert.Nil(t, path)
}
