package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundsFromPoints(t *testing.T) {
	b := BoundsFromPoints(Point{X: 150, Y: 20}, Point{X: 10, Y: 250})
	assert.Equal(t, Bounds{Left: 10, Top: 20, Right: 150, Bottom: 250}, b)
}

func TestBoundsNormalizeSwapsInvertedEdges(t *testing.T) {
	b := Bounds{Left: 100, Top: 80, Right: 20, Bottom: 10}.normalize()
	assert.Equal(t, Bounds{Left: 20, Top: 10, Right: 100, Bottom: 80}, b)

	// Already normal bounds pass through untouched.
	ok := Bounds{Left: 1, Top: 2, Right: 3, Bottom: 4}
	assert.Equal(t, ok, ok.normalize())
}

func TestBoundsCenterAndExtents(t *testing.T) {
	b := Bounds{Left: 10, Top: 20, Right: 110, Bottom: 70}
	assert.Equal(t, Point{X: 60, Y: 45}, b.Center())
	assert.Equal(t, 100.0, b.Width())
	assert.Equal(t, 50.0, b.Height())
}

func TestRotatePoint(t *testing.T) {
	center := Point{X: 0, Y: 0}
	p := rotatePoint(Point{X: 10, Y: 0}, center, 90)
	assert.InDelta(t, 0, p.X, 1e-9)
	assert.InDelta(t, 10, p.Y, 1e-9)

	// Rotating back by the negated angle recovers the original point.
	back := rotatePoint(p, center, -90)
	assert.InDelta(t, 10, back.X, 1e-9)
	assert.InDelta(t, 0, back.Y, 1e-9)

	// Rotation about a non-origin center.
	q := rotatePoint(Point{X: 5, Y: 5}, Point{X: 5, Y: 0}, 180)
	assert.InDelta(t, 5, q.X, 1e-9)
	assert.InDelta(t, -5, q.Y, 1e-9)
}

func TestNormalizeDegrees(t *testing.T) {
	assert.Equal(t, 0.0, normalizeDegrees(360))
	assert.Equal(t, 10.0, normalizeDegrees(370))
	assert.Equal(t, 350.0, normalizeDegrees(-10))
	assert.Equal(t, 0.0, normalizeDegrees(-720))
	assert.InDelta(t, 359.5, normalizeDegrees(-0.5), 1e-9)
}

func TestPointSegmentDistance(t *testing.T) {
	a := Point{X: 0, Y: 0}
	b := Point{X: 10, Y: 0}

	// Perpendicular projection lands inside the segment.
	assert.InDelta(t, 3, pointSegmentDistance(Point{X: 5, Y: 3}, a, b), 1e-9)

	// Projection clamps to the nearest endpoint.
	assert.InDelta(t, 5, pointSegmentDistance(Point{X: 15, Y: 0}, a, b), 1e-9)
	assert.InDelta(t, 5, pointSegmentDistance(Point{X: -3, Y: 4}, a, b), 1e-9)

	// Zero-length segment degenerates to point distance.
	require.InDelta(t, 5, pointSegmentDistance(Point{X: 3, Y: 4}, a, a), 1e-9)
}
