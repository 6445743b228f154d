package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRectangleOutline(t *testing.T) {
	path := Outline(ShapeRectangle, Bounds{Left: 10, Top: 20, Right: 110, Bottom: 70})
	require.Len(t, path, 5)
	assert.Equal(t, PathCommand{"M", 10.0, 20.0}, path[0])
	assert.Equal(t, PathCommand{"L", 110.0, 20.0}, path[1])
	assert.Equal(t, PathCommand{"L", 110.0, 70.0}, path[2])
	assert.Equal(t, PathCommand{"L", 10.0, 70.0}, path[3])
	assert.Equal(t, PathCommand{"Z"}, path[4])
}

func TestTextOutlinesAsRectangle(t *testing.T) {
	b := Bounds{Left: 0, Top: 0, Right: 50, Bottom: 30}
	assert.Equal(t, Outline(ShapeRectangle, b), Outline(ShapeText, b))
}

func TestCircleOutline(t *testing.T) {
	// Non-square bounds: the radius is half the smaller extent.
	path := Outline(ShapeCircle, Bounds{Left: 0, Top: 0, Right: 200, Bottom: 100})
	require.Len(t, path, 6)

	// Starts at the rightmost point of the inscribed circle.
	assert.Equal(t, PathCommand{"M", 150.0, 50.0}, path[0])

	for i := 1; i <= 4; i++ {
		require.Len(t, path[i], 7)
		assert.Equal(t, "C", path[i][0])
	}
	assert.Equal(t, PathCommand{"Z"}, path[5])

	// First quarter ends at the bottom of the circle.
	q := path[1]
	assert.InDelta(t, 100, q[5].(float64), 1e-9)
	assert.InDelta(t, 100, q[6].(float64), 1e-9)

	// Control points use the standard bezier circle constant.
	k := 0.5522847498 * 50
	assert.InDelta(t, 150, q[1].(float64), 1e-9)
	assert.InDelta(t, 50+k, q[2].(float64), 1e-9)
}

func TestPolygonOutline(t *testing.T) {
	path := Outline(ShapePolygon, Bounds{Left: -100, Top: -100, Right: 100, Bottom: 100})
	require.Len(t, path, polygonSides+1)

	// First vertex points straight up (270 degrees on a y-down surface).
	first := path[0]
	assert.Equal(t, "M", first[0])
	assert.InDelta(t, 0, first[1].(float64), 1e-9)
	assert.InDelta(t, -100, first[2].(float64), 1e-9)

	// Remaining vertices step by 72 degrees and stay on the circle.
	for i := 1; i < polygonSides; i++ {
		v := path[i]
		assert.Equal(t, "L", v[0])
		x := v[1].(float64)
		y := v[2].(float64)
		assert.InDelta(t, 100, math.Hypot(x, y), 1e-9)

		angle := (270 + float64(i)*72) * math.Pi / 180
		assert.InDelta(t, 100*math.Cos(angle), x, 1e-9)
		assert.InDelta(t, 100*math.Sin(angle), y, 1e-9)
	}
	assert.Equal(t, PathCommand{"Z"}, path[polygonSides])
}

func TestLineOutlineIsBoundsDiagonal(t *testing.T) {
	path := Outline(ShapeLine, Bounds{Left: 10, Top: 20, Right: 110, Bottom: 70})
	require.Len(t, path, 2)
	assert.Equal(t, PathCommand{"M", 10.0, 20.0}, path[0])
	assert.Equal(t, PathCommand{"L", 110.0, 70.0}, path[1])
}

func TestStrokePath(t *testing.T) {
	assert.Nil(t, strokePath(nil))

	path := strokePath([]Point{{X: 1, Y: 2}, {X: 3, Y: 4}, {X: 5, Y: 6}})
	require.Len(t, path, 3)
	assert.Equal(t, PathCommand{"M", 1.0, 2.0}, path[0])
	assert.Equal(t, PathCommand{"L", 3.0, 4.0}, path[1])
	assert.Equal(t, PathCommand{"L", 5.0, 6.0}, path[2])
	// Open polyline: no closing command.
	assert.NotEqual(t, PathCommand{"Z"}, path[len(path)-1])
}
