package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHitTestShapeBody(t *testing.T) {
	s := rect(0, 0, 200, 100)
	assert.Equal(t, HitBody, hitTestShape(s, Point{X: 100, Y: 50}))
	assert.Equal(t, HitNone, hitTestShape(s, Point{X: 300, Y: 50}))
}

func TestHitTestShapeHandles(t *testing.T) {
	s := rect(0, 0, 200, 100)

	cases := []struct {
		name string
		p    Point
		want HitKind
	}{
		{"top-left corner", Point{X: 0, Y: 0}, HitResizeTopLeft},
		{"top-left zone edge", Point{X: 11, Y: -11}, HitResizeTopLeft},
		{"top mid", Point{X: 100, Y: 0}, HitResizeTop},
		{"top-right corner", Point{X: 200, Y: 0}, HitResizeTopRight},
		{"right mid", Point{X: 200, Y: 50}, HitResizeRight},
		{"bottom-right corner", Point{X: 200, Y: 100}, HitResizeBottomRight},
		{"bottom mid", Point{X: 100, Y: 100}, HitResizeBottom},
		{"bottom-left corner", Point{X: 0, Y: 100}, HitResizeBottomLeft},
		{"left mid", Point{X: 0, Y: 50}, HitResizeLeft},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, hitTestShape(s, tc.p))
		})
	}
}

func TestHitTestHandlesBeatBody(t *testing.T) {
	s := rect(0, 0, 200, 100)
	// Inside both the body and the bottom-right handle zone; the handle wins.
	assert.Equal(t, HitResizeBottomRight, hitTestShape(s, Point{X: 195, Y: 95}))
}

func TestHitTestRotateHandle(t *testing.T) {
	s := rect(0, 0, 200, 100)
	assert.Equal(t, HitRotate, hitTestShape(s, Point{X: 100, Y: -48}))
	assert.Equal(t, HitRotate, hitTestShape(s, Point{X: 100, Y: -48 + rotateHandleRadius}))
	assert.Equal(t, HitNone, hitTestShape(s, Point{X: 100, Y: -48 + rotateHandleRadius + 1}))
}

func TestHitTestRotatedShape(t *testing.T) {
	// 200x100 rectangle centered at the origin, rotated a quarter turn: on
	// screen it occupies 100x200.
	s := rect(-100, -50, 100, 50)
	s.Rotation = 90

	assert.Equal(t, HitBody, hitTestShape(s, Point{X: 0, Y: 80}))
	// The same point misses the unrotated footprint.
	s.Rotation = 0
	assert.Equal(t, HitNone, hitTestShape(s, Point{X: 0, Y: 80}))
}

func TestHitTestTopmostWins(t *testing.T) {
	scene := NewScene()
	bottom := newShape(ShapeRectangle, Bounds{Left: 0, Top: 0, Right: 100, Bottom: 100})
	top := newShape(ShapeRectangle, Bounds{Left: 50, Top: 50, Right: 150, Bottom: 150})
	scene.AddShape(bottom)
	scene.AddShape(top)

	hit, kind := hitTest(scene, Point{X: 75, Y: 75})
	require.NotNil(t, hit)
	assert.Equal(t, top.ID, hit.ID)
	assert.Equal(t, HitBody, kind)

	// A point only the lower shape covers still resolves.
	hit, _ = hitTest(scene, Point{X: 30, Y: 30})
	require.NotNil(t, hit)
	assert.Equal(t, bottom.ID, hit.ID)
}

func TestHitTestEmptyScene(t *testing.T) {
	hit, kind := hitTest(NewScene(), Point{X: 10, Y: 10})
	assert.Nil(t, hit)
	assert.Equal(t, HitNone, kind)
}

func TestDeleteGlyphPosition(t *testing.T) {
	s := rect(0, 0, 100, 100)
	p := deleteGlyphPosition(s)
	assert.InDelta(t, 128, p.X, 1e-9)
	assert.InDelta(t, -28, p.Y, 1e-9)

	// The glyph follows the rotated corner.
	s.Rotation = 90
	p = deleteGlyphPosition(s)
	// Local (128, -28) rotated 90 degrees about (50, 50).
	assert.InDelta(t, 128, p.X, 1e-9)
	assert.InDelta(t, 128, p.Y, 1e-9)
}

func TestHitDeleteGlyph(t *testing.T) {
	s := rect(0, 0, 100, 100)
	assert.True(t, hitDeleteGlyph(s, Point{X: 128, Y: -28}))
	assert.True(t, hitDeleteGlyph(s, Point{X: 128 + deleteGlyphRadius, Y: -28}))
	assert.False(t, hitDeleteGlyph(s, Point{X: 128 + deleteGlyphRadius + 1, Y: -28}))
}

func TestEngineHitTest(t *testing.T) {
	e := NewEngine(600, 400)
	shape := rect(0, 0, 200, 100)
	shape.ID = "shape_hit"
	e.scene.AddShape(shape)

	snap, kind := e.HitTest(100, 50)
	require.NotNil(t, snap)
	assert.Equal(t, HitBody, kind)
	assert.Equal(t, shape.ID, snap.ID)

	snap, kind = e.HitTest(500, 300)
	assert.Nil(t, snap)
	assert.Equal(t, HitNone, kind)

	// Querying never selects.
	assert.Nil(t, e.CurrentSelection())
}
