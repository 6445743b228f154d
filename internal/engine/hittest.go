package engine

// HitKind identifies what part of a shape a point strikes.
type HitKind string

const (
	HitNone   HitKind = ""
	HitRotate HitKind = "rotate"
	HitBody   HitKind = "body"

	HitResizeTopLeft     HitKind = "resize-top-left"
	HitResizeTop         HitKind = "resize-top"
	HitResizeTopRight    HitKind = "resize-top-right"
	HitResizeRight       HitKind = "resize-right"
	HitResizeBottomRight HitKind = "resize-bottom-right"
	HitResizeBottom      HitKind = "resize-bottom"
	HitResizeBottomLeft  HitKind = "resize-bottom-left"
	HitResizeLeft        HitKind = "resize-left"
)

const (
	// handleSize is the side of each square resize-handle hit zone.
	handleSize = 24.0
	// rotateHandleDistance is how far above the bounds top edge the rotate
	// handle sits, in the shape's local frame.
	rotateHandleDistance = 48.0
	// rotateHandleRadius is the circular hit zone around the rotate handle.
	rotateHandleRadius = 16.0
	// deleteGlyphOffset places the delete glyph outside the top-right corner.
	deleteGlyphOffset = 28.0
	// deleteGlyphRadius is the circular hit zone around the delete glyph.
	deleteGlyphRadius = 20.0
)

// resizeHandles enumerates the eight handles with their anchor positions on
// the bounds, as (horizontal, vertical) factors in [0,1].
var resizeHandles = []struct {
	kind   HitKind
	fx, fy float64
}{
	{HitResizeTopLeft, 0, 0},
	{HitResizeTop, 0.5, 0},
	{HitResizeTopRight, 1, 0},
	{HitResizeRight, 1, 0.5},
	{HitResizeBottomRight, 1, 1},
	{HitResizeBottom, 0.5, 1},
	{HitResizeBottomLeft, 0, 1},
	{HitResizeLeft, 0, 0.5},
}

func handlePosition(b Bounds, fx, fy float64) Point {
	return Point{
		X: b.Left + fx*b.Width(),
		Y: b.Top + fy*b.Height(),
	}
}

// hitTestShape tests a single shape against a screen point. The point is
// first brought into the shape's local frame by undoing its rotation about
// the bounds center. Priority: rotate handle, resize handles, body.
func hitTestShape(s *ShapeObject, screen Point) HitKind {
	local := rotatePoint(screen, s.Bounds.Center(), -s.Rotation)

	rotateCenter := Point{
		X: (s.Bounds.Left + s.Bounds.Right) / 2,
		Y: s.Bounds.Top - rotateHandleDistance,
	}
	if local.Distance(rotateCenter) <= rotateHandleRadius {
		return HitRotate
	}

	half := handleSize / 2
	for _, h := range resizeHandles {
		pos := handlePosition(s.Bounds, h.fx, h.fy)
		if local.X >= pos.X-half && local.X <= pos.X+half &&
			local.Y >= pos.Y-half && local.Y <= pos.Y+half {
			return h.kind
		}
	}

	if s.Bounds.Contains(local) {
		return HitBody
	}
	return HitNone
}

// hitTest finds the topmost shape struck by a screen point, walking shapes in
// reverse z-order so later-drawn shapes win overlapping hits.
func hitTest(scene *Scene, screen Point) (*ShapeObject, HitKind) {
	shapes := scene.Shapes()
	for i := len(shapes) - 1; i >= 0; i-- {
		if kind := hitTestShape(shapes[i], screen); kind != HitNone {
			return shapes[i], kind
		}
	}
	return nil, HitNone
}

// deleteGlyphPosition computes the screen position of the selection's delete
// glyph: a fixed offset outside the top-right corner of the rotated bounds.
func deleteGlyphPosition(s *ShapeObject) Point {
	local := Point{
		X: s.Bounds.Right + deleteGlyphOffset,
		Y: s.Bounds.Top - deleteGlyphOffset,
	}
	return rotatePoint(local, s.Bounds.Center(), s.Rotation)
}

// hitDeleteGlyph reports whether a screen point lands on the selection's
// delete glyph.
func hitDeleteGlyph(s *ShapeObject, screen Point) bool {
	return screen.Distance(deleteGlyphPosition(s)) <= deleteGlyphRadius
}
