package engine

import "math"

// Translate moves a shape by a screen-space delta. The delta is rotated into
// the shape's local frame so the axis-aligned bounds representation keeps
// working for rotated shapes. Pure translation: width and height never change.
func Translate(s *ShapeObject, dxScreen, dyScreen float64) {
	dx, dy := rotateVector(dxScreen, dyScreen, -s.Rotation)
	s.Bounds.Left += dx
	s.Bounds.Right += dx
	s.Bounds.Top += dy
	s.Bounds.Bottom += dy
}

// Resize drags one of the eight handles by a screen-space delta. The delta is
// brought into the local frame, applied to exactly the edges the handle
// controls, then the bounds are normalized: dragging a handle past the
// opposite edge flips the extent instead of leaving inverted bounds.
func Resize(s *ShapeObject, handle HitKind, dxScreen, dyScreen float64) {
	dx, dy := rotateVector(dxScreen, dyScreen, -s.Rotation)

	switch handle {
	case HitResizeTopLeft:
		s.Bounds.Left += dx
		s.Bounds.Top += dy
	case HitResizeTop:
		s.Bounds.Top += dy
	case HitResizeTopRight:
		s.Bounds.Right += dx
		s.Bounds.Top += dy
	case HitResizeRight:
		s.Bounds.Right += dx
	case HitResizeBottomRight:
		s.Bounds.Right += dx
		s.Bounds.Bottom += dy
	case HitResizeBottom:
		s.Bounds.Bottom += dy
	case HitResizeBottomLeft:
		s.Bounds.Left += dx
		s.Bounds.Bottom += dy
	case HitResizeLeft:
		s.Bounds.Left += dx
	default:
		return
	}

	s.Bounds = s.Bounds.normalize()
}

// Rotate spins a shape by the signed angle between the vectors from its
// center to the previous and current screen points. The result is reduced to
// [0, 360).
func Rotate(s *ShapeObject, screen, previous Point) {
	c := s.Bounds.Center()
	prevAngle := math.Atan2(previous.Y-c.Y, previous.X-c.X)
	currAngle := math.Atan2(screen.Y-c.Y, screen.X-c.X)
	delta := (currAngle - prevAngle) * 180 / math.Pi
	s.Rotation = normalizeDegrees(s.Rotation + delta)
}
