package engine

import "math"

// PathCommand represents a single path segment for rendering.
// Format matches Canvas2D: ["M", x, y], ["L", x, y], ["C", x1, y1, x2, y2, x, y], ["Z"].
type PathCommand []interface{}

// Outline returns the renderable path for a shape in its own unrotated local
// frame. Rendering rotates the canvas by the shape's rotation about the
// bounds center before replaying the path.
func Outline(kind ShapeKind, b Bounds) []PathCommand {
	switch kind {
	case ShapeRectangle, ShapeText:
		return rectanglePath(b)
	case ShapeCircle:
		return circlePath(b)
	case ShapeLine:
		// The line kind is the diagonal of its bounding box.
		return []PathCommand{
			{"M", b.Left, b.Top},
			{"L", b.Right, b.Bottom},
		}
	case ShapePolygon:
		return polygonPath(b)
	default:
		return nil
	}
}

// rectanglePath emits the bounds rectangle, closed, clockwise winding.
func rectanglePath(b Bounds) []PathCommand {
	return []PathCommand{
		{"M", b.Left, b.Top},
		{"L", b.Right, b.Top},
		{"L", b.Right, b.Bottom},
		{"L", b.Left, b.Bottom},
		{"Z"},
	}
}

// circlePath approximates a circle with four cubic beziers, centered at the
// bounds center with radius half the smaller extent so the circle always fits
// inside non-square bounds.
// k = 4 * (sqrt(2) - 1) / 3 ≈ 0.5522847498
func circlePath(b Bounds) []PathCommand {
	c := b.Center()
	r := math.Min(b.Width(), b.Height()) / 2
	k := 0.5522847498 * r

	return []PathCommand{
		{"M", c.X + r, c.Y},
		{"C", c.X + r, c.Y + k, c.X + k, c.Y + r, c.X, c.Y + r},
		{"C", c.X - k, c.Y + r, c.X - r, c.Y + k, c.X - r, c.Y},
		{"C", c.X - r, c.Y - k, c.X - k, c.Y - r, c.X, c.Y - r},
		{"C", c.X + k, c.Y - r, c.X + r, c.Y - k, c.X + r, c.Y},
		{"Z"},
	}
}

// polygonPath inscribes a regular pentagon in the same circle as circlePath,
// first vertex at 270° (pointing up), subsequent vertices at +72° steps.
func polygonPath(b Bounds) []PathCommand {
	c := b.Center()
	r := math.Min(b.Width(), b.Height()) / 2

	path := make([]PathCommand, 0, polygonSides+1)
	for i := 0; i < polygonSides; i++ {
		angle := (270 + float64(i)*360/polygonSides) * math.Pi / 180
		x := c.X + r*math.Cos(angle)
		y := c.Y + r*math.Sin(angle)
		if i == 0 {
			path = append(path, PathCommand{"M", x, y})
		} else {
			path = append(path, PathCommand{"L", x, y})
		}
	}
	return append(path, PathCommand{"Z"})
}

// strokePath converts a stroke's point sequence into an open polyline path.
func strokePath(points []Point) []PathCommand {
	if len(points) == 0 {
		return nil
	}
	path := make([]PathCommand, 0, len(points))
	path = append(path, PathCommand{"M", points[0].X, points[0].Y})
	for _, p := range points[1:] {
		path = append(path, PathCommand{"L", p.X, p.Y})
	}
	return path
}
