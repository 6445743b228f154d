package engine

import "math"

// Point is a position on the drawing surface.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance to another point.
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Bounds is an axis-aligned rectangle in the shape's unrotated frame.
// Left <= Right and Top <= Bottom hold after every mutation.
type Bounds struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// BoundsFromPoints returns the min/max bounding box of two points.
func BoundsFromPoints(a, b Point) Bounds {
	return Bounds{
		Left:   math.Min(a.X, b.X),
		Top:    math.Min(a.Y, b.Y),
		Right:  math.Max(a.X, b.X),
		Bottom: math.Max(a.Y, b.Y),
	}
}

// Center returns the midpoint of the bounds.
func (b Bounds) Center() Point {
	return Point{X: (b.Left + b.Right) / 2, Y: (b.Top + b.Bottom) / 2}
}

// Width returns the horizontal extent.
func (b Bounds) Width() float64 { return b.Right - b.Left }

// Height returns the vertical extent.
func (b Bounds) Height() float64 { return b.Bottom - b.Top }

// Contains checks if a point lies within the bounds.
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.Left && p.X <= b.Right && p.Y >= b.Top && p.Y <= b.Bottom
}

// normalize swaps inverted edges so Left <= Right and Top <= Bottom.
func (b Bounds) normalize() Bounds {
	if b.Left > b.Right {
		b.Left, b.Right = b.Right, b.Left
	}
	if b.Top > b.Bottom {
		b.Top, b.Bottom = b.Bottom, b.Top
	}
	return b
}

// rotatePoint rotates p about center by the given angle in degrees.
func rotatePoint(p, center Point, degrees float64) Point {
	rad := degrees * math.Pi / 180.0
	sin := math.Sin(rad)
	cos := math.Cos(rad)
	dx := p.X - center.X
	dy := p.Y - center.Y
	return Point{
		X: center.X + dx*cos - dy*sin,
		Y: center.Y + dx*sin + dy*cos,
	}
}

// rotateVector rotates a direction vector by the given angle in degrees.
func rotateVector(dx, dy, degrees float64) (float64, float64) {
	rad := degrees * math.Pi / 180.0
	sin := math.Sin(rad)
	cos := math.Cos(rad)
	return dx*cos - dy*sin, dx*sin + dy*cos
}

// normalizeDegrees reduces an angle to [0, 360).
func normalizeDegrees(degrees float64) float64 {
	d := math.Mod(degrees, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// pointSegmentDistance returns the minimum distance from p to the segment a-b.
// The projection parameter is clamped to [0,1], so a zero-length segment
// degenerates to point-to-point distance.
func pointSegmentDistance(p, a, b Point) float64 {
	abx := b.X - a.X
	aby := b.Y - a.Y
	lenSq := abx*abx + aby*aby
	if lenSq == 0 {
		return p.Distance(a)
	}

	t := ((p.X-a.X)*abx + (p.Y-a.Y)*aby) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	closest := Point{X: a.X + t*abx, Y: a.Y + t*aby}
	return p.Distance(closest)
}
