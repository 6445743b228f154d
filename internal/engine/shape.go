package engine

import "github.com/inklet/inklet/backend-go/internal/typeid"

// ShapeKind identifies a geometric primitive.
type ShapeKind string

const (
	ShapeRectangle ShapeKind = "rectangle"
	ShapeCircle    ShapeKind = "circle"
	ShapeLine      ShapeKind = "line"
	ShapePolygon   ShapeKind = "polygon"
	ShapeText      ShapeKind = "text"
)

// polygonSides is the vertex count for the polygon kind (regular pentagon,
// first vertex pointing up at 270°).
const polygonSides = 5

// ShapeObject is a committed geometric primitive. Bounds are pre-rotation;
// Rotation is degrees about the bounds center, always reduced to [0, 360).
type ShapeObject struct {
	ID          string    `json:"id"`
	Kind        ShapeKind `json:"kind"`
	Bounds      Bounds    `json:"bounds"`
	Rotation    float64   `json:"rotation"`
	BorderColor string    `json:"borderColor"`
	BorderWidth float64   `json:"borderWidth"`
	FillEnabled bool      `json:"fillEnabled"`
	FillColor   string    `json:"fillColor"`
	Text        string    `json:"text,omitempty"`
	TextColor   string    `json:"textColor,omitempty"`
	TextSize    float64   `json:"textSize,omitempty"`
}

func newShape(kind ShapeKind, bounds Bounds) *ShapeObject {
	return &ShapeObject{
		ID:     typeid.NewShapeID(),
		Kind:   kind,
		Bounds: bounds.normalize(),
	}
}

// ShapeSnapshot is an immutable copy of a shape handed to external observers.
// Mutating a snapshot never alters engine state.
type ShapeSnapshot struct {
	ID          string    `json:"id"`
	Kind        ShapeKind `json:"kind"`
	Bounds      Bounds    `json:"bounds"`
	Rotation    float64   `json:"rotation"`
	BorderColor string    `json:"borderColor"`
	BorderWidth float64   `json:"borderWidth"`
	FillEnabled bool      `json:"fillEnabled"`
	FillColor   string    `json:"fillColor"`
	Text        string    `json:"text,omitempty"`
	TextColor   string    `json:"textColor,omitempty"`
	TextSize    float64   `json:"textSize,omitempty"`
}

func (s *ShapeObject) snapshot() *ShapeSnapshot {
	return &ShapeSnapshot{
		ID:          s.ID,
		Kind:        s.Kind,
		Bounds:      s.Bounds,
		Rotation:    s.Rotation,
		BorderColor: s.BorderColor,
		BorderWidth: s.BorderWidth,
		FillEnabled: s.FillEnabled,
		FillColor:   s.FillColor,
		Text:        s.Text,
		TextColor:   s.TextColor,
		TextSize:    s.TextSize,
	}
}
