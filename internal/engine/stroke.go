package engine

import "github.com/inklet/inklet/backend-go/internal/typeid"

// LineCap and LineJoin match the Canvas2D vocabulary the frontend executes.
const (
	LineCapRound  = "round"
	LineJoinRound = "round"
)

// StrokeStyle is the frozen appearance of one freehand stroke. Each committed
// stroke stores its own copy taken at gesture start, so later global style
// changes never repaint historical ink.
type StrokeStyle struct {
	Color string  `json:"color"`
	Width float64 `json:"width"`
	Cap   string  `json:"cap"`
	Join  string  `json:"join"`
}

// Stroke is one committed freehand ink path. The point sequence is the source
// of truth; the renderable outline is rebuilt from it every frame so the
// eraser can split it into surviving runs.
type Stroke struct {
	ID     string      `json:"id"`
	Points []Point     `json:"points"`
	Style  StrokeStyle `json:"style"`
}

func newStroke(start Point, style StrokeStyle) *Stroke {
	return &Stroke{
		ID:     typeid.NewStrokeID(),
		Points: []Point{start},
		Style:  style,
	}
}

// derived strokes produced by eraser splitting share the original's style but
// get a fresh id.
func (s *Stroke) derive(points []Point) *Stroke {
	return &Stroke{
		ID:     typeid.NewStrokeID(),
		Points: points,
		Style:  s.Style,
	}
}
