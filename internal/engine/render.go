package engine

import (
	"encoding/json"
	"sort"
)

// DrawCommand is a single drawing operation for a canvas backend to execute.
// Frontends replay these on a Canvas2D context; the raster package replays
// them onto an image. Commands are in painter's order (back to front).
type DrawCommand struct {
	Op string `json:"op"` // "clear", "path", "circle", "line", "text", "save", "restore", "rotate"

	// For "path"
	Path        []PathCommand `json:"path,omitempty"`
	Fill        string        `json:"fill,omitempty"`
	Stroke      string        `json:"stroke,omitempty"`
	StrokeWidth float64       `json:"strokeWidth,omitempty"`
	LineCap     string        `json:"lineCap,omitempty"`
	LineJoin    string        `json:"lineJoin,omitempty"`
	Dash        []float64     `json:"dash,omitempty"`

	// For "circle" (CX, CY, R) and "rotate" (angle in degrees about CX, CY)
	CX    float64 `json:"cx,omitempty"`
	CY    float64 `json:"cy,omitempty"`
	R     float64 `json:"r,omitempty"`
	Angle float64 `json:"angle,omitempty"`

	// For "line"
	X1 float64 `json:"x1,omitempty"`
	Y1 float64 `json:"y1,omitempty"`
	X2 float64 `json:"x2,omitempty"`
	Y2 float64 `json:"y2,omitempty"`

	// For "text"
	Text     string  `json:"text,omitempty"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	TextSize float64 `json:"textSize,omitempty"`
}

const (
	selectionColor  = "#3b82f6"
	deleteGlyphFill = "#ef4444"
	eraserOutline   = "#9ca3af"
)

// Render compiles the whole surface into a draw-command buffer: background,
// committed strokes, committed shapes, in-progress previews, the eraser
// overlay, and the selection decoration, in that order.
func (e *Engine) Render() []DrawCommand {
	var cmds []DrawCommand

	cmds = append(cmds, DrawCommand{Op: "clear", Fill: e.background})

	for _, s := range e.scene.Strokes() {
		cmds = append(cmds, strokeCommand(s))
	}

	for _, sh := range e.scene.Shapes() {
		cmds = append(cmds, shapeCommands(sh)...)
	}

	cmds = append(cmds, e.previewCommands()...)

	if e.mode == ModeEraser {
		cmds = append(cmds, e.eraserOverlayCommands()...)
	}

	if sel := e.scene.Selected(); sel != nil {
		cmds = append(cmds, selectionCommands(sel)...)
	}

	return cmds
}

// RenderJSON serializes the draw-command buffer for the wasm and WebSocket
// shells.
func (e *Engine) RenderJSON() string {
	data, err := json.Marshal(e.Render())
	if err != nil {
		return "[]"
	}
	return string(data)
}

func strokeCommand(s *Stroke) DrawCommand {
	return DrawCommand{
		Op:          "path",
		Path:        strokePath(s.Points),
		Stroke:      s.Style.Color,
		StrokeWidth: s.Style.Width,
		LineCap:     s.Style.Cap,
		LineJoin:    s.Style.Join,
	}
}

// shapeCommands rotates the canvas about the bounds center, replays the
// shape's local-frame outline (fill painted before stroke), then restores.
func shapeCommands(sh *ShapeObject) []DrawCommand {
	center := sh.Bounds.Center()
	cmds := []DrawCommand{
		{Op: "save"},
		{Op: "rotate", Angle: sh.Rotation, CX: center.X, CY: center.Y},
	}

	path := DrawCommand{
		Op:          "path",
		Path:        Outline(sh.Kind, sh.Bounds),
		Stroke:      sh.BorderColor,
		StrokeWidth: sh.BorderWidth,
	}
	if sh.FillEnabled && sh.Kind != ShapeLine {
		path.Fill = sh.FillColor
	}
	cmds = append(cmds, path)

	if sh.Kind == ShapeText && sh.Text != "" {
		cmds = append(cmds, DrawCommand{
			Op:       "text",
			Text:     sh.Text,
			X:        sh.Bounds.Left,
			Y:        sh.Bounds.Top + sh.TextSize,
			Fill:     sh.TextColor,
			TextSize: sh.TextSize,
		})
	}

	return append(cmds, DrawCommand{Op: "restore"})
}

// previewCommands renders every in-progress gesture: accumulating strokes as
// live ink, shape creations as a recomputed outline from start to current.
func (e *Engine) previewCommands() []DrawCommand {
	ids := make([]int, 0, len(e.gestures))
	for id := range e.gestures {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var cmds []DrawCommand
	for _, id := range ids {
		switch g := e.gestures[id].(type) {
		case *strokeGesture:
			if len(g.stroke.Points) >= 2 {
				cmds = append(cmds, strokeCommand(g.stroke))
			}
		case *shapeCreateGesture:
			preview := &ShapeObject{
				Kind:        e.shapeKind,
				Bounds:      BoundsFromPoints(g.start, g.current),
				BorderColor: e.shapeBorderColor(),
				BorderWidth: e.shapeBorderWidth(),
				FillEnabled: e.fillEnabled,
				FillColor:   e.fillColor,
			}
			cmds = append(cmds, shapeCommands(preview)...)
		}
	}
	return cmds
}

// eraserOverlayCommands draws the throttled trace and the cursor circle for
// every active eraser gesture.
func (e *Engine) eraserOverlayCommands() []DrawCommand {
	ids := make([]int, 0, len(e.gestures))
	for id := range e.gestures {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var cmds []DrawCommand
	for _, id := range ids {
		g, ok := e.gestures[id].(*eraserGesture)
		if !ok {
			continue
		}
		if len(g.trace) >= 2 {
			cmds = append(cmds, DrawCommand{
				Op:          "path",
				Path:        strokePath(g.trace),
				Stroke:      eraserOutline,
				StrokeWidth: 1,
				Dash:        []float64{4, 4},
			})
		}
		cmds = append(cmds, DrawCommand{
			Op:          "circle",
			CX:          g.cursor.X,
			CY:          g.cursor.Y,
			R:           e.eraserRadius,
			Stroke:      eraserOutline,
			StrokeWidth: 1.5,
		})
	}
	return cmds
}

// selectionCommands decorates the selected shape: dashed bounds, the eight
// resize handles, the rotate handle with its stem, and the delete glyph. The
// glyph is drawn unrotated at its rotated-bounds screen position.
func selectionCommands(sh *ShapeObject) []DrawCommand {
	b := sh.Bounds
	center := b.Center()

	cmds := []DrawCommand{
		{Op: "save"},
		{Op: "rotate", Angle: sh.Rotation, CX: center.X, CY: center.Y},
		{
			Op:          "path",
			Path:        rectanglePath(b),
			Stroke:      selectionColor,
			StrokeWidth: 1.5,
			Dash:        []float64{6, 4},
		},
	}

	half := handleSize / 2
	for _, h := range resizeHandles {
		pos := handlePosition(b, h.fx, h.fy)
		cmds = append(cmds, DrawCommand{
			Op: "path",
			Path: rectanglePath(Bounds{
				Left:   pos.X - half,
				Top:    pos.Y - half,
				Right:  pos.X + half,
				Bottom: pos.Y + half,
			}),
			Fill:        "#ffffff",
			Stroke:      selectionColor,
			StrokeWidth: 1.5,
		})
	}

	topMid := Point{X: center.X, Y: b.Top}
	rotatePos := Point{X: center.X, Y: b.Top - rotateHandleDistance}
	cmds = append(cmds,
		DrawCommand{
			Op: "line",
			X1: topMid.X, Y1: topMid.Y,
			X2: rotatePos.X, Y2: rotatePos.Y,
			Stroke:      selectionColor,
			StrokeWidth: 1.5,
		},
		DrawCommand{
			Op:          "circle",
			CX:          rotatePos.X,
			CY:          rotatePos.Y,
			R:           rotateHandleRadius / 2,
			Fill:        "#ffffff",
			Stroke:      selectionColor,
			StrokeWidth: 1.5,
		},
		DrawCommand{Op: "restore"},
	)

	glyph := deleteGlyphPosition(sh)
	arm := deleteGlyphRadius * 0.4
	cmds = append(cmds,
		DrawCommand{
			Op:   "circle",
			CX:   glyph.X,
			CY:   glyph.Y,
			R:    deleteGlyphRadius * 0.7,
			Fill: deleteGlyphFill,
		},
		DrawCommand{
			Op: "line",
			X1: glyph.X - arm, Y1: glyph.Y - arm,
			X2: glyph.X + arm, Y2: glyph.Y + arm,
			Stroke:      "#ffffff",
			StrokeWidth: 2,
		},
		DrawCommand{
			Op: "line",
			X1: glyph.X - arm, Y1: glyph.Y + arm,
			X2: glyph.X + arm, Y2: glyph.Y - arm,
			Stroke:      "#ffffff",
			StrokeWidth: 2,
		},
	)

	return cmds
}
