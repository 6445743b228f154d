package engine

// The touch state machine. Every active pointer carries its own gesture, so
// independent fingers can draw, erase, and create shapes simultaneously; only
// shape transforms are inherently single-object, always targeting the current
// selection regardless of which pointer drives them.
//
// Events for unknown pointer ids are tolerated as no-ops, and pointer-cancel
// commits exactly like pointer-up (the observed behavior of the original
// surface; the tests pin it).

// PointerDown begins a gesture for the given pointer id.
func (e *Engine) PointerDown(id int, x, y float64) {
	p := Point{X: x, Y: y}

	// Delete-glyph check runs before any mode dispatch and consumes the
	// gesture entirely when it hits.
	if sel := e.scene.Selected(); sel != nil && hitDeleteGlyph(sel, p) {
		e.scene.RemoveShape(sel.ID)
		e.notifySelection()
		return
	}

	switch e.mode {
	case ModePen, ModeText:
		e.gestures[id] = &strokeGesture{stroke: newStroke(p, e.strokeStyle)}

	case ModeEraser:
		e.gestures[id] = &eraserGesture{trace: []Point{p}, cursor: p}

	case ModeShape:
		if shape, kind := hitTest(e.scene, p); shape != nil {
			e.setSelection(shape.ID)
			e.gestures[id] = &shapeManipGesture{kind: kind, last: p}
		} else {
			e.setSelection("")
			e.gestures[id] = &shapeCreateGesture{start: p, current: p}
		}
	}
}

// PointerMove advances the gesture for the given pointer id.
func (e *Engine) PointerMove(id int, x, y float64) {
	g, ok := e.gestures[id]
	if !ok {
		return
	}
	p := Point{X: x, Y: y}

	switch g := g.(type) {
	case *strokeGesture:
		g.stroke.Points = append(g.stroke.Points, p)

	case *eraserGesture:
		g.cursor = p
		// Throttle trace density independent of touch sampling rate.
		step := e.eraserRadius / 4
		if step < traceStepFloor {
			step = traceStepFloor
		}
		if p.Distance(g.trace[len(g.trace)-1]) > step {
			g.trace = append(g.trace, p)
		}

	case *shapeCreateGesture:
		g.current = p
		if !g.dragged && p.Distance(g.start) > touchSlop {
			g.dragged = true
		}

	case *shapeManipGesture:
		sel := e.scene.Selected()
		if sel == nil {
			return
		}
		// A gesture that joined without a locked manipulation re-runs the
		// hit-test against the selected shape only.
		if g.kind == HitNone {
			g.kind = hitTestShape(sel, p)
		}
		switch g.kind {
		case HitBody:
			Translate(sel, p.X-g.last.X, p.Y-g.last.Y)
		case HitRotate:
			Rotate(sel, p, g.last)
		case HitNone:
		default:
			Resize(sel, g.kind, p.X-g.last.X, p.Y-g.last.Y)
		}
		g.last = p
		if g.kind != HitNone {
			e.notifySelection()
		}
	}
}

// PointerUp ends the gesture for the given pointer id, committing results
// into the scene. The pointer's transient state is cleared unconditionally.
func (e *Engine) PointerUp(id int, x, y float64) {
	g, ok := e.gestures[id]
	delete(e.gestures, id)
	if !ok {
		return
	}
	p := Point{X: x, Y: y}

	switch g := g.(type) {
	case *strokeGesture:
		if len(g.stroke.Points) >= 2 {
			e.scene.AddStroke(g.stroke)
		}

	case *eraserGesture:
		trace := g.trace
		if len(trace) == 0 {
			// Defensive fallback: erase at the release coordinate.
			trace = []Point{p}
		}
		e.scene.ReplaceStrokes(eraseStrokes(e.scene.Strokes(), trace, e.eraserRadius))

	case *shapeCreateGesture:
		g.current = p
		if !g.dragged && p.Distance(g.start) > touchSlop {
			g.dragged = true
		}
		e.commitShape(g)

	case *shapeManipGesture:
		// No new object; the manipulation marker is already cleared.
	}
}

// PointerCancel handles an externally aborted gesture. Commit semantics are
// identical to PointerUp.
func (e *Engine) PointerCancel(id int, x, y float64) {
	e.PointerUp(id, x, y)
}

// commitShape turns a finished creation gesture into a committed, selected
// shape. Taps use the configured default dimensions (or the fixed fallback
// half-size); drags use the gesture's bounding rectangle.
func (e *Engine) commitShape(g *shapeCreateGesture) {
	var bounds Bounds
	if g.dragged {
		bounds = BoundsFromPoints(g.start, g.current)
	} else {
		halfW, halfH := fallbackHalfSize, fallbackHalfSize
		if e.defaultShapeW > 0 && e.defaultShapeH > 0 {
			halfW = e.defaultShapeW / 2
			halfH = e.defaultShapeH / 2
		}
		bounds = Bounds{
			Left:   g.start.X - halfW,
			Top:    g.start.Y - halfH,
			Right:  g.start.X + halfW,
			Bottom: g.start.Y + halfH,
		}
	}

	shape := newShape(e.shapeKind, bounds)
	shape.BorderColor = e.shapeBorderColor()
	shape.BorderWidth = e.shapeBorderWidth()
	shape.FillEnabled = e.fillEnabled
	shape.FillColor = e.fillColor
	if e.shapeKind == ShapeText {
		shape.TextColor = e.textColor
		shape.TextSize = e.textSize
	}

	e.scene.AddShape(shape)
	e.setSelection(shape.ID)
}

// shapeBorderColor returns the dedicated shape border color, falling back to
// the current pen color when none is configured.
func (e *Engine) shapeBorderColor() string {
	if e.borderColor != "" {
		return e.borderColor
	}
	return e.strokeStyle.Color
}

func (e *Engine) shapeBorderWidth() float64 {
	if e.borderWidth > 0 {
		return e.borderWidth
	}
	return e.strokeStyle.Width
}
