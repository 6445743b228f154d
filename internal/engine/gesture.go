package engine

// gesture is the transient per-pointer state, a tagged union keyed by pointer
// id. One pointer is always in exactly one of these states, which makes
// illegal combinations (a pointer both erasing and creating) unrepresentable.
type gesture interface {
	isGesture()
}

// strokeGesture accumulates an in-progress freehand stroke (pen and text
// modes). The style is snapshotted at gesture start.
type strokeGesture struct {
	stroke *Stroke
}

// eraserGesture records the trace of eraser-circle centers for one gesture.
// cursor tracks the latest point for preview rendering, independent of the
// throttled trace.
type eraserGesture struct {
	trace  []Point
	cursor Point
}

// shapeCreateGesture remembers where a shape-creation drag started and where
// it currently is. dragged latches once movement exceeds the touch slop.
type shapeCreateGesture struct {
	start   Point
	current Point
	dragged bool
}

// shapeManipGesture drives a transform of the current selection. kind may be
// HitNone when no manipulation was locked in on pointer-down; the first move
// re-runs the hit-test against the selected shape only.
type shapeManipGesture struct {
	kind HitKind
	last Point
}

func (*strokeGesture) isGesture()      {}
func (*eraserGesture) isGesture()      {}
func (*shapeCreateGesture) isGesture() {}
func (*shapeManipGesture) isGesture()  {}
