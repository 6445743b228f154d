package engine

// Mode is the active tool.
type Mode string

const (
	ModePen    Mode = "pen"
	ModeEraser Mode = "eraser"
	ModeShape  Mode = "shape"
	ModeText   Mode = "text"
)

const (
	// touchSlop separates taps from drags during shape creation.
	touchSlop = 12.0
	// fallbackHalfSize sizes tap-created shapes when no default creation
	// dimensions are configured.
	fallbackHalfSize = 100.0
	// traceStepFloor is the minimum eraser-trace throttle distance; the
	// throttle is a quarter of the eraser radius, floored at this value.
	traceStepFloor = 2.0

	defaultStrokeColor = "#1f2333"
	defaultStrokeWidth = 4.0
	defaultFillColor   = "#ffffff"
	defaultEraserRad   = 24.0
	defaultTextColor   = "#1f2333"
	defaultTextSize    = 18.0
	defaultBackground  = "#fafafa"
)

// SelectionObserver receives an immutable snapshot whenever the selection
// changes or the selected shape's properties change. nil means nothing is
// selected.
type SelectionObserver interface {
	SelectionChanged(snapshot *ShapeSnapshot)
}

// Engine is the drawing-surface engine. It owns the scene, the per-pointer
// gesture state, and the current tool settings, and is driven entirely by
// single-threaded events, with no locking and no internal goroutines.
type Engine struct {
	scene    *Scene
	gestures map[int]gesture

	mode      Mode
	shapeKind ShapeKind

	strokeStyle StrokeStyle
	borderColor string
	borderWidth float64
	fillEnabled bool
	fillColor   string
	textColor   string
	textSize    float64

	eraserRadius  float64
	defaultShapeW float64
	defaultShapeH float64

	width      int
	height     int
	background string

	observer SelectionObserver
}

// NewEngine creates an engine with a blank surface of the given size.
func NewEngine(width, height int) *Engine {
	return &Engine{
		scene:    NewScene(),
		gestures: make(map[int]gesture),

		mode:      ModePen,
		shapeKind: ShapeRectangle,

		strokeStyle: StrokeStyle{
			Color: defaultStrokeColor,
			Width: defaultStrokeWidth,
			Cap:   LineCapRound,
			Join:  LineJoinRound,
		},
		fillColor: defaultFillColor,
		textColor: defaultTextColor,
		textSize:  defaultTextSize,

		eraserRadius: defaultEraserRad,

		width:      width,
		height:     height,
		background: defaultBackground,
	}
}

// Scene exposes the scene model for read access (rendering, tests).
func (e *Engine) Scene() *Scene { return e.scene }

// Width returns the surface width.
func (e *Engine) Width() int { return e.width }

// Height returns the surface height.
func (e *Engine) Height() int { return e.height }

// --- Tool and style selectors ---

func (e *Engine) SetMode(m Mode)              { e.mode = m }
func (e *Engine) Mode() Mode                  { return e.mode }
func (e *Engine) SetShapeKind(k ShapeKind)    { e.shapeKind = k }
func (e *Engine) SetStrokeColor(color string) { e.strokeStyle.Color = color }
func (e *Engine) SetStrokeWidth(w float64)    { e.strokeStyle.Width = w }
func (e *Engine) SetBorderColor(color string) { e.borderColor = color }
func (e *Engine) SetBorderWidth(w float64)    { e.borderWidth = w }
func (e *Engine) SetFillColor(color string)   { e.fillColor = color }
func (e *Engine) SetFillEnabled(on bool)      { e.fillEnabled = on }
func (e *Engine) SetEraserRadius(r float64)   { e.eraserRadius = r }
func (e *Engine) SetTextColor(color string)   { e.textColor = color }
func (e *Engine) SetTextSize(size float64)    { e.textSize = size }
func (e *Engine) SetBackground(color string)  { e.background = color }

// SetDefaultShapeSize configures tap-created shape dimensions. Zero means
// unconfigured: taps fall back to a fixed half-size.
func (e *Engine) SetDefaultShapeSize(w, h float64) {
	e.defaultShapeW = w
	e.defaultShapeH = h
}

// SetSurfaceSize resizes the logical surface.
func (e *Engine) SetSurfaceSize(width, height int) {
	e.width = width
	e.height = height
}

// --- Selection ---

// SetObserver registers the single external selection observer.
func (e *Engine) SetObserver(o SelectionObserver) {
	e.observer = o
}

// CurrentSelection returns an immutable snapshot of the selection, or nil.
func (e *Engine) CurrentSelection() *ShapeSnapshot {
	sel := e.scene.Selected()
	if sel == nil {
		return nil
	}
	return sel.snapshot()
}

// HitTest reports what a screen point would strike: the snapshot of the
// topmost shape hit (nil when nothing is struck) and the part of it that was
// hit. It never mutates the scene or the selection.
func (e *Engine) HitTest(x, y float64) (*ShapeSnapshot, HitKind) {
	shape, kind := hitTest(e.scene, Point{X: x, Y: y})
	if shape == nil {
		return nil, HitNone
	}
	return shape.snapshot(), kind
}

// setSelection replaces the selection and notifies the observer. Mutation
// always finishes before the notification fires.
func (e *Engine) setSelection(id string) {
	e.scene.Select(id)
	e.notifySelection()
}

func (e *Engine) notifySelection() {
	if e.observer == nil {
		return
	}
	e.observer.SelectionChanged(e.CurrentSelection())
}

// --- Selected-object mutators (all no-ops without a selection) ---

func (e *Engine) UpdateSelectedFillColor(color string) {
	e.mutateSelected(func(s *ShapeObject) { s.FillColor = color })
}

func (e *Engine) UpdateSelectedFillEnabled(on bool) {
	e.mutateSelected(func(s *ShapeObject) { s.FillEnabled = on })
}

func (e *Engine) UpdateSelectedBorderColor(color string) {
	e.mutateSelected(func(s *ShapeObject) { s.BorderColor = color })
}

func (e *Engine) UpdateSelectedBorderWidth(w float64) {
	e.mutateSelected(func(s *ShapeObject) { s.BorderWidth = w })
}

func (e *Engine) UpdateSelectedText(text string) {
	e.mutateSelected(func(s *ShapeObject) { s.Text = text })
}

func (e *Engine) UpdateSelectedTextColor(color string) {
	e.mutateSelected(func(s *ShapeObject) { s.TextColor = color })
}

func (e *Engine) UpdateSelectedTextSize(size float64) {
	e.mutateSelected(func(s *ShapeObject) { s.TextSize = size })
}

func (e *Engine) mutateSelected(f func(*ShapeObject)) {
	sel := e.scene.Selected()
	if sel == nil {
		return
	}
	f(sel)
	e.notifySelection()
}

// --- Whole-surface operations ---

// ClearAll drops all strokes, shapes, the selection, and every in-flight
// pointer gesture.
func (e *Engine) ClearAll() {
	e.scene.Clear()
	e.gestures = make(map[int]gesture)
	e.notifySelection()
}

// UndoLastStroke removes the single most recently committed freehand stroke.
func (e *Engine) UndoLastStroke() {
	e.scene.RemoveLastStroke()
}
