package session

import "encoding/json"

// Message is the envelope for every frame exchanged over a board socket.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

const (
	// Inbound
	TypePointerDown   = "pointer.down"
	TypePointerMove   = "pointer.move"
	TypePointerUp     = "pointer.up"
	TypePointerCancel = "pointer.cancel"
	TypeToolMode      = "tool.mode"
	TypeToolShape     = "tool.shape"
	TypeStyleUpdate   = "style.update"
	TypeSelectionEdit = "selection.update"
	TypeSurfaceClear  = "surface.clear"
	TypeSurfaceUndo   = "surface.undo"
	TypeSurfaceResize = "surface.resize"
	TypeRenderRequest = "surface.render"

	// Outbound
	TypeReady           = "session.ready"
	TypeFrame           = "frame"
	TypeSelectionChange = "selection.changed"
	TypeError           = "error"
)

type PointerPayload struct {
	PointerID int     `json:"pointerId"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

type ToolModePayload struct {
	Mode string `json:"mode"`
}

type ToolShapePayload struct {
	Kind string `json:"kind"`
}

// StylePayload carries tool style settings. Pointer fields distinguish
// "not present" from zero values so a single message can update any subset.
type StylePayload struct {
	StrokeColor  *string  `json:"strokeColor,omitempty"`
	StrokeWidth  *float64 `json:"strokeWidth,omitempty"`
	BorderColor  *string  `json:"borderColor,omitempty"`
	BorderWidth  *float64 `json:"borderWidth,omitempty"`
	FillColor    *string  `json:"fillColor,omitempty"`
	FillEnabled  *bool    `json:"fillEnabled,omitempty"`
	EraserRadius *float64 `json:"eraserRadius,omitempty"`
	TextColor    *string  `json:"textColor,omitempty"`
	TextSize     *float64 `json:"textSize,omitempty"`
	Background   *string  `json:"background,omitempty"`
	ShapeWidth   *float64 `json:"shapeWidth,omitempty"`
	ShapeHeight  *float64 `json:"shapeHeight,omitempty"`
}

// SelectionEditPayload mutates the currently selected shape.
type SelectionEditPayload struct {
	FillColor   *string  `json:"fillColor,omitempty"`
	FillEnabled *bool    `json:"fillEnabled,omitempty"`
	BorderColor *string  `json:"borderColor,omitempty"`
	BorderWidth *float64 `json:"borderWidth,omitempty"`
	Text        *string  `json:"text,omitempty"`
	TextColor   *string  `json:"textColor,omitempty"`
	TextSize    *float64 `json:"textSize,omitempty"`
}

type SurfaceResizePayload struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ReadyPayload opens every session. The session id is what the client hands
// to the live-export endpoint.
type ReadyPayload struct {
	SessionID string `json:"sessionId"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

type FramePayload struct {
	Commands json.RawMessage `json:"commands"`
}

type SelectionChangePayload struct {
	Shape json.RawMessage `json:"shape"` // null when the selection is cleared
}

type ErrorPayload struct {
	Message string `json:"message"`
}
