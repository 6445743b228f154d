package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderStartsWithClear(t *testing.T) {
	e := NewEngine(800, 600)
	e.SetBackground("#123456")

	cmds := e.Render()
	require.NotEmpty(t, cmds)
	assert.Equal(t, "clear", cmds[0].Op)
	assert.Equal(t, "#123456", cmds[0].Fill)
}

func TestRenderPaintersOrder(t *testing.T) {
	e := NewEngine(800, 600)

	// One committed stroke, then one committed shape.
	e.PointerDown(1, 0, 0)
	e.PointerMove(1, 10, 10)
	e.PointerUp(1, 10, 10)
	e.SetMode(ModeShape)
	e.PointerDown(1, 400, 300)
	e.PointerUp(1, 400, 300)

	cmds := e.Render()
	require.GreaterOrEqual(t, len(cmds), 5)
	assert.Equal(t, "clear", cmds[0].Op)

	// Stroke ink directly after clear.
	assert.Equal(t, "path", cmds[1].Op)
	assert.Equal(t, defaultStrokeColor, cmds[1].Stroke)

	// Shape follows, wrapped in save/rotate/restore.
	assert.Equal(t, "save", cmds[2].Op)
	assert.Equal(t, "rotate", cmds[3].Op)
	assert.Equal(t, "path", cmds[4].Op)
	assert.Equal(t, "restore", cmds[5].Op)

	// Selection decoration comes last: the final commands draw the delete
	// glyph cross.
	last := cmds[len(cmds)-1]
	assert.Equal(t, "line", last.Op)
	glyphCircle := cmds[len(cmds)-3]
	assert.Equal(t, "circle", glyphCircle.Op)
	assert.Equal(t, deleteGlyphFill, glyphCircle.Fill)
}

func TestRenderShapeFill(t *testing.T) {
	e := NewEngine(800, 600)
	e.SetMode(ModeShape)
	e.SetFillEnabled(true)
	e.SetFillColor("#ff00ff")
	e.PointerDown(1, 400, 300)
	e.PointerUp(1, 400, 300)

	found := false
	for _, cmd := range e.Render() {
		if cmd.Op == "path" && cmd.Fill == "#ff00ff" {
			found = true
			break
		}
	}
	require.True(t, found, "filled shape path missing from command buffer")
}

func TestRenderLineKindNeverFills(t *testing.T) {
	e := NewEngine(800, 600)
	e.SetMode(ModeShape)
	e.SetShapeKind(ShapeLine)
	e.SetFillEnabled(true)
	e.SetFillColor("#ff00ff")
	e.PointerDown(1, 0, 0)
	e.PointerMove(1, 100, 100)
	e.PointerUp(1, 100, 100)

	for _, cmd := range e.Render() {
		assert.NotEqual(t, "#ff00ff", cmd.Fill)
	}
}

func TestRenderTextCommand(t *testing.T) {
	e := NewEngine(800, 600)
	e.SetMode(ModeShape)
	e.SetShapeKind(ShapeText)
	e.SetTextSize(20)
	e.PointerDown(1, 400, 300)
	e.PointerUp(1, 400, 300)
	e.UpdateSelectedText("hello")

	var text *DrawCommand
	for _, cmd := range e.Render() {
		if cmd.Op == "text" {
			c := cmd
			text = &c
			break
		}
	}
	require.NotNil(t, text)
	assert.Equal(t, "hello", text.Text)
	assert.Equal(t, 20.0, text.TextSize)

	// Empty text renders no text command.
	e.UpdateSelectedText("")
	for _, cmd := range e.Render() {
		assert.NotEqual(t, "text", cmd.Op)
	}
}

func TestRenderStrokePreview(t *testing.T) {
	e := NewEngine(800, 600)
	e.PointerDown(1, 0, 0)
	e.PointerMove(1, 10, 10)

	// Not committed yet, but visible.
	assert.Empty(t, e.Scene().Strokes())
	paths := 0
	for _, cmd := range e.Render() {
		if cmd.Op == "path" {
			paths++
		}
	}
	assert.Equal(t, 1, paths)
}

func TestRenderEraserOverlay(t *testing.T) {
	e := NewEngine(800, 600)
	e.SetMode(ModeEraser)
	e.PointerDown(1, 100, 100)

	var cursor *DrawCommand
	for _, cmd := range e.Render() {
		if cmd.Op == "circle" {
			c := cmd
			cursor = &c
			break
		}
	}
	require.NotNil(t, cursor)
	assert.Equal(t, 100.0, cursor.CX)
	assert.Equal(t, 100.0, cursor.CY)
	assert.Equal(t, defaultEraserRad, cursor.R)
	assert.Equal(t, eraserOutline, cursor.Stroke)

	// Leaving eraser mode removes the overlay.
	e.PointerUp(1, 100, 100)
	e.SetMode(ModePen)
	for _, cmd := range e.Render() {
		assert.NotEqual(t, "circle", cmd.Op)
	}
}

func TestRenderSelectionDecoration(t *testing.T) {
	e := NewEngine(800, 600)
	e.SetMode(ModeShape)
	e.PointerDown(1, 400, 300)
	e.PointerUp(1, 400, 300)

	dashed := 0
	handles := 0
	for _, cmd := range e.Render() {
		if cmd.Op == "path" && len(cmd.Dash) == 2 && cmd.Stroke == selectionColor {
			dashed++
		}
		if cmd.Op == "path" && cmd.Fill == "#ffffff" && cmd.Stroke == selectionColor {
			handles++
		}
	}
	assert.Equal(t, 1, dashed)
	assert.Equal(t, len(resizeHandles), handles)
}

func TestRenderJSONRoundTrips(t *testing.T) {
	e := NewEngine(800, 600)
	e.PointerDown(1, 0, 0)
	e.PointerMove(1, 10, 10)
	e.PointerUp(1, 10, 10)

	var cmds []DrawCommand
	require.NoError(t, json.Unmarshal([]byte(e.RenderJSON()), &cmds))
	require.NotEmpty(t, cmds)
	assert.Equal(t, "clear", cmds[0].Op)
}
