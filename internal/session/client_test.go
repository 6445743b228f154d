package session

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inklet/inklet/backend-go/internal/engine"
)

// testSession builds a session without a websocket; handleMessage only needs
// the engine and the buffered send channel.
func testSession() *Session {
	eng := engine.NewEngine(800, 600)
	s := &Session{
		send:      make(chan []byte, 256),
		engine:    eng,
		UserID:    "user_test",
		BoardID:   "board_test",
		SessionID: "sess_test",
	}
	eng.SetObserver(s)
	return s
}

func send(t *testing.T, s *Session, msgType string, payload interface{}) {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	s.handleMessage(&Message{Type: msgType, Payload: raw})
}

func drain(t *testing.T, s *Session) []Message {
	t.Helper()
	var out []Message
	for {
		select {
		case data := <-s.send:
			var msg Message
			require.NoError(t, json.Unmarshal(data, &msg))
			out = append(out, msg)
		default:
			return out
		}
	}
}

func TestPointerMessagesDriveEngine(t *testing.T) {
	s := testSession()

	send(t, s, TypePointerDown, PointerPayload{PointerID: 1, X: 10, Y: 10})
	send(t, s, TypePointerMove, PointerPayload{PointerID: 1, X: 50, Y: 50})
	send(t, s, TypePointerUp, PointerPayload{PointerID: 1, X: 50, Y: 50})

	require.Len(t, s.engine.Scene().Strokes(), 1)

	// Every pointer event produced a frame.
	msgs := drain(t, s)
	frames := 0
	for _, m := range msgs {
		if m.Type == TypeFrame {
			frames++
		}
	}
	assert.Equal(t, 3, frames)
}

func TestToolModeMessage(t *testing.T) {
	s := testSession()

	send(t, s, TypeToolMode, ToolModePayload{Mode: "eraser"})
	assert.Equal(t, engine.ModeEraser, s.engine.Mode())

	send(t, s, TypeToolMode, ToolModePayload{Mode: "bogus"})
	assert.Equal(t, engine.ModeEraser, s.engine.Mode())

	var sawError bool
	for _, m := range drain(t, s) {
		if m.Type == TypeError {
			sawError = true
		}
	}
	assert.True(t, sawError)
}

func TestStyleUpdateAppliesSubset(t *testing.T) {
	s := testSession()

	color := "#ff0000"
	width := 9.0
	send(t, s, TypeStyleUpdate, StylePayload{StrokeColor: &color, StrokeWidth: &width})

	// The settings take effect on the next stroke.
	send(t, s, TypePointerDown, PointerPayload{PointerID: 1, X: 0, Y: 0})
	send(t, s, TypePointerMove, PointerPayload{PointerID: 1, X: 10, Y: 10})
	send(t, s, TypePointerUp, PointerPayload{PointerID: 1, X: 10, Y: 10})

	strokes := s.engine.Scene().Strokes()
	require.Len(t, strokes, 1)
	assert.Equal(t, "#ff0000", strokes[0].Style.Color)
	assert.Equal(t, 9.0, strokes[0].Style.Width)
}

func TestSelectionEditMessage(t *testing.T) {
	s := testSession()

	send(t, s, TypeToolMode, ToolModePayload{Mode: "shape"})
	send(t, s, TypePointerDown, PointerPayload{PointerID: 1, X: 400, Y: 300})
	send(t, s, TypePointerUp, PointerPayload{PointerID: 1, X: 400, Y: 300})
	require.NotNil(t, s.engine.CurrentSelection())
	drain(t, s)

	fill := "#00ff00"
	send(t, s, TypeSelectionEdit, SelectionEditPayload{FillColor: &fill})

	assert.Equal(t, "#00ff00", s.engine.CurrentSelection().FillColor)

	// The edit notified the observer and re-rendered.
	var sawSelection, sawFrame bool
	for _, m := range drain(t, s) {
		switch m.Type {
		case TypeSelectionChange:
			sawSelection = true
		case TypeFrame:
			sawFrame = true
		}
	}
	assert.True(t, sawSelection)
	assert.True(t, sawFrame)
}

func TestSurfaceMessages(t *testing.T) {
	s := testSession()

	send(t, s, TypePointerDown, PointerPayload{PointerID: 1, X: 0, Y: 0})
	send(t, s, TypePointerMove, PointerPayload{PointerID: 1, X: 10, Y: 10})
	send(t, s, TypePointerUp, PointerPayload{PointerID: 1, X: 10, Y: 10})
	require.Len(t, s.engine.Scene().Strokes(), 1)

	send(t, s, TypeSurfaceUndo, nil)
	assert.Empty(t, s.engine.Scene().Strokes())

	send(t, s, TypeSurfaceResize, SurfaceResizePayload{Width: 1024, Height: 768})
	assert.Equal(t, 1024, s.engine.Width())
	assert.Equal(t, 768, s.engine.Height())

	// Non-positive sizes are rejected and leave the surface alone.
	send(t, s, TypeSurfaceResize, SurfaceResizePayload{Width: 0, Height: -10})
	assert.Equal(t, 1024, s.engine.Width())
	assert.Equal(t, 768, s.engine.Height())

	send(t, s, TypeSurfaceClear, nil)
	assert.Empty(t, s.engine.Scene().Strokes())
	assert.Empty(t, s.engine.Scene().Shapes())
}

func TestRenderRequestMessage(t *testing.T) {
	s := testSession()
	send(t, s, TypeRenderRequest, nil)

	msgs := drain(t, s)
	require.Len(t, msgs, 1)
	assert.Equal(t, TypeFrame, msgs[0].Type)

	var frame FramePayload
	require.NoError(t, json.Unmarshal(msgs[0].Payload, &frame))
	var cmds []engine.DrawCommand
	require.NoError(t, json.Unmarshal(frame.Commands, &cmds))
	require.NotEmpty(t, cmds)
	assert.Equal(t, "clear", cmds[0].Op)
}

func TestSelectionChangedSendsNullOnClear(t *testing.T) {
	s := testSession()

	send(t, s, TypeToolMode, ToolModePayload{Mode: "shape"})
	send(t, s, TypePointerDown, PointerPayload{PointerID: 1, X: 400, Y: 300})
	send(t, s, TypePointerUp, PointerPayload{PointerID: 1, X: 400, Y: 300})
	drain(t, s)

	send(t, s, TypeSurfaceClear, nil)

	var last *Message
	for _, m := range drain(t, s) {
		if m.Type == TypeSelectionChange {
			mm := m
			last = &mm
		}
	}
	require.NotNil(t, last)

	var payload SelectionChangePayload
	require.NoError(t, json.Unmarshal(last.Payload, &payload))
	assert.JSONEq(t, "null", string(payload.Shape))
}

func TestHubRegisterAndStop(t *testing.T) {
	h := NewHub()
	go h.Run()

	s := testSession()
	s.hub = h
	h.Register(s)
	require.Eventually(t, func() bool { return h.Count() == 1 }, time.Second, 10*time.Millisecond)

	h.Stop()
	assert.Equal(t, 0, h.Count())
}

func TestHubSendAfterStop(t *testing.T) {
	h := NewHub()
	go h.Run()

	s := testSession()
	s.hub = h
	h.Register(s)
	require.Eventually(t, func() bool { return h.Count() == 1 }, time.Second, 10*time.Millisecond)

	h.Stop()

	// A message already being handled when Stop fires must still be able to
	// queue its frame.
	assert.NotPanics(t, func() {
		send(t, s, TypeRenderRequest, nil)
	})
	msgs := drain(t, s)
	require.NotEmpty(t, msgs)
	assert.Equal(t, TypeFrame, msgs[len(msgs)-1].Type)
}

func TestHubUnregisterAfterStop(t *testing.T) {
	h := NewHub()
	go h.Run()

	s := testSession()
	s.hub = h
	h.Register(s)
	require.Eventually(t, func() bool { return h.Count() == 1 }, time.Second, 10*time.Millisecond)

	h.Stop()

	// The read pump's exit path must not stall once the run loop is gone.
	done := make(chan struct{})
	go func() {
		h.Unregister(s)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Unregister blocked after Stop")
	}
}

func TestHubLastFrame(t *testing.T) {
	h := NewHub()
	go h.Run()
	defer h.Stop()

	s := testSession()
	s.hub = h
	h.Register(s)
	require.Eventually(t, func() bool { return h.Count() == 1 }, time.Second, 10*time.Millisecond)

	_, _, _, ok := h.LastFrame(s.SessionID)
	require.True(t, ok)

	send(t, s, TypeRenderRequest, nil)

	commands, width, height, ok := h.LastFrame(s.SessionID)
	require.True(t, ok)
	assert.Equal(t, 800, width)
	assert.Equal(t, 600, height)

	var cmds []engine.DrawCommand
	require.NoError(t, json.Unmarshal(commands, &cmds))
	require.NotEmpty(t, cmds)
	assert.Equal(t, "clear", cmds[0].Op)

	_, _, _, ok = h.LastFrame("sess_unknown")
	assert.False(t, ok)
}
