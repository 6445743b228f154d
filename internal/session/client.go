package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/inklet/inklet/backend-go/internal/engine"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	maxMsgSize = 64 * 1024
)

// Session owns one websocket connection and one drawing engine. All engine
// calls happen on the read pump goroutine, so input ordering is preserved
// and the engine needs no locking.
type Session struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	engine    *engine.Engine
	UserID    string
	BoardID   string
	SessionID string

	// Latest rendered frame, readable from any goroutine. The export
	// endpoint serves this so it never has to touch the engine itself.
	frameMu   sync.Mutex
	lastFrame []byte
	frameW    int
	frameH    int
}

func NewSession(hub *Hub, conn *websocket.Conn, eng *engine.Engine, userID, boardID, sessionID string) *Session {
	s := &Session{
		hub:       hub,
		conn:      conn,
		send:      make(chan []byte, 256),
		engine:    eng,
		UserID:    userID,
		BoardID:   boardID,
		SessionID: sessionID,
	}
	eng.SetObserver(s)
	return s
}

// SelectionChanged implements engine.SelectionObserver. It runs on the read
// pump goroutine because the engine is only driven from there.
func (s *Session) SelectionChanged(snap *engine.ShapeSnapshot) {
	var shape json.RawMessage = []byte("null")
	if snap != nil {
		data, err := json.Marshal(snap)
		if err != nil {
			slog.Error("marshal selection", "error", err)
			return
		}
		shape = data
	}
	s.sendMessage(TypeSelectionChange, SelectionChangePayload{Shape: shape})
}

func (s *Session) ReadPump(ctx context.Context) {
	defer func() {
		s.hub.Unregister(s)
		s.closeConn(websocket.StatusNormalClosure, "")
	}()

	s.conn.SetReadLimit(maxMsgSize)

	s.sendMessage(TypeReady, ReadyPayload{
		SessionID: s.SessionID,
		Width:     s.engine.Width(),
		Height:    s.engine.Height(),
	})

	// Initial frame so the client can paint before any input arrives.
	s.sendFrame()

	for {
		_, data, err := s.conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
				websocket.CloseStatus(err) == websocket.StatusGoingAway {
				return
			}
			slog.Debug("read error", "error", err, "user", s.UserID)
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			slog.Warn("invalid message", "error", err, "user", s.UserID)
			continue
		}

		s.handleMessage(&msg)
	}
}

func (s *Session) handleMessage(msg *Message) {
	switch msg.Type {
	case TypePointerDown, TypePointerMove, TypePointerUp, TypePointerCancel:
		var p PointerPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			s.sendError("invalid pointer payload")
			return
		}
		switch msg.Type {
		case TypePointerDown:
			s.engine.PointerDown(p.PointerID, p.X, p.Y)
		case TypePointerMove:
			s.engine.PointerMove(p.PointerID, p.X, p.Y)
		case TypePointerUp:
			s.engine.PointerUp(p.PointerID, p.X, p.Y)
		case TypePointerCancel:
			s.engine.PointerCancel(p.PointerID, p.X, p.Y)
		}
		s.sendFrame()

	case TypeToolMode:
		var p ToolModePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			s.sendError("invalid tool payload")
			return
		}
		switch engine.Mode(p.Mode) {
		case engine.ModePen, engine.ModeEraser, engine.ModeShape, engine.ModeText:
			s.engine.SetMode(engine.Mode(p.Mode))
			s.sendFrame()
		default:
			s.sendError("unknown mode: " + p.Mode)
		}

	case TypeToolShape:
		var p ToolShapePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			s.sendError("invalid tool payload")
			return
		}
		switch engine.ShapeKind(p.Kind) {
		case engine.ShapeRectangle, engine.ShapeCircle, engine.ShapeLine, engine.ShapePolygon, engine.ShapeText:
			s.engine.SetShapeKind(engine.ShapeKind(p.Kind))
		default:
			s.sendError("unknown shape kind: " + p.Kind)
		}

	case TypeStyleUpdate:
		var p StylePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			s.sendError("invalid style payload")
			return
		}
		s.applyStyle(&p)

	case TypeSelectionEdit:
		var p SelectionEditPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			s.sendError("invalid selection payload")
			return
		}
		s.applySelectionEdit(&p)
		s.sendFrame()

	case TypeSurfaceClear:
		s.engine.ClearAll()
		s.sendFrame()

	case TypeSurfaceUndo:
		s.engine.UndoLastStroke()
		s.sendFrame()

	case TypeSurfaceResize:
		var p SurfaceResizePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			s.sendError("invalid resize payload")
			return
		}
		if p.Width <= 0 || p.Height <= 0 {
			s.sendError("invalid surface size")
			return
		}
		s.engine.SetSurfaceSize(p.Width, p.Height)
		s.sendFrame()

	case TypeRenderRequest:
		s.sendFrame()

	default:
		slog.Warn("unknown message type", "type", msg.Type, "user", s.UserID)
	}
}

func (s *Session) applyStyle(p *StylePayload) {
	if p.StrokeColor != nil {
		s.engine.SetStrokeColor(*p.StrokeColor)
	}
	if p.StrokeWidth != nil {
		s.engine.SetStrokeWidth(*p.StrokeWidth)
	}
	if p.BorderColor != nil {
		s.engine.SetBorderColor(*p.BorderColor)
	}
	if p.BorderWidth != nil {
		s.engine.SetBorderWidth(*p.BorderWidth)
	}
	if p.FillColor != nil {
		s.engine.SetFillColor(*p.FillColor)
	}
	if p.FillEnabled != nil {
		s.engine.SetFillEnabled(*p.FillEnabled)
	}
	if p.EraserRadius != nil {
		s.engine.SetEraserRadius(*p.EraserRadius)
	}
	if p.TextColor != nil {
		s.engine.SetTextColor(*p.TextColor)
	}
	if p.TextSize != nil {
		s.engine.SetTextSize(*p.TextSize)
	}
	if p.Background != nil {
		s.engine.SetBackground(*p.Background)
		s.sendFrame()
	}
	if p.ShapeWidth != nil && p.ShapeHeight != nil {
		s.engine.SetDefaultShapeSize(*p.ShapeWidth, *p.ShapeHeight)
	}
}

func (s *Session) applySelectionEdit(p *SelectionEditPayload) {
	if p.FillColor != nil {
		s.engine.UpdateSelectedFillColor(*p.FillColor)
	}
	if p.FillEnabled != nil {
		s.engine.UpdateSelectedFillEnabled(*p.FillEnabled)
	}
	if p.BorderColor != nil {
		s.engine.UpdateSelectedBorderColor(*p.BorderColor)
	}
	if p.BorderWidth != nil {
		s.engine.UpdateSelectedBorderWidth(*p.BorderWidth)
	}
	if p.Text != nil {
		s.engine.UpdateSelectedText(*p.Text)
	}
	if p.TextColor != nil {
		s.engine.UpdateSelectedTextColor(*p.TextColor)
	}
	if p.TextSize != nil {
		s.engine.UpdateSelectedTextSize(*p.TextSize)
	}
}

func (s *Session) sendFrame() {
	commands, err := json.Marshal(s.engine.Render())
	if err != nil {
		slog.Error("marshal frame", "error", err)
		return
	}

	s.frameMu.Lock()
	s.lastFrame = commands
	s.frameW = s.engine.Width()
	s.frameH = s.engine.Height()
	s.frameMu.Unlock()

	s.sendMessage(TypeFrame, FramePayload{Commands: commands})
}

// LastFrame returns the most recent rendered command buffer and the surface
// size it was rendered at. Nil until the first frame goes out.
func (s *Session) LastFrame() (commands []byte, width, height int) {
	s.frameMu.Lock()
	defer s.frameMu.Unlock()
	return s.lastFrame, s.frameW, s.frameH
}

func (s *Session) sendError(text string) {
	s.sendMessage(TypeError, ErrorPayload{Message: text})
}

func (s *Session) sendMessage(msgType string, payload interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		slog.Error("marshal payload", "error", err, "type", msgType)
		return
	}
	data, err := json.Marshal(Message{Type: msgType, Payload: raw})
	if err != nil {
		slog.Error("marshal message", "error", err, "type", msgType)
		return
	}

	select {
	case s.send <- data:
	default:
		slog.Warn("session send buffer full, dropping message", "user", s.UserID)
	}
}

func (s *Session) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.closeConn(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message, ok := <-s.send:
			if !ok {
				return
			}

			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := s.conn.Write(writeCtx, websocket.MessageText, message)
			cancel()
			if err != nil {
				slog.Debug("write error", "error", err, "user", s.UserID)
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := s.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

func (s *Session) closeConn(code websocket.StatusCode, reason string) {
	if s.conn == nil {
		return
	}
	s.conn.Close(code, reason)
}
