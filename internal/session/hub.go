// Package session runs one drawing engine per websocket connection.
package session

import (
	"log/slog"
	"sync"

	"github.com/coder/websocket"
)

// Hub tracks live sessions. Each session is independent; the hub exists for
// registration bookkeeping and orderly shutdown.
type Hub struct {
	mu         sync.RWMutex
	sessions   map[string]*Session // sessionID -> session
	register   chan *Session
	unregister chan *Session
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		sessions:   make(map[string]*Session),
		register:   make(chan *Session),
		unregister: make(chan *Session),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case s := <-h.register:
			h.addSession(s)
		case s := <-h.unregister:
			h.removeSession(s)
		case <-h.done:
			return
		}
	}
}

func (h *Hub) Register(s *Session) {
	h.register <- s
}

// Unregister removes a session. Returns immediately after Stop, when the run
// loop is gone and the hub no longer tracks sessions.
func (h *Hub) Unregister(s *Session) {
	select {
	case h.unregister <- s:
	case <-h.done:
	}
}

// Stop halts the run loop and closes every live connection. Read pumps see
// the closed connection, finish their in-flight message, and exit through
// Unregister; write pumps exit when their request context is canceled. Send
// channels stay open so a message already being handled cannot panic.
func (h *Hub) Stop() {
	close(h.done)

	h.mu.Lock()
	live := make([]*Session, 0, len(h.sessions))
	for id, s := range h.sessions {
		live = append(live, s)
		delete(h.sessions, id)
	}
	h.mu.Unlock()

	for _, s := range live {
		s.closeConn(websocket.StatusGoingAway, "server shutting down")
	}
}

// Session returns the live session with the given id, or nil.
func (h *Hub) Session(id string) *Session {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.sessions[id]
}

// LastFrame looks up a live session and returns its most recent rendered
// command buffer with the surface size it was rendered at.
func (h *Hub) LastFrame(sessionID string) (commands []byte, width, height int, ok bool) {
	s := h.Session(sessionID)
	if s == nil {
		return nil, 0, 0, false
	}
	commands, width, height = s.LastFrame()
	return commands, width, height, true
}

// Count reports the number of live sessions.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

func (h *Hub) addSession(s *Session) {
	h.mu.Lock()
	h.sessions[s.SessionID] = s
	h.mu.Unlock()

	slog.Info("session started", "user", s.UserID, "board", s.BoardID, "session", s.SessionID)
}

func (h *Hub) removeSession(s *Session) {
	h.mu.Lock()
	if _, ok := h.sessions[s.SessionID]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.sessions, s.SessionID)
	close(s.send)
	h.mu.Unlock()

	slog.Info("session ended", "user", s.UserID, "board", s.BoardID, "session", s.SessionID)
}
