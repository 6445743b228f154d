// Package export renders a command buffer to a downloadable file.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/gg/text"
	"github.com/gorilla/mux"

	"github.com/inklet/inklet/backend-go/internal/engine"
	"github.com/inklet/inklet/backend-go/internal/raster"
	"github.com/inklet/inklet/backend-go/internal/typeid"
)

const maxRequestSize = 32 << 20 // 32MB

// LiveSource finds the latest rendered frame of a live session. The session
// hub implements it.
type LiveSource interface {
	LastFrame(sessionID string) (commands []byte, width, height int, ok bool)
}

type Handler struct {
	snapshotDir string
	live        LiveSource
	fonts       *text.FontSource
}

// NewHandler builds the export handler. live may be nil when no live-session
// lookup is available; fonts may be nil, in which case bitmap exports skip
// text.
func NewHandler(snapshotDir string, live LiveSource, fonts *text.FontSource) *Handler {
	return &Handler{snapshotDir: snapshotDir, live: live, fonts: fonts}
}

type exportRequest struct {
	Format   string               `json:"format"` // "png" or "pdf"
	Name     string               `json:"name"`
	Width    int                  `json:"width"`
	Height   int                  `json:"height"`
	Commands []engine.DrawCommand `json:"commands"`
}

// Export renders the posted command buffer and streams back the result.
// The client sends the same commands it paints from, so what downloads is
// exactly what was on screen.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestSize)

	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Format != "png" && req.Format != "pdf" {
		http.Error(w, "invalid format: must be png or pdf", http.StatusBadRequest)
		return
	}
	if req.Width <= 0 || req.Height <= 0 || req.Width > 8192 || req.Height > 8192 {
		http.Error(w, "invalid dimensions", http.StatusBadRequest)
		return
	}

	name := req.Name
	if name == "" {
		name = "board"
	}

	h.renderAndStream(w, req.Format, sanitizeName(name), req.Commands, req.Width, req.Height)
}

// ExportLive renders the latest frame of a live session, so a board can be
// downloaded server-side without the client re-posting its command buffer.
func (h *Handler) ExportLive(w http.ResponseWriter, r *http.Request) {
	if h.live == nil {
		http.Error(w, "live export unavailable", http.StatusNotFound)
		return
	}

	sessionID := mux.Vars(r)["sessionId"]

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "png"
	}
	if format != "png" && format != "pdf" {
		http.Error(w, "invalid format: must be png or pdf", http.StatusBadRequest)
		return
	}

	frame, width, height, ok := h.live.LastFrame(sessionID)
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	if len(frame) == 0 {
		http.Error(w, "session has no rendered frame yet", http.StatusConflict)
		return
	}

	var commands []engine.DrawCommand
	if err := json.Unmarshal(frame, &commands); err != nil {
		slog.Error("decode live frame", "session", sessionID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "board"
	}

	h.renderAndStream(w, format, sanitizeName(name), commands, width, height)
}

func (h *Handler) renderAndStream(w http.ResponseWriter, format, name string, commands []engine.DrawCommand, width, height int) {
	var buf bytes.Buffer
	var err error
	switch format {
	case "png":
		err = raster.EncodePNG(&buf, commands, width, height, h.fonts)
	case "pdf":
		err = raster.WritePDF(&buf, commands, width, height)
	}
	if err != nil {
		slog.Error("export render failed", "format", format, "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	if h.snapshotDir != "" {
		if err := h.saveSnapshot(name, format, buf.Bytes()); err != nil {
			slog.Warn("save snapshot failed", "error", err)
		}
	}

	contentType := "image/png"
	if format == "pdf" {
		contentType = "application/pdf"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.%s"`, name, format))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Debug("stream export", "error", err)
	}
}

// Serve exposes stored snapshots at /snapshots/<file>.
func (h *Handler) Serve() http.Handler {
	return http.StripPrefix("/snapshots/", http.FileServer(http.Dir(h.snapshotDir)))
}

func (h *Handler) saveSnapshot(name, format string, data []byte) error {
	if err := os.MkdirAll(h.snapshotDir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	filename := fmt.Sprintf("%s-%s.%s", name, typeid.NewExportID(), format)
	path := filepath.Join(h.snapshotDir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

func sanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, name)
}
