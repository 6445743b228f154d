package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/gogpu/gg/text"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/inklet/inklet/backend-go/internal/auth"
	"github.com/inklet/inklet/backend-go/internal/board"
	"github.com/inklet/inklet/backend-go/internal/config"
	"github.com/inklet/inklet/backend-go/internal/db"
	"github.com/inklet/inklet/backend-go/internal/engine"
	"github.com/inklet/inklet/backend-go/internal/export"
	mw "github.com/inklet/inklet/backend-go/internal/middleware"
	"github.com/inklet/inklet/backend-go/internal/session"
	"github.com/inklet/inklet/backend-go/internal/typeid"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	queries := db.New(pool)

	authService := auth.NewService(queries, cfg.JWTSecret)
	authHandler := auth.NewHandler(authService)

	boardService := board.NewService(queries)
	boardHandler := board.NewHandler(boardService)

	hub := session.NewHub()
	go hub.Run()

	// Bitmap exports render text only when a font is configured.
	var fonts *text.FontSource
	if cfg.FontPath != "" {
		fonts, err = text.NewFontSourceFromFile(cfg.FontPath)
		if err != nil {
			slog.Warn("load export font", "path", cfg.FontPath, "error", err)
			fonts = nil
		}
	}

	exportHandler := export.NewHandler(cfg.SnapshotDir, hub, fonts)

	origins := originPatterns(cfg.AllowedOrigins)

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS)

	// Auth routes (public)
	r.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Export endpoints (public; used by playground and authenticated users)
	r.HandleFunc("/export", exportHandler.Export).Methods("POST", "OPTIONS")
	r.HandleFunc("/export/live/{sessionId}", exportHandler.ExportLive).Methods("GET")
	r.PathPrefix("/snapshots/").Handler(exportHandler.Serve()).Methods("GET")

	// Protected API routes
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authService.RequireToken)

	api.HandleFunc("/me", authHandler.Me).Methods("GET")
	api.HandleFunc("/boards", boardHandler.List).Methods("GET")
	api.HandleFunc("/boards", boardHandler.Create).Methods("POST")
	api.HandleFunc("/boards/{boardId}", boardHandler.Get).Methods("GET")
	api.HandleFunc("/boards/{boardId}", boardHandler.UpdateSurface).Methods("PUT")
	api.HandleFunc("/boards/{boardId}", boardHandler.Delete).Methods("DELETE")

	// WebSocket endpoint: one connection drives one drawing engine
	r.HandleFunc("/ws/board/{boardId}", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(w, r, hub, authService, boardService, origins)
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")
		hub.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

// playgroundBoardID is a throwaway board that allows anonymous access.
const playgroundBoardID = "board_playground"

func handleWebSocket(w http.ResponseWriter, r *http.Request, hub *session.Hub, authSvc *auth.Service, boards *board.Service, origins []string) {
	vars := mux.Vars(r)
	boardID := vars["boardId"]

	var userID string
	width, height := board.DefaultWidth, board.DefaultHeight
	background := ""

	if boardID == playgroundBoardID {
		userID = "anon-" + uuid.New().String()[:8]
	} else {
		// Auth via query param: browsers cannot set headers on websockets
		token := r.URL.Query().Get("token")
		if token == "" {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}

		ident, err := authSvc.ValidateToken(token)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		userID = ident.UserID

		b, err := boards.Get(r.Context(), boardID, userID)
		if err != nil {
			switch {
			case errors.Is(err, board.ErrNotFound):
				http.Error(w, "board not found", http.StatusNotFound)
			case errors.Is(err, board.ErrForbidden):
				http.Error(w, "forbidden", http.StatusForbidden)
			default:
				slog.Error("load board", "error", err)
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}
		width, height = b.Width, b.Height
		background = b.Background
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: origins,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	eng := engine.NewEngine(width, height)
	if background != "" {
		eng.SetBackground(background)
	}

	sess := session.NewSession(hub, conn, eng, userID, boardID, typeid.NewSessionID())
	hub.Register(sess)

	ctx := r.Context()
	go sess.WritePump(ctx)
	sess.ReadPump(ctx)
}

// originPatterns converts the comma-separated ALLOWED_ORIGINS URLs into the
// host patterns the websocket library matches against.
func originPatterns(allowed string) []string {
	var patterns []string
	for _, origin := range strings.Split(allowed, ",") {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if u, err := url.Parse(origin); err == nil && u.Host != "" {
			patterns = append(patterns, u.Host)
		} else {
			patterns = append(patterns, origin)
		}
	}
	return patterns
}
