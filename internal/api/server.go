package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/examklar/examklar/internal/deck"
)

// Server wraps the HTTP server for the local API.
type Server struct {
	httpServer  *http.Server
	watcher     *FileWatcher
	wsHub       *WebSocketHub
	unsubscribe func()
}

// NewServer creates a new server with the given handler, port, and data
// directory. If dataDir is empty, file watching is disabled. When decks is
// non-nil its mutation events are broadcast to WebSocket clients.
func NewServer(handler *Handler, port int, dataDir string, decks *deck.Store) *Server {
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	wsHub := NewWebSocketHub()
	mux.HandleFunc("GET /api/v1/ws", wsHub.ServeWS)

	var watcher *FileWatcher
	if dataDir != "" {
		var err error
		watcher, err = NewFileWatcher(dataDir)
		if err != nil {
			log.Printf("Warning: failed to create file watcher: %v", err)
		} else {
			watcher.Subscribe(wsHub)
		}
	}

	var unsubscribe func()
	if decks != nil {
		unsubscribe = decks.Subscribe(wsHub.OnStoreEvent)
	}

	wrapped := Logging(Cors(mux))

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      wrapped,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		watcher:     watcher,
		wsHub:       wsHub,
		unsubscribe: unsubscribe,
	}
}

// Start begins listening for HTTP requests. Blocks until shutdown.
func (s *Server) Start() error {
	if s.watcher != nil {
		if err := s.watcher.Start(); err != nil {
			log.Printf("Warning: failed to start file watcher: %v", err)
		}
	}

	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.watcher != nil {
		s.watcher.Stop()
	}
	if s.unsubscribe != nil {
		s.unsubscribe()
	}

	return s.httpServer.Shutdown(ctx)
}

// Addr returns the address the server is listening on.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}
