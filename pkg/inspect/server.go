package inspect

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ServerConfig configures the introspection server.
type ServerConfig struct {
	// Logger receives connection-level errors (default: slog.Default()).
	Logger *slog.Logger

	// WriteTimeout bounds each WebSocket write (default: 10s).
	WriteTimeout time.Duration

	// MetricsHandler serves GET /metrics (default: promhttp.Handler()).
	MetricsHandler http.Handler
}

// ServerOption configures the introspection server.
type ServerOption func(*ServerConfig)

// WithServerLogger sets the server's logger.
func WithServerLogger(logger *slog.Logger) ServerOption {
	return func(c *ServerConfig) {
		c.Logger = logger
	}
}

// WithWriteTimeout sets the per-write WebSocket deadline.
func WithWriteTimeout(d time.Duration) ServerOption {
	return func(c *ServerConfig) {
		c.WriteTimeout = d
	}
}

// WithMetricsHandler sets the handler mounted at /metrics.
func WithMetricsHandler(h http.Handler) ServerOption {
	return func(c *ServerConfig) {
		c.MetricsHandler = h
	}
}

// Server exposes a Registry over HTTP: one-shot JSON snapshots, a live
// WebSocket stream, and Prometheus metrics. It serves local development
// tooling; do not expose it on a public interface.
type Server struct {
	registry *Registry
	config   ServerConfig
	upgrader websocket.Upgrader
}

// NewServer creates an introspection server over the given registry.
func NewServer(registry *Registry, opts ...ServerOption) *Server {
	config := ServerConfig{
		Logger:         slog.Default(),
		WriteTimeout:   10 * time.Second,
		MetricsHandler: promhttp.Handler(),
	}
	for _, opt := range opts {
		opt(&config)
	}

	return &Server{
		registry: registry,
		config:   config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Local tooling surface; the dial comes from loomtap or a
			// browser devtools page, not a cross-origin app.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/snapshot", s.handleSnapshot)
	r.Get("/live", s.handleLive)
	r.Handle("/metrics", s.config.MetricsHandler)
	return r
}

// ListenAndServe serves the handler on addr. Blocks like
// http.ListenAndServe.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 0, // /live holds the connection open
	}
	return srv.ListenAndServe()
}

// handleSnapshot serves a one-shot JSON tree of live owners.
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.registry.Snapshot()); err != nil {
		s.config.Logger.Error("snapshot encode error", "error", err)
	}
}

// handleLive upgrades to WebSocket and pushes a snapshot immediately,
// then again after every rebuild, until the client disconnects.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.config.Logger.Error("websocket upgrade error", "error", err)
		return
	}
	defer conn.Close()

	sub := s.registry.Subscribe()
	defer s.registry.Unsubscribe(sub)

	// Drain reads so close frames are processed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := s.writeSnapshot(conn, s.registry.Snapshot()); err != nil {
		return
	}

	for {
		select {
		case snap := <-sub:
			if err := s.writeSnapshot(conn, snap); err != nil {
				if websocket.IsUnexpectedCloseError(err,
					websocket.CloseGoingAway,
					websocket.CloseAbnormalClosure,
					websocket.CloseNormalClosure) {
					s.config.Logger.Error("write error", "error", err)
				}
				return
			}
		case <-done:
			return
		}
	}
}

// writeSnapshot sends one snapshot frame with the configured deadline.
func (s *Server) writeSnapshot(conn *websocket.Conn, snap any) error {
	conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	return conn.WriteJSON(snap)
}
