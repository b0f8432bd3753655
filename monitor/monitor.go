// Package monitor serves live solver progress over websockets alongside the
// prometheus scrape endpoint.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gsrelax/core"
)

const writeTimeout = 5 * time.Second

// Snapshot is the JSON frame pushed to every connected client after each
// iteration.
type Snapshot struct {
	Iteration int     `json:"iteration"`
	Residual  float64 `json:"residual"`
	Converged bool    `json:"converged"`
}

// Server streams iteration snapshots to websocket clients on /ws and exposes
// /metrics and /healthz. It implements core.IterationObserver.
type Server struct {
	log      logr.Logger
	upgrader websocket.Upgrader
	srv      *http.Server
	ln       net.Listener

	mu      sync.RWMutex
	clients map[*websocket.Conn]*sync.Mutex
}

// New creates a monitor server for the given listen address.
func New(addr string, log logr.Logger) *Server {
	s := &Server{
		log:     log,
		clients: make(map[*websocket.Conn]*sync.Mutex),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	s.srv = &http.Server{Addr: addr, Handler: mux}
	return s
}

// Start binds the listener and begins serving in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("monitor listen %s: %w", s.srv.Addr, err)
	}
	s.ln = ln
	s.log.Info("monitor listening", "addr", ln.Addr().String())

	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error(err, "monitor server stopped")
		}
	}()
	return nil
}

// Addr returns the bound listen address. Valid only after Start.
func (s *Server) Addr() string {
	if s.ln == nil {
		return s.srv.Addr
	}
	return s.ln.Addr().String()
}

// ClientCount returns the number of connected websocket clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Shutdown closes every client connection and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	for conn := range s.clients {
		_ = conn.Close()
	}
	s.clients = make(map[*websocket.Conn]*sync.Mutex)
	s.mu.Unlock()

	return s.srv.Shutdown(ctx)
}

// ObserveIteration implements core.IterationObserver by broadcasting the
// snapshot to every connected client. Clients that fail a write are dropped.
func (s *Server) ObserveIteration(snap core.IterationSnapshot) {
	frame := Snapshot{
		Iteration: snap.Iteration,
		Residual:  snap.Residual,
		Converged: snap.Converged,
	}

	type client struct {
		conn *websocket.Conn
		mu   *sync.Mutex
	}
	s.mu.RLock()
	conns := make([]client, 0, len(s.clients))
	for conn, mu := range s.clients {
		conns = append(conns, client{conn, mu})
	}
	s.mu.RUnlock()

	for _, c := range conns {
		c.mu.Lock()
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		err := c.conn.WriteJSON(frame)
		c.mu.Unlock()
		if err != nil {
			s.drop(c.conn)
		}
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error(err, "websocket upgrade failed", "remote", r.RemoteAddr)
		return
	}

	s.mu.Lock()
	s.clients[conn] = &sync.Mutex{}
	s.mu.Unlock()
	s.log.V(1).Info("client connected", "remote", conn.RemoteAddr().String())

	// Clients never send application data; this read loop only notices
	// when they go away.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.drop(conn)
				return
			}
		}
	}()
}

func (s *Server) drop(conn *websocket.Conn) {
	s.mu.Lock()
	_, known := s.clients[conn]
	delete(s.clients, conn)
	s.mu.Unlock()

	if known {
		_ = conn.Close()
		s.log.V(1).Info("client disconnected", "remote", conn.RemoteAddr().String())
	}
}
