package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	clientBuffer = 32
	writeWait    = 5 * time.Second
)

// MetricsWriter renders a plain-text metrics exposition.
type MetricsWriter interface {
	WriteText(w io.Writer) error
}

// Frame is a WebSocket message: either the initial dashboard
// snapshot or a single event.
type Frame struct {
	Type      string             `json:"type"`
	Dashboard *DashboardSnapshot `json:"dashboard,omitempty"`
	Event     *SuiteEvent        `json:"event,omitempty"`
}

// Frame types.
const (
	FrameDashboard = "dashboard"
	FrameEvent     = "event"
)

// NewRunID returns a fresh random run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// Server streams collector events to WebSocket and SSE clients and
// serves the dashboard, metrics and health endpoints.
type Server struct {
	mu        sync.RWMutex
	collector *EventCollector
	dashboard *DashboardData
	metrics   MetricsWriter
	upgrader  websocket.Upgrader
	sse       map[chan []byte]struct{}
	ws        map[*wsClient]struct{}
	addr      string
	server    *http.Server
	listener  net.Listener
}

type wsClient struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (c *wsClient) close() {
	c.once.Do(func() { close(c.send) })
}

// NewServer creates a monitor server. Events emitted on collector
// update dashboard and are broadcast to connected clients from
// this point on. metrics may be nil.
func NewServer(
	addr string,
	collector *EventCollector,
	dashboard *DashboardData,
	metrics MetricsWriter,
) *Server {
	s := &Server{
		addr:      addr,
		collector: collector,
		dashboard: dashboard,
		metrics:   metrics,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		sse: make(map[chan []byte]struct{}),
		ws:  make(map[*wsClient]struct{}),
	}

	collector.OnEvent(func(event SuiteEvent) {
		dashboard.UpdateFromEvent(event)
		s.broadcast(event)
	})
	return s
}

// Handler returns the HTTP handler serving every endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/events", s.handleSSE)
	mux.HandleFunc("/dashboard", s.handleDashboard)
	mux.HandleFunc("/metrics", s.handleMetrics)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// Listen binds the configured address without serving, so Addr
// reports the real port before Start runs. Binding twice is a no-op.
func (s *Server) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return nil
	}
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("monitor server: %w", err)
	}
	s.listener = ln
	return nil
}

// Start serves until ctx is cancelled or Stop is called, binding
// first when Listen has not been called.
func (s *Server) Start(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.mu.Lock()
	s.server = srv
	ln := s.listener
	s.mu.Unlock()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = srv.Close()
			s.closeClients()
		case <-done:
		}
	}()

	if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("monitor server: %w", err)
	}
	return nil
}

// Addr returns the bound listen address once Listen or Start has
// bound it, or the configured address before that.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Stop gracefully shuts down the server and disconnects every
// streaming client.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.RLock()
	srv := s.server
	ln := s.listener
	s.mu.RUnlock()

	s.closeClients()
	if srv != nil {
		return srv.Shutdown(ctx)
	}
	if ln != nil {
		// Bound by Listen but never served.
		return ln.Close()
	}
	return nil
}

func (s *Server) closeClients() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.ws {
		_ = c.conn.Close()
	}
	for ch := range s.sse {
		delete(s.sse, ch)
		close(ch)
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error.
		return
	}

	c := &wsClient{conn: conn, send: make(chan []byte, clientBuffer)}
	snap := s.dashboard.Snapshot()
	if data, err := json.Marshal(Frame{Type: FrameDashboard, Dashboard: &snap}); err == nil {
		c.send <- data
	}

	s.mu.Lock()
	s.ws[c] = struct{}{}
	s.mu.Unlock()

	go s.writePump(c)
	s.readPump(c)

	s.mu.Lock()
	delete(s.ws, c)
	c.close()
	s.mu.Unlock()
}

// readPump discards inbound messages until the connection fails.
func (s *Server) readPump(c *wsClient) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) writePump(c *wsClient) {
	defer c.conn.Close()
	for data := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
	_ = c.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait),
	)
}

func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	ch := make(chan []byte, clientBuffer)
	s.mu.Lock()
	s.sse[ch] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		if _, open := s.sse[ch]; open {
			delete(s.sse, ch)
			close(ch)
		}
		s.mu.Unlock()
	}()

	snap := s.dashboard.Snapshot()
	if data, err := json.Marshal(snap); err == nil {
		fmt.Fprintf(w, "event: dashboard\ndata: %s\n\n", data)
		flusher.Flush()
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case data, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: suite\ndata: %s\n\n", data)
			flusher.Flush()
		}
	}
}

func (s *Server) handleDashboard(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.dashboard.Snapshot())
}

func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if s.metrics == nil {
		return
	}
	if err := s.metrics.WriteText(w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// broadcast fans event out to every client. Slow clients miss
// events rather than block the emitter.
func (s *Server) broadcast(event SuiteEvent) {
	sseData, err := json.Marshal(event)
	if err != nil {
		return
	}
	wsData, err := json.Marshal(Frame{Type: FrameEvent, Event: &event})
	if err != nil {
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for ch := range s.sse {
		select {
		case ch <- sseData:
		default:
		}
	}
	for c := range s.ws {
		select {
		case c.send <- wsData:
		default:
		}
	}
}

// ClientCount returns the number of connected WebSocket and SSE
// clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ws) + len(s.sse)
}
