// Package webui serves dropdown sessions over WebSocket. Every connection
// owns one controller over a shared option catalog and receives a render
// descriptor after each event it sends.
package webui

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/alantheprice/dropdown/pkg/dropdown"
	"github.com/alantheprice/dropdown/pkg/utils"
)

const (
	DefaultPort         = 54321
	DefaultPingInterval = 30 * time.Second
	DefaultReadTimeout  = 60 * time.Second
)

// ConnectionInfo stores metadata about a WebSocket connection
type ConnectionInfo struct {
	SessionID   string    // Unique session ID for this connection
	ConnectedAt time.Time // When the connection was established
}

// Options configures a Server. Zero values fall back to the defaults above.
type Options struct {
	Host         string
	Port         int
	PingInterval time.Duration
	ReadTimeout  time.Duration

	// Settings are applied to every session's controller. OnChange, if set,
	// sees the selection changes of all sessions.
	Settings dropdown.Settings
	Logger   *utils.Logger
}

// Server hosts dropdown sessions
type Server struct {
	set          *dropdown.OptionSet
	settings     dropdown.Settings
	host         string
	port         int
	pingInterval time.Duration
	readTimeout  time.Duration
	logger       *utils.Logger

	server      *http.Server
	listener    net.Listener
	upgrader    websocket.Upgrader
	connections sync.Map // map[*SafeConn]*ConnectionInfo
	isRunning   bool
	mutex       sync.RWMutex
	startTime   time.Time
}

// NewServer creates a server for set
func NewServer(set *dropdown.OptionSet, opts Options) *Server {
	if opts.Port == 0 {
		opts.Port = DefaultPort
	}
	if opts.PingInterval <= 0 {
		opts.PingInterval = DefaultPingInterval
	}
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = DefaultReadTimeout
	}
	if set == nil {
		set = dropdown.MustOptionSet()
	}

	return &Server{
		set:          set,
		settings:     opts.Settings,
		host:         opts.Host,
		port:         opts.Port,
		pingInterval: opts.PingInterval,
		readTimeout:  opts.ReadTimeout,
		logger:       opts.Logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true // Same-origin and direct connections
				}
				return strings.Contains(origin, "localhost") || strings.Contains(origin, "127.0.0.1")
			},
		},
		startTime: time.Now(),
	}
}

// Handler returns the routes without binding a port
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":      "ok",
		"port":        s.port,
		"uptime":      time.Since(s.startTime).String(),
		"connections": s.countConnections(),
		"options":     s.set.Len(),
	})
}

// Start binds the port and serves until ctx is cancelled
func (s *Server) Start(ctx context.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.isRunning {
		return fmt.Errorf("web server is already running")
	}

	addr := net.JoinHostPort(s.host, fmt.Sprintf("%d", s.port))
	listener, err := (&net.ListenConfig{}).Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s.listener = listener
	s.server = &http.Server{Handler: s.Handler()}
	s.isRunning = true

	go func() {
		s.logf("Dropdown server listening at http://%s", listener.Addr())
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.logf("Web server error: %v", err)
		}
	}()

	go func() {
		<-ctx.Done()
		s.Shutdown()
	}()

	return nil
}

// Shutdown closes all sessions and stops the server
func (s *Server) Shutdown() error {
	s.mutex.Lock()
	if !s.isRunning {
		s.mutex.Unlock()
		return nil
	}
	s.isRunning = false
	s.mutex.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.connections.Range(func(conn, _ interface{}) bool {
		if sc, ok := conn.(*SafeConn); ok {
			sc.Close()
		}
		return true
	})

	return s.server.Shutdown(ctx)
}

// IsRunning returns true if the web server is running
func (s *Server) IsRunning() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.isRunning
}

// Addr returns the bound address, or the configured one before Start
func (s *Server) Addr() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return net.JoinHostPort(s.host, fmt.Sprintf("%d", s.port))
}

// GetPort returns the configured port
func (s *Server) GetPort() int {
	return s.port
}

// countConnections returns the current number of WebSocket connections
func (s *Server) countConnections() int {
	count := 0
	s.connections.Range(func(_, _ interface{}) bool {
		count++
		return true
	})
	return count
}

func (s *Server) logf(format string, v ...interface{}) {
	if s.logger != nil {
		s.logger.Logf(format, v...)
	}
}

func (s *Server) logErr(err error) {
	if s.logger != nil {
		s.logger.LogError(err)
	}
}

// CheckPortAvailable checks if a port is available to bind to
func CheckPortAvailable(port int) bool {
	listener, err := (&net.ListenConfig{}).Listen(context.Background(), "tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return false // Port is in use
	}
	listener.Close()
	return true
}

// FindAvailablePort finds an available port starting from a base port
func FindAvailablePort(basePort int) int {
	port := basePort
	for port < basePort+100 {
		if CheckPortAvailable(port) {
			return port
		}
		port++
	}
	return basePort + 100 // Return last attempt even if not available
}
