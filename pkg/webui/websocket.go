package webui

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// maxMessageSize bounds a single client event
const maxMessageSize = 64 * 1024

// SafeConn wraps a WebSocket connection with write mutex and panic recovery
type SafeConn struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
	closed  bool
}

// NewSafeConn creates a new safe connection wrapper
func NewSafeConn(conn *websocket.Conn) *SafeConn {
	return &SafeConn{conn: conn}
}

// WriteJSON safely writes JSON to the WebSocket connection. Writes after
// Close are dropped.
func (sc *SafeConn) WriteJSON(v interface{}) (err error) {
	sc.writeMu.Lock()
	defer sc.writeMu.Unlock()

	if sc.closed {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			sc.closed = true
			err = fmt.Errorf("websocket write panic: %v", r)
		}
	}()

	return sc.conn.WriteJSON(v)
}

// Ping sends a control ping that the peer must answer before the read
// deadline passes
func (sc *SafeConn) Ping(timeout time.Duration) error {
	sc.writeMu.Lock()
	defer sc.writeMu.Unlock()
	if sc.closed {
		return nil
	}
	return sc.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(timeout))
}

// Close closes the underlying connection
func (sc *SafeConn) Close() error {
	sc.writeMu.Lock()
	if sc.closed {
		sc.writeMu.Unlock()
		return nil
	}
	sc.closed = true
	sc.writeMu.Unlock()
	return sc.conn.Close()
}

var sessionSeq atomic.Int64

// handleWebSocket gives every connection its own dropdown session
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if r := recover(); r != nil {
			s.logf("WebSocket handler panic: %v", r)
		}
	}()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logf("WebSocket upgrade error: %v", err)
		return
	}

	safeConn := NewSafeConn(conn)
	sessionID := fmt.Sprintf("ws_%d", sessionSeq.Add(1))
	sess := s.newSession(sessionID, safeConn)

	s.connections.Store(safeConn, &ConnectionInfo{
		SessionID:   sessionID,
		ConnectedAt: time.Now(),
	})
	defer s.connections.Delete(safeConn)

	s.logf("WebSocket client connected: %s", sessionID)

	safeConn.WriteJSON(Reply{
		Type: "connection_status",
		Data: map[string]interface{}{"connected": true, "session_id": sessionID},
	})
	sess.render(true)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Any message or pong pushes the read deadline out
	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(s.readTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(s.readTimeout))
	})

	// The session belongs to the read goroutine until it exits. Closing the
	// connection unblocks its read.
	readDone := make(chan struct{})
	defer func() {
		safeConn.Close()
		<-readDone
		sess.close()
	}()
	go func() {
		defer close(readDone)
		defer func() {
			if r := recover(); r != nil {
				s.logf("WebSocket read goroutine panic recovered: %v", r)
			}
		}()

		for {
			var msg Message
			if err := conn.ReadJSON(&msg); err != nil {
				var netErr net.Error
				var closeErr *websocket.CloseError
				switch {
				case errors.As(err, &closeErr):
					s.logf("WebSocket %s closed: %v", sessionID, err)
				case errors.As(err, &netErr) && netErr.Timeout():
					s.logf("WebSocket %s heartbeat timeout", sessionID)
				default:
					if isDecodeError(err) {
						// The frame was read in full, so the connection is still usable
						sess.reply(Reply{Type: "error", Error: fmt.Sprintf("malformed message: %v", err)})
						continue
					}
					s.logf("WebSocket %s read error: %v", sessionID, err)
				}
				return
			}
			conn.SetReadDeadline(time.Now().Add(s.readTimeout))
			sess.handle(msg)
		}
	}()

	ticker := time.NewTicker(s.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := safeConn.Ping(s.pingInterval); err != nil {
				s.logf("WebSocket %s ping failed: %v", sessionID, err)
				return
			}
		case <-readDone:
			return
		}
	}
}
