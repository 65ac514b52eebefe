// Package live pushes post mutation events to connected clients over a
// websocket. The channel is one-way: there are no request/response
// semantics, and a client that falls behind simply misses events.
package live

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"Feedline/internal/core/events"
)

const (
	writeTimeout = 10 * time.Second
	pingInterval = 30 * time.Second
	pongTimeout  = 60 * time.Second
)

// Handler upgrades requests to websocket connections and streams
// broadcaster events until the client disconnects.
type Handler struct {
	broadcaster *events.Broadcaster
	upgrader    websocket.Upgrader
	logger      *slog.Logger
}

// NewHandler creates a new live-update handler
func NewHandler(broadcaster *events.Broadcaster, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		broadcaster: broadcaster,
		logger:      logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The feed is public; so is the event stream.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleSubscribe handles GET /ws
// Subscription begins on connection open and ends on close; both are
// explicit lifecycle events on the broadcaster.
func (h *Handler) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	ch := h.broadcaster.Subscribe()
	defer h.broadcaster.Unsubscribe(ch)
	defer conn.Close()

	// Read pump: discards client frames, detects disconnects and keeps the
	// pong deadline fresh.
	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadLimit(512)
		if err := conn.SetReadDeadline(time.Now().Add(pongTimeout)); err != nil {
			return
		}
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongTimeout))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
