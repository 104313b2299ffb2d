package notify

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/trondheimsveien165173-max/parkering1651731/internal/parking"
)

const (
	hubSendBuffer   = 16
	hubPingInterval = 30 * time.Second
	hubReadTimeout  = 60 * time.Second
)

// Hub pushes application events to connected management boards
type Hub struct {
	upgrader websocket.Upgrader
	mu       sync.RWMutex
	clients  map[*boardClient]struct{}
}

// send is never closed; done signals shutdown so Publish cannot race a close
type boardClient struct {
	conn      *websocket.Conn
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func (c *boardClient) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*boardClient]struct{}),
	}
}

// ServeHTTP upgrades the request and keeps the board attached until it disconnects
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("board websocket upgrade failed", slog.Any("error", err))
		return
	}

	c := &boardClient{conn: conn, send: make(chan []byte, hubSendBuffer), done: make(chan struct{})}
	h.attach(c)
	go h.writePump(c)
	h.readPump(c)
}

func (h *Hub) attach(c *boardClient) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	count := len(h.clients)
	h.mu.Unlock()
	slog.Info("board client attached", slog.Int("clients", count))
}

func (h *Hub) detach(c *boardClient) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()
	if ok {
		c.close()
		slog.Info("board client detached")
	}
}

// Len returns the number of attached boards
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish broadcasts the created event. Boards with a full buffer are dropped.
func (h *Hub) Publish(_ context.Context, app parking.Application) error {
	data, err := encodeEvent(app)
	if err != nil {
		return err
	}

	h.mu.RLock()
	clients := make([]*boardClient, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		select {
		case c.send <- data:
		case <-c.done:
		default:
			slog.Warn("board send buffer full")
			go h.detach(c)
		}
	}
	return nil
}

// Close disconnects every board
func (h *Hub) Close() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[*boardClient]struct{})
	h.mu.Unlock()
	for c := range clients {
		c.close()
	}
}

func (h *Hub) writePump(c *boardClient) {
	ping := time.NewTicker(hubPingInterval)
	defer ping.Stop()

	for {
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				slog.Warn("board write error", slog.Any("error", err))
				go h.detach(c)
				return
			}
		case <-ping.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				go h.detach(c)
				return
			}
		}
	}
}

// readPump discards incoming frames; it only exists to notice disconnects and pongs
func (h *Hub) readPump(c *boardClient) {
	defer h.detach(c)
	c.conn.SetReadLimit(1 << 12)
	_ = c.conn.SetReadDeadline(time.Now().Add(hubReadTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(hubReadTimeout))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Debug("board read ended", slog.Any("error", err))
			}
			return
		}
	}
}
