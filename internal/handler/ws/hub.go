package ws

import (
	"net/http"
	"sync"
	"time"

	"MacroPulse/internal/domain/models"
	applogger "MacroPulse/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait      = 10 * time.Second
	sendBufferSize = 8
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Dashboard is same-origin in practice; the API is open anyway.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub broadcasts completed update cycles to connected dashboard clients.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	logger  *applogger.Logger
}

type client struct {
	conn *websocket.Conn
	send chan *models.UpdateEvent
}

// NewHub creates an empty hub.
func NewHub(logger *applogger.Logger) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		logger:  logger,
	}
}

// Serve upgrades the request and keeps the connection until the peer leaves.
func (h *Hub) Serve(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	cl := &client{conn: conn, send: make(chan *models.UpdateEvent, sendBufferSize)}
	h.mu.Lock()
	h.clients[cl] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()

	if h.logger != nil {
		h.logger.Info("ws client connected", applogger.Int("clients", n))
	}

	go h.writeLoop(cl)
	h.readLoop(cl)
	return nil
}

// BroadcastUpdate fans out an event to all clients, dropping slow ones.
func (h *Hub) BroadcastUpdate(ev *models.UpdateEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for cl := range h.clients {
		select {
		case cl.send <- ev:
		default:
			// slow consumer, disconnect instead of blocking the cycle
			delete(h.clients, cl)
			close(cl.send)
			_ = cl.conn.Close()
		}
	}
}

// Close disconnects all clients.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for cl := range h.clients {
		delete(h.clients, cl)
		close(cl.send)
		_ = cl.conn.Close()
	}
}

func (h *Hub) writeLoop(cl *client) {
	for ev := range cl.send {
		_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := cl.conn.WriteJSON(ev); err != nil {
			h.drop(cl)
			return
		}
	}
}

// readLoop discards inbound frames; it exists to detect the peer closing.
func (h *Hub) readLoop(cl *client) {
	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			h.drop(cl)
			return
		}
	}
}

func (h *Hub) drop(cl *client) {
	h.mu.Lock()
	if _, ok := h.clients[cl]; ok {
		delete(h.clients, cl)
		close(cl.send)
	}
	h.mu.Unlock()
	_ = cl.conn.Close()
}
