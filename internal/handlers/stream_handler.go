package handlers

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/arnelectric/storefront-backend/internal/adapters/repository"
	"github.com/arnelectric/storefront-backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// CORS is enforced at the HTTP layer; the socket accepts any origin.
		return true
	},
}

// streamClient serializes all writes to one websocket connection.
// gorilla/websocket allows at most one concurrent writer, and both the
// broadcast path and the ping ticker reach the same conn.
type streamClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *streamClient) writeJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

func (c *streamClient) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.PingMessage, nil)
}

// StreamHandler pushes order and return events to connected admin panels.
// It is only wired up when the store backend supports change streams.
type StreamHandler struct {
	Orders  repository.OrderWatcher
	Returns repository.ReturnWatcher

	mu      sync.Mutex
	clients map[*streamClient]bool
	once    sync.Once
}

func NewStreamHandler(orders repository.OrderWatcher, returns repository.ReturnWatcher) *StreamHandler {
	return &StreamHandler{
		Orders:  orders,
		Returns: returns,
		clients: make(map[*streamClient]bool),
	}
}

type streamMessage struct {
	Channel string      `json:"channel"` // orders or returns
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// AdminStream upgrades the connection and keeps it fed with live events.
func (h *StreamHandler) AdminStream(c *gin.Context) {
	if h.Orders == nil {
		c.JSON(http.StatusNotImplemented, utils.ErrorResponse("Live updates are not available on this store backend"))
		return
	}

	h.once.Do(h.startWatchers)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.Warnf("websocket upgrade failed: %v", err)
		return
	}
	client := &streamClient{conn: conn}

	// Handshake before registration so no broadcast can interleave with it.
	if err := client.writeJSON(streamMessage{Channel: "system", Type: "connected"}); err != nil {
		conn.Close()
		return
	}

	h.mu.Lock()
	h.clients[client] = true
	h.mu.Unlock()

	// Reader loop exists only to detect the client going away; pings keep
	// intermediaries from dropping the idle connection.
	go h.keepAlive(client)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.remove(client)
}

func (h *StreamHandler) remove(client *streamClient) {
	h.mu.Lock()
	delete(h.clients, client)
	h.mu.Unlock()
	client.conn.Close()
}

func (h *StreamHandler) keepAlive(client *streamClient) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for range ticker.C {
		h.mu.Lock()
		alive := h.clients[client]
		h.mu.Unlock()
		if !alive {
			return
		}
		if err := client.ping(); err != nil {
			return
		}
	}
}

func (h *StreamHandler) startWatchers() {
	ctx := context.Background()
	go func() {
		err := h.Orders.WatchOrders(ctx, func(ev repository.OrderEvent) {
			h.broadcast(streamMessage{Channel: "orders", Type: ev.Type, Payload: ev.Order})
		})
		if err != nil && !errors.Is(err, repository.ErrWatchUnsupported) {
			logrus.Warnf("order watcher stopped: %v", err)
		}
	}()
	if h.Returns != nil {
		go func() {
			err := h.Returns.WatchReturns(ctx, func(ev repository.ReturnEvent) {
				h.broadcast(streamMessage{Channel: "returns", Type: ev.Type, Payload: ev.Return})
			})
			if err != nil && !errors.Is(err, repository.ErrWatchUnsupported) {
				logrus.Warnf("return watcher stopped: %v", err)
			}
		}()
	}
}

func (h *StreamHandler) broadcast(msg streamMessage) {
	h.mu.Lock()
	targets := make([]*streamClient, 0, len(h.clients))
	for client := range h.clients {
		targets = append(targets, client)
	}
	h.mu.Unlock()

	for _, client := range targets {
		if err := client.writeJSON(msg); err != nil {
			h.remove(client)
		}
	}
}
