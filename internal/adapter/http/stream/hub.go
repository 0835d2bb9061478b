// Package stream pushes engine events to websocket subscribers.
//
// Every client starts subscribed to the "events" channel. A client narrows
// or widens its feed with {"op":"subscribe","channels":[...]} messages where
// a channel is "events", an event type ("order.completed") or an event key
// ("order:7", "user:0x...").
package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"blindbuy-escrow/internal/core/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	ChannelAll = "events"

	sendBuffer = 256
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	writeWait  = 10 * time.Second
	maxMessage = 4 << 10
)

type controlMessage struct {
	Op       string   `json:"op"`
	Channels []string `json:"channels"`
}

type ackMessage struct {
	Op       string   `json:"op"`
	Channels []string `json:"channels"`
}

// Hub tracks connected clients. It implements ports.EventSink.
type Hub struct {
	mu       sync.Mutex
	clients  map[*client]struct{}
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

// NewHub creates a hub. allowedOrigins empty accepts any origin.
func NewHub(allowedOrigins []string, log zerolog.Logger) *Hub {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}
	return &Hub{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if len(allowed) == 0 {
					return true
				}
				_, ok := allowed[r.Header.Get("Origin")]
				return ok
			},
		},
		log: log,
	}
}

func (h *Hub) Name() string { return "websocket" }

// Send broadcasts ev to every client subscribed to one of its channels.
// Clients whose buffer is full are disconnected.
func (h *Hub) Send(_ context.Context, ev domain.Event) error {
	msg, err := json.Marshal(ev.Payload())
	if err != nil {
		return fmt.Errorf("websocket: marshal event: %w", err)
	}
	channels := []string{ChannelAll, string(ev.Type), ev.Key()}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		if !c.subscribedAny(channels) {
			continue
		}
		select {
		case c.send <- msg:
		default:
			h.log.Warn().Str("client", c.id).Msg("websocket: send buffer full, disconnecting")
			h.removeLocked(c)
		}
	}
	return nil
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		h.removeLocked(c)
	}
}

// ServeWS upgrades the request and starts the client's pumps.
func (h *Hub) ServeWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket: upgrade failed")
		return
	}

	cl := &client{
		hub:           h,
		conn:          conn,
		send:          make(chan []byte, sendBuffer),
		id:            uuid.NewString(),
		subscriptions: map[string]struct{}{ChannelAll: {}},
	}

	h.mu.Lock()
	h.clients[cl] = struct{}{}
	total := len(h.clients)
	h.mu.Unlock()
	h.log.Debug().Str("client", cl.id).Int("total", total).Msg("websocket: client connected")

	go cl.writePump()
	go cl.readPump()
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

// reply queues a control response without blocking.
func (h *Hub) reply(c *client, msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	select {
	case c.send <- msg:
	default:
	}
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	id   string

	subsMu        sync.RWMutex
	subscriptions map[string]struct{}
}

func (c *client) subscribedAny(channels []string) bool {
	c.subsMu.RLock()
	defer c.subsMu.RUnlock()
	for _, ch := range channels {
		if _, ok := c.subscriptions[ch]; ok {
			return true
		}
	}
	return false
}

func (c *client) apply(req controlMessage) (string, bool) {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	switch req.Op {
	case "subscribe":
		for _, ch := range req.Channels {
			c.subscriptions[ch] = struct{}{}
		}
		return "subscribed", true
	case "unsubscribe":
		for _, ch := range req.Channels {
			delete(c.subscriptions, ch)
		}
		return "unsubscribed", true
	}
	return "", false
}

func (c *client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessage)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Debug().Err(err).Str("client", c.id).Msg("websocket: read error")
			}
			return
		}

		var req controlMessage
		if err := json.Unmarshal(raw, &req); err != nil {
			c.hub.log.Debug().Err(err).Str("client", c.id).Msg("websocket: invalid message")
			continue
		}
		op, ok := c.apply(req)
		if !ok {
			c.hub.log.Debug().Str("client", c.id).Str("op", req.Op).Msg("websocket: unknown op")
			continue
		}
		ack, _ := json.Marshal(ackMessage{Op: op, Channels: req.Channels})
		c.hub.reply(c, ack)
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
