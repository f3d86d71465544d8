package api

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/karthikbm/lifeline/internal/fleet"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub pushes fleet snapshots to connected dashboard clients. Every
// mutation of vehicle state triggers a broadcast of the full fleet.
type Hub struct {
	registry *fleet.Registry
	mu       sync.Mutex
	clients  map[*websocket.Conn]struct{}
}

// NewHub creates a hub over the given registry
func NewHub(registry *fleet.Registry) *Hub {
	return &Hub{
		registry: registry,
		clients:  make(map[*websocket.Conn]struct{}),
	}
}

// Handle upgrades the connection and registers the client. The current
// fleet snapshot is sent immediately so new dashboards render at once.
func (h *Hub) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warnf("[ws] upgrade error: %v", err)
		return
	}

	h.add(conn)
	go h.readPump(conn)

	if err := h.writeFleet(conn); err != nil {
		h.remove(conn)
		_ = conn.Close()
	}
}

// BroadcastFleet sends the current fleet snapshot to every client.
// Clients that fail the write are dropped.
func (h *Hub) BroadcastFleet() {
	data, err := json.Marshal(h.registry.All())
	if err != nil {
		log.Errorf("[ws] marshal fleet: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
			_ = c.Close()
			delete(h.clients, c)
		}
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) add(c *websocket.Conn) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) remove(c *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

func (h *Hub) writeFleet(c *websocket.Conn) error {
	data, err := json.Marshal(h.registry.All())
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	return c.WriteMessage(websocket.TextMessage, data)
}

// readPump drains client messages until the connection closes. Clients
// only listen; inbound frames are discarded.
func (h *Hub) readPump(c *websocket.Conn) {
	defer func() {
		h.remove(c)
		_ = c.Close()
	}()
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}
