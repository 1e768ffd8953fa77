package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub fans order change notifications out to every connected client. Staff
// dashboards and customer order pages all receive the same stream and
// filter client-side.
type Hub struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]bool

	// writeMu serializes broadcasts; gorilla connections do not allow
	// concurrent writers.
	writeMu sync.Mutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]bool)}
}

func (h *Hub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = true
	count := len(h.clients)
	h.mu.Unlock()
	log.Printf("[ws] client connected (%d total)", count)
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
	count := len(h.clients)
	h.mu.Unlock()
	log.Printf("[ws] client disconnected (%d total)", count)
}

// Broadcast sends the payload to every client. A failed write evicts that
// client; delivery is best effort and the caller never blocks on it.
func (h *Hub) Broadcast(payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[ws] marshal broadcast: %v", err)
		return
	}

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	h.writeMu.Lock()
	defer h.writeMu.Unlock()
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.Unregister(conn)
		}
	}
}

// Count reports the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
