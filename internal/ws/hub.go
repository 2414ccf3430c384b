package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub fans sync progress events out to a user's open dashboard tabs.
type Hub struct {
	mu    sync.RWMutex
	users map[uint]map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{
		users: make(map[uint]map[*websocket.Conn]bool),
	}
}

func (h *Hub) AddConnection(userID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.users[userID] == nil {
		h.users[userID] = make(map[*websocket.Conn]bool)
	}
	h.users[userID][conn] = true
	log.Printf("ws: client connected for user %d (total: %d)", userID, len(h.users[userID]))
}

func (h *Hub) RemoveConnection(userID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.users[userID]; ok {
		delete(conns, conn)
		conn.Close()
		if len(conns) == 0 {
			delete(h.users, userID)
		}
		log.Printf("ws: client disconnected for user %d", userID)
	}
}

// Broadcast takes the write lock: it prunes dead connections from the
// map, and concurrent sync runs may broadcast to the same user.
func (h *Hub) Broadcast(userID uint, message Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.users[userID]
	if !ok {
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("ws: marshal error: %v", err)
		return
	}

	for conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("ws: write error: %v", err)
			conn.Close()
			delete(conns, conn)
		}
	}
}
