package websocket

import (
	"encoding/json"
	"sync"

	"github.com/fadelsew02/maxime-app-sub000/internal/model"
	"github.com/sirupsen/logrus"
)

// Hub tracks connected clients and fans notification events out to the role
// each client authenticated as.
type Hub struct {
	clients map[*Client]bool

	// Broadcast sends a raw message to every client.
	Broadcast chan []byte

	Register   chan *Client
	Unregister chan *Client

	logger *logrus.Logger
	mu     sync.RWMutex
}

// NewHub creates a hub.
func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		Broadcast:  make(chan []byte),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		logger:     logger,
	}
}

// Run processes register, unregister and broadcast events until the process
// exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()

		case message := <-h.Broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastToRole delivers a message to every client holding a role.
func (h *Hub) BroadcastToRole(role string, message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		if client.Role == role {
			select {
			case client.Send <- message:
			default:
				close(client.Send)
				delete(h.clients, client)
			}
		}
	}
}

// BroadcastNotification pushes a persisted notification to the clients of
// its target role. Implements the service layer's Broadcaster.
func (h *Hub) BroadcastNotification(n *model.Notification) {
	payload, err := json.Marshal(n)
	if err != nil {
		if h.logger != nil {
			h.logger.WithError(err).Warn("failed to encode notification for push")
		}
		return
	}
	h.BroadcastToRole(n.TargetRole, payload)
}

// GetClientCount returns the number of connected clients.
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients)
}
