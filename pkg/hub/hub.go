// Package hub provides a thread-safe websocket broadcast hub using the
// channel-based fan-out pattern. facevibe uses one hub for the event
// stream consumed by the UI and assistant collaborators.
package hub

import (
	"encoding/json"
	"sync"

	"github.com/PittPrat/facevibe/internal/log"
)

// Event is one broadcast message on the event stream.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// Hub maintains the set of active clients and broadcasts events to them.
type Hub struct {
	name string

	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client

	mu      sync.RWMutex
	running bool
}

// New creates a new Hub.
func New(name string) *Hub {
	return &Hub{
		name:       name,
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's main loop. Call in a goroutine.
func (h *Hub) Run() {
	h.running = true
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			log.Debug("hub client connected", "hub", h.name, "clients", count)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			log.Debug("hub client disconnected", "hub", h.name, "clients", count)

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Buffer full: the client is too slow. Drop it.
					close(client.send)
					delete(h.clients, client)
					log.Warn("hub dropped slow client", "hub", h.name)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Publish broadcasts an event to all connected clients. Encoding errors
// are logged and the event dropped; the caller's tick never fails on a
// broadcast.
func (h *Hub) Publish(e Event) {
	data, err := json.Marshal(e)
	if err != nil {
		log.Error("hub encode failed", "hub", h.name, "type", e.Type, "error", err)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		log.Warn("hub broadcast buffer full, event dropped", "hub", h.name, "type", e.Type)
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
