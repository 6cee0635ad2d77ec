package hub

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"
)

// sendQueueSize is the number of messages buffered per viewer before it is dropped
const sendQueueSize = 8

// viewer is a registered client with its own send queue
type viewer struct {
	client Client
	send   chan []byte
}

// Hub fans live results out to every connected viewer.
// Only the Run goroutine touches viewer queues, writes happen in one
// goroutine per viewer so a stuck connection never blocks the hub.
type Hub struct {
	clients    map[Client]*viewer
	latest     []byte
	broadcast  chan []byte
	register   chan Client
	unregister chan Client
	done       chan struct{}
	mu         sync.Mutex
}

// New creates a hub, Run must be started before use
func New() *Hub {
	return &Hub{
		clients:    make(map[Client]*viewer),
		broadcast:  make(chan []byte, 16),
		register:   make(chan Client),
		unregister: make(chan Client),
		done:       make(chan struct{}),
	}
}

// Run serves hub events until the context is cancelled
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case client := <-h.register:
			v := &viewer{client: client, send: make(chan []byte, sendQueueSize)}
			if h.latest != nil {
				v.send <- h.latest
			}
			h.mu.Lock()
			h.clients[client] = v
			h.mu.Unlock()
			go h.writePump(v)
			slog.Debug("Live viewer connected", "viewers", h.Len())
		case client := <-h.unregister:
			h.drop(client)
			slog.Debug("Live viewer disconnected", "viewers", h.Len())
		case message := <-h.broadcast:
			h.latest = message
			h.mu.Lock()
			var slow []Client
			for client, v := range h.clients {
				select {
				case v.send <- message:
				default:
					slow = append(slow, client)
				}
			}
			h.mu.Unlock()
			for _, client := range slow {
				slog.Warn("Dropping slow live viewer")
				h.drop(client)
			}
		}
	}
}

// writePump writes queued messages to the viewer until its queue is closed
func (h *Hub) writePump(v *viewer) {
	for message := range v.send {
		if err := v.client.WriteMessage(websocket.TextMessage, message); err != nil {
			slog.Warn("Dropping live viewer", "error", err)
			v.client.Close()
			h.Unregister(v.client)
			return
		}
	}
}

// Register adds a viewer, it first receives the latest results.
// After shutdown the viewer is closed instead.
func (h *Hub) Register(client Client) {
	select {
	case h.register <- client:
	case <-h.done:
		client.Close()
	}
}

// Unregister removes a viewer and closes its connection
func (h *Hub) Unregister(client Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast queues a message for every viewer, it is dropped after shutdown
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	case <-h.done:
	}
}

// Len returns the number of connected viewers
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) drop(client Client) {
	h.mu.Lock()
	v, ok := h.clients[client]
	delete(h.clients, client)
	h.mu.Unlock()

	if ok {
		close(v.send)
		client.Close()
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client, v := range h.clients {
		close(v.send)
		client.Close()
		delete(h.clients, client)
	}
}
