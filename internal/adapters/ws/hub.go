// Package ws pushes workflow events to connected dashboards over websockets.
package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync/atomic"

	"ewastewatch/internal/ports"
)

// Encoder turns an event into the bytes sent to every client.
type Encoder func(ports.Event) ([]byte, error)

type Hub struct {
	register   chan *client
	unregister chan *client
	broadcast  chan []byte
	done       chan struct{}
	encode     Encoder

	clients map[*client]struct{}
	count   atomic.Int32
}

func NewHub(encode Encoder) *Hub {
	if encode == nil {
		encode = func(ev ports.Event) ([]byte, error) { return json.Marshal(ev) }
	}
	return &Hub{
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, 64),
		done:       make(chan struct{}),
		encode:     encode,
		clients:    make(map[*client]struct{}),
	}
}

var _ ports.EventPublisher = (*Hub)(nil)

// Run owns the client set until ctx is done, then disconnects everyone.
func (h *Hub) Run(ctx context.Context) {
	log.Println("websocket hub started")
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			close(h.done)
			return
		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.count.Store(int32(len(h.clients)))
			log.Printf("dashboard client connected (total: %d)", len(h.clients))
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.drop(c)
				log.Printf("dashboard client disconnected (total: %d)", len(h.clients))
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// slow consumer
					h.drop(c)
				}
			}
		}
	}
}

func (h *Hub) drop(c *client) {
	delete(h.clients, c)
	close(c.send)
	h.count.Store(int32(len(h.clients)))
}

// Clients is the number of connected dashboards.
func (h *Hub) Clients() int { return int(h.count.Load()) }

// Publish never blocks; events are dropped when the hub is backed up.
func (h *Hub) Publish(_ context.Context, ev ports.Event) {
	data, err := h.encode(ev)
	if err != nil {
		log.Printf("failed to encode %s event: %v", ev.Type, err)
		return
	}
	select {
	case h.broadcast <- data:
	default:
		log.Printf("dropping %s event: hub is backed up", ev.Type)
	}
}
