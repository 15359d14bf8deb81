package ws

import (
	"context"
	"sync"

	"jobradar/internal/logger"
)

// Hub fans messages out to every connected client. Membership changes are
// applied by Run; once Run returns, Register closes the client straight away
// and Unregister is a no-op.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mutex      sync.RWMutex
	log        logger.Logger
}

func NewHub(log logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client, 64),
		done:       make(chan struct{}),
		log:        logger.OrNop(log),
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mutex.Unlock()
			h.log.Debug("ws connected", map[string]interface{}{"total_clients": total})

		case client := <-h.unregister:
			if h.remove(client) {
				h.log.Debug("ws disconnected", map[string]interface{}{"total_clients": h.ClientCount()})
			}

		case message := <-h.broadcast:
			h.mutex.RLock()
			snapshot := make([]*Client, 0, len(h.clients))
			for c := range h.clients {
				snapshot = append(snapshot, c)
			}
			h.mutex.RUnlock()

			dropped := 0
			for _, client := range snapshot {
				select {
				case client.send <- message:
				default:
					if h.remove(client) {
						dropped++
					}
				}
			}
			h.log.Debug("ws broadcast", map[string]interface{}{"clients": len(snapshot), "dropped": dropped})
		}
	}
}

func (h *Hub) remove(client *Client) bool {
	if client == nil {
		return false
	}
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.clients[client]; !ok {
		return false
	}
	delete(h.clients, client)
	close(client.send)
	return true
}

func (h *Hub) shutdown() {
	h.mutex.Lock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
	h.mutex.Unlock()
	close(h.done)
}

// Done is closed once Run has returned.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

func (h *Hub) Register(client *Client) {
	if h == nil || client == nil {
		return
	}
	// register is unbuffered, so a send only completes while Run is live.
	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast queues message for every client. It never blocks; when the queue
// is full the message is dropped.
func (h *Hub) Broadcast(message []byte) bool {
	if h == nil {
		return false
	}
	select {
	case <-h.done:
		return false
	default:
	}
	select {
	case h.broadcast <- message:
		return true
	default:
		h.log.Warn("ws broadcast dropped", map[string]interface{}{"reason": "buffer_full"})
		return false
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}
