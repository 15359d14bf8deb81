package ws

import (
	"encoding/json"
	"time"

	"jobradar/internal/logger"
)

// Event is the frame pushed to subscribers.
type Event struct {
	Type      string `json:"type"`
	Data      any    `json:"data,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Publisher turns domain events into hub broadcasts.
type Publisher struct {
	hub *Hub
	log logger.Logger
	now func() time.Time
}

func NewPublisher(hub *Hub, log logger.Logger) *Publisher {
	return &Publisher{hub: hub, log: logger.OrNop(log), now: time.Now}
}

func (p *Publisher) Publish(event string, data any) {
	if p == nil || p.hub == nil {
		return
	}

	b, err := json.Marshal(Event{
		Type:      event,
		Data:      data,
		Timestamp: p.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		p.log.Warn("ws event encode failed", map[string]interface{}{"event": event, "error": err})
		return
	}
	p.hub.Broadcast(b)
}
