package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"jobradar/internal/logger"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_BroadcastReachesClients(t *testing.T) {
	hub := NewHub(logger.NewTestLogger(t))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	a := &Client{hub: hub, send: make(chan []byte, 1)}
	b := &Client{hub: hub, send: make(chan []byte, 1)}
	hub.Register(a)
	hub.Register(b)
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 5*time.Millisecond)

	require.True(t, hub.Broadcast([]byte("hello")))
	for _, c := range []*Client{a, b} {
		select {
		case msg := <-c.send:
			assert.Equal(t, "hello", string(msg))
		case <-time.After(time.Second):
			t.Fatal("message not delivered")
		}
	}
}

func TestHub_DropsSlowClient(t *testing.T) {
	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	slow := &Client{hub: hub, send: make(chan []byte)}
	hub.Register(slow)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.Broadcast([]byte("x"))
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)

	_, open := <-slow.send
	assert.False(t, open)
}

func TestHub_MembershipAfterShutdownDoesNotBlock(t *testing.T) {
	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	live := &Client{hub: hub, send: make(chan []byte, 1)}
	hub.Register(live)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	<-stopped
	_, open := <-live.send
	assert.False(t, open)

	late := &Client{hub: hub, send: make(chan []byte, 1)}
	returned := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.Unregister(live)
		}
		hub.Register(late)
		hub.Unregister(late)
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("membership change blocked after hub stopped")
	}
	_, open = <-late.send
	assert.False(t, open)
	assert.False(t, hub.Broadcast([]byte("x")))
	assert.Zero(t, hub.ClientCount())
}

func TestHub_NilSafe(t *testing.T) {
	var hub *Hub
	assert.False(t, hub.Broadcast([]byte("x")))
	assert.Zero(t, hub.ClientCount())
	hub.Register(nil)

	var p *Publisher
	p.Publish("jobs_refreshed", nil)
}

func TestPublisher_StreamsOverWebsocket(t *testing.T) {
	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	srv := httptest.NewServer(NewHandler(hub, nil))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	pub := NewPublisher(hub, nil)
	pub.now = func() time.Time { return time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC) }
	pub.Publish("model_retrained", map[string]any{"samples": 42})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var evt struct {
		Type      string         `json:"type"`
		Data      map[string]any `json:"data"`
		Timestamp string         `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal(msg, &evt))
	assert.Equal(t, "model_retrained", evt.Type)
	assert.Equal(t, float64(42), evt.Data["samples"])
	assert.Equal(t, "2026-05-01T12:00:00Z", evt.Timestamp)
}
