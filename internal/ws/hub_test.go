package ws

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"go-catalog-ms/internal/event"

	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu       sync.Mutex
	messages [][]byte
	closed   bool
	fail     bool
}

func (c *fakeConn) WriteMessage(_ int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("broken pipe")
	}
	c.messages = append(c.messages, data)
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) received() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

func TestHubForwardsEvents(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	good := &fakeConn{}
	bad := &fakeConn{fail: true}
	hub.Register <- good
	hub.Register <- bad

	hub.Forward(event.New(event.ProductCreated, "p-1", map[string]string{"name": "Burger"}))

	require.Eventually(t, func() bool { return good.received() == 1 }, time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 10*time.Millisecond)

	var e map[string]interface{}
	require.NoError(t, json.Unmarshal(good.messages[0], &e))
	require.Equal(t, event.ProductCreated, e["type"])
}

func TestHubStopClosesClients(t *testing.T) {
	hub := NewHub()
	stopped := make(chan struct{})
	go func() {
		hub.Run()
		close(stopped)
	}()

	conn := &fakeConn{}
	hub.Register <- conn
	hub.Stop()

	<-stopped
	require.True(t, conn.closed)
	require.Zero(t, hub.Count())
}
