package ws

import (
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
)

const (
	// sendBuffer bounds the per-client event queue. A full queue drops
	// events rather than blocking the publisher; delivery is best effort
	// and clients recover by re-fetching.
	sendBuffer = 64

	writeTimeout = 10 * time.Second
	pingInterval = 30 * time.Second

	// PongTimeout is how long a subscription may go silent before the
	// connection counts as dead. The presence cache TTL is sized to it so
	// a crashed client expires out of the online set on its own.
	PongTimeout = 90 * time.Second
)

// Client is one feed subscription. Events are enqueued onto send by the
// hub and drained by a single writer goroutine, so publishers never touch
// the connection directly.
type Client struct {
	UserID uint

	conn *websocket.Conn
	send chan Event
	done chan struct{}

	closeOnce sync.Once
}

func NewClient(userID uint, conn *websocket.Conn) *Client {
	return &Client{
		UserID: userID,
		conn:   conn,
		send:   make(chan Event, sendBuffer),
		done:   make(chan struct{}),
	}
}

// enqueue offers an event to the client without blocking. It reports
// whether the event was accepted.
func (c *Client) enqueue(event Event) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.send <- event:
		return true
	default:
		return false
	}
}

// close makes the writer goroutine exit. Safe to call more than once.
func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// writePump drains the event queue onto the connection and keeps the
// connection alive with pings. It exits when the client is closed or the
// connection fails.
func (c *Client) writePump(onDead func(*Client)) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		onDead(c)
	}()

	for {
		select {
		case <-c.done:
			return
		case event := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				return
			}
		}
	}
}
