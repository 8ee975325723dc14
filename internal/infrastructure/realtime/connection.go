package realtime

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

// ErrClosed is returned by Send once the connection is no longer open.
var ErrClosed = errors.New("realtime: connection closed")

// Socket is the slice of *websocket.Conn the write path touches. Keeping it
// an interface lets tests stand in a dead or recording transport.
type Socket interface {
	SetWriteDeadline(t time.Time) error
	WriteMessage(messageType int, data []byte) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	Close() error
}

// Connection wraps one websocket session and serializes outbound writes
// through a buffered channel. A participant may hold any number of
// simultaneous Connections (multi-tab); each gets its own session ID.
type Connection struct {
	ID     string
	UserID string

	ws   Socket
	send chan []byte
	once sync.Once
	done chan struct{}
}

// NewConnection constructs a Connection bound to the given participant id.
func NewConnection(userID string, ws Socket) *Connection {
	return &Connection{
		ID:     uuid.NewString(),
		UserID: userID,
		ws:     ws,
		send:   make(chan []byte, 128),
		done:   make(chan struct{}),
	}
}

// Start launches the write loop. Call it exactly once per connection.
func (c *Connection) Start() {
	go c.writeLoop()
}

// Send enqueues payload for delivery. Enqueue order is delivery order for
// this connection. If the client is slow and the buffer is full, the
// connection is closed so backpressure stays bounded instead of stalling
// the caller.
func (c *Connection) Send(payload []byte) error {
	// Checked first on its own: a select with a closed done channel and a
	// free buffer slot has two ready cases and picks between them at
	// random, which would let a closed connection accept payloads.
	select {
	case <-c.done:
		return ErrClosed
	default:
	}

	select {
	case <-c.done:
		return ErrClosed
	case c.send <- payload:
		return nil
	default:
		c.Close(websocket.CloseGoingAway, "send buffer full")
		return ErrClosed
	}
}

// Open reports whether the connection still accepts sends.
func (c *Connection) Open() bool {
	select {
	case <-c.done:
		return false
	default:
		return true
	}
}

// Close terminates the connection and stops the write loop. Safe to call any
// number of times.
func (c *Connection) Close(code int, reason string) {
	c.once.Do(func() {
		close(c.done)
		_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
		_ = c.ws.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), time.Now().Add(writeWait))
		_ = c.ws.Close()
	})
}

func (c *Connection) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			if err := c.writeMessage(msg); err != nil {
				c.Close(websocket.CloseAbnormalClosure, "write failed")
				return
			}
		case <-ticker.C:
			if err := c.writePing(); err != nil {
				c.Close(websocket.CloseAbnormalClosure, "ping failed")
				return
			}
		}
	}
}

func (c *Connection) writeMessage(payload []byte) error {
	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.ws.WriteMessage(websocket.TextMessage, payload)
}

func (c *Connection) writePing() error {
	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.ws.WriteMessage(websocket.PingMessage, nil)
}
