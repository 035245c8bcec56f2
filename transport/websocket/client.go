package websocket

import (
	"errors"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/teleconf/signaling-server/room"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Maximum message size allowed from peer.
	maxMessageSize = 64 * 1024

	// Outbound frames buffered per connection before drops start.
	sendBufferSize = 256
)

var (
	// errClosed reports a send attempted after the connection shut down.
	errClosed = errors.New("websocket: connection closed")

	// errDropped reports a frame discarded because the send buffer was full.
	errDropped = errors.New("websocket: send buffer full, frame dropped")
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Signaling carries no credentials and rooms are unauthenticated.
		return true
	},
}

// Handler consumes transport events. The signaling router implements it.
type Handler interface {
	HandleMessage(conn room.Conn, data []byte)
	HandleClose(conn room.Conn)
}

// Client is one open signaling connection. It implements room.Conn.
type Client struct {
	id      string
	ws      *websocket.Conn
	send    chan []byte
	done    chan struct{}
	handler Handler
	monitor *Monitor

	// alive is cleared by each monitor sweep and set again by the peer's
	// pong. A connection still unconfirmed at the next sweep is terminated.
	alive atomic.Bool
}

// Serve upgrades the request and starts the connection's pumps. The client
// is tracked by the monitor until it closes.
func Serve(w http.ResponseWriter, r *http.Request, handler Handler, monitor *Monitor) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	c := &Client{
		id:      uuid.New().String(),
		ws:      ws,
		send:    make(chan []byte, sendBufferSize),
		done:    make(chan struct{}),
		handler: handler,
		monitor: monitor,
	}
	c.alive.Store(true)
	c.ws.SetPongHandler(func(string) error {
		c.alive.Store(true)
		return nil
	})

	if monitor != nil {
		monitor.track(c)
	}

	go c.writePump()
	go c.readPump()
}

// ID returns the transport-assigned connection identifier.
func (c *Client) ID() string { return c.id }

// Send queues a frame for delivery. It never blocks: a full buffer or a
// closed connection drops the frame and reports the peer as unreachable.
func (c *Client) Send(data []byte) error {
	select {
	case <-c.done:
		return errClosed
	default:
	}

	select {
	case c.send <- data:
		return nil
	default:
		return errDropped
	}
}

// Close terminates the underlying connection. The read pump observes the
// close and runs teardown; the liveness monitor uses this to reap dead
// peers.
func (c *Client) Close() error {
	return c.ws.Close()
}

// confirmAlive clears the liveness flag and reports whether the peer had
// confirmed since the previous sweep.
func (c *Client) confirmAlive() bool {
	return c.alive.Swap(false)
}

// ping sends a liveness probe. Write errors are left for the pumps to
// surface; a peer that cannot be pinged fails the next sweep anyway.
func (c *Client) ping() {
	c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// readPump reads frames from the peer and hands them to the handler. It
// owns teardown: whatever ends the connection, teardown runs exactly once
// from here.
func (c *Client) readPump() {
	defer func() {
		close(c.done)
		if c.monitor != nil {
			c.monitor.untrack(c)
		}
		c.handler.HandleClose(c)
		c.ws.Close()
	}()

	c.ws.SetReadLimit(maxMessageSize)

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Printf("Read error on %s: %v", c.id, err)
			}
			return
		}
		c.handler.HandleMessage(c, data)
	}
}

// writePump drains the send queue onto the wire.
func (c *Client) writePump() {
	defer c.ws.Close()

	for {
		select {
		case data := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}
