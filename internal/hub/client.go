package hub

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Santiii02/GoalStatsPro/pkg/models"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Buffer size for outbound messages
	sendBufferSize = 16
)

// Client represents one WebSocket subscriber. Subscribers only listen;
// inbound frames are drained for connection keepalive and discarded.
type Client struct {
	ID   string
	conn *websocket.Conn
	Send chan models.LiveUpdate
	hub  *Hub
}

// NewClient creates a client around an upgraded connection.
func NewClient(id string, conn *websocket.Conn, h *Hub) *Client {
	return &Client{
		ID:   id,
		conn: conn,
		Send: make(chan models.LiveUpdate, sendBufferSize),
		hub:  h,
	}
}

// TrySend queues a message for the client without blocking.
// Returns false when the buffer is full.
func (c *Client) TrySend(update models.LiveUpdate) bool {
	select {
	case c.Send <- update:
		return true
	default:
		return false
	}
}

// ReadPump keeps the connection's read side alive and unregisters the
// client when the peer goes away.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				fmt.Printf("client %s unexpected close: %v\n", c.ID, err)
			}
			return
		}
	}
}

// WritePump pumps updates from the hub to the WebSocket connection.
func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case update, ok := <-c.Send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(update); err != nil {
				fmt.Printf("client %s write error: %v\n", c.ID, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
