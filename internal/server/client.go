package server

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 64
)

// Client is one websocket connection bound to a verified player.
type Client struct {
	playerID string
	conn     *websocket.Conn
	send     chan []byte
	closed   sync.Once
	logger   *zap.Logger
}

// NewClient wraps an upgraded connection.
func NewClient(playerID string, conn *websocket.Conn, logger *zap.Logger) *Client {
	return &Client{
		playerID: playerID,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
		logger:   logger,
	}
}

// PlayerID returns the verified user id this connection belongs to.
func (c *Client) PlayerID() string { return c.playerID }

// Send queues a message for delivery. Messages to a client whose buffer is
// full are dropped rather than blocking the resolver.
func (c *Client) Send(data []byte) {
	select {
	case c.send <- data:
	default:
		if c.logger != nil {
			c.logger.Warn("dropping message, send buffer full",
				zap.String("player_id", c.playerID),
			)
		}
	}
}

// Close tears the connection down. Safe to call more than once.
func (c *Client) Close() {
	c.closed.Do(func() {
		close(c.send)
	})
}

// WritePump drains the send channel onto the wire. Runs as one goroutine
// per connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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

// ReadPump reads inbound messages and forwards them to the handler until
// the connection drops.
func (c *Client) ReadPump(handle func([]byte)) {
	defer c.conn.Close()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				if c.logger != nil {
					c.logger.Debug("websocket read error",
						zap.String("player_id", c.playerID),
						zap.Error(err),
					)
				}
			}
			return
		}
		handle(message)
	}
}
