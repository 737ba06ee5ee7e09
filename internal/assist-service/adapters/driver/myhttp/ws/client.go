package ws

import (
	"context"
	"time"

	websocketdto "road-assist/internal/assist-service/core/domain/websocket_dto"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
)

type Client struct {
	ctx     context.Context
	conn    *websocket.Conn
	dis     *Dispatcher
	egress  chan websocketdto.Event
	channel string
}

func NewClient(ctx context.Context, conn *websocket.Conn, dis *Dispatcher, channel string) *Client {
	return &Client{
		ctx:     ctx,
		conn:    conn,
		dis:     dis,
		egress:  make(chan websocketdto.Event, 8),
		channel: channel,
	}
}

// ReadMessage drains the connection so control frames are processed; the
// push channel is one-way and inbound payloads are ignored.
func (c *Client) ReadMessage() {
	defer c.dis.RemoveClient(c)

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) WriteMessage() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.ctx.Done():
			return
		case event, ok := <-c.egress:
			if !ok {
				_ = c.conn.WriteControl(websocket.CloseMessage, []byte{}, time.Now().Add(writeWait))
				return
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
