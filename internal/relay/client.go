package relay

import (
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/fasthttp/websocket"
	"github.com/riskibarqy/football-portal/internal/platform/logging"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxClientFrame = 4096
)

const (
	actionSubscribe   = "subscribe"
	actionUnsubscribe = "unsubscribe"
)

type clientCommand struct {
	Action  string `json:"action"`
	Channel string `json:"channel"`
}

// client is one WebSocket connection. Frames are queued on send and written
// by a single goroutine.
type client struct {
	id   string
	conn *websocket.Conn
	hub  *Hub
	send chan []byte

	closeOnce sync.Once
	done      chan struct{}
	logger    *logging.Logger
}

func newClient(id string, conn *websocket.Conn, hub *Hub, buffer int, logger *logging.Logger) *client {
	if buffer <= 0 {
		buffer = 64
	}
	return &client{
		id:     id,
		conn:   conn,
		hub:    hub,
		send:   make(chan []byte, buffer),
		done:   make(chan struct{}),
		logger: logger,
	}
}

func (c *client) ID() string {
	return c.id
}

func (c *client) Send(frame []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- frame:
		return true
	default:
		c.close()
		return false
	}
}

func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// serve blocks until the connection ends.
func (c *client) serve() {
	defer func() {
		c.hub.UnsubscribeAll(c)
		c.close()
		_ = c.conn.Close()
	}()

	go c.writeLoop()
	c.readLoop()
}

func (c *client) readLoop() {
	c.conn.SetReadLimit(maxClientFrame)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("websocket read failed", "subscriber_id", c.id, "error", err)
			}
			return
		}

		var cmd clientCommand
		if err := sonic.Unmarshal(raw, &cmd); err != nil {
			c.reply("", "error", "malformed command")
			continue
		}
		c.handle(cmd)
	}
}

func (c *client) handle(cmd clientCommand) {
	switch cmd.Action {
	case actionSubscribe:
		if err := c.hub.Subscribe(cmd.Channel, c); err != nil {
			c.reply(cmd.Channel, "error", err.Error())
			return
		}
		c.reply(cmd.Channel, "subscribed", nil)
	case actionUnsubscribe:
		c.hub.Unsubscribe(cmd.Channel, c)
		c.reply(cmd.Channel, "unsubscribed", nil)
	default:
		c.reply(cmd.Channel, "error", "unknown action")
	}
}

func (c *client) reply(channel, event string, data any) {
	msg := Message{Channel: channel, Event: event}
	if data != nil {
		raw, err := sonic.Marshal(data)
		if err == nil {
			msg.Data = raw
		}
	}
	frame, err := EncodeFrame(msg)
	if err != nil {
		return
	}
	c.Send(frame)
}

func (c *client) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case frame := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				c.close()
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.close()
				return
			}
		}
	}
}
