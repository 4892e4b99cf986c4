package websocket

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 64 * 1024 // 64KB
)

type Client struct {
	ID        string
	SessionID string
	Hub       *Hub
	Conn      *websocket.Conn
	Send      chan Message
	Logger    zerolog.Logger
}

func NewClient(id string, sessionID string, hub *Hub, conn *websocket.Conn, logger zerolog.Logger) *Client {
	return &Client{
		ID:        id,
		SessionID: sessionID,
		Hub:       hub,
		Conn:      conn,
		Send:      make(chan Message, 256),
		Logger:    logger,
	}
}

// ReadPump reads inbound messages from the editor. The only inbound payload
// is the answer to a confirmation dialog; anything else is rejected.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, messageBytes, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Logger.Error().Err(err).Str("clientId", c.ID).Msg("WebSocket read error")
			}
			break
		}

		var msg Message
		if err = json.Unmarshal(messageBytes, &msg); err != nil {
			c.Logger.Error().Err(err).Str("clientId", c.ID).Msg("Failed to unmarshal message")
			c.sendError("Invalid message format")
			continue
		}

		switch msg.Type {
		case MessageTypeConfirmResponse:
			c.handleConfirmResponse(msg)
		default:
			c.sendError("Unsupported message type")
		}
	}
}

func (c *Client) handleConfirmResponse(msg Message) {
	raw, err := json.Marshal(msg.Data)
	if err != nil {
		c.sendError("Invalid confirmation payload")
		return
	}
	var response ConfirmResponse
	if err := json.Unmarshal(raw, &response); err != nil || response.ID == "" {
		c.sendError("Invalid confirmation payload")
		return
	}
	c.Hub.ResolveConfirm(response.ID, response.Confirmed)
}

// WritePump pushes queued messages to the editor and keeps the connection
// alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				c.Logger.Error().Err(err).Str("clientId", c.ID).Msg("WebSocket write error")
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) sendError(text string) {
	select {
	case c.Send <- NewErrorMessage(c.SessionID, text):
	default:
	}
}
