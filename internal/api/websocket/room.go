package websocket

import (
	"sync"

	"github.com/rs/zerolog"
)

// Room groups the clients attached to one editor session
type Room struct {
	SessionID string
	clients   map[*Client]bool
	mu        sync.RWMutex
	logger    zerolog.Logger
}

func NewRoom(sessionID string, logger zerolog.Logger) *Room {
	return &Room{
		SessionID: sessionID,
		clients:   make(map[*Client]bool),
		logger:    logger,
	}
}

func (r *Room) AddClient(client *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.clients[client] = true
	r.logger.Info().Str("clientId", client.ID).Str("sessionId", r.SessionID).Msg("Client joined session")
}

func (r *Room) RemoveClient(client *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.clients[client]; !exists {
		return
	}
	delete(r.clients, client)
	close(client.Send)
	r.logger.Info().Str("clientId", client.ID).Str("sessionId", r.SessionID).Msg("Client left session")
}

func (r *Room) Broadcast(message Message) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for client := range r.clients {
		select {
		case client.Send <- message:
		default:
			r.logger.Warn().Str("clientId", client.ID).Msg("Client send buffer full, dropping message")
		}
	}
}

func (r *Room) Empty() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients) == 0
}
