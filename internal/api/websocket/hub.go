package websocket

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Hub maintains the set of active editor sessions and routes messages to the
// clients attached to them
type Hub struct {
	// Rooms indexed by editor session ID
	Rooms map[string]*Room

	// Register requests from clients
	Register chan *Client

	// Unregister requests from clients
	Unregister chan *Client

	// Broadcast messages to clients in a specific session room
	Broadcast chan Message

	// Pending confirmation dialogs, keyed by request ID
	confirms map[string]chan bool

	mu sync.RWMutex

	Logger zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		Rooms:      make(map[string]*Room),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan Message, 256),
		confirms:   make(map[string]chan bool),
		Logger:     logger,
	}
}

// Run starts the hub's main event loop
func (h *Hub) Run() {
	// Cleanup ticker for removing empty rooms
	cleanupTicker := time.NewTicker(5 * time.Minute)
	defer cleanupTicker.Stop()

	for {
		select {
		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.Unregister:
			h.unregisterClient(client)

		case message := <-h.Broadcast:
			h.broadcastMessage(message)

		case <-cleanupTicker.C:
			h.cleanupEmptyRooms()
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, exists := h.Rooms[client.SessionID]
	if !exists {
		room = NewRoom(client.SessionID, h.Logger)
		h.Rooms[client.SessionID] = room
		h.Logger.Info().Str("sessionId", client.SessionID).Msg("Created new session room")
	}

	room.AddClient(client)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, exists := h.Rooms[client.SessionID]
	if !exists {
		return
	}
	room.RemoveClient(client)
}

func (h *Hub) broadcastMessage(message Message) {
	h.mu.RLock()
	room, exists := h.Rooms[message.SessionID]
	h.mu.RUnlock()

	if !exists {
		h.Logger.Debug().Str("sessionId", message.SessionID).Msg("Dropping message for session with no clients")
		return
	}
	room.Broadcast(message)
}

func (h *Hub) cleanupEmptyRooms() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sessionID, room := range h.Rooms {
		if room.Empty() {
			delete(h.Rooms, sessionID)
			h.Logger.Info().Str("sessionId", sessionID).Msg("Removed empty session room")
		}
	}
}

// Send queues a message for the session's clients without blocking the caller
func (h *Hub) Send(message Message) {
	select {
	case h.Broadcast <- message:
	default:
		h.Logger.Warn().Str("sessionId", message.SessionID).Msg("Broadcast channel full, dropping message")
	}
}

// RegisterConfirm installs a reply channel for a confirmation dialog
func (h *Hub) RegisterConfirm(id string) chan bool {
	reply := make(chan bool, 1)
	h.mu.Lock()
	h.confirms[id] = reply
	h.mu.Unlock()
	return reply
}

// CancelConfirm removes a pending confirmation without answering it
func (h *Hub) CancelConfirm(id string) {
	h.mu.Lock()
	delete(h.confirms, id)
	h.mu.Unlock()
}

// ResolveConfirm delivers the user's answer to whoever is waiting on it
func (h *Hub) ResolveConfirm(id string, confirmed bool) {
	h.mu.Lock()
	reply, exists := h.confirms[id]
	delete(h.confirms, id)
	h.mu.Unlock()

	if exists {
		reply <- confirmed
	}
}

// ActiveSessions returns the number of rooms currently held by the hub
func (h *Hub) ActiveSessions() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.Rooms)
}
