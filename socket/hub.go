package socket

import (
	"encoding/json"
	"sync"

	"notesapp/pkg/logger"
)

const (
	NoteCreatedType  = "NOTE_CREATED"
	NoteUpdatedType  = "NOTE_UPDATED"
	NoteDeletedType  = "NOTE_DELETED"
	NoteCategoryType = "NOTE_CATEGORY" // a category was assigned to a note
)

// Event is a note change pushed to every connected client. Payload
// carries the affected record as the API would serialize it.
type Event struct {
	Type    string          `json:"type"`
	NoteID  int64           `json:"note_id"`
	UserID  string          `json:"user_id"`
	Payload json.RawMessage `json:"payload"`
}

// Hub fans note change events out to all connected clients. It is a
// one-way feed: clients never write state back through it.
type Hub struct {
	clients    map[*Client]bool
	Broadcast  chan Event
	Register   chan *Client
	Unregister chan *Client
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		Broadcast:  make(chan Event, 16),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			logger.Sugar.Infof("Client %s connected to the note feed", client.UserID)

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()

		case event := <-h.Broadcast:
			payload, err := json.Marshal(event)
			if err != nil {
				logger.Sugar.Errorf("Error marshalling event: %v", err)
				continue
			}

			// Snapshot the recipients so the lock is not held during sends.
			h.mu.Lock()
			clientsToSend := make([]*Client, 0, len(h.clients))
			for client := range h.clients {
				clientsToSend = append(clientsToSend, client)
			}
			h.mu.Unlock()

			for _, client := range clientsToSend {
				select {
				case client.Send <- payload:
				default:
					// The send buffer is full, the client is lagging.
					// Drop it rather than block the hub.
					logger.Sugar.Warnf("Client %s's send buffer is full. Dropping client.", client.UserID)
					h.drop(client)
				}
			}
		}
	}
}

// drop removes a client outside the Unregister channel; sending to
// Unregister from inside Run would block Run on itself.
func (h *Hub) drop(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.Send)
	}
}

// Publish queues a note event without blocking the caller. Events to a
// saturated hub are dropped; the feed is advisory, the database is the
// source of truth.
func (h *Hub) Publish(eventType string, noteID int64, userID string, payload interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		logger.Sugar.Errorf("Error marshalling event payload: %v", err)
		return
	}
	select {
	case h.Broadcast <- Event{Type: eventType, NoteID: noteID, UserID: userID, Payload: raw}:
	default:
		logger.Sugar.Warn("Event feed is saturated, dropping event")
	}
}
