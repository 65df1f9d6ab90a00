package services

import (
	"encoding/json"
	"sync"

	"clubhouse/logger"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Hub fans change notifications out to connected clients. This is a
// notify-and-refetch channel: messages tell clients what changed so they
// can re-fetch; they carry no authoritative state and no ordering
// guarantee relative to local writes.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
}

type Client struct {
	hub      *Hub
	id       string
	socket   *websocket.Conn
	send     chan []byte
	eventID  string
	memberID uint
	name     string
}

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			logger.Get().WithField("client_id", client.id).
				WithField("event", client.eventID).
				Debug("websocket client registered")

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mutex.Unlock()

		case message := <-h.broadcast:
			// Eviction of slow clients mutates the map, so this needs
			// the write lock.
			h.mutex.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// BroadcastToEvent sends a typed message to every client watching one
// event.
func (h *Hub) BroadcastToEvent(eventID string, messageType string, payload interface{}) {
	data, err := json.Marshal(Message{Type: messageType, Payload: payload})
	if err != nil {
		logger.Get().WithError(err).Error("failed to marshal broadcast message")
		return
	}

	// The write lock, not RLock: a slow client is evicted inline, which
	// deletes from the map and closes its channel. Evicted clients are
	// gone before any concurrent broadcast can reach them again.
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for client := range h.clients {
		if client.eventID != eventID {
			continue
		}
		select {
		case client.send <- data:
		default:
			close(client.send)
			delete(h.clients, client)
		}
	}
}

// ConnectedMembers lists the member ids currently watching an event.
func (h *Hub) ConnectedMembers(eventID string) []uint {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	var ids []uint
	for client := range h.clients {
		if client.eventID == eventID {
			ids = append(ids, client.memberID)
		}
	}
	return ids
}

func (h *Hub) RegisterClient(conn *websocket.Conn, eventID string, memberID uint, name string) *Client {
	client := &Client{
		hub:      h,
		id:       uuid.NewString(),
		socket:   conn,
		send:     make(chan []byte, 256),
		eventID:  eventID,
		memberID: memberID,
		name:     name,
	}

	h.register <- client

	go client.writePump()
	go client.readPump()

	return client
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.socket.Close()
	}()

	for {
		_, message, err := c.socket.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Get().WithError(err).Debug("websocket read error")
			}
			break
		}

		var msg Message
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		c.handleMessage(msg)
	}
}

func (c *Client) writePump() {
	defer c.socket.Close()

	for message := range c.send {
		w, err := c.socket.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		w.Write(message)
		if err := w.Close(); err != nil {
			return
		}
	}
	c.socket.WriteMessage(websocket.CloseMessage, []byte{})
}

func (c *Client) handleMessage(msg Message) {
	switch msg.Type {
	case "ping":
		data, _ := json.Marshal(Message{Type: "pong", Payload: "pong"})
		c.send <- data
	default:
		logger.Get().WithField("type", msg.Type).Debug("unknown websocket message")
	}
}
