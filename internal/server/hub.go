package server

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/ChemaTorresGarvia/fichas-backend/internal/events"
	"github.com/gorilla/websocket"
)

type wsClient struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans change notifications out to a user's open views over websocket,
// so statistics and streak widgets can refresh after every recorded outcome.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*websocket.Conn]*wsClient // keyed by user
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]map[*websocket.Conn]*wsClient),
	}
}

// Register attaches a connection to a user's feed and starts its pumps
func (h *Hub) Register(userKey string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[userKey]; !ok {
		h.clients[userKey] = make(map[*websocket.Conn]*wsClient)
	}
	client := &wsClient{
		conn: conn,
		send: make(chan []byte, 64),
	}
	h.clients[userKey][conn] = client

	go h.readPump(userKey, conn)
	go h.writePump(client)
}

// Unregister detaches a connection from a user's feed
func (h *Hub) Unregister(userKey string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.clients[userKey]; ok {
		if client, ok := clients[conn]; ok {
			close(client.send)
			delete(clients, conn)
		}
		if len(clients) == 0 {
			delete(h.clients, userKey)
		}
	}
}

// BroadcastUser sends a frame to every open view of one user. Slow clients
// are skipped rather than blocking the writer.
func (h *Hub) BroadcastUser(userKey string, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients[userKey] {
		select {
		case client.send <- data:
		default:
		}
	}
}

// NotifyProgress is subscribed to the progress broker; it pushes a
// progress_updated frame to the user's open views.
func (h *Hub) NotifyProgress(update events.ProgressUpdate) {
	frame := struct {
		Type string `json:"type"`
		events.ProgressUpdate
	}{Type: "progress_updated", ProgressUpdate: update}

	data, err := json.Marshal(frame)
	if err != nil {
		log.Printf("ws: failed to marshal progress frame: %v", err)
		return
	}
	h.BroadcastUser(update.UserKey, data)
}

// SendReminder implements the scheduler's Notifier: it tells a user's open
// views how many cards are still due today.
func (h *Hub) SendReminder(userKey string, dueCount int) error {
	frame := struct {
		Type string `json:"type"`
		Due  int    `json:"due"`
	}{Type: "due_reminder", Due: dueCount}

	data, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	h.BroadcastUser(userKey, data)
	return nil
}

func (h *Hub) readPump(userKey string, conn *websocket.Conn) {
	defer h.Unregister(userKey, conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *Hub) writePump(client *wsClient) {
	defer func() {
		client.conn.WriteMessage(websocket.CloseMessage, []byte{})
		client.conn.Close()
	}()
	for msg := range client.send {
		if err := client.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}
