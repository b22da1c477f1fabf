package gesture

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const writeWait = time.Second

// Hub relays binary gesture frames to every connected websocket client.
type Hub struct {
	mu       sync.Mutex
	clients  map[*websocket.Conn]string
	upgrader websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]string),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (h *Hub) add(conn *websocket.Conn) string {
	id := "cli_" + uuid.NewString()
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = id
	return id
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
	conn.Close()
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast encodes f once and writes it to all clients, dropping any client
// that cannot keep up.
func (h *Hub) Broadcast(f Frame) {
	payload := MarshalFrame(f)

	h.mu.Lock()
	defer h.mu.Unlock()

	for conn, id := range h.clients {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.BinaryMessage, payload); err != nil {
			log.Printf("relay: dropping %s: %v", id, err)
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// ServeHTTP upgrades the request and keeps the client registered until it
// disconnects. Anything the client sends is discarded.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("relay: websocket upgrade failed: %v", err)
		return
	}
	id := h.add(conn)
	defer h.remove(conn)
	log.Printf("relay: %s connected from %s", id, r.RemoteAddr)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			log.Printf("relay: %s gone: %v", id, err)
			return
		}
	}
}
