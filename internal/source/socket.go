package source

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/mkove/routegen/internal/diag"
	"github.com/mkove/routegen/internal/routes"
)

// Event names on the live-update channel.
const (
	EventRoutesUpdate = "routes:update"
	EventGenerated    = "routes:generated"
)

type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Hub is the WebSocket end of the live-update channel: a connected dev
// client pushes routes:update messages carrying the current route table,
// and the hub delivers each table to the subscribed handler. The payload is
// untrusted; decoding failures drop the message, not the connection.
type Hub struct {
	reporter *diag.Reporter
	handler  Handler
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*websocket.Conn]bool
}

// NewHub creates an unstarted hub.
func NewHub(reporter *diag.Reporter) *Hub {
	return &Hub{
		reporter: reporter,
		clients:  make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // local dev tool
			},
		},
	}
}

func (h *Hub) Subscribe(handler Handler) {
	h.handler = handler
}

// Start blocks until ctx is done, then closes every client connection. The
// actual work happens on the HTTP handler goroutines.
func (h *Hub) Start(ctx context.Context) error {
	<-ctx.Done()
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.Close()
		delete(h.clients, conn)
	}
	return nil
}

// HandleWebSocket upgrades the request and reads messages until the client
// disconnects.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()
	h.reporter.Debugf("dev client connected (%d total)", h.ClientCount())

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		h.handleMessage(data)
	}

	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
	h.reporter.Debugf("dev client disconnected (%d total)", h.ClientCount())
}

func (h *Hub) handleMessage(data []byte) {
	var msg envelope
	if err := json.Unmarshal(data, &msg); err != nil {
		h.reporter.Warnf("discarding malformed live-update message: %v", err)
		return
	}
	if msg.Event != EventRoutesUpdate {
		return
	}
	table, err := routes.DecodeJSON(msg.Data)
	if err != nil {
		h.reporter.Warnf("discarding routes:update with malformed payload: %v", err)
		return
	}
	if h.handler != nil {
		h.handler(table)
	}
}

// NotifyGenerated tells connected clients that a new declaration file was
// written.
func (h *Hub) NotifyGenerated() {
	data, err := json.Marshal(envelope{Event: EventGenerated})
	if err != nil {
		return
	}

	h.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		clients = append(clients, conn)
	}
	h.mu.RUnlock()

	for _, conn := range clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.mu.Lock()
			delete(h.clients, conn)
			h.mu.Unlock()
			conn.Close()
		}
	}
}

// ClientCount returns the number of connected dev clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
