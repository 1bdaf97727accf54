package monitor

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// DecodeEvent is one JSON message pushed to every connected /ws client:
// a deframed chunk, a whole KISS data frame, or a DCD (carrier/rx-sync)
// transition.
type DecodeEvent struct {
	Time    time.Time `json:"time"`
	Kind    string    `json:"kind"` // "byte", "frame", or "dcd"
	Byte    byte      `json:"byte,omitempty"`
	Carrier bool      `json:"carrier,omitempty"`
}

// Feed fans DecodeEvents out to every connected WebSocket client, the
// browser-facing equivalent of the teacher's interactive terminal monitor.
type Feed struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// NewFeed builds an empty Feed ready to accept connections at ServeHTTP.
func NewFeed() *Feed {
	return &Feed{
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		clients:  make(map[*websocket.Conn]struct{}),
	}
}

// ServeHTTP upgrades the request to a WebSocket and registers it as a feed
// subscriber until it disconnects.
func (f *Feed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	f.mu.Lock()
	f.clients[conn] = struct{}{}
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		delete(f.clients, conn)
		f.mu.Unlock()
		conn.Close()
	}()

	// Drain and discard anything the client sends; this is a push-only feed.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Publish sends ev to every currently connected client, dropping any client
// whose write fails.
func (f *Feed) Publish(ev DecodeEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for conn := range f.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			conn.Close()
			delete(f.clients, conn)
		}
	}
}
