// Package hub fans events out to websocket clients. Session pumps and
// search runs hand it structured events; it serializes them once and
// broadcasts, dropping messages for clients that cannot keep up rather
// than blocking the producers.
package hub

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"nhooyr.io/websocket"

	"github.com/user/fileterm/internal/search"
)

const defaultCoalesceInterval = 50 * time.Millisecond

// Callbacks are invoked for client-originated terminal traffic.
type Callbacks struct {
	OnInput  func(sessionID, data string)
	OnResize func(sessionID string, rows, cols uint16)
}

// Hub owns the set of connected clients and the broadcast path.
type Hub struct {
	token     string
	callbacks Callbacks

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	mu      sync.RWMutex
	clients map[string]*Client

	limiter *outputLimiter

	ctxMu sync.RWMutex
	ctx   context.Context
}

// New creates a Hub authenticating websocket upgrades with token.
func New(token string, callbacks Callbacks) *Hub {
	h := &Hub{
		token:      token,
		callbacks:  callbacks,
		register:   make(chan *Client, 16),
		unregister: make(chan *Client, 16),
		broadcast:  make(chan []byte, 256),
		clients:    make(map[string]*Client),
		ctx:        context.Background(),
	}
	h.limiter = newOutputLimiter(defaultCoalesceInterval, func(sessionID, data string) {
		h.send(OutputMessage{Type: "output", SessionID: sessionID, Data: data})
	})
	return h
}

func (h *Hub) context() context.Context {
	h.ctxMu.RLock()
	defer h.ctxMu.RUnlock()
	return h.ctx
}

// Run processes client registration and broadcast traffic until ctx is
// cancelled, then disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	h.ctxMu.Lock()
	h.ctx = ctx
	h.ctxMu.Unlock()

	for {
		select {
		case <-ctx.Done():
			h.limiter.FlushAll()
			h.mu.Lock()
			for _, c := range h.clients {
				close(c.send)
			}
			h.clients = make(map[string]*Client)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.id] = client
			h.mu.Unlock()
			go client.writePump(h.context())
			go client.readPump(h.context())
			slog.Info("client connected", "client", client.id, "total", h.ClientCount())

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.id]; ok {
				delete(h.clients, client.id)
				close(client.send)
			}
			h.mu.Unlock()
			slog.Info("client disconnected", "client", client.id, "total", h.ClientCount())

		case data := <-h.broadcast:
			h.mu.RLock()
			for _, c := range h.clients {
				select {
				case c.send <- data:
				default:
					slog.Warn("client send buffer full, dropping message", "client", c.id)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// HandleWebSocket upgrades an authenticated request and registers the
// client with the hub.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" || token != h.token {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		slog.Error("websocket accept failed", "error", err)
		return
	}

	client := newClient(conn, h)
	select {
	case h.register <- client:
	default:
		slog.Warn("hub not accepting connections")
		conn.Close(websocket.StatusTryAgainLater, "server busy")
	}
}

// BroadcastOutput queues session output for delivery. Bursts within the
// coalescing window are joined into a single message.
func (h *Hub) BroadcastOutput(sessionID, data string) {
	h.limiter.Add(sessionID, data)
}

// BroadcastExit tells clients the session's shell is gone. Any coalesced
// output for the session is flushed first so ordering is preserved.
func (h *Hub) BroadcastExit(sessionID string) {
	h.limiter.Flush(sessionID)
	h.send(ExitMessage{Type: "exit", SessionID: sessionID})
}

// SearchSink returns a sink that forwards search events to every client.
func (h *Hub) SearchSink() search.Sink {
	return search.SinkFunc(func(ev search.Event) error {
		switch ev.Kind {
		case search.KindStarted:
			h.send(SearchStartedMessage{Type: "searchStarted", SearchID: ev.SearchID, Query: ev.Query})
		case search.KindResult:
			h.send(SearchResultMessage{
				Type:     "searchResult",
				SearchID: ev.SearchID,
				Path:     ev.Match.Path,
				Name:     ev.Match.Name,
				IsFile:   ev.Match.IsFile,
				Size:     ev.Match.Size,
				Modified: ev.Match.Modified,
			})
		case search.KindFinished:
			h.send(SearchFinishedMessage{
				Type:         "searchFinished",
				SearchID:     ev.SearchID,
				TotalMatches: ev.Total,
				HasMore:      ev.HasMore,
			})
		}
		return nil
	})
}

func (h *Hub) send(msg any) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("marshal broadcast message failed", "error", err)
		return
	}
	select {
	case h.broadcast <- data:
	default:
		slog.Warn("broadcast channel full, dropping message")
	}
}

// SendError reports a protocol error to one client.
func (h *Hub) SendError(client *Client, message string) {
	data, err := json.Marshal(ErrorMessage{Type: "error", Message: message})
	if err != nil {
		return
	}
	select {
	case client.send <- data:
	default:
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) handleInput(sessionID, data string) {
	if h.callbacks.OnInput != nil {
		h.callbacks.OnInput(sessionID, data)
	}
}

func (h *Hub) handleResize(sessionID string, rows, cols uint16) {
	if h.callbacks.OnResize != nil {
		h.callbacks.OnResize(sessionID, rows, cols)
	}
}

func (h *Hub) unregisterClient(c *Client) {
	select {
	case h.unregister <- c:
	default:
	}
}
