package ws

import (
	"HayatAdmin/internal/screen"
	"context"
	"encoding/json"
	"log/slog"
	"sync"
)

const (
	EventScreenChanged = "screen_changed"
	EventScreenError   = "screen_error"
)

// ClientMessageHandler handles requests sent by connected admin pages.
type ClientMessageHandler interface {
	HandleRefresh(ctx context.Context, resource string) error
}

// Event is pushed to every connected admin page.
type Event struct {
	Type string      `json:"type"` // "screen_changed", "screen_error"
	Data interface{} `json:"data"`
}

// Hub maintains the set of active WebSocket clients and broadcasts events.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan *Event
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
	handler    ClientMessageHandler
	log        *slog.Logger
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan *Event, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		log:        log,
	}
}

func (h *Hub) SetHandler(handler ClientMessageHandler) {
	h.handler = handler
}

// Run starts the hub's event loop until ctx is done. Should be called in a goroutine.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			data, err := json.Marshal(event)
			if err != nil {
				continue
			}
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// BroadcastScreenEvent tells every page that a screen's data changed.
func (h *Hub) BroadcastScreenEvent(ev screen.Event) {
	h.broadcast <- &Event{
		Type: EventScreenChanged,
		Data: ev,
	}
}

// BroadcastError reports a failed screen operation to every page.
func (h *Hub) BroadcastError(resource, message string) {
	h.broadcast <- &Event{
		Type: EventScreenError,
		Data: map[string]string{
			"resource": resource,
			"message":  message,
		},
	}
}

// clientEvent represents an incoming WebSocket message from an admin page.
type clientEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// HandleClientMessage parses and dispatches an incoming message from a client.
func (h *Hub) HandleClientMessage(raw []byte) {
	if h.handler == nil {
		return
	}

	var event clientEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		if h.log != nil {
			h.log.Warn("failed to parse client ws message", slog.String("error", err.Error()))
		}
		return
	}

	switch event.Type {
	case "refresh":
		var data struct {
			Resource string `json:"resource"`
		}
		if err := json.Unmarshal(event.Data, &data); err != nil {
			if h.log != nil {
				h.log.Warn("failed to parse refresh data", slog.String("error", err.Error()))
			}
			return
		}
		if data.Resource == "" {
			return
		}
		if err := h.handler.HandleRefresh(context.Background(), data.Resource); err != nil {
			if h.log != nil {
				h.log.Error("failed to handle refresh",
					slog.String("resource", data.Resource),
					slog.String("error", err.Error()),
				)
			}
			h.BroadcastError(data.Resource, err.Error())
		}
	}
}
