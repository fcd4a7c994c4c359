package events

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
)

// WebSocketHandler streams hub events to dashboard clients.
type WebSocketHandler struct {
	hub   *Hub
	isDev bool
}

// NewWebSocketHandler creates a handler bound to the given hub.
func NewWebSocketHandler(hub *Hub, isDev bool) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, isDev: isDev}
}

// ServeHTTP implements http.Handler for WebSocket upgrade.
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	opts := &websocket.AcceptOptions{}
	if h.isDev {
		// Vite dev server runs on a different origin.
		opts.OriginPatterns = []string{"*"}
	}

	ws, err := websocket.Accept(w, r, opts)
	if err != nil {
		slog.Error("Failed to accept WebSocket", "error", err, "ip", r.RemoteAddr)
		return
	}
	defer func() {
		if closeErr := ws.Close(websocket.StatusNormalClosure, "stream ended"); closeErr != nil {
			slog.Debug("Failed to close websocket", "error", closeErr)
		}
	}()

	// The client never sends application messages; CloseRead surfaces
	// disconnects through ctx.
	ctx := ws.CloseRead(r.Context())

	ch, cancel := h.hub.Subscribe()
	defer cancel()

	slog.Info("Event stream connected", "ip", r.RemoteAddr)

	for {
		select {
		case <-ctx.Done():
			return
		case evt := <-ch:
			payload, err := json.Marshal(evt)
			if err != nil {
				slog.Error("Failed to marshal event", "error", err)
				continue
			}
			if err := ws.Write(ctx, websocket.MessageText, payload); err != nil {
				slog.Debug("Event stream write failed", "error", err)
				return
			}
		}
	}
}

var _ http.Handler = (*WebSocketHandler)(nil)
