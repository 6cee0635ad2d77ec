package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/hard-gainer/buurtstemming/internal/hub"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleWebSocket streams live results to a viewer
func (h *HTTPHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if h.viewers == nil {
		errorResponse(w, http.StatusServiceUnavailable, "live results are not enabled")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("WebSocket upgrade failed", "error", err)
		return
	}

	// the hub sends the latest results as the first frame, so no vote falls
	// between the snapshot and the subscription
	client := hub.NewWebsocketClient(conn)
	h.viewers.Register(client)
	defer h.viewers.Unregister(client)

	// viewers never send anything, reading only detects the disconnect
	for {
		if _, _, err := client.ReadMessage(); err != nil {
			return
		}
	}
}
