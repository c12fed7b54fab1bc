package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/morningstarxcdcode/dgc-platform/internal/observability"
	"github.com/morningstarxcdcode/dgc-platform/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Cross-origin dashboards connect directly; the CORS middleware does
	// not apply to upgraded connections.
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (h *Handler) upgrade(c *gin.Context) (*ws.Client, bool) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.WithError(err).Warn("websocket upgrade failed")
		return nil, false
	}
	return ws.NewClient(conn), true
}

// track registers a client and returns its teardown.
func (h *Handler) track(connType, address string, client *ws.Client) func() {
	h.hub.Register(connType, address, client)
	observability.WSConnections.WithLabelValues(connType).Inc()

	return func() {
		h.hub.Unregister(connType, address, client)
		observability.WSConnections.WithLabelValues(connType).Dec()
		client.Close()
	}
}

// WalletWS streams wallet updates. Every inbound frame is answered with a
// connection_status ack so clients can probe liveness.
func (h *Handler) WalletWS(c *gin.Context) {
	address := c.Param("address")

	client, ok := h.upgrade(c)
	if !ok {
		return
	}

	defer h.track(ws.TypeWallet, address, client)()

	for {
		if _, _, err := client.ReadMessage(); err != nil {
			return
		}

		_ = client.WriteJSON(map[string]any{
			"type":      "connection_status",
			"status":    "connected",
			"address":   address,
			"timestamp": time.Now().Unix(),
		})
	}
}

// AgentsWS streams agent execution progress and answers ping frames.
func (h *Handler) AgentsWS(c *gin.Context) {
	client, ok := h.upgrade(c)
	if !ok {
		return
	}

	defer h.track(ws.TypeAgents, "", client)()

	for {
		_, raw, err := client.ReadMessage()
		if err != nil {
			return
		}

		var message struct {
			Type string `json:"type"`
		}
		if json.Unmarshal(raw, &message) == nil && message.Type == "ping" {
			_ = client.WriteJSON(map[string]any{
				"type":      "pong",
				"timestamp": time.Now().Unix(),
			})
		}
	}
}

// SearchWS acknowledges search clients; trending pushes ride the hub.
func (h *Handler) SearchWS(c *gin.Context) {
	client, ok := h.upgrade(c)
	if !ok {
		return
	}

	defer h.track(ws.TypeSearch, "", client)()

	for {
		if _, _, err := client.ReadMessage(); err != nil {
			return
		}

		_ = client.WriteJSON(map[string]any{
			"type":      "search_status",
			"status":    "connected",
			"timestamp": time.Now().Unix(),
		})
	}
}
