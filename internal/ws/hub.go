package ws

import (
	"strings"
	"sync"

	"github.com/gorilla/websocket"
)

const (
	TypeWallet = "wallet"
	TypeAgents = "agents"
	TypeSearch = "search"
)

// Client wraps a websocket connection with a write lock, since gorilla
// allows at most one concurrent writer per connection.
type Client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func NewClient(conn *websocket.Conn) *Client {
	return &Client{conn: conn}
}

func (c *Client) WriteJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

func (c *Client) ReadMessage() (int, []byte, error) {
	return c.conn.ReadMessage()
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// Hub tracks live websocket clients by connection type, plus per-wallet
// subscriptions keyed by lowercase address.
type Hub struct {
	mu      sync.Mutex
	byType  map[string]map[*Client]bool
	wallets map[string]map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{
		byType:  make(map[string]map[*Client]bool),
		wallets: make(map[string]map[*Client]bool),
	}
}

// Register adds a client under a connection type. A non-empty address also
// subscribes the client to that wallet's updates.
func (h *Hub) Register(connType, address string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.byType[connType] == nil {
		h.byType[connType] = make(map[*Client]bool)
	}
	h.byType[connType][c] = true

	if address != "" {
		key := strings.ToLower(address)
		if h.wallets[key] == nil {
			h.wallets[key] = make(map[*Client]bool)
		}
		h.wallets[key][c] = true
	}
}

func (h *Hub) Unregister(connType, address string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.byType[connType], c)

	if address != "" {
		key := strings.ToLower(address)
		delete(h.wallets[key], c)
		if len(h.wallets[key]) == 0 {
			delete(h.wallets, key)
		}
	}
}

// BroadcastToType sends a payload to every client of a connection type and
// drops clients whose write failed.
func (h *Hub) BroadcastToType(connType string, payload any) {
	h.broadcast(h.snapshotType(connType), connType, payload)
}

// BroadcastToWallet sends a payload to every subscriber of a wallet address.
func (h *Hub) BroadcastToWallet(address string, payload any) {
	key := strings.ToLower(address)
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.wallets[key]))
	for c := range h.wallets[key] {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		if err := c.WriteJSON(payload); err != nil {
			h.mu.Lock()
			delete(h.wallets[key], c)
			if len(h.wallets[key]) == 0 {
				delete(h.wallets, key)
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) snapshotType(connType string) []*Client {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients := make([]*Client, 0, len(h.byType[connType]))
	for c := range h.byType[connType] {
		clients = append(clients, c)
	}
	return clients
}

func (h *Hub) broadcast(clients []*Client, connType string, payload any) {
	for _, c := range clients {
		if err := c.WriteJSON(payload); err != nil {
			h.mu.Lock()
			delete(h.byType[connType], c)
			h.mu.Unlock()
		}
	}
}

// ConnectionCounts is the live connection breakdown for the status endpoint.
type ConnectionCounts struct {
	Wallet int `json:"wallet_connections"`
	Agents int `json:"agent_connections"`
	Search int `json:"search_connections"`
	Total  int `json:"total_connections"`
}

func (h *Hub) Counts() ConnectionCounts {
	h.mu.Lock()
	defer h.mu.Unlock()

	var counts ConnectionCounts
	for connType, clients := range h.byType {
		switch connType {
		case TypeWallet:
			counts.Wallet = len(clients)
		case TypeAgents:
			counts.Agents = len(clients)
		case TypeSearch:
			counts.Search = len(clients)
		}
		counts.Total += len(clients)
	}
	return counts
}
