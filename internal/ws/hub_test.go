package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// dialClient connects a real websocket pair and registers the server side
// in the hub. The returned conn is the client side.
func dialClient(t *testing.T, hub *Hub, connType, address string) *websocket.Conn {
	t.Helper()

	registered := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.Register(connType, address, NewClient(conn))
		close(registered)
	}))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	<-registered
	return conn
}

func TestHubCounts(t *testing.T) {
	hub := NewHub()
	dialClient(t, hub, TypeWallet, "0xAbC")
	dialClient(t, hub, TypeAgents, "")

	counts := hub.Counts()
	assert.Equal(t, 1, counts.Wallet)
	assert.Equal(t, 1, counts.Agents)
	assert.Equal(t, 0, counts.Search)
	assert.Equal(t, 2, counts.Total)
}

func TestBroadcastToType(t *testing.T) {
	hub := NewHub()
	conn := dialClient(t, hub, TypeWallet, "")

	hub.BroadcastToType(TypeWallet, map[string]string{"type": "gas_update"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var frame map[string]string
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, "gas_update", frame["type"])
}

func TestBroadcastToWallet_CaseInsensitive(t *testing.T) {
	hub := NewHub()
	conn := dialClient(t, hub, TypeWallet, "0xAbCd")

	hub.BroadcastToWallet("0XABCD", map[string]string{"type": "balance_update"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var frame map[string]string
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, "balance_update", frame["type"])
}

func TestUnregisterClearsWalletSubscription(t *testing.T) {
	hub := NewHub()

	registered := make(chan *Client, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		client := NewClient(conn)
		hub.Register(TypeWallet, "0xdef", client)
		registered <- client
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	client := <-registered
	hub.Unregister(TypeWallet, "0xdef", client)

	assert.Equal(t, 0, hub.Counts().Total)
	assert.Empty(t, hub.wallets)
}

func TestBroadcasterTick(t *testing.T) {
	hub := NewHub()
	conn := dialClient(t, hub, TypeWallet, "")

	b := NewBroadcaster(hub, time.Minute)
	b.now = func() int64 { return 100 }
	b.Tick()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var gas map[string]any
	require.NoError(t, conn.ReadJSON(&gas))
	assert.Equal(t, "gas_update", gas["type"])
	prices := gas["gas_price"].(map[string]any)
	assert.Equal(t, float64(20), prices["slow"])
	assert.Equal(t, float64(45), prices["standard"])
	assert.Equal(t, float64(50), prices["fast"])
	assert.Equal(t, float64(70), prices["instant"])
	assert.Equal(t, float64(100), gas["timestamp"])

	var market map[string]any
	require.NoError(t, conn.ReadJSON(&market))
	assert.Equal(t, "market_update", market["type"])
	assert.Equal(t, float64(2000), market["eth_price"])
}
