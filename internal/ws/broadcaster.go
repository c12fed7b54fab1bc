package ws

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

// Broadcaster pushes periodic gas and market updates to wallet clients.
// Values follow the same simulated curves as the gas price endpoint so the
// dashboard sees consistent numbers between polls and pushes.
type Broadcaster struct {
	hub      *Hub
	interval time.Duration

	now func() int64
}

func NewBroadcaster(hub *Hub, interval time.Duration) *Broadcaster {
	return &Broadcaster{
		hub:      hub,
		interval: interval,
		now:      func() int64 { return time.Now().Unix() },
	}
}

func (b *Broadcaster) Run(ctx context.Context) {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	log.WithField("interval", b.interval).Info("realtime broadcaster started")
	for {
		select {
		case <-ctx.Done():
			log.Info("realtime broadcaster stopped")
			return
		case <-ticker.C:
			b.Tick()
		}
	}
}

// Tick emits one gas_update and one market_update frame.
func (b *Broadcaster) Tick() {
	now := b.now()

	b.hub.BroadcastToType(TypeWallet, map[string]any{
		"type": "gas_update",
		"gas_price": map[string]int64{
			"slow":     20 + now%10,
			"standard": 35 + now%15,
			"fast":     50 + now%20,
			"instant":  70 + now%25,
		},
		"timestamp": now,
	})

	b.hub.BroadcastToType(TypeWallet, map[string]any{
		"type":      "market_update",
		"eth_price": float64(2000 + now%100),
		"timestamp": now,
	})
}
