package ws

import (
	"context"

	"github.com/mamba-foods/stall-api/internal/store"
)

// Bridge forwards store feed snapshots onto the hub. Each snapshot goes to
// the kitchen room whole, and every order in it goes to that order's room.
// Rooms with no subscribers drop the broadcast, so fanning out per order is
// cheap even when nobody is watching.
type Bridge struct {
	feed *store.Feed
	hub  *Hub
}

// NewBridge creates a Bridge between the given feed and hub.
func NewBridge(feed *store.Feed, hub *Hub) *Bridge {
	return &Bridge{feed: feed, hub: hub}
}

// Run consumes the feed until ctx is cancelled.
// This should be called as a goroutine: go bridge.Run(ctx)
func (b *Bridge) Run(ctx context.Context) {
	snapshots, cancel := b.feed.SubscribeAll()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case orders, ok := <-snapshots:
			if !ok {
				return
			}
			b.hub.Broadcast(TopicKitchen, snapshotEvent(orders))
			for _, o := range orders {
				b.hub.Broadcast(OrderTopic(o.ID.String()), orderEvent(o))
			}
		}
	}
}
