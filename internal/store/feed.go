package store

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/mamba-foods/stall-api/internal/order"
)

// Lister is the slice of Store the feed needs to rebuild snapshots.
type Lister interface {
	ListOrders(ctx context.Context) ([]order.Order, error)
}

// Feed is the realtime side of the order store. All-orders subscribers
// receive the full current set, newest first, on every mutation (no deltas);
// single-order subscribers receive the touched order. Subscriptions are
// cancelled by calling the returned function, which is safe to call more
// than once and after the owning view is gone.
type Feed struct {
	store Lister

	mu       sync.Mutex
	nextID   int
	all      map[int]chan []order.Order
	byOrder  map[uuid.UUID]map[int]chan order.Order
}

// NewFeed creates a Feed that rebuilds snapshots from the given store.
func NewFeed(store Lister) *Feed {
	return &Feed{
		store:   store,
		all:     make(map[int]chan []order.Order),
		byOrder: make(map[uuid.UUID]map[int]chan order.Order),
	}
}

// SubscribeAll registers for full-collection snapshots. The channel is
// buffered; a subscriber that falls behind misses intermediate snapshots
// and catches up on the next one, which is safe because every delivery is
// the complete current set.
func (f *Feed) SubscribeAll() (<-chan []order.Order, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.nextID
	f.nextID++
	ch := make(chan []order.Order, 4)
	f.all[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			delete(f.all, id)
			close(ch)
		})
	}
	return ch, cancel
}

// SubscribeOrder registers for updates to a single order.
func (f *Feed) SubscribeOrder(orderID uuid.UUID) (<-chan order.Order, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.nextID
	f.nextID++
	ch := make(chan order.Order, 4)
	if f.byOrder[orderID] == nil {
		f.byOrder[orderID] = make(map[int]chan order.Order)
	}
	f.byOrder[orderID][id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			delete(f.byOrder[orderID], id)
			if len(f.byOrder[orderID]) == 0 {
				delete(f.byOrder, orderID)
			}
			close(ch)
		})
	}
	return ch, cancel
}

// Notify fans a mutation out to subscribers: the touched order to its
// watchers and a freshly listed snapshot to all-orders watchers. Mutations
// must already be durable before Notify is called.
func (f *Feed) Notify(ctx context.Context, touched order.Order) {
	snapshot, err := f.store.ListOrders(ctx)
	if err != nil {
		log.Printf("ERROR: feed snapshot: %v", err)
		snapshot = nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if snapshot != nil {
		for _, ch := range f.all {
			select {
			case ch <- snapshot:
			default:
			}
		}
	}

	for _, ch := range f.byOrder[touched.ID] {
		select {
		case ch <- touched:
		default:
		}
	}
}
