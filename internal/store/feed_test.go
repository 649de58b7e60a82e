package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mamba-foods/stall-api/internal/order"
)

// fakeLister returns a canned snapshot.
type fakeLister struct {
	orders []order.Order
	err    error
}

func (f *fakeLister) ListOrders(ctx context.Context) ([]order.Order, error) {
	return f.orders, f.err
}

func testOrder(number string) order.Order {
	return order.Order{
		ID:         uuid.New(),
		Number:     number,
		CustomerID: uuid.New(),
		Total:      decimal.NewFromInt(90),
		Status:     order.StatusNew,
		CreatedAt:  time.Now(),
	}
}

func TestFeedDeliversFullSnapshot(t *testing.T) {
	newest := testOrder("#002")
	oldest := testOrder("#001")
	lister := &fakeLister{orders: []order.Order{newest, oldest}}
	feed := NewFeed(lister)

	ch, cancel := feed.SubscribeAll()
	defer cancel()

	feed.Notify(context.Background(), newest)

	select {
	case snap := <-ch:
		if len(snap) != 2 {
			t.Fatalf("got %d orders, want the full set of 2", len(snap))
		}
		if snap[0].Number != "#002" {
			t.Fatalf("got %s first, want newest first", snap[0].Number)
		}
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered")
	}
}

func TestFeedDeliversTouchedOrderToItsSubscribers(t *testing.T) {
	touched := testOrder("#001")
	other := testOrder("#002")
	feed := NewFeed(&fakeLister{orders: []order.Order{other, touched}})

	ch, cancel := feed.SubscribeOrder(touched.ID)
	defer cancel()
	otherCh, otherCancel := feed.SubscribeOrder(other.ID)
	defer otherCancel()

	feed.Notify(context.Background(), touched)

	select {
	case got := <-ch:
		if got.ID != touched.ID {
			t.Fatalf("got order %s, want %s", got.ID, touched.ID)
		}
	case <-time.After(time.Second):
		t.Fatal("no update delivered to the order's subscriber")
	}

	select {
	case <-otherCh:
		t.Fatal("subscriber of a different order received the update")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestFeedCancelStopsDelivery(t *testing.T) {
	o := testOrder("#001")
	feed := NewFeed(&fakeLister{orders: []order.Order{o}})

	ch, cancel := feed.SubscribeAll()
	cancel()
	cancel() // safe to call twice

	feed.Notify(context.Background(), o)

	// The channel was closed on cancel; a receive must not yield a snapshot.
	select {
	case snap, ok := <-ch:
		if ok {
			t.Fatalf("received snapshot %v after cancel", snap)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("channel not closed after cancel")
	}
}

func TestFeedSlowSubscriberDoesNotBlock(t *testing.T) {
	o := testOrder("#001")
	feed := NewFeed(&fakeLister{orders: []order.Order{o}})

	ch, cancel := feed.SubscribeAll()
	defer cancel()

	// Overflow the subscriber buffer; Notify must never block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 20; i++ {
			feed.Notify(context.Background(), o)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Notify blocked on a slow subscriber")
	}

	// The subscriber still catches up with a (full) snapshot.
	select {
	case snap := <-ch:
		if len(snap) != 1 {
			t.Fatalf("got %d orders, want 1", len(snap))
		}
	default:
		t.Fatal("no snapshot buffered for slow subscriber")
	}
}
