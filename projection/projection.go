// Package projection keeps a live read-side snapshot of the active order
// queue. The policy is invalidate-and-refetch: any change notification
// triggers a full re-read of authoritative state, never an incremental
// merge. Redundant refetches are fine; the last fetch to complete is the
// truth.
package projection

import (
	"context"
	"log"
	"sync"

	"resto-qr-pos/models"
	"resto-qr-pos/notify"
)

// Source is the authoritative read of the active queue.
type Source interface {
	ListActiveOrders(ctx context.Context) ([]models.Order, error)
}

// Queue mirrors the store's active orders, ordered by creation time
// ascending (first-in-first-served).
type Queue struct {
	source  Source
	bus     notify.Subscriber
	channel string

	mu      sync.RWMutex
	orders  []models.Order
	lastErr error

	sub  notify.Subscription
	done chan struct{}
}

func NewQueue(source Source, bus notify.Subscriber, channel string) *Queue {
	return &Queue{source: source, bus: bus, channel: channel}
}

// Start performs the initial full fetch, subscribes to change
// notifications, and begins refetching on every event. The ctx bounds the
// whole projection lifetime.
func (q *Queue) Start(ctx context.Context) error {
	sub, err := q.bus.Subscribe(ctx, q.channel)
	if err != nil {
		return err
	}
	q.sub = sub
	q.done = make(chan struct{})

	q.refresh(ctx)

	go func() {
		defer close(q.done)
		for {
			select {
			case _, ok := <-sub.Events():
				if !ok {
					return
				}
				// Which row changed does not matter; refetch everything.
				q.refresh(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

// Stop unsubscribes and waits for the loop to exit. Leaking the
// subscription would leak the notification connection.
func (q *Queue) Stop() {
	if q.sub != nil {
		q.sub.Close()
	}
	if q.done != nil {
		<-q.done
	}
}

// Snapshot returns the most recent successfully fetched queue.
func (q *Queue) Snapshot() []models.Order {
	q.mu.RLock()
	defer q.mu.RUnlock()
	out := make([]models.Order, len(q.orders))
	copy(out, q.orders)
	return out
}

// Err reports the last fetch failure, cleared by the next successful fetch.
// A failed fetch leaves the previous snapshot in place (stale but
// consistent) until a later refetch recovers.
func (q *Queue) Err() error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.lastErr
}

// Refresh forces a full refetch outside the notification loop, e.g. after a
// manual retry from the UI.
func (q *Queue) Refresh(ctx context.Context) {
	q.refresh(ctx)
}

func (q *Queue) refresh(ctx context.Context) {
	orders, err := q.source.ListActiveOrders(ctx)
	q.mu.Lock()
	defer q.mu.Unlock()
	if err != nil {
		q.lastErr = err
		log.Printf("order queue refetch failed: %v", err)
		return
	}
	q.orders = orders
	q.lastErr = nil
}
