// Package notify carries coarse change notifications between writers and
// read-side projections. Payloads are opaque hints: subscribers are expected
// to refetch authoritative state, never to patch from the payload.
package notify

import (
	"context"
	"sync"
)

type Publisher interface {
	Publish(ctx context.Context, channel, payload string) error
}

// Subscription delivers notifications for one channel until closed.
type Subscription interface {
	// Events is closed when the subscription ends.
	Events() <-chan string
	Close() error
}

type Subscriber interface {
	Subscribe(ctx context.Context, channel string) (Subscription, error)
}

// Local is an in-process bus implementing both sides. Used in tests and for
// single-node deployments without redis.
type Local struct {
	mu   sync.Mutex
	subs map[string][]*localSubscription
}

func NewLocal() *Local {
	return &Local{subs: make(map[string][]*localSubscription)}
}

func (l *Local) Publish(_ context.Context, channel, payload string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, s := range l.subs[channel] {
		select {
		case s.events <- payload:
		default: // subscriber is behind; it refetches anyway, dropping is safe
		}
	}
	return nil
}

func (l *Local) Subscribe(_ context.Context, channel string) (Subscription, error) {
	s := &localSubscription{
		bus:     l,
		channel: channel,
		events:  make(chan string, 16),
	}
	l.mu.Lock()
	l.subs[channel] = append(l.subs[channel], s)
	l.mu.Unlock()
	return s, nil
}

type localSubscription struct {
	bus     *Local
	channel string
	events  chan string
	once    sync.Once
}

func (s *localSubscription) Events() <-chan string { return s.events }

func (s *localSubscription) Close() error {
	s.once.Do(func() {
		s.bus.mu.Lock()
		subs := s.bus.subs[s.channel]
		for i, other := range subs {
			if other == s {
				s.bus.subs[s.channel] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
		s.bus.mu.Unlock()
		close(s.events)
	})
	return nil
}
