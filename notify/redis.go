package notify

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Redis implements the bus over redis pub/sub so notifications reach every
// server instance, not just the one that performed the write.
type Redis struct {
	Client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{Client: client}
}

func (r *Redis) Publish(ctx context.Context, channel, payload string) error {
	return r.Client.Publish(ctx, channel, payload).Err()
}

func (r *Redis) Subscribe(ctx context.Context, channel string) (Subscription, error) {
	ps := r.Client.Subscribe(ctx, channel)
	// Confirm the subscription before handing it out
	if _, err := ps.Receive(ctx); err != nil {
		ps.Close()
		return nil, err
	}
	s := &redisSubscription{ps: ps, events: make(chan string, 16)}
	go s.pump()
	return s, nil
}

type redisSubscription struct {
	ps     *redis.PubSub
	events chan string
}

func (s *redisSubscription) pump() {
	defer close(s.events)
	for msg := range s.ps.Channel() {
		s.events <- msg.Payload
	}
}

func (s *redisSubscription) Events() <-chan string { return s.events }

func (s *redisSubscription) Close() error { return s.ps.Close() }
