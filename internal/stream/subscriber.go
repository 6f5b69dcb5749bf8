package stream

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RunRedisSubscriber relays the "broadcast" channel into the hub until ctx
// is cancelled or the subscription dies.
func (h *Hub) RunRedisSubscriber(ctx context.Context, rdb *redis.Client) {
	sub := rdb.Subscribe(ctx, "broadcast")
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.broadcast <- []byte(msg.Payload)
		}
	}
}
