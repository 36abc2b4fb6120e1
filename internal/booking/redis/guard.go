package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Guard prevents one attendee from racing themselves with a double submit
// on the same event. It is a short-lived SetNX key, not a capacity lock;
// capacity is enforced in the database transaction.
type Guard struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewGuard(client *redis.Client, ttl time.Duration) *Guard {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Guard{Client: client, TTL: ttl}
}

func guardKey(eventID, attendeeID string) string {
	return fmt.Sprintf("booking_guard:%s:%s", eventID, attendeeID)
}

// Acquire returns false when a booking attempt for the same
// (event, attendee) pair is already in flight.
func (g *Guard) Acquire(ctx context.Context, eventID, attendeeID string) (bool, error) {
	return g.Client.SetNX(ctx, guardKey(eventID, attendeeID), "1", g.TTL).Result()
}

// Release drops the guard key. Expiry cleans up after crashed attempts, so
// a missing key is not an error.
func (g *Guard) Release(ctx context.Context, eventID, attendeeID string) error {
	err := g.Client.Del(ctx, guardKey(eventID, attendeeID)).Err()
	if err == redis.Nil {
		return nil
	}
	return err
}
