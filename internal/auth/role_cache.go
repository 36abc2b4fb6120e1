package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"eventhub/internal/models"
)

// RoleLookup resolves a subject to their stored profile. Satisfied by the
// profile DB layer.
type RoleLookup interface {
	GetProfileByID(ctx context.Context, id string) (*models.Profile, error)
}

// RoleCache keeps subject->role in redis so the middleware does not hit
// the profiles table on every request. Roles are immutable after profile
// creation, so a stale hit cannot drift; the TTL only bounds memory.
type RoleCache struct {
	Client *redis.Client
	DB     RoleLookup
	TTL    time.Duration
}

func NewRoleCache(client *redis.Client, db RoleLookup, ttl time.Duration) *RoleCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RoleCache{Client: client, DB: db, TTL: ttl}
}

func roleKey(subject string) string {
	return fmt.Sprintf("auth_role:%s", subject)
}

// Resolve returns the subject's role, from redis when cached, falling
// back to the profile store.
func (c *RoleCache) Resolve(ctx context.Context, subject string) (models.Role, error) {
	if c.Client != nil {
		cached, err := c.Client.Get(ctx, roleKey(subject)).Result()
		if err == nil && models.Role(cached).Valid() {
			return models.Role(cached), nil
		}
	}

	p, err := c.DB.GetProfileByID(ctx, subject)
	if err != nil {
		return "", err
	}

	if c.Client != nil {
		// A failed cache write just means a store hit next time.
		c.Client.Set(ctx, roleKey(subject), string(p.Role), c.TTL)
	}
	return p.Role, nil
}
