package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/perpuskita/library-portal/internal/api/metrics"
	"github.com/perpuskita/library-portal/internal/core/domain"
)

// ProfileCache keeps the session-to-profile resolution warm so that not
// every portal request costs an auth/me round trip to the backend. Keys are
// a hash of the session cookie value; the raw cookie never reaches Redis.
type ProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProfileCache wraps the given Redis client. Entries expire after ttl.
func NewProfileCache(client *redis.Client, ttl time.Duration) *ProfileCache {
	return &ProfileCache{client: client, ttl: ttl}
}

// Get returns the cached profile for a session, or nil on a miss. Redis
// failures are reported as errors so the caller can fall back to the
// backend.
func (c *ProfileCache) Get(ctx context.Context, session string) (*domain.User, error) {
	raw, err := c.client.Get(ctx, profileKey(session)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.ProfileCacheTotal.WithLabelValues("miss").Inc()
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("profile cache get: %w", err)
	}

	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("profile cache decode: %w", err)
	}
	metrics.ProfileCacheTotal.WithLabelValues("hit").Inc()
	return &user, nil
}

// Put stores the resolved profile for a session.
func (c *ProfileCache) Put(ctx context.Context, session string, user *domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("profile cache encode: %w", err)
	}
	return c.client.Set(ctx, profileKey(session), raw, c.ttl).Err()
}

// Drop evicts a session's profile. Called on logout so a stale profile
// cannot outlive the session.
func (c *ProfileCache) Drop(ctx context.Context, session string) error {
	return c.client.Del(ctx, profileKey(session)).Err()
}

func profileKey(session string) string {
	sum := sha256.Sum256([]byte(session))
	return "profile:" + hex.EncodeToString(sum[:16])
}
