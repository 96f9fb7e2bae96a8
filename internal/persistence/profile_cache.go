package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/domain"
)

// ErrCacheMiss indicates the profile is not cached.
var ErrCacheMiss = errors.New("profile not in cache")

// ProfileCache keeps role-bearing profiles in Redis so the auth middleware
// avoids one database read per request. Entries expire on TTL and are
// removed explicitly on sign-out or profile mutation.
type ProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProfileCache wraps an existing Redis connection.
func NewProfileCache(r *Redis, ttl time.Duration) *ProfileCache {
	if r == nil {
		return &ProfileCache{ttl: ttl}
	}
	return &ProfileCache{client: r.Client, ttl: ttl}
}

func profileKey(id string) string {
	return "profile:" + id
}

// Get returns the cached profile or ErrCacheMiss.
func (c *ProfileCache) Get(ctx context.Context, id string) (*domain.UserProfile, error) {
	if c == nil || c.client == nil {
		return nil, ErrCacheMiss
	}
	raw, err := c.client.Get(ctx, profileKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}
	var profile domain.UserProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, ErrCacheMiss
	}
	return &profile, nil
}

// Set stores the profile with the configured TTL. Failures are returned so
// the caller can log them; a missed cache write is never fatal.
func (c *ProfileCache) Set(ctx context.Context, profile *domain.UserProfile) error {
	if c == nil || c.client == nil || profile == nil {
		return nil
	}
	raw, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, profileKey(profile.ID), raw, c.ttl).Err()
}

// Invalidate drops the cached profile, used on sign-out and profile writes.
func (c *ProfileCache) Invalidate(ctx context.Context, id string) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, profileKey(id)).Err()
}
