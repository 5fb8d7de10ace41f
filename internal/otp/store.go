package otp

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Existing deployments namespace entries as patient_otp_<phone>; the prefix
// is kept so codes survive a rolling upgrade.
const keyPrefix = "patient_otp_"

// Store holds at most one pending code per phone number. Set unconditionally
// replaces any prior entry (latest wins); entries vanish on their own once
// the TTL elapses.
type Store interface {
	Set(ctx context.Context, phone, code string, ttl time.Duration) error
	Get(ctx context.Context, phone string) (string, error)
	Delete(ctx context.Context, phone string) error
}

// RedisStore implements Store on Redis with native key expiry.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore builds a Redis-backed code store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Set writes the code for the phone with the given TTL, replacing any prior
// pending code.
func (s *RedisStore) Set(ctx context.Context, phone, code string, ttl time.Duration) error {
	return s.client.Set(ctx, keyPrefix+phone, code, ttl).Err()
}

// Get returns the pending code for the phone, or ErrNoPendingCode when the
// key is absent or already expired.
func (s *RedisStore) Get(ctx context.Context, phone string) (string, error) {
	code, err := s.client.Get(ctx, keyPrefix+phone).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNoPendingCode
		}
		return "", err
	}
	return code, nil
}

// Delete removes the pending code for the phone. Deleting an absent key is
// not an error.
func (s *RedisStore) Delete(ctx context.Context, phone string) error {
	return s.client.Del(ctx, keyPrefix+phone).Err()
}
