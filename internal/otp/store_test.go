package otp

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisStore(client), mr
}

func TestRedisStoreSetGetDelete(t *testing.T) {
	store, _ := setupRedisStore(t)
	ctx := context.Background()

	if _, err := store.Get(ctx, testPhone); !errors.Is(err, ErrNoPendingCode) {
		t.Fatalf("expected ErrNoPendingCode for unset key, got %v", err)
	}

	if err := store.Set(ctx, testPhone, "12345", 120*time.Second); err != nil {
		t.Fatalf("set: %v", err)
	}

	code, err := store.Get(ctx, testPhone)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if code != "12345" {
		t.Fatalf("expected code 12345, got %q", code)
	}

	if err := store.Delete(ctx, testPhone); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, testPhone); !errors.Is(err, ErrNoPendingCode) {
		t.Fatalf("expected ErrNoPendingCode after delete, got %v", err)
	}
}

func TestRedisStoreLatestWriteWins(t *testing.T) {
	store, _ := setupRedisStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, testPhone, "11111", 120*time.Second); err != nil {
		t.Fatalf("first set: %v", err)
	}
	if err := store.Set(ctx, testPhone, "22222", 120*time.Second); err != nil {
		t.Fatalf("second set: %v", err)
	}

	code, err := store.Get(ctx, testPhone)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if code != "22222" {
		t.Fatalf("expected latest code 22222, got %q", code)
	}
}

func TestRedisStoreTTLExpiry(t *testing.T) {
	store, mr := setupRedisStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, testPhone, "12345", 120*time.Second); err != nil {
		t.Fatalf("set: %v", err)
	}

	mr.FastForward(121 * time.Second)

	if _, err := store.Get(ctx, testPhone); !errors.Is(err, ErrNoPendingCode) {
		t.Fatalf("expected ErrNoPendingCode after TTL, got %v", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Set(ctx, testPhone, "12345", 120*time.Second); err != nil {
		t.Fatalf("set: %v", err)
	}

	if _, err := store.Get(ctx, testPhone); err != nil {
		t.Fatalf("get before expiry: %v", err)
	}

	store.now = func() time.Time { return time.Now().Add(121 * time.Second) }

	if _, err := store.Get(ctx, testPhone); !errors.Is(err, ErrNoPendingCode) {
		t.Fatalf("expected ErrNoPendingCode after expiry, got %v", err)
	}
}
