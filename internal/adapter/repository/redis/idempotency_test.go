package redis

import (
	"context"
	"testing"
	"time"
)

func TestIdempotencyStoreFirstRequestClaims(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	exists, _, err := store.CheckAndSet(ctx, "key-1", nil, time.Minute)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if exists {
		t.Fatal("first request should not find an existing key")
	}

	// A second request with the same key sees the claim.
	exists, _, err = store.CheckAndSet(ctx, "key-1", nil, time.Minute)
	if err != nil {
		t.Fatalf("second check failed: %v", err)
	}
	if !exists {
		t.Fatal("second request should find the claimed key")
	}
}

func TestIdempotencyStoreUpdateAndReplay(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	if _, _, err := store.CheckAndSet(ctx, "key-1", nil, time.Minute); err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	if err := store.Update(ctx, "key-1", []byte(`{"id":"txn-1"}`), time.Minute); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	exists, stored, err := store.CheckAndSet(ctx, "key-1", nil, time.Minute)
	if err != nil {
		t.Fatalf("replay check failed: %v", err)
	}
	if !exists || string(stored) != `{"id":"txn-1"}` {
		t.Fatalf("replay = exists %v, body %s", exists, stored)
	}
}

func TestIdempotencyStoreSetsImmediateResponse(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	exists, _, err := store.CheckAndSet(ctx, "key-2", []byte("done"), time.Minute)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if exists {
		t.Fatal("fresh key reported as existing")
	}

	exists, stored, err := store.CheckAndSet(ctx, "key-2", nil, time.Minute)
	if err != nil {
		t.Fatalf("second check failed: %v", err)
	}
	if !exists || string(stored) != "done" {
		t.Fatalf("replay = exists %v, body %s", exists, stored)
	}
}
