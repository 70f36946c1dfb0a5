package ratelimit

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestSlidingWindowTake(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()
	sw := SlidingWindow{Client: client, Prefix: "test:"}

	ctx := context.Background()
	window := 2 * time.Second
	limit := 2

	for i := 0; i < limit; i++ {
		res, err := sw.Take(ctx, "key", window, limit)
		if err != nil {
			t.Fatalf("take: %v", err)
		}
		if !res.Allowed {
			t.Fatalf("expected request %d to be allowed", i)
		}
		if res.Remaining != limit-(i+1) {
			t.Fatalf("unexpected remaining: %d", res.Remaining)
		}
	}

	res, err := sw.Take(ctx, "key", window, limit)
	if err != nil {
		t.Fatalf("take: %v", err)
	}
	if res.Allowed {
		t.Fatal("expected third request to be rejected")
	}
	if res.Remaining != 0 {
		t.Fatalf("expected remaining 0, got %d", res.Remaining)
	}

	mr.FastForward(window)

	res, err = sw.Take(ctx, "key", window, limit)
	if err != nil {
		t.Fatalf("take after window: %v", err)
	}
	if !res.Allowed {
		t.Fatal("expected request after window to be allowed")
	}
}

func TestSlidingWindowDisabledWithoutClient(t *testing.T) {
	res, err := SlidingWindow{}.Take(context.Background(), "key", time.Second, 1)
	if err != nil || !res.Allowed {
		t.Fatalf("expected pass-through, got allowed=%v err=%v", res.Allowed, err)
	}
}
