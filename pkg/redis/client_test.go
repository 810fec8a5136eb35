package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type stubCommands struct {
	data        map[string]string
	counters    map[string]int64
	expireCalls map[string]time.Duration
}

func newStubCommands() *stubCommands {
	return &stubCommands{
		data:        map[string]string{},
		counters:    map[string]int64{},
		expireCalls: map[string]time.Duration{},
	}
}

func (s *stubCommands) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (s *stubCommands) Set(_ context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
	s.data[key] = fmt.Sprint(value)
	return redis.NewStatusResult("OK", nil)
}

func (s *stubCommands) Get(_ context.Context, key string) *redis.StringCmd {
	v, ok := s.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (s *stubCommands) Incr(_ context.Context, key string) *redis.IntCmd {
	s.counters[key]++
	return redis.NewIntResult(s.counters[key], nil)
}

func (s *stubCommands) Expire(_ context.Context, key string, ttl time.Duration) *redis.BoolCmd {
	s.expireCalls[key] = ttl
	return redis.NewBoolResult(true, nil)
}

func (s *stubCommands) Del(_ context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(s.data, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func TestFixedWindowAllow(t *testing.T) {
	ctx := context.Background()
	stub := newStubCommands()
	client := &Client{store: stub}

	for i := 1; i <= 2; i++ {
		allowed, count, err := client.FixedWindowAllow(ctx, "test-scope", 2, time.Second)
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		if !allowed || count != int64(i) {
			t.Fatalf("call %d: allowed=%v count=%d", i, allowed, count)
		}
	}

	allowed, _, err := client.FixedWindowAllow(ctx, "test-scope", 2, time.Second)
	if err != nil {
		t.Fatalf("third call: %v", err)
	}
	if allowed {
		t.Fatal("expected limit reached")
	}

	// TTL is stamped exactly once, when the counter is created.
	if len(stub.expireCalls) != 1 {
		t.Fatalf("expected a single expire call, got %d", len(stub.expireCalls))
	}
}

func TestSessionValueLifecycle(t *testing.T) {
	ctx := context.Background()
	client := &Client{store: newStubCommands()}

	key := client.SessionKey("jti-1")
	if err := client.Set(ctx, key, "active", 10*time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if val, err := client.Get(ctx, key); err != nil || val != "active" {
		t.Fatalf("get: val=%q err=%v", val, err)
	}

	if err := client.Del(ctx, key); err != nil {
		t.Fatalf("del: %v", err)
	}
	if _, err := client.Get(ctx, key); err != redis.Nil {
		t.Fatalf("expected redis.Nil after delete, got %v", err)
	}
}

func TestKeyBuilders(t *testing.T) {
	client := &Client{}
	cases := map[string]string{
		client.RateLimitKey("scope"):  "ml:rate_limit:scope",
		client.SessionKey("jti"):      "ml:session:jti",
		client.buildKey("a", "", "b"): "ml:a:b",
	}
	for got, want := range cases {
		if got != want {
			t.Fatalf("key mismatch: got %q want %q", got, want)
		}
	}
}

func TestUninitializedClientErrors(t *testing.T) {
	ctx := context.Background()
	client := &Client{}

	if err := client.Set(ctx, "k", "v", 0); err != errNotInitialized {
		t.Fatalf("set: %v", err)
	}
	if _, err := client.Get(ctx, "k"); err != errNotInitialized {
		t.Fatalf("get: %v", err)
	}
	if err := client.Ping(ctx); err != errNotInitialized {
		t.Fatalf("ping: %v", err)
	}
}
