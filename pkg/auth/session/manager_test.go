package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

type mockStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMockStore() *mockStore {
	return &mockStore{data: make(map[string]string)}
}

func (m *mockStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = fmt.Sprint(value)
	return nil
}

func (m *mockStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return val, nil
}

func (m *mockStore) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

type mockKeyer struct{}

func (mockKeyer) SessionKey(accessID string) string {
	return "ml:session:" + accessID
}

func newTestManager() (*Manager, *mockStore) {
	store := newMockStore()
	return &Manager{store: store, keyer: mockKeyer{}, ttl: time.Minute}, store
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	mgr, _ := newTestManager()

	accessID := NewAccessID()
	if err := mgr.Create(ctx, accessID); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	alive, err := mgr.HasSession(ctx, accessID)
	if err != nil {
		t.Fatalf("has session failed: %v", err)
	}
	if !alive {
		t.Fatalf("expected live session after create")
	}

	if err := mgr.Revoke(ctx, accessID); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}

	alive, err = mgr.HasSession(ctx, accessID)
	if err != nil {
		t.Fatalf("has session after revoke failed: %v", err)
	}
	if alive {
		t.Fatalf("expected session gone after revoke")
	}
}

func TestSessionRequiresAccessID(t *testing.T) {
	ctx := context.Background()
	mgr, _ := newTestManager()

	if err := mgr.Create(ctx, "  "); err == nil {
		t.Fatalf("expected error for blank access id")
	}
	if err := mgr.Revoke(ctx, ""); err == nil {
		t.Fatalf("expected error for blank access id")
	}
	if _, err := mgr.HasSession(ctx, ""); err == nil {
		t.Fatalf("expected error for blank access id")
	}
}

func TestHasSessionUnknownID(t *testing.T) {
	ctx := context.Background()
	mgr, _ := newTestManager()

	alive, err := mgr.HasSession(ctx, "never-created")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if alive {
		t.Fatalf("expected no session for unknown id")
	}
}
