package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryLock struct {
	token    string
	expireAt time.Time
}

// MemoryStore is an in-process Locker for single-instance deployments
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]memoryLock
	stop  chan struct{}
	once  sync.Once
}

var _ Locker = (*MemoryStore)(nil)

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	store := &MemoryStore{
		items: make(map[string]memoryLock),
		stop:  make(chan struct{}),
	}

	// Start cleanup goroutine to remove expired locks
	go store.cleanupExpired(5 * time.Minute)

	return store
}

// TryLock takes key for ttl unless a live holder already has it
func (ms *MemoryStore) TryLock(_ context.Context, key string, ttl time.Duration) (string, bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := time.Now()
	if held, ok := ms.items[key]; ok && now.Before(held.expireAt) {
		return "", false, nil
	}
	token := uuid.NewString()
	ms.items[key] = memoryLock{token: token, expireAt: now.Add(ttl)}
	return token, true, nil
}

// Unlock releases key when token still owns it
func (ms *MemoryStore) Unlock(_ context.Context, key, token string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if held, ok := ms.items[key]; ok && held.token == token {
		delete(ms.items, key)
	}
	return nil
}

// Close stops the cleanup goroutine
func (ms *MemoryStore) Close() error {
	ms.once.Do(func() { close(ms.stop) })
	return nil
}

// cleanupExpired periodically removes expired locks
func (ms *MemoryStore) cleanupExpired(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ms.stop:
			return
		case <-ticker.C:
			ms.mu.Lock()
			now := time.Now()
			for key, held := range ms.items {
				if now.After(held.expireAt) {
					delete(ms.items, key)
				}
			}
			ms.mu.Unlock()
		}
	}
}
