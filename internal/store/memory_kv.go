package store

import (
	"context"
	"sync"

	"edugen/internal/domain"
)

// MemoryKV keeps slots in process memory. Nothing survives a restart.
type MemoryKV struct {
	mu    sync.RWMutex
	slots map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{slots: make(map[string]string)}
}

func (m *MemoryKV) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.slots[key]
	if !ok {
		return "", domain.ErrSlotEmpty
	}
	return v, nil
}

func (m *MemoryKV) Set(ctx context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[key] = value
	return nil
}

func (m *MemoryKV) Ping(ctx context.Context) error {
	return nil
}

var _ domain.KeyValueStore = (*MemoryKV)(nil)
