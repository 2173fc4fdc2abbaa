package store

import (
	"context"
	"sync"

	"github.com/jhoicas/deliveryops-api/internal/domain/repository"
)

var _ repository.KeyValueStore = (*Memory)(nil)

// Memory backend en memoria (tests y STORE_DRIVER=memory).
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory construye un backend vacío.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}
