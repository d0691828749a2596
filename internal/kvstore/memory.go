package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Memory — хранилище в памяти процесса. Используется, когда redis
// не сконфигурирован. Значения хранятся в JSON, чтобы поведение
// декодирования совпадало с redis-реализацией.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory создает пустое хранилище в памяти.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Get декодирует запись по ключу в result, false — если записи нет.
func (m *Memory) Get(_ context.Context, key string, result any) (bool, error) {
	const op = "kvstore.Memory.Get"
	m.mu.RLock()
	raw, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

// Set сохраняет значение по ключу.
func (m *Memory) Set(_ context.Context, key string, value any) error {
	const op = "kvstore.Memory.Set"
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	m.mu.Lock()
	m.data[key] = raw
	m.mu.Unlock()
	return nil
}

// Delete удаляет запись по ключу.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
	return nil
}
