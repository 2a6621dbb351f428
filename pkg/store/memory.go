package store

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-urlpicker/pkg/link"
)

// Memory is a concurrency-safe in-process store.
type Memory struct {
	mu     sync.RWMutex
	values map[string]link.Value
}

// NewMemory creates a store seeded with initial values.
func NewMemory(initial map[string]link.Value) *Memory {
	m := &Memory{values: make(map[string]link.Value, len(initial))}
	for id, value := range initial {
		if id = strings.TrimSpace(id); id != "" {
			m.values[id] = value
		}
	}
	return m
}

// Get returns the value for fieldID or the empty value.
func (m *Memory) Get(ctx context.Context, fieldID string) (link.Value, error) {
	if err := ctx.Err(); err != nil {
		return link.Value{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[strings.TrimSpace(fieldID)], nil
}

// Set replaces the value for fieldID.
func (m *Memory) Set(ctx context.Context, fieldID string, value link.Value) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fieldID = strings.TrimSpace(fieldID)
	if fieldID == "" {
		return ErrFieldIDRequired
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[fieldID] = value
	return nil
}

// Fields returns the sorted identifiers with a stored value.
func (m *Memory) Fields(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.values))
	for id := range m.values {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}
