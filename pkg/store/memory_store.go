package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/plexforge/kometa-studio/pkg/types"
)

// MemoryStore implements the Store interface in memory. It is used by tests
// and by commands that never touch the on-disk profile store.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
	open bool
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Open marks the store as ready. The path is ignored.
func (s *MemoryStore) Open(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = true
	return nil
}

// Close marks the store as closed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
	return nil
}

// Create creates a new resource. It fails if the resource already exists.
func (s *MemoryStore) Create(ctx context.Context, resourceType types.ResourceType, name string, resource interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return fmt.Errorf("store not open")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	key := MakeKey(resourceType, name)
	if _, exists := s.data[key]; exists {
		return fmt.Errorf("resource already exists: %s/%s", resourceType, name)
	}

	data, err := json.Marshal(resource)
	if err != nil {
		return fmt.Errorf("failed to serialize resource: %w", err)
	}
	s.data[key] = data
	return nil
}

// Get retrieves a resource by type and name.
func (s *MemoryStore) Get(ctx context.Context, resourceType types.ResourceType, name string, resource interface{}) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.open {
		return fmt.Errorf("store not open")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	key := MakeKey(resourceType, name)
	data, exists := s.data[key]
	if !exists {
		return fmt.Errorf("resource not found: %s/%s", resourceType, name)
	}
	return json.Unmarshal(data, resource)
}

// List retrieves the raw records of all resources of the given type, ordered
// by key.
func (s *MemoryStore) List(ctx context.Context, resourceType types.ResourceType) ([][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.open {
		return nil, fmt.Errorf("store not open")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix := MakePrefix(resourceType)
	var keys []string
	for key := range s.data {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	var records [][]byte
	for _, key := range keys {
		record := make([]byte, len(s.data[key]))
		copy(record, s.data[key])
		records = append(records, record)
	}
	return records, nil
}

// Update updates an existing resource. It fails if the resource is missing.
func (s *MemoryStore) Update(ctx context.Context, resourceType types.ResourceType, name string, resource interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return fmt.Errorf("store not open")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	key := MakeKey(resourceType, name)
	if _, exists := s.data[key]; !exists {
		return fmt.Errorf("resource not found: %s/%s", resourceType, name)
	}

	data, err := json.Marshal(resource)
	if err != nil {
		return fmt.Errorf("failed to serialize resource: %w", err)
	}
	s.data[key] = data
	return nil
}

// Delete deletes a resource by type and name.
func (s *MemoryStore) Delete(ctx context.Context, resourceType types.ResourceType, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return fmt.Errorf("store not open")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	key := MakeKey(resourceType, name)
	if _, exists := s.data[key]; !exists {
		return fmt.Errorf("resource not found: %s/%s", resourceType, name)
	}
	delete(s.data, key)
	return nil
}
