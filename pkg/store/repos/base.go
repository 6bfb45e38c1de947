// Package repos provides typed repositories over the raw store, one per
// resource type.
package repos

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/plexforge/kometa-studio/pkg/store"
	"github.com/plexforge/kometa-studio/pkg/types"
)

// BaseRepo implements common CRUD operations for a resource type.
type BaseRepo[T any] struct {
	resourceType types.ResourceType
	store        store.Store
}

// NewBaseRepo creates a repository for the given resource type.
func NewBaseRepo[T any](resourceType types.ResourceType, s store.Store) *BaseRepo[T] {
	return &BaseRepo[T]{resourceType: resourceType, store: s}
}

// Create stores a new resource under the given name.
func (r *BaseRepo[T]) Create(ctx context.Context, name string, resource *T) error {
	return r.store.Create(ctx, r.resourceType, name, resource)
}

// Get retrieves a resource by name.
func (r *BaseRepo[T]) Get(ctx context.Context, name string) (*T, error) {
	resource := new(T)
	if err := r.store.Get(ctx, r.resourceType, name, resource); err != nil {
		return nil, err
	}
	return resource, nil
}

// List retrieves all resources of the repository's type.
func (r *BaseRepo[T]) List(ctx context.Context) ([]*T, error) {
	records, err := r.store.List(ctx, r.resourceType)
	if err != nil {
		return nil, err
	}

	resources := make([]*T, 0, len(records))
	for _, record := range records {
		resource := new(T)
		if err := json.Unmarshal(record, resource); err != nil {
			return nil, fmt.Errorf("failed to deserialize %s record: %w", r.resourceType, err)
		}
		resources = append(resources, resource)
	}
	return resources, nil
}

// Update replaces an existing resource.
func (r *BaseRepo[T]) Update(ctx context.Context, name string, resource *T) error {
	return r.store.Update(ctx, r.resourceType, name, resource)
}

// Delete removes a resource by name.
func (r *BaseRepo[T]) Delete(ctx context.Context, name string) error {
	return r.store.Delete(ctx, r.resourceType, name)
}

// Exists reports whether a resource with the given name is stored.
func (r *BaseRepo[T]) Exists(ctx context.Context, name string) (bool, error) {
	resource := new(T)
	err := r.store.Get(ctx, r.resourceType, name, resource)
	if err == nil {
		return true, nil
	}
	if store.IsNotFoundError(err) {
		return false, nil
	}
	return false, err
}
