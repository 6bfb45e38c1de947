// Package store provides the durable profile storage for kometa-studio:
// configuration documents and their sealed secrets records.
package store

import (
	"context"

	"github.com/plexforge/kometa-studio/pkg/types"
)

// Store defines the interface for profile storage operations. Resources are
// addressed by type and name and stored as opaque serialized records.
type Store interface {
	// Open initializes and opens the store.
	Open(path string) error

	// Close closes the store and releases resources.
	Close() error

	// Create creates a new resource. It fails if the resource exists.
	Create(ctx context.Context, resourceType types.ResourceType, name string, resource interface{}) error

	// Get retrieves a resource by type and name.
	Get(ctx context.Context, resourceType types.ResourceType, name string, resource interface{}) error

	// List retrieves the raw records of all resources of a given type.
	List(ctx context.Context, resourceType types.ResourceType) ([][]byte, error)

	// Update updates an existing resource. It fails if the resource is
	// missing.
	Update(ctx context.Context, resourceType types.ResourceType, name string, resource interface{}) error

	// Delete deletes a resource.
	Delete(ctx context.Context, resourceType types.ResourceType, name string) error
}
